package ast

import (
	"strings"
)

// Options are the semantic options attached to an assembly block.
type Options uint16

const (
	// The block has no side effects other than its outputs.
	Pure = Options(1 << iota)
	// The block does not access memory.
	NoMem
	// The block reads, but does not write, memory.
	ReadOnly
	// The block does not modify the flags / condition codes.
	PreservesFlags
	// The block never returns.
	NoReturn
	// The block does not push onto the stack.
	NoStack
	// The template uses the x86 AT&T syntax instead of Intel syntax.
	AttSyntax
	// The template is used verbatim, without placeholder parsing.
	Raw
	// The block may unwind.
	MayUnwind
)

var optionNames = []struct {
	option Options
	name   string
}{
	{Pure, "pure"},
	{NoMem, "nomem"},
	{ReadOnly, "readonly"},
	{PreservesFlags, "preserves_flags"},
	{NoReturn, "noreturn"},
	{NoStack, "nostack"},
	{AttSyntax, "att_syntax"},
	{Raw, "raw"},
	{MayUnwind, "may_unwind"},
}

func ParseOption(name string) (Options, bool) {
	for _, entry := range optionNames {
		if entry.name == name {
			return entry.option, true
		}
	}
	return 0, false
}

func (options Options) Contains(option Options) bool {
	return options&option == option
}

func (options Options) String() string {
	names := []string{}
	for _, entry := range optionNames {
		if options.Contains(entry.option) {
			names = append(names, entry.name)
		}
	}
	return strings.Join(names, ", ")
}
