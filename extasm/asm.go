// Package extasm models gnu style extended assembly statements, as well as
// the instruction stream the statements are appended to.
package extasm

import (
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/pattyshack/asmbridge/architecture"
	"github.com/pattyshack/asmbridge/ast"
)

// A temporary declared in the instruction stream.
type Local struct {
	Name string
	Type architecture.StorageType

	// Non-empty for register variables pinned to a physical register.
	Register string
}

func (*Local) isExpression() {}

func (local *Local) IsPinned() bool {
	return local.Register != ""
}

// Expression is an input operand's value: either a *Local, a Value, or an
// *AddressOf.
type Expression interface {
	isExpression()
}

// Value is a source value read directly by an input operand.
type Value struct {
	ast.Value
}

func (Value) isExpression() {}

// AddressOf is the address of a function or static item.
type AddressOf struct {
	Kind ast.SymbolKind

	// The linker visible name.
	Name string
}

func (*AddressOf) isExpression() {}

// An output operand.  The output's index is its position in Asm.Outputs.
type OutputOperand struct {
	// The operand's position in the source operand list.
	SourceIndex int

	// The base constraint code (e.g., "r").
	Code string

	Late      bool
	ReadWrite bool

	// The asm block writes into the temporary, which is copied into
	// Destination after the block.
	Temporary *Local

	// nil when the output is discarded.
	Destination *ast.VariableReference
}

// Constraint returns the full constraint string, e.g., "=&r".  Outputs that
// are not late are early clobbers since they may be written before all
// inputs are consumed.
func (op *OutputOperand) Constraint() string {
	builder := strings.Builder{}
	if op.ReadWrite {
		builder.WriteString("+")
	} else {
		builder.WriteString("=")
	}

	if !op.Late {
		builder.WriteString("&")
	}

	builder.WriteString(op.Code)
	return builder.String()
}

// An input operand.  The input's index is its position in Asm.Inputs plus
// the number of outputs.
type InputOperand struct {
	SourceIndex int

	// Either a constraint code, the decimal index of the output the input is
	// tied to, or "X" for symbol addresses.
	Constraint string

	Value Expression
}

// TiedOutputIndex returns the tied output's index, or false if the input is
// not tied.
func (op *InputOperand) TiedOutputIndex() (int, bool) {
	idx, err := strconv.Atoi(op.Constraint)
	if err != nil {
		return 0, false
	}
	return idx, true
}

// ClobberSet is an insertion ordered set of clobbered register / resource
// names.
type ClobberSet struct {
	names []string
}

// Add returns false if the name is already in the set.
func (set *ClobberSet) Add(name string) bool {
	if lo.Contains(set.names, name) {
		return false
	}
	set.names = append(set.names, name)
	return true
}

func (set *ClobberSet) Contains(name string) bool {
	return lo.Contains(set.names, name)
}

func (set *ClobberSet) Len() int {
	return len(set.names)
}

func (set *ClobberSet) Names() []string {
	return set.names
}

// Asm is a fully lowered extended assembly statement.
type Asm struct {
	Template string

	Outputs []*OutputOperand
	Inputs  []*InputOperand

	Clobbers ClobberSet

	Volatile bool
	NoReturn bool

	// Discarded explicit register outputs that were dropped instead of
	// clobbered, since the registers are unavailable under the enabled target
	// features.
	Dropped []string
}

// InputIndex returns the operand index of the input at the given position.
func (asm *Asm) InputIndex(position int) int {
	return position + len(asm.Outputs)
}

// OutputPosition returns the position of the output created for the source
// operand, or -1.
func (asm *Asm) OutputPosition(sourceIndex int) int {
	_, idx, ok := lo.FindIndexOf(
		asm.Outputs,
		func(op *OutputOperand) bool {
			return op.SourceIndex == sourceIndex
		})
	if !ok {
		return -1
	}
	return idx
}

// InputPosition returns the position of the first input created for the
// source operand, or -1.
func (asm *Asm) InputPosition(sourceIndex int) int {
	_, idx, ok := lo.FindIndexOf(
		asm.Inputs,
		func(op *InputOperand) bool {
			return op.SourceIndex == sourceIndex
		})
	if !ok {
		return -1
	}
	return idx
}
