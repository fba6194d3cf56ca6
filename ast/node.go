package ast

import (
	"github.com/pattyshack/gt/parseutil"
)

type Node interface {
	parseutil.Locatable
	Walk(Visitor)
}

type Visitor interface {
	Enter(Node)
	Exit(Node)
}

type Validator interface {
	Validate(*parseutil.Emitter)
}

// A top level entry in an assembly description: either a function
// definition containing inline assembly blocks, or a global assembly block.
type SourceEntry interface {
	Node
	isSourceEntry()
}

type sourceEntry struct{}

func (sourceEntry) isSourceEntry() {}

// Validate walks the entry and runs every node's Validate method.
func Validate(entry SourceEntry, emitter *parseutil.Emitter) {
	entry.Walk(syntaxValidator{Emitter: emitter})
}

type syntaxValidator struct {
	*parseutil.Emitter
}

func (validator syntaxValidator) Enter(n Node) {
	node, ok := n.(Validator)
	if ok {
		node.Validate(validator.Emitter)
	}
}

func (validator syntaxValidator) Exit(Node) {
}
