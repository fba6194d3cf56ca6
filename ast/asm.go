package ast

import (
	"github.com/pattyshack/gt/parseutil"
)

// An inline assembly block inside a function body.  Its operands may bind
// live values and destinations.
type InlineAsm struct {
	parseutil.StartEndPos

	Template []TemplatePiece
	Operands []Operand
	Options  Options
}

var _ Node = &InlineAsm{}
var _ Validator = &InlineAsm{}

func (asm *InlineAsm) Walk(visitor Visitor) {
	visitor.Enter(asm)
	for _, piece := range asm.Template {
		piece.Walk(visitor)
	}
	for _, op := range asm.Operands {
		op.Walk(visitor)
	}
	visitor.Exit(asm)
}

func (asm *InlineAsm) Validate(emitter *parseutil.Emitter) {
	validateTemplate(asm.Template, asm.Operands, emitter)

	options := asm.Options
	if options.Contains(NoMem) && options.Contains(ReadOnly) {
		emitter.Emit(asm.Loc(), "nomem and readonly options are mutually exclusive")
	}

	if options.Contains(Pure) {
		if options.Contains(NoReturn) {
			emitter.Emit(asm.Loc(), "pure and noreturn options are mutually exclusive")
		}

		if !options.Contains(NoMem) && !options.Contains(ReadOnly) {
			emitter.Emit(
				asm.Loc(),
				"pure option must be combined with either nomem or readonly")
		}

		hasOutput := false
		for _, operand := range asm.Operands {
			switch operand.(type) {
			case *OutOperand, *InOutOperand:
				hasOutput = true
			}
		}

		if !hasOutput {
			emitter.Emit(asm.Loc(), "pure asm block must have at least one output")
		}
	}
}

// A module level assembly block.  Only const and sym operands are allowed
// since there are no live values to bind.
type GlobalAsm struct {
	sourceEntry

	parseutil.StartEndPos

	Template []TemplatePiece
	Operands []Operand
	Options  Options
}

var _ SourceEntry = &GlobalAsm{}
var _ Validator = &GlobalAsm{}

func (asm *GlobalAsm) Walk(visitor Visitor) {
	visitor.Enter(asm)
	for _, piece := range asm.Template {
		piece.Walk(visitor)
	}
	for _, op := range asm.Operands {
		op.Walk(visitor)
	}
	visitor.Exit(asm)
}

func (asm *GlobalAsm) Validate(emitter *parseutil.Emitter) {
	for idx, operand := range asm.Operands {
		switch operand.(type) {
		case *ConstOperand, *SymFnOperand, *SymStaticOperand: // ok
		default:
			emitter.Emit(
				operand.Loc(),
				"global asm operand %d must be a const or sym operand",
				idx)
		}
	}

	validateTemplate(asm.Template, asm.Operands, emitter)

	unsupported := asm.Options &^ (AttSyntax | Raw)
	if unsupported != 0 {
		emitter.Emit(
			asm.Loc(),
			"global asm does not support options (%s)",
			unsupported)
	}
}
