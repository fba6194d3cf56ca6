package ast

import (
	"github.com/pattyshack/gt/parseutil"

	"github.com/pattyshack/asmbridge/architecture"
)

// RegisterSpec names either an explicit physical register or an abstract
// register class.  Exactly one of the two is set.
type RegisterSpec struct {
	Register *architecture.Register
	Class    architecture.RegisterClass
}

func ExplicitRegister(register *architecture.Register) RegisterSpec {
	return RegisterSpec{Register: register}
}

func ClassRegister(class architecture.RegisterClass) RegisterSpec {
	return RegisterSpec{Class: class}
}

func (spec RegisterSpec) IsExplicit() bool {
	return spec.Register != nil
}

// RegisterClass returns the explicit register's class, or the requested class.
func (spec RegisterSpec) RegisterClass() architecture.RegisterClass {
	if spec.Register != nil {
		return spec.Register.Class
	}
	return spec.Class
}

func (spec RegisterSpec) String() string {
	if spec.Register != nil {
		return "\"" + spec.Register.Name + "\""
	}
	return spec.Class.Name
}

func (spec RegisterSpec) validate(
	emitter *parseutil.Emitter,
	pos parseutil.Location,
) {
	if spec.Register != nil && spec.Class.IsValid() {
		emitter.Emit(pos, "operand specifies both a register and a register class")
	} else if spec.Register == nil && !spec.Class.IsValid() {
		emitter.Emit(pos, "operand specifies neither a register nor a register class")
	}
}

// Operand is one entry of an assembly block's operand list.  An operand's
// position in the list is its source index; template placeholders refer to
// operands by source index.
type Operand interface {
	Node
	isOperand()
}

type operandMarker struct{}

func (operandMarker) isOperand() {}

// out(<reg>) <dest>.  Dest is nil when the output is discarded.
type OutOperand struct {
	operandMarker
	parseutil.StartEndPos

	Register RegisterSpec

	// When true, the output may share a register with an input since it's only
	// written after all inputs are consumed.
	Late bool

	Dest *VariableReference
}

var _ Operand = &OutOperand{}
var _ Validator = &OutOperand{}

func (op *OutOperand) Walk(visitor Visitor) {
	visitor.Enter(op)
	if op.Dest != nil {
		op.Dest.Walk(visitor)
	}
	visitor.Exit(op)
}

func (op *OutOperand) Validate(emitter *parseutil.Emitter) {
	op.Register.validate(emitter, op.Loc())
}

// in(<reg>) <value>
type InOperand struct {
	operandMarker
	parseutil.StartEndPos

	Register RegisterSpec
	Value    Value
}

var _ Operand = &InOperand{}
var _ Validator = &InOperand{}

func (op *InOperand) Walk(visitor Visitor) {
	visitor.Enter(op)
	op.Value.Walk(visitor)
	visitor.Exit(op)
}

func (op *InOperand) Validate(emitter *parseutil.Emitter) {
	op.Register.validate(emitter, op.Loc())
}

// inout(<reg>) <in> => <dest>.  Dest is nil when the output is discarded.
type InOutOperand struct {
	operandMarker
	parseutil.StartEndPos

	Register RegisterSpec
	Late     bool

	In   Value
	Dest *VariableReference
}

var _ Operand = &InOutOperand{}
var _ Validator = &InOutOperand{}

func (op *InOutOperand) Walk(visitor Visitor) {
	visitor.Enter(op)
	op.In.Walk(visitor)
	if op.Dest != nil {
		op.Dest.Walk(visitor)
	}
	visitor.Exit(op)
}

func (op *InOutOperand) Validate(emitter *parseutil.Emitter) {
	op.Register.validate(emitter, op.Loc())
}

// const <text>.  The evaluated constant is spliced into the template as text.
type ConstOperand struct {
	operandMarker
	parseutil.StartEndPos

	Text string
}

var _ Operand = &ConstOperand{}
var _ Validator = &ConstOperand{}

func (op *ConstOperand) Walk(visitor Visitor) {
	visitor.Enter(op)
	visitor.Exit(op)
}

func (op *ConstOperand) Validate(emitter *parseutil.Emitter) {
	if op.Text == "" {
		emitter.Emit(op.Loc(), "empty const operand")
	}
}

// sym <function>
type SymFnOperand struct {
	operandMarker
	parseutil.StartEndPos

	Symbol *SymbolReference
}

var _ Operand = &SymFnOperand{}

func (op *SymFnOperand) Walk(visitor Visitor) {
	visitor.Enter(op)
	op.Symbol.Walk(visitor)
	visitor.Exit(op)
}

// sym <static>
type SymStaticOperand struct {
	operandMarker
	parseutil.StartEndPos

	Symbol *SymbolReference
}

var _ Operand = &SymStaticOperand{}

func (op *SymStaticOperand) Walk(visitor Visitor) {
	visitor.Enter(op)
	op.Symbol.Walk(visitor)
	visitor.Exit(op)
}

// OperandRegister returns the register spec of in/out/inout operands.
func OperandRegister(operand Operand) (RegisterSpec, bool) {
	switch op := operand.(type) {
	case *OutOperand:
		return op.Register, true
	case *InOperand:
		return op.Register, true
	case *InOutOperand:
		return op.Register, true
	default:
		return RegisterSpec{}, false
	}
}
