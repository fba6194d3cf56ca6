package ast

import (
	"fmt"

	"github.com/pattyshack/gt/parseutil"
)

// A function whose body consists of inline assembly blocks.  Parameters and
// locals are the values / destinations the blocks' operands refer to.
type FunctionDefinition struct {
	sourceEntry

	parseutil.StartEndPos

	Name       string
	Parameters []*VariableDefinition
	Locals     []*VariableDefinition
	Blocks     []*InlineAsm
}

var _ SourceEntry = &FunctionDefinition{}
var _ Validator = &FunctionDefinition{}

func (def *FunctionDefinition) Walk(visitor Visitor) {
	visitor.Enter(def)
	for _, param := range def.Parameters {
		param.Walk(visitor)
	}
	for _, local := range def.Locals {
		local.Walk(visitor)
	}
	for _, block := range def.Blocks {
		block.Walk(visitor)
	}
	visitor.Exit(def)
}

func (def *FunctionDefinition) Validate(emitter *parseutil.Emitter) {
	if def.Name == "" {
		emitter.Emit(def.Loc(), "empty function definition name")
	}

	names := map[string]*VariableDefinition{}
	for _, list := range [][]*VariableDefinition{def.Parameters, def.Locals} {
		for _, variable := range list {
			prev, ok := names[variable.Name]
			if ok {
				emitter.Emit(
					variable.Loc(),
					"variable (%s) previously defined at (%s)",
					variable.Name,
					prev.Loc().ShortString())
			} else {
				names[variable.Name] = variable
			}
		}
	}
}

// Lookup returns the parameter or local with the given name.
func (def *FunctionDefinition) Lookup(name string) *VariableDefinition {
	for _, list := range [][]*VariableDefinition{def.Parameters, def.Locals} {
		for _, variable := range list {
			if variable.Name == name {
				return variable
			}
		}
	}
	return nil
}

type VariableDefinition struct {
	parseutil.StartEndPos

	Name string
	Type Type
}

var _ Node = &VariableDefinition{}
var _ Validator = &VariableDefinition{}

func (def *VariableDefinition) Walk(visitor Visitor) {
	visitor.Enter(def)
	def.Type.Walk(visitor)
	visitor.Exit(def)
}

func (def *VariableDefinition) Validate(emitter *parseutil.Emitter) {
	if def.Name == "" {
		emitter.Emit(def.Loc(), "empty variable name")
	}
}

// A value read by an input operand.
type Value interface {
	Node
	isValue()

	Type() Type
}

type valueMarker struct{}

func (valueMarker) isValue() {}

// A reference to a parameter or local.  Also used as an output operand's
// destination.
type VariableReference struct {
	valueMarker
	parseutil.StartEndPos

	Name string

	// Bound by the loader.
	Definition *VariableDefinition
}

var _ Value = &VariableReference{}
var _ Validator = &VariableReference{}

func (ref *VariableReference) Walk(visitor Visitor) {
	visitor.Enter(ref)
	visitor.Exit(ref)
}

func (ref *VariableReference) Validate(emitter *parseutil.Emitter) {
	if ref.Definition == nil {
		emitter.Emit(ref.Loc(), "undefined variable (%s)", ref.Name)
	}
}

func (ref *VariableReference) Type() Type {
	if ref.Definition == nil {
		return nil
	}
	return ref.Definition.Type
}

type IntImmediate struct {
	valueMarker
	parseutil.StartEndPos

	Value      uint64
	IsNegative bool

	ImmediateType Type
}

var _ Value = &IntImmediate{}
var _ Validator = &IntImmediate{}

func (imm *IntImmediate) Walk(visitor Visitor) {
	visitor.Enter(imm)
	visitor.Exit(imm)
}

func (imm *IntImmediate) Validate(emitter *parseutil.Emitter) {
	intType, ok := imm.ImmediateType.(IntType)
	if !ok {
		emitter.Emit(imm.Loc(), "int immediate must have an int type")
		return
	}

	if intType.ByteSize() > 0 && !intType.InRange(imm.Value, imm.IsNegative) {
		emitter.Emit(
			imm.Loc(),
			"int immediate (%s) out of range for %s",
			imm.String(),
			intType.Kind)
	}
}

func (imm *IntImmediate) String() string {
	if imm.IsNegative {
		return fmt.Sprintf("-%d", imm.Value)
	}
	return fmt.Sprintf("%d", imm.Value)
}

func (imm *IntImmediate) Type() Type {
	return imm.ImmediateType
}

type SymbolKind string

const (
	FunctionSymbol = SymbolKind("function")
	StaticSymbol   = SymbolKind("static")
)

// A reference to a function or static item.  The linker-visible name is
// resolved by the symbol naming service.
type SymbolReference struct {
	parseutil.StartEndPos

	Kind SymbolKind
	Name string
}

var _ Node = &SymbolReference{}
var _ Validator = &SymbolReference{}

func (ref *SymbolReference) Walk(visitor Visitor) {
	visitor.Enter(ref)
	visitor.Exit(ref)
}

func (ref *SymbolReference) Validate(emitter *parseutil.Emitter) {
	if ref.Name == "" {
		emitter.Emit(ref.Loc(), "empty %s symbol name", ref.Kind)
	}
}
