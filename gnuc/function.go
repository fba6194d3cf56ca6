package gnuc

import (
	"fmt"
	"math"
	"strings"

	"github.com/samber/lo"

	"github.com/pattyshack/asmbridge/architecture"
	"github.com/pattyshack/asmbridge/ast"
	"github.com/pattyshack/asmbridge/extasm"
)

// Function renders a function definition's body as gnu c.  Statements are
// rendered in the order they are appended.
type Function struct {
	Definition *ast.FunctionDefinition

	// The lowered asm statements, in order.
	Asms []*extasm.Asm

	statements []string
	numLocals  int

	// Referenced symbols, keyed by linker visible name.
	externs map[string]ast.SymbolKind
}

var _ extasm.Builder = &Function{}

func newFunction(def *ast.FunctionDefinition) *Function {
	return &Function{
		Definition: def,
		externs:    map[string]ast.SymbolKind{},
	}
}

func (function *Function) newLocalName(nameHint string) string {
	name := fmt.Sprintf("%s_%d", nameHint, function.numLocals)
	function.numLocals++
	return name
}

func (function *Function) emit(format string, args ...interface{}) {
	function.statements = append(
		function.statements,
		fmt.Sprintf(format, args...))
}

func (function *Function) NewLocal(
	nameHint string,
	storageType architecture.StorageType,
) *extasm.Local {
	local := &extasm.Local{
		Name: function.newLocalName(nameHint),
		Type: storageType,
	}

	function.emit("%s %s;", storageTypeName(storageType), local.Name)
	return local
}

func (function *Function) NewRegisterLocal(
	nameHint string,
	storageType architecture.StorageType,
	register string,
) *extasm.Local {
	local := &extasm.Local{
		Name:     function.newLocalName(nameHint),
		Type:     storageType,
		Register: register,
	}

	function.emit(
		"register %s %s __asm__(%s);",
		storageTypeName(storageType),
		local.Name,
		quote(register))
	return local
}

func (function *Function) Assign(dest *extasm.Local, value ast.Value) {
	function.emit("%s = %s;", dest.Name, valueString(value))
}

func (function *Function) SymbolAddress(
	symbol *ast.SymbolReference,
	mangledName string,
) extasm.Expression {
	function.externs[mangledName] = symbol.Kind
	return &extasm.AddressOf{
		Kind: symbol.Kind,
		Name: mangledName,
	}
}

func (function *Function) AddExtendedAsm(asm *extasm.Asm) {
	function.Asms = append(function.Asms, asm)

	keyword := "__asm__"
	if asm.Volatile {
		keyword = "__asm__ __volatile__"
	}

	outputs := lo.Map(
		asm.Outputs,
		func(op *extasm.OutputOperand, _ int) string {
			return fmt.Sprintf("%s(%s)", quote(op.Constraint()), op.Temporary.Name)
		})

	inputs := lo.Map(
		asm.Inputs,
		func(op *extasm.InputOperand, _ int) string {
			return fmt.Sprintf("%s(%s)", quote(op.Constraint), expressionString(op.Value))
		})

	clobbers := lo.Map(
		asm.Clobbers.Names(),
		func(name string, _ int) string {
			return quote(name)
		})

	function.emit(
		"%s(\n    %s\n    %s\n    %s\n    %s);",
		keyword,
		quote(asm.Template),
		operandSection(outputs),
		operandSection(inputs),
		operandSection(clobbers))
}

func operandSection(entries []string) string {
	if len(entries) == 0 {
		return ":"
	}
	return ": " + strings.Join(entries, ", ")
}

func (function *Function) Unreachable() {
	function.emit("__builtin_unreachable();")
}

func (function *Function) Store(
	dest *ast.VariableReference,
	src *extasm.Local,
) {
	function.emit("%s = %s;", dest.Name, src.Name)
}

func (function *Function) render(builder *strings.Builder) {
	def := function.Definition

	params := lo.Map(
		def.Parameters,
		func(param *ast.VariableDefinition, _ int) string {
			return sourceTypeName(param.Type) + " " + param.Name
		})
	if len(params) == 0 {
		params = []string{"void"}
	}

	fmt.Fprintf(builder, "void %s(%s) {\n", def.Name, strings.Join(params, ", "))

	for _, local := range def.Locals {
		fmt.Fprintf(builder, "  %s %s;\n", sourceTypeName(local.Type), local.Name)
	}

	for _, statement := range function.statements {
		builder.WriteString("  ")
		builder.WriteString(strings.ReplaceAll(statement, "\n", "\n  "))
		builder.WriteString("\n")
	}

	builder.WriteString("}\n")
}

func valueString(value ast.Value) string {
	switch v := value.(type) {
	case *ast.VariableReference:
		return v.Name
	case *ast.IntImmediate:
		typeName := sourceTypeName(v.Type())
		switch {
		case !v.IsNegative:
			return fmt.Sprintf("((%s)%dULL)", typeName, v.Value)
		case v.Value <= math.MaxInt64:
			return fmt.Sprintf("((%s)-%dLL)", typeName, v.Value)
		case v.Value == math.MaxInt64+1 && !isInt128(v.Type()):
			// The magnitude has no long long literal.
			return fmt.Sprintf("((%s)(-%dLL - 1))", typeName, uint64(math.MaxInt64))
		default:
			return fmt.Sprintf("((%s)-(%s)%dULL)", typeName, typeName, v.Value)
		}
	default:
		panic(fmt.Sprintf("unhandled value: %v", value))
	}
}

func isInt128(valueType ast.Type) bool {
	intType, ok := valueType.(ast.IntType)
	return ok && intType.ByteSize() == 16
}

func expressionString(expr extasm.Expression) string {
	switch e := expr.(type) {
	case *extasm.Local:
		return e.Name
	case extasm.Value:
		return valueString(e.Value)
	case *extasm.AddressOf:
		return "&" + e.Name
	default:
		panic(fmt.Sprintf("unhandled expression: %v", expr))
	}
}
