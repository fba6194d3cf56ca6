// Package asmfile loads yaml assembly descriptions.
//
//	target: x86_64
//	features: [sse, avx]
//	symbols:
//	  handler: _ZN7example7handler17h8c3d0e2ab4f1c9e7E
//	global_asm:
//	  - template: ".globl {0}"
//	    operands:
//	      - {kind: sym_fn, symbol: handler}
//	functions:
//	  - name: add_one
//	    parameters: [{name: x, type: u64}]
//	    locals: [{name: y, type: u64}]
//	    asm:
//	      - template: "lea {0}, [{1} + 1]"
//	        operands:
//	          - {kind: out, class: reg, dest: y}
//	          - {kind: in, class: reg, value: x}
//	        options: [pure, nomem, nostack]
package asmfile

import (
	"strconv"
	"strings"

	"github.com/pattyshack/gt/parseutil"
	"gopkg.in/yaml.v3"

	"github.com/pattyshack/asmbridge/architecture"
	"github.com/pattyshack/asmbridge/ast"
	"github.com/pattyshack/asmbridge/lowering"
	"github.com/pattyshack/asmbridge/platform"
	"github.com/pattyshack/asmbridge/platform/target"
)

const defaultImmediateType = "i32"

// File is a loaded assembly description.
type File struct {
	FileName string

	Platform platform.Platform

	// Source name to linker visible name.  Names without an entry are used
	// as is.
	Symbols map[string]string

	// Global asm entries precede function definitions.
	Entries []ast.SourceEntry
}

var _ lowering.SymbolNamer = &File{}

func (file *File) SymbolName(symbol *ast.SymbolReference) string {
	name, ok := file.Symbols[symbol.Name]
	if ok {
		return name
	}
	return symbol.Name
}

type loader struct {
	fileName string
	platform platform.Platform
	*parseutil.Emitter
}

func (loader *loader) location(pos position) parseutil.Location {
	return parseutil.Location{
		FileName: loader.fileName,
		Line:     pos.line,
		Column:   pos.column,
	}
}

func (loader *loader) startEndPos(pos position) parseutil.StartEndPos {
	loc := loader.location(pos)
	return parseutil.NewStartEndPos(loc, loc)
}

// Load parses the description.  Errors are reported to the emitter; the
// returned file is nil if the description's target is unusable.
func Load(
	fileName string,
	content []byte,
	emitter *parseutil.Emitter,
) *File {
	loader := &loader{
		fileName: fileName,
		Emitter:  emitter,
	}

	spec := &fileSpec{}
	err := yaml.Unmarshal(content, spec)
	if err != nil {
		loader.Emit(
			loader.location(position{line: 1, column: 1}),
			"invalid yaml: %s",
			err)
		return nil
	}

	features := make([]architecture.Feature, 0, len(spec.Features))
	for _, feature := range spec.Features {
		features = append(features, architecture.Feature(feature))
	}

	loader.platform, err = target.New(spec.Target, features...)
	if err != nil {
		loader.Emit(loader.location(spec.pos), "%s", err)
		return nil
	}

	file := &File{
		FileName: fileName,
		Platform: loader.platform,
		Symbols:  spec.Symbols,
	}

	for _, globalAsm := range spec.GlobalAsm {
		file.Entries = append(file.Entries, loader.globalAsm(globalAsm))
	}

	for _, function := range spec.Functions {
		file.Entries = append(file.Entries, loader.function(function))
	}

	return file
}

func (loader *loader) globalAsm(spec *globalAsmSpec) *ast.GlobalAsm {
	pos := loader.startEndPos(spec.pos)
	options := loader.options(spec.Options, pos)

	asm := &ast.GlobalAsm{
		StartEndPos: pos,
		Template:    loader.template(spec.Template, options, pos),
		Options:     options,
	}

	for _, operand := range spec.Operands {
		asm.Operands = append(asm.Operands, loader.operand(operand, nil))
	}

	return asm
}

func (loader *loader) function(spec *functionSpec) *ast.FunctionDefinition {
	def := &ast.FunctionDefinition{
		StartEndPos: loader.startEndPos(spec.pos),
		Name:        spec.Name,
	}

	for _, param := range spec.Parameters {
		def.Parameters = append(def.Parameters, loader.variable(param))
	}

	for _, local := range spec.Locals {
		def.Locals = append(def.Locals, loader.variable(local))
	}

	for _, block := range spec.Asm {
		def.Blocks = append(def.Blocks, loader.inlineAsm(block, def))
	}

	return def
}

func (loader *loader) variable(spec *variableSpec) *ast.VariableDefinition {
	pos := loader.startEndPos(spec.pos)
	return &ast.VariableDefinition{
		StartEndPos: pos,
		Name:        spec.Name,
		Type:        loader.parseType(spec.Type, pos),
	}
}

func (loader *loader) parseType(
	name string,
	pos parseutil.StartEndPos,
) ast.Type {
	result := ast.ParseType(name, pos)
	if result == nil {
		loader.Emit(pos.Loc(), "unknown type (%s)", name)
		// Keep the tree well-formed.
		return ast.IntType{StartEndPos: pos, Kind: ast.I32}
	}
	return result
}

func (loader *loader) inlineAsm(
	spec *asmSpec,
	def *ast.FunctionDefinition,
) *ast.InlineAsm {
	pos := loader.startEndPos(spec.pos)
	options := loader.options(spec.Options, pos)

	asm := &ast.InlineAsm{
		StartEndPos: pos,
		Template:    loader.template(spec.Template, options, pos),
		Options:     options,
	}

	for _, operand := range spec.Operands {
		asm.Operands = append(asm.Operands, loader.operand(operand, def))
	}

	return asm
}

func (loader *loader) options(
	names []string,
	pos parseutil.StartEndPos,
) ast.Options {
	options := ast.Options(0)
	for _, name := range names {
		option, ok := ast.ParseOption(name)
		if !ok {
			loader.Emit(pos.Loc(), "unknown asm option (%s)", name)
			continue
		}
		options |= option
	}
	return options
}

func (loader *loader) template(
	text string,
	options ast.Options,
	pos parseutil.StartEndPos,
) []ast.TemplatePiece {
	if options.Contains(ast.Raw) {
		if text == "" {
			return nil
		}
		return []ast.TemplatePiece{
			&ast.LiteralText{
				StartEndPos: pos,
				Text:        text,
			},
		}
	}

	return parseTemplate(text, pos, loader.Emitter)
}

// def is nil for global asm operands.
func (loader *loader) operand(
	spec *operandSpec,
	def *ast.FunctionDefinition,
) ast.Operand {
	pos := loader.startEndPos(spec.pos)

	switch spec.Kind {
	case "in":
		return &ast.InOperand{
			StartEndPos: pos,
			Register:    loader.registerSpec(spec, pos),
			Value:       loader.value(spec, def, pos),
		}
	case "out":
		return &ast.OutOperand{
			StartEndPos: pos,
			Register:    loader.registerSpec(spec, pos),
			Late:        spec.Late,
			Dest:        loader.dest(spec, def, pos),
		}
	case "inout":
		return &ast.InOutOperand{
			StartEndPos: pos,
			Register:    loader.registerSpec(spec, pos),
			Late:        spec.Late,
			In:          loader.value(spec, def, pos),
			Dest:        loader.dest(spec, def, pos),
		}
	case "const":
		return &ast.ConstOperand{
			StartEndPos: pos,
			Text:        spec.Text,
		}
	case "sym_fn":
		return &ast.SymFnOperand{
			StartEndPos: pos,
			Symbol: &ast.SymbolReference{
				StartEndPos: pos,
				Kind:        ast.FunctionSymbol,
				Name:        spec.Symbol,
			},
		}
	case "sym_static":
		return &ast.SymStaticOperand{
			StartEndPos: pos,
			Symbol: &ast.SymbolReference{
				StartEndPos: pos,
				Kind:        ast.StaticSymbol,
				Name:        spec.Symbol,
			},
		}
	default:
		loader.Emit(pos.Loc(), "unknown operand kind (%s)", spec.Kind)
		// Keep operand indices stable.
		return &ast.ConstOperand{
			StartEndPos: pos,
			Text:        "0",
		}
	}
}

func (loader *loader) registerSpec(
	spec *operandSpec,
	pos parseutil.StartEndPos,
) ast.RegisterSpec {
	result := ast.RegisterSpec{}
	arch := loader.platform.ArchitectureName()

	if spec.Register != "" {
		register, ok := loader.platform.Registers().Lookup(spec.Register)
		if !ok {
			loader.Emit(
				pos.Loc(),
				"unknown register (%s) on %s",
				spec.Register,
				arch)
		}
		result.Register = register
	}

	if spec.Class != "" {
		class, ok := architecture.LookupRegisterClass(arch.Family(), spec.Class)
		if !ok {
			loader.Emit(
				pos.Loc(),
				"unknown register class (%s) on %s",
				spec.Class,
				arch)
		}
		result.Class = class
	}

	return result
}

func (loader *loader) value(
	spec *operandSpec,
	def *ast.FunctionDefinition,
	pos parseutil.StartEndPos,
) ast.Value {
	text := spec.Value
	negative := strings.HasPrefix(text, "-")

	value, err := strconv.ParseUint(strings.TrimPrefix(text, "-"), 0, 64)
	if err == nil {
		typeName := spec.Type
		if typeName == "" {
			typeName = defaultImmediateType
		}

		return &ast.IntImmediate{
			StartEndPos:   pos,
			Value:         value,
			IsNegative:    negative && value != 0,
			ImmediateType: loader.parseType(typeName, pos),
		}
	}

	return loader.reference(text, def, pos)
}

func (loader *loader) dest(
	spec *operandSpec,
	def *ast.FunctionDefinition,
	pos parseutil.StartEndPos,
) *ast.VariableReference {
	if spec.Dest == "" || spec.Dest == "_" {
		return nil
	}
	return loader.reference(spec.Dest, def, pos)
}

// Unbound references are reported by validation.
func (loader *loader) reference(
	name string,
	def *ast.FunctionDefinition,
	pos parseutil.StartEndPos,
) *ast.VariableReference {
	ref := &ast.VariableReference{
		StartEndPos: pos,
		Name:        name,
	}

	if def != nil {
		ref.Definition = def.Lookup(name)
	}

	return ref
}
