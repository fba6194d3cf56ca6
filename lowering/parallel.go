package lowering

import (
	"sync"

	"github.com/pattyshack/gt/parseutil"

	"github.com/pattyshack/asmbridge/ast"
	"github.com/pattyshack/asmbridge/extasm"
	"github.com/pattyshack/asmbridge/platform"
)

// ModuleBuilder hands out independent instruction streams, one per function
// definition.
type ModuleBuilder interface {
	extasm.Module

	// NewFunction is always called from a single goroutine, in source order.
	NewFunction(*ast.FunctionDefinition) extasm.Builder
}

func parallelProcess[T any](list []T, process func(int, T)) {
	wg := sync.WaitGroup{}
	wg.Add(len(list))
	for idx, item := range list {
		go func(idx int, item T) {
			process(idx, item)
			wg.Done()
		}(idx, item)
	}
	wg.Wait()
}

// Collects a global asm entry's text so that top level asm is appended to
// the module in source order.
type topLevelAsm []string

func (list *topLevelAsm) AddTopLevelAsm(text string) {
	*list = append(*list, text)
}

// LowerModule validates and lowers every entry.  Entries are independent and
// are lowered concurrently; the diagnostics are merged into emitter in source
// order.  Entries with syntax errors are not lowered.
func LowerModule(
	target platform.Platform,
	namer SymbolNamer,
	module ModuleBuilder,
	entries []ast.SourceEntry,
	emitter *parseutil.Emitter,
) {
	entryEmitters := make([]*parseutil.Emitter, len(entries))
	builders := make([]extasm.Builder, len(entries))
	topLevel := make([]topLevelAsm, len(entries))

	for idx, entry := range entries {
		entryEmitters[idx] = &parseutil.Emitter{}

		def, ok := entry.(*ast.FunctionDefinition)
		if ok {
			builders[idx] = module.NewFunction(def)
		}
	}

	parallelProcess(
		entries,
		func(idx int, entry ast.SourceEntry) {
			entryEmitter := entryEmitters[idx]
			ast.Validate(entry, entryEmitter)
			if entryEmitter.HasErrors() {
				return
			}

			lowerer := NewLowerer(target, namer, entryEmitter)
			switch node := entry.(type) {
			case *ast.FunctionDefinition:
				lowerer.LowerFunction(builders[idx], node)
			case *ast.GlobalAsm:
				_ = lowerer.LowerGlobalAssembly(&topLevel[idx], node)
			default:
				panic("unhandled source entry")
			}
		})

	for idx, entryEmitter := range entryEmitters {
		for _, text := range topLevel[idx] {
			module.AddTopLevelAsm(text)
		}
		emitter.EmitErrors(entryEmitter.Errors()...)
	}
}

// LowerFunction lowers the function's blocks in order.  A block that fails to
// lower is skipped; the remaining blocks are still lowered.  The errors are
// reported to the emitter.
func (lowerer *Lowerer) LowerFunction(
	builder extasm.Builder,
	def *ast.FunctionDefinition,
) []*extasm.Asm {
	result := []*extasm.Asm{}
	for _, block := range def.Blocks {
		asm, err := lowerer.LowerInlineAssembly(builder, block)
		if err != nil {
			continue
		}
		result = append(result, asm)
	}
	return result
}
