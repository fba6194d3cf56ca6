// Package gnuc renders lowered assembly as a gnu c translation unit.
package gnuc

import (
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/pattyshack/asmbridge/architecture"
	"github.com/pattyshack/asmbridge/ast"
	"github.com/pattyshack/asmbridge/extasm"
	"github.com/pattyshack/asmbridge/lowering"
)

// Module is a translation unit.  Functions are independent of each other,
// and may be populated concurrently.  The module itself is not thread-safe.
type Module struct {
	Architecture architecture.Name

	Functions   []*Function
	TopLevelAsm []string
}

var _ lowering.ModuleBuilder = &Module{}

func NewModule(arch architecture.Name) *Module {
	return &Module{Architecture: arch}
}

func (module *Module) NewFunction(
	def *ast.FunctionDefinition,
) extasm.Builder {
	function := newFunction(def)
	module.Functions = append(module.Functions, function)
	return function
}

func (module *Module) AddTopLevelAsm(text string) {
	module.TopLevelAsm = append(module.TopLevelAsm, text)
}

// Asms returns every function's lowered asm statements, in order.
func (module *Module) Asms() []*extasm.Asm {
	result := []*extasm.Asm{}
	for _, function := range module.Functions {
		result = append(result, function.Asms...)
	}
	return result
}

func (module *Module) externs() map[string]ast.SymbolKind {
	externs := map[string]ast.SymbolKind{}
	for _, function := range module.Functions {
		for name, kind := range function.externs {
			externs[name] = kind
		}
	}
	return externs
}

func (module *Module) String() string {
	builder := &strings.Builder{}
	builder.WriteString(prelude)
	module.writeTargetGuard(builder)

	externs := module.externs()
	if len(externs) > 0 {
		names := lo.Keys(externs)
		slices.Sort(names)

		builder.WriteString("\n")
		for _, name := range names {
			switch externs[name] {
			case ast.FunctionSymbol:
				fmt.Fprintf(builder, "extern void %s(void);\n", name)
			default:
				fmt.Fprintf(builder, "extern char %s[];\n", name)
			}
		}
	}

	for _, text := range module.TopLevelAsm {
		fmt.Fprintf(builder, "\n__asm__(%s);\n", quote(text))
	}

	for _, function := range module.Functions {
		builder.WriteString("\n")
		function.render(builder)
	}

	return builder.String()
}
