package gnuc

import (
	"fmt"
	"strings"

	"github.com/pattyshack/asmbridge/architecture"
)

// x86 templates are written in intel syntax, and at&t blocks switch back to
// intel syntax when they end.
const intelSyntaxFlag = "-masm=intel"

var targetMacros = map[architecture.Name]string{
	architecture.X86:    "__i386__",
	architecture.X86_64: "__x86_64__",
}

// CompilerFlags returns the flags the rendered unit must be compiled with.
func (module *Module) CompilerFlags() []string {
	if module.Architecture.IsX86() {
		return []string{intelSyntaxFlag}
	}
	return nil
}

// gcc predefines no macro for the asm dialect, so only the target is
// checked.  The required flags are recorded in a comment.
func (module *Module) writeTargetGuard(builder *strings.Builder) {
	macro, ok := targetMacros[module.Architecture]
	if !ok {
		return
	}

	fmt.Fprintf(
		builder,
		"\n/* compile with: %s */\n",
		strings.Join(module.CompilerFlags(), " "))
	fmt.Fprintf(
		builder,
		"#if !defined(%s)\n#error \"asmbridge: %s target required\"\n#endif\n",
		macro,
		module.Architecture)
}
