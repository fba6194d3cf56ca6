package lowering

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/pattyshack/asmbridge/ast"
	"github.com/pattyshack/asmbridge/extasm"
)

// gcc may otherwise place top level asm in whichever section is active.
const (
	sectionPrefix = ".pushsection .text\n"
	sectionSuffix = "\n.popsection"
)

// gcc does not accept "//" comments in top level asm.  The comment starts at
// the last "//" on the line.
func stripLineComment(line string) string {
	line = strings.TrimSuffix(line, "\r")
	idx := strings.LastIndex(line, "//")
	if idx < 0 {
		return line
	}
	return line[:idx]
}

// stripComments strips the comment from every line of the assembled text.
// The text's line structure is preserved.
func stripComments(text string) string {
	return strings.Join(
		lo.Map(
			strings.Split(text, "\n"),
			func(line string, _ int) string {
				return stripLineComment(line)
			}),
		"\n")
}

// LowerGlobalAssembly appends the block's text as top level assembly.  Unlike
// inline assembly, const text is spliced in as is, and '%' is not escaped.
// Comments are stripped after splicing, so a comment that spans a
// placeholder runs to the end of the assembled line.
func (lowerer *Lowerer) LowerGlobalAssembly(
	module extasm.Module,
	asm *ast.GlobalAsm,
) error {
	builder := strings.Builder{}
	for _, piece := range asm.Template {
		switch p := piece.(type) {
		case *ast.LiteralText:
			builder.WriteString(p.Text)

		case *ast.Placeholder:
			switch op := asm.Operands[p.OperandIndex].(type) {
			case *ast.ConstOperand:
				builder.WriteString(op.Text)
			case *ast.SymFnOperand:
				builder.WriteString(lowerer.namer.SymbolName(op.Symbol))
			case *ast.SymStaticOperand:
				builder.WriteString(lowerer.namer.SymbolName(op.Symbol))
			default:
				return lowerer.fail(
					op.Loc(),
					fmt.Errorf(
						"operand %d cannot be used in global assembly",
						p.OperandIndex))
			}

		default:
			panic(fmt.Sprintf("unhandled template piece: %v", piece))
		}
	}

	text := stripComments(builder.String())

	dialect := lowerer.platform.AlternateDialect()
	if dialect != nil && asm.Options.Contains(ast.AttSyntax) {
		text = dialect.GlobalPrefix + text + dialect.GlobalSuffix
	}

	module.AddTopLevelAsm(sectionPrefix + text + sectionSuffix)
	return nil
}
