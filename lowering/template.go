package lowering

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pattyshack/asmbridge/ast"
	"github.com/pattyshack/asmbridge/extasm"
	"github.com/pattyshack/asmbridge/platform"
)

// '%' + 1 char modifier + 1 char index
const placeholderLengthEstimate = 3

// estimateTemplateLength returns an upper bound estimate of the rewritten
// template's length.  The estimate is only used for preallocation.
func estimateTemplateLength(
	template []ast.TemplatePiece,
	constantsLength int,
	dialect *platform.Dialect,
) int {
	length := 0
	for _, piece := range template {
		switch p := piece.(type) {
		case *ast.LiteralText:
			length += len(p.Text)
		case *ast.Placeholder:
			length += placeholderLengthEstimate
		}
	}

	// 5% slack for doubled '%'.
	result := int(float64(length)*1.05) + constantsLength
	if dialect != nil {
		result += len(dialect.InlinePrefix) + len(dialect.InlineSuffix)
	}
	return result
}

// rewriteTemplate replaces the source operand indices in the template with
// gcc operand indices.  Literal '%' are escaped as "%%".
func rewriteTemplate(
	asm *ast.InlineAsm,
	planned *plannedAsm,
	result *extasm.Asm,
	constantsLength int,
) string {
	dialect := planned.dialect

	builder := strings.Builder{}
	builder.Grow(estimateTemplateLength(asm.Template, constantsLength, dialect))

	if dialect != nil {
		builder.WriteString(dialect.InlinePrefix)
	}

	writeOperand := func(modifier ast.Modifier, index int) {
		builder.WriteString("%")
		if modifier != ast.NoModifier {
			builder.WriteRune(rune(modifier))
		}
		builder.WriteString(strconv.Itoa(index))
	}

	for pieceIdx, piece := range asm.Template {
		switch p := piece.(type) {
		case *ast.LiteralText:
			builder.WriteString(strings.ReplaceAll(p.Text, "%", "%%"))

		case *ast.Placeholder:
			modifier := planned.modifiers[pieceIdx]

			switch op := asm.Operands[p.OperandIndex].(type) {
			case *ast.OutOperand, *ast.InOutOperand:
				// An inout's tied input shares the output's register.
				position := result.OutputPosition(p.OperandIndex)
				if position < 0 {
					panic(fmt.Sprintf(
						"should never happen: no output for operand %d (%s)",
						p.OperandIndex,
						p.Loc()))
				}
				writeOperand(modifier, position)

			case *ast.InOperand:
				position := result.InputPosition(p.OperandIndex)
				if position < 0 {
					panic(fmt.Sprintf(
						"should never happen: no input for operand %d (%s)",
						p.OperandIndex,
						p.Loc()))
				}
				writeOperand(modifier, result.InputIndex(position))

			case *ast.SymFnOperand, *ast.SymStaticOperand:
				builder.WriteString(planned.operands[p.OperandIndex].symbolName)

			case *ast.ConstOperand:
				if dialect != nil {
					builder.WriteString(dialect.ImmediatePrefix)
				}
				builder.WriteString(op.Text)

			default:
				panic(fmt.Sprintf("unhandled operand: %v", op))
			}

		default:
			panic(fmt.Sprintf("unhandled template piece: %v", piece))
		}
	}

	if dialect != nil {
		builder.WriteString(dialect.InlineSuffix)
	}

	return builder.String()
}
