package ast

import (
	"strconv"
	"strings"

	"github.com/pattyshack/gt/parseutil"
)

// Modifier is a single-character placeholder modifier (e.g., the 'e' in
// "{0:e}") selecting how the operand is printed.
type Modifier rune

const NoModifier = Modifier(0)

func (modifier Modifier) String() string {
	if modifier == NoModifier {
		return ""
	}
	return string(modifier)
}

type TemplatePiece interface {
	Node
	isTemplatePiece()
}

type templatePieceMarker struct{}

func (templatePieceMarker) isTemplatePiece() {}

// Literal assembly text, copied into the output verbatim (modulo the target
// dialect's escaping).
type LiteralText struct {
	templatePieceMarker
	parseutil.StartEndPos

	Text string
}

var _ TemplatePiece = &LiteralText{}

func (text *LiteralText) Walk(visitor Visitor) {
	visitor.Enter(text)
	visitor.Exit(text)
}

// A reference to the operand at OperandIndex.
type Placeholder struct {
	templatePieceMarker
	parseutil.StartEndPos

	OperandIndex int
	Modifier     Modifier
}

var _ TemplatePiece = &Placeholder{}

func (placeholder *Placeholder) Walk(visitor Visitor) {
	visitor.Enter(placeholder)
	visitor.Exit(placeholder)
}

// TemplateString renders the template back into "{N:m}" notation.
func TemplateString(template []TemplatePiece) string {
	builder := strings.Builder{}
	for _, piece := range template {
		switch p := piece.(type) {
		case *LiteralText:
			text := strings.ReplaceAll(p.Text, "{", "{{")
			builder.WriteString(strings.ReplaceAll(text, "}", "}}"))
		case *Placeholder:
			builder.WriteString("{")
			builder.WriteString(strconv.Itoa(p.OperandIndex))
			if p.Modifier != NoModifier {
				builder.WriteString(":")
				builder.WriteRune(rune(p.Modifier))
			}
			builder.WriteString("}")
		default:
			panic("unhandled template piece")
		}
	}
	return builder.String()
}

func validateTemplate(
	template []TemplatePiece,
	operands []Operand,
	emitter *parseutil.Emitter,
) {
	for _, piece := range template {
		placeholder, ok := piece.(*Placeholder)
		if !ok {
			continue
		}

		if placeholder.OperandIndex < 0 ||
			placeholder.OperandIndex >= len(operands) {

			emitter.Emit(
				placeholder.Loc(),
				"placeholder references operand %d, but there are %d operands",
				placeholder.OperandIndex,
				len(operands))
			continue
		}

		operand := operands[placeholder.OperandIndex]
		spec, ok := OperandRegister(operand)
		if ok {
			if spec.IsExplicit() {
				emitter.Emit(
					placeholder.Loc(),
					"explicit register operand %d (%s) cannot be used in the template",
					placeholder.OperandIndex,
					spec)
			}
		} else if placeholder.Modifier != NoModifier {
			emitter.Emit(
				placeholder.Loc(),
				"template modifier (%s) not allowed on const / sym operand %d",
				placeholder.Modifier,
				placeholder.OperandIndex)
		}
	}
}
