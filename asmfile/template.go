package asmfile

import (
	"strconv"
	"strings"

	"github.com/pattyshack/gt/parseutil"

	"github.com/pattyshack/asmbridge/ast"
)

// parseTemplate splits the template into literal text and placeholders.
// Placeholders are written as "{N}" or "{N:m}" where N is the operand index
// and m is a single character modifier.  The index may be omitted, in which
// case the placeholder refers to the operand after the previous implicitly
// indexed placeholder.  "{{" and "}}" are literal braces.
func parseTemplate(
	text string,
	pos parseutil.StartEndPos,
	emitter *parseutil.Emitter,
) []ast.TemplatePiece {
	pieces := []ast.TemplatePiece{}
	literal := strings.Builder{}
	nextImplicit := 0

	flush := func() {
		if literal.Len() == 0 {
			return
		}
		pieces = append(
			pieces,
			&ast.LiteralText{
				StartEndPos: pos,
				Text:        literal.String(),
			})
		literal.Reset()
	}

	for i := 0; i < len(text); i++ {
		char := text[i]
		switch char {
		case '{':
			if i+1 < len(text) && text[i+1] == '{' {
				literal.WriteByte('{')
				i++
				continue
			}

			end := strings.IndexByte(text[i:], '}')
			if end < 0 {
				emitter.Emit(pos.Loc(), "unterminated placeholder in template")
				return pieces
			}

			placeholder, ok := parsePlaceholder(
				text[i+1:i+end],
				pos,
				&nextImplicit,
				emitter)
			if ok {
				flush()
				pieces = append(pieces, placeholder)
			}
			i += end
		case '}':
			if i+1 < len(text) && text[i+1] == '}' {
				literal.WriteByte('}')
				i++
				continue
			}

			emitter.Emit(pos.Loc(), "unmatched '}' in template")
		default:
			literal.WriteByte(char)
		}
	}

	flush()
	return pieces
}

func parsePlaceholder(
	content string,
	pos parseutil.StartEndPos,
	nextImplicit *int,
	emitter *parseutil.Emitter,
) (
	*ast.Placeholder,
	bool,
) {
	indexStr, modifierStr, hasModifier := strings.Cut(content, ":")

	placeholder := &ast.Placeholder{
		StartEndPos: pos,
	}

	if indexStr == "" {
		placeholder.OperandIndex = *nextImplicit
		*nextImplicit++
	} else {
		index, err := strconv.Atoi(indexStr)
		if err != nil || index < 0 {
			emitter.Emit(pos.Loc(), "invalid placeholder operand index (%s)", indexStr)
			return nil, false
		}
		placeholder.OperandIndex = index
	}

	if hasModifier {
		modifier := []rune(modifierStr)
		if len(modifier) != 1 {
			emitter.Emit(pos.Loc(), "invalid placeholder modifier (%s)", modifierStr)
			return nil, false
		}
		placeholder.Modifier = ast.Modifier(modifier[0])
	}

	return placeholder, true
}
