package gnuc

import (
	"fmt"
	"strings"
)

// quote returns text as a c string literal.  Control characters are written
// as 3 digit octal escapes since hex escapes would absorb the following hex
// digits.
func quote(text string) string {
	builder := strings.Builder{}
	builder.Grow(len(text) + 2)

	builder.WriteByte('"')
	for i := 0; i < len(text); i++ {
		char := text[i]
		switch char {
		case '"':
			builder.WriteString(`\"`)
		case '\\':
			builder.WriteString(`\\`)
		case '\n':
			builder.WriteString(`\n`)
		case '\t':
			builder.WriteString(`\t`)
		case '\r':
			builder.WriteString(`\r`)
		default:
			if char < 0x20 || char == 0x7f {
				fmt.Fprintf(&builder, "\\%03o", char)
			} else {
				builder.WriteByte(char)
			}
		}
	}
	builder.WriteByte('"')

	return builder.String()
}
