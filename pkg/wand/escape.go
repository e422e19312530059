package wand

import "strings"

// specialChars is the set of characters EscapeString rewrites.
const specialChars = `&"'<>`

// EscapeString escapes s for inclusion in HTML text or a double-quoted
// attribute value. Only &, ", ', < and > are replaced; every other byte,
// including existing entities and invalid UTF-8, is copied through
// unchanged.
func EscapeString(s string) string {
	if !strings.ContainsAny(s, specialChars) {
		return s
	}

	var buf strings.Builder
	buf.Grow(len(s) + len(s)/4)

	last := 0
	for i := 0; i < len(s); i++ {
		var esc string
		switch s[i] {
		case '&':
			esc = "&amp;"
		case '"':
			esc = "&quot;"
		case '\'':
			esc = "&#039;"
		case '<':
			esc = "&lt;"
		case '>':
			esc = "&gt;"
		default:
			continue
		}
		buf.WriteString(s[last:i])
		buf.WriteString(esc)
		last = i + 1
	}
	buf.WriteString(s[last:])

	return buf.String()
}

// Esc converts v to a string and escapes it.
// nil and values with no string form escape to "".
func Esc(v any) string {
	return EscapeString(str(v))
}
