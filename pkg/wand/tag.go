package wand

import (
	"io"
	"strings"
)

// Tag renders an element.
//
// If rest[0] is an attribute mapping (see AttrsFrom) it is serialized into
// the opening tag and rest[1:] is the content; otherwise rest is the content
// in full. Content fragments are converted with Stringify and concatenated
// without separators or escaping.
//
// With no content fragments the element self-closes:
//
//	Tag("br")                        // <br/>
//	Tag("div", Attrs{A("id", "x")})  // <div id="x"/>
//	Tag("p", "hi")                   // <p>hi</p>
//	Tag("p", "")                     // <p></p>
//
// The tag name is written verbatim.
func Tag(name string, rest ...any) string {
	var b strings.Builder
	writeTag(&b, name, rest)
	return b.String()
}

// UnpackTag is Tag with the argument list passed as a slice.
func UnpackTag(name string, args []any) string {
	return Tag(name, args...)
}

// WriteTag renders an element to w. It writes exactly the bytes Tag would
// return.
func WriteTag(w io.Writer, name string, rest ...any) (int, error) {
	var b strings.Builder
	writeTag(&b, name, rest)
	return io.WriteString(w, b.String())
}

func writeTag(b *strings.Builder, name string, rest []any) {
	content := rest

	b.WriteByte('<')
	b.WriteString(name)

	if len(rest) > 0 {
		if attrs, ok := AttrsFrom(rest[0]); ok {
			writeAttrs(b, attrs)
			content = rest[1:]
		}
	}

	if len(content) == 0 {
		b.WriteString("/>")
		return
	}

	b.WriteByte('>')
	for _, c := range content {
		b.WriteString(str(c))
	}
	b.WriteString("</")
	b.WriteString(name)
	b.WriteByte('>')
}
