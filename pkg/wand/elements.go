package wand

// Doctype is the HTML5 document type declaration written by HTML5.
const Doctype = "<!doctype html>"

// Html renders an <html> element. Arguments are interpreted as by Tag.
func Html(rest ...any) string { return Tag("html", rest...) }

// Head renders a <head> element.
func Head(rest ...any) string { return Tag("head", rest...) }

// Title renders a <title> element.
func Title(rest ...any) string { return Tag("title", rest...) }

// Base renders a <base> element.
func Base(rest ...any) string { return Tag("base", rest...) }

// Link renders a <link> element.
func Link(rest ...any) string { return Tag("link", rest...) }

// Meta renders a <meta> element.
func Meta(rest ...any) string { return Tag("meta", rest...) }

// Body renders a <body> element.
func Body(rest ...any) string { return Tag("body", rest...) }

// P renders a <p> element.
func P(rest ...any) string { return Tag("p", rest...) }

// Div renders a <div> element.
func Div(rest ...any) string { return Tag("div", rest...) }

// HTML5 renders an <html> element preceded by the HTML5 doctype.
func HTML5(rest ...any) string {
	return Doctype + Html(rest...)
}

// CSS renders a stylesheet <link> for url.
func CSS(url string) string {
	return Link(Attrs{
		A("rel", "stylesheet"),
		A("href", url),
	})
}
