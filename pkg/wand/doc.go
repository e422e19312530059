// Package wand builds HTML markup as plain strings.
//
// There is no node tree and no template language. Every function takes
// ordinary Go values and returns serialized markup immediately, so calls
// nest the way the resulting HTML nests:
//
//	page := wand.HTML5(
//	    wand.Head(wand.Title("Hello"), wand.CSS("/style.css")),
//	    wand.Body(wand.Div(wand.Attrs{wand.A("class", "card")}, wand.P("hi"))),
//	)
//
// # Arguments
//
// Tag and the element wrappers (Html, Head, Body, Div, P, ...) take a
// variadic argument list. The first argument is inspected once:
//
//   - if it is an attribute mapping (Attrs, []Attr, Attr, or one of the map
//     shapes accepted by AttrsFrom) it becomes the attribute set and every
//     following argument is content;
//   - otherwise there is no attribute set and every argument is content.
//
// A tag with no content arguments self-closes. This means Tag("br") and
// Tag("div", Attrs{A("class", "x")}) both render as self-closing tags,
// while Tag("p", "") renders as <p></p>.
//
// # Escaping
//
// Attribute values are escaped with EscapeString. Attribute names and
// content fragments are written verbatim: content is expected to be markup
// produced by other calls, so text that comes from users must be passed
// through Esc first.
//
// # Conversion
//
// Values are converted to strings with Stringify. Rendering functions never
// fail: a value with no string form renders as the empty string. Call
// Stringify directly to observe the *CoercionError instead.
//
// All functions are pure and safe for concurrent use.
package wand
