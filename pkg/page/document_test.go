package page

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "bare tag self-closes",
			doc:  `{"root": {"tag": "br"}}`,
			want: "<br/>",
		},
		{
			name: "attrs only self-closes",
			doc:  `{"root": {"tag": "div", "attrs": {"class": "a"}}}`,
			want: `<div class="a"/>`,
		},
		{
			name: "empty attrs object self-closes",
			doc:  `{"root": {"tag": "hr", "attrs": {}}}`,
			want: "<hr/>",
		},
		{
			name: "empty content list self-closes",
			doc:  `{"root": {"tag": "span", "content": []}}`,
			want: "<span/>",
		},
		{
			name: "empty string content opens",
			doc:  `{"root": {"tag": "p", "content": [""]}}`,
			want: "<p></p>",
		},
		{
			name: "attribute order preserved",
			doc:  `{"root": {"tag": "a", "attrs": {"z": "1", "href": "/x", "a": "2"}, "content": ["go"]}}`,
			want: `<a z="1" href="/x" a="2">go</a>`,
		},
		{
			name: "array attrs mix flags and names",
			doc:  `{"root": {"tag": "input", "attrs": [{"type": "checkbox"}, "checked", "", {"name": "x"}]}}`,
			want: `<input type="checkbox" checked name="x"/>`,
		},
		{
			name: "scalar attribute values",
			doc:  `{"root": {"tag": "td", "attrs": {"colspan": 2, "hidden": true, "off": false, "n": null, "w": 1.50}}}`,
			want: `<td colspan="2" hidden="1" off="" n="" w="1.50"/>`,
		},
		{
			name: "text escaped, content raw",
			doc:  `{"root": {"tag": "p", "text": "a < b", "content": ["<br/>"]}}`,
			want: "<p>a &lt; b<br/></p>",
		},
		{
			name: "attribute values escaped",
			doc:  `{"root": {"tag": "div", "attrs": {"title": "\"q\" & 'a'"}}}`,
			want: `<div title="&quot;q&quot; &amp; &#039;a&#039;"/>`,
		},
		{
			name: "nested",
			doc: `{"doctype": true, "root": {"tag": "html", "content": [
				{"tag": "head", "content": [{"tag": "title", "text": "T"}]},
				{"tag": "body", "content": [{"tag": "p", "content": ["x", "y"]}]}
			]}}`,
			want: "<!doctype html><html><head><title>T</title></head><body><p>xy</p></body></html>",
		},
		{
			name: "duplicate names keep first position",
			doc:  `{"root": {"tag": "i", "attrs": {"a": "1", "b": "2", "a": "3"}}}`,
			want: `<i a="3" b="2"/>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ParseString(tt.doc)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if got := doc.Render(); got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		wantPath string
		wantErr  error
	}{
		{"missing root", `{}`, "root", ErrMissingTag},
		{"missing tag", `{"root": {"content": ["x"]}}`, "root", ErrMissingTag},
		{"nested missing tag", `{"root": {"tag": "div", "content": [{"attrs": {}}]}}`, "root.content[0]", ErrMissingTag},
		{"numeric content", `{"root": {"tag": "div", "content": [1]}}`, "root.content[0]", ErrBadContent},
		{"object attribute value", `{"root": {"tag": "div", "attrs": {"a": {"b": 1}}}}`, "root.attrs.a", ErrBadAttr},
		{"array attribute item", `{"root": {"tag": "div", "attrs": [["x"]]}}`, "root.attrs[0]", ErrBadAttr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(tt.doc)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Parse() error = %v, want %v", err, tt.wantErr)
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("Parse() error is not *ParseError: %T", err)
			}
			if pe.Path != tt.wantPath {
				t.Errorf("ParseError.Path = %q, want %q", pe.Path, tt.wantPath)
			}
		})
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	docs := []string{
		``,
		`{`,
		`{"root": {"tag": "p"}} trailing`,
		`{"root": {"tag": "p", "unknown": 1}}`,
		`{"root": {"tag": "p", "attrs": "class"}}`,
	}
	for _, doc := range docs {
		if _, err := ParseString(doc); err == nil {
			t.Errorf("Parse(%q) expected error", doc)
		}
	}
}

func TestParseDepthLimit(t *testing.T) {
	var b strings.Builder
	b.WriteString(`{"root": `)
	for i := 0; i < MaxDepth+1; i++ {
		b.WriteString(`{"tag": "div", "content": [`)
	}
	b.WriteString(`"x"`)
	for i := 0; i < MaxDepth+1; i++ {
		b.WriteString(`]}`)
	}
	b.WriteString(`}`)

	_, err := ParseString(b.String())
	if !errors.Is(err, ErrTooDeep) {
		t.Fatalf("Parse() error = %v, want ErrTooDeep", err)
	}
}

func TestParseFileAndWriteTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.json")
	if err := os.WriteFile(path, []byte(`{"doctype": true, "root": {"tag": "html"}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}

	var buf bytes.Buffer
	n, err := doc.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo() error = %v", err)
	}
	if want := "<!doctype html><html/>"; buf.String() != want {
		t.Errorf("WriteTo() wrote %q, want %q", buf.String(), want)
	}
	if n != int64(buf.Len()) {
		t.Errorf("WriteTo() n = %d, want %d", n, buf.Len())
	}

	if _, err := ParseFile(filepath.Join(t.TempDir(), "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("ParseFile(missing) error = %v, want not exist", err)
	}
}
