package page

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ryferguson/cornwand/pkg/wand"
)

// MaxDepth bounds how deeply nodes may nest in a document.
const MaxDepth = 64

// Document is a decoded markup document.
type Document struct {
	// Doctype prefixes the output with wand.Doctype.
	Doctype bool

	Root *Node
}

// Node describes one element.
type Node struct {
	Tag string

	// Attrs is nil when the node has no "attrs" member. A present but empty
	// set still counts as an attribute set.
	Attrs wand.Attrs

	// HasAttrs records whether "attrs" was present.
	HasAttrs bool

	// Text, when non-nil, is escaped and rendered before Content.
	Text *string

	// Content holds raw strings and child nodes in document order.
	Content []Item
}

// Item is a content fragment: raw markup or a child node.
type Item struct {
	Raw  string
	Node *Node
}

type rawDocument struct {
	Doctype bool            `json:"doctype"`
	Root    json.RawMessage `json:"root"`
}

type rawNode struct {
	Tag     string            `json:"tag"`
	Attrs   json.RawMessage   `json:"attrs"`
	Text    *string           `json:"text"`
	Content []json.RawMessage `json:"content"`
}

// Parse decodes a document from r.
func Parse(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var raw rawDocument
	if err := strictUnmarshal(data, &raw); err != nil {
		return nil, errorAt("", err)
	}
	if len(raw.Root) == 0 || string(bytes.TrimSpace(raw.Root)) == "null" {
		return nil, errorAt("root", ErrMissingTag)
	}

	root, err := decodeNode(raw.Root, "root", 1)
	if err != nil {
		return nil, err
	}
	return &Document{Doctype: raw.Doctype, Root: root}, nil
}

// ParseString decodes a document held in a string.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// ParseFile decodes the document stored at path.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

func decodeNode(data json.RawMessage, path string, depth int) (*Node, error) {
	if depth > MaxDepth {
		return nil, errorAt(path, ErrTooDeep)
	}

	var raw rawNode
	if err := strictUnmarshal(data, &raw); err != nil {
		return nil, errorAt(path, err)
	}
	if raw.Tag == "" {
		return nil, errorAt(path, ErrMissingTag)
	}

	node := &Node{Tag: raw.Tag, Text: raw.Text}

	if len(raw.Attrs) > 0 && string(bytes.TrimSpace(raw.Attrs)) != "null" {
		attrs, err := decodeAttrs(raw.Attrs, path+".attrs")
		if err != nil {
			return nil, err
		}
		node.Attrs = attrs
		node.HasAttrs = true
	}

	if raw.Content != nil {
		node.Content = make([]Item, 0, len(raw.Content))
	}
	for i, item := range raw.Content {
		itemPath := fmt.Sprintf("%s.content[%d]", path, i)
		switch firstByte(item) {
		case '"':
			var s string
			if err := json.Unmarshal(item, &s); err != nil {
				return nil, errorAt(itemPath, err)
			}
			node.Content = append(node.Content, Item{Raw: s})
		case '{':
			child, err := decodeNode(item, itemPath, depth+1)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, Item{Node: child})
		default:
			return nil, errorAt(itemPath, ErrBadContent)
		}
	}

	return node, nil
}

func strictUnmarshal(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return fmt.Errorf("unexpected data after top-level value")
	}
	return nil
}

// Args returns the argument list the node passes to wand.Tag.
func (n *Node) Args() []any {
	args := make([]any, 0, len(n.Content)+2)
	if n.HasAttrs {
		attrs := n.Attrs
		if attrs == nil {
			attrs = wand.Attrs{}
		}
		args = append(args, attrs)
	}
	if n.Text != nil {
		args = append(args, wand.EscapeString(*n.Text))
	}
	for _, item := range n.Content {
		if item.Node != nil {
			args = append(args, item.Node.Render())
			continue
		}
		args = append(args, item.Raw)
	}
	return args
}

// Render renders the node and its children.
func (n *Node) Render() string {
	return wand.Tag(n.Tag, n.Args()...)
}

// Render renders the whole document.
func (d *Document) Render() string {
	var b strings.Builder
	if d.Doctype {
		b.WriteString(wand.Doctype)
	}
	if d.Root != nil {
		b.WriteString(d.Root.Render())
	}
	return b.String()
}

// WriteTo writes the rendered document to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, d.Render())
	return int64(n), err
}
