package page

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingTag is reported for a node without a "tag" member.
	ErrMissingTag = errors.New("node has no tag")

	// ErrBadContent is reported for a content item that is neither a string
	// nor a node object.
	ErrBadContent = errors.New("content item must be a string or an object")

	// ErrBadAttr is reported for an attribute that is not a scalar.
	ErrBadAttr = errors.New("attribute value must be a string, number, boolean or null")

	// ErrTooDeep is reported when nodes nest deeper than MaxDepth.
	ErrTooDeep = errors.New("document nests too deeply")
)

// ParseError locates a decoding failure within a document.
type ParseError struct {
	// Path is the JSON path of the offending value, e.g. "root.content[2].attrs".
	Path string
	Err  error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("page: %v", e.Err)
	}
	return fmt.Sprintf("page: %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ParseError) Unwrap() error {
	return e.Err
}

func errorAt(path string, err error) error {
	var pe *ParseError
	if errors.As(err, &pe) {
		return err
	}
	return &ParseError{Path: path, Err: err}
}
