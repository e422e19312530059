package errors

import (
	stderrors "errors"
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryConfig   Category = "config"
	CategoryDocument Category = "document"
	CategoryServer   Category = "server"
	CategoryPublish  Category = "publish"
	CategoryCLI      Category = "cli"
)

// Location points at a value inside a document file.
type Location struct {
	File string

	// Path is the JSON path within the file, e.g. "root.content[0].attrs".
	Path string
}

// String returns the location as a formatted string.
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	if l.Path != "" {
		return fmt.Sprintf("%s: %s", l.File, l.Path)
	}
	return l.File
}

// WandError is a structured error with a code, location and suggestion.
type WandError struct {
	// Code is a unique error identifier (e.g., "W201").
	Code string

	// Category is the error type.
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Location is where in a document the error occurred.
	Location *Location

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Example shows the correct approach.
	Example string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *WandError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *WandError) Unwrap() error {
	return e.Wrapped
}

// WithLocation records the document location of the error.
func (e *WandError) WithLocation(file, path string) *WandError {
	e.Location = &Location{File: file, Path: path}
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *WandError) WithSuggestion(s string) *WandError {
	e.Suggestion = s
	return e
}

// WithExample adds an example to the error.
func (e *WandError) WithExample(ex string) *WandError {
	e.Example = ex
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *WandError) WithDetail(d string) *WandError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *WandError) Wrap(err error) *WandError {
	e.Wrapped = err
	return e
}

// New creates a WandError from a registered error code.
func New(code string) *WandError {
	template, ok := registry[code]
	if !ok {
		return &WandError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &WandError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
	}
}

// FromError wraps a standard error in a WandError. An error chain that
// already holds a WandError is returned as that WandError.
func FromError(err error, code string) *WandError {
	if err == nil {
		return nil
	}
	var we *WandError
	if stderrors.As(err, &we) {
		return we
	}
	return New(code).Wrap(err)
}
