package errors

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"os"
)

// Category represents the type of error.
type Category string

const (
	CategoryValue  Category = "value"
	CategoryLink   Category = "link"
	CategoryConfig Category = "config"
	CategoryCLI    Category = "cli"
)

// Sentinels matched by errors.Is against a DrafterError of the same kind.
var (
	ErrValue      = stderrors.New("value error")
	ErrBrokenLink = stderrors.New("broken link")
	ErrInvalidURL = stderrors.New("invalid url")
)

// Location represents a source code location.
type Location struct {
	File   string
	Line   int
	Column int
}

// String returns the location as a formatted string.
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	if l.Column > 0 {
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// DrafterError is a structured error with a code, an optional source
// location and documentation.
type DrafterError struct {
	// Code is a unique error identifier (e.g., "E110").
	Code string

	// Category is the error type (value, link, config).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Location is the source location where the error occurred, if any.
	Location *Location

	// Context contains surrounding source lines.
	Context []string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error

	kind error
}

// Error implements the error interface.
func (e *DrafterError) Error() string {
	msg := e.Message
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, msg)
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *DrafterError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is the sentinel for this error's kind.
func (e *DrafterError) Is(target error) bool {
	return e.kind != nil && target == e.kind
}

// WithLocation adds source location to the error.
func (e *DrafterError) WithLocation(file string, line, column int) *DrafterError {
	e.Location = &Location{File: file, Line: line, Column: column}
	e.Context = readContextLines(file, line, 5)
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *DrafterError) WithSuggestion(s string) *DrafterError {
	e.Suggestion = s
	return e
}

// WithDetail replaces the registered explanation.
func (e *DrafterError) WithDetail(d string) *DrafterError {
	e.Detail = d
	return e
}

// WithDetailf replaces the registered explanation with a formatted one.
func (e *DrafterError) WithDetailf(format string, args ...any) *DrafterError {
	return e.WithDetail(fmt.Sprintf(format, args...))
}

// Wrap wraps another error.
func (e *DrafterError) Wrap(err error) *DrafterError {
	e.Wrapped = err
	return e
}

// readContextLines reads lines around the specified line number from a file.
func readContextLines(filename string, targetLine, contextSize int) []string {
	file, err := os.Open(filename)
	if err != nil {
		return nil
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	lineNum := 0
	startLine := targetLine - contextSize/2
	endLine := targetLine + contextSize/2

	for scanner.Scan() {
		lineNum++
		if lineNum >= startLine && lineNum <= endLine {
			lines = append(lines, scanner.Text())
		}
		if lineNum > endLine {
			break
		}
	}

	return lines
}

// New creates a DrafterError from a registered error code.
func New(code string) *DrafterError {
	template, ok := registry[code]
	if !ok {
		return &DrafterError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &DrafterError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
		DocURL:   template.DocURL,
		kind:     template.Kind,
	}
}

// FromError wraps a standard error in a DrafterError.
func FromError(err error, code string) *DrafterError {
	if err == nil {
		return nil
	}
	var de *DrafterError
	if stderrors.As(err, &de) {
		return de
	}
	return New(code).Wrap(err)
}
