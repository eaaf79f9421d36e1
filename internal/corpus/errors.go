package corpus

import (
	"fmt"
	"strings"
)

// ReadError reports a directory or file that could not be read.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// ParseError reports a file that is not well-formed JSON.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// DuplicateNameError reports two files that derive the same document name.
type DuplicateNameError struct {
	Name  string
	Paths []string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("duplicate schema name %q: %s", e.Name, strings.Join(e.Paths, ", "))
}
