package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSourceNotFound indicates the input file does not exist.
var ErrSourceNotFound = errors.New("source file not found")

// ErrSheetNotFound indicates the requested sheet is not in the input file.
var ErrSheetNotFound = errors.New("sheet not found")

// SourceNotFoundError reports a missing input path.
type SourceNotFoundError struct {
	Path string
}

func (e *SourceNotFoundError) Error() string {
	return fmt.Sprintf("file %q not found", e.Path)
}

func (e *SourceNotFoundError) Unwrap() error {
	return ErrSourceNotFound
}

// SheetNotFoundError reports a missing sheet together with the sheets that do exist.
type SheetNotFoundError struct {
	Sheet     string
	Available []string
}

func (e *SheetNotFoundError) Error() string {
	return fmt.Sprintf("sheet %q not found (available sheets: %s)", e.Sheet, strings.Join(e.Available, ", "))
}

func (e *SheetNotFoundError) Unwrap() error {
	return ErrSheetNotFound
}

// LoadError wraps any other failure while reading the input file.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("error loading %q: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// WriteError wraps a failure to create or write the destination file.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("error writing %q: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
