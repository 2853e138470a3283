package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyFile         = errors.New("file has no header row")
	ErrMissingColumn     = errors.New("required column missing")
	ErrMalformedRow      = errors.New("malformed row")
	ErrUnsupportedFormat = errors.New("unsupported image format")
)

// DataFormatError reports an input file that could not be turned into a
// SampleTable. Line is 1-based and zero when the failure is not tied to a row.
type DataFormatError struct {
	Path   string
	Line   int
	Column string
	Err    error
}

func (e *DataFormatError) Error() string {
	var b strings.Builder
	b.WriteString("data format: ")
	b.WriteString(e.Path)
	if e.Line > 0 {
		fmt.Fprintf(&b, ":%d", e.Line)
	}
	if e.Column != "" {
		fmt.Fprintf(&b, " column %q", e.Column)
	}
	b.WriteString(": ")
	b.WriteString(e.Err.Error())
	return b.String()
}

func (e *DataFormatError) Unwrap() error { return e.Err }

// RenderError reports a figure that could not be produced on the requested
// backend (an image format, an output file or the display).
type RenderError struct {
	Backend string
	Err     error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s: %v", e.Backend, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }
