package types

import (
	"errors"
	"fmt"
)

var (
	ErrMissingColumn      = errors.New("required column not found in header")
	ErrTermColumnNotEmpty = errors.New("term column is expected to be empty but holds values")
	ErrInvalidSourceURI   = errors.New("invalid object storage URI, expected s3://bucket/key")
	ErrNoReportTypes      = errors.New("no report types selected")
)

// ParseError reports a cell that could not be coerced to its column type.
// Row is the 1-based data row (the header is not counted).
type ParseError struct {
	Table  string
	Column string
	Row    int
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: cannot parse %s %q at row %d: %v", e.Table, e.Column, e.Value, e.Row, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// IOError wraps failures reading an input source or writing/uploading a report.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("i/o error on %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
