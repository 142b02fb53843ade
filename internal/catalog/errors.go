package catalog

import (
	"errors"
	"fmt"
)

var (
	ErrOpenFile      = errors.New("could not open file")
	ErrFieldCount    = errors.New("unexpected number of fields")
	ErrInvalidNumber = errors.New("invalid number")
)

// LineError ties a problem to the input line it came from.
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v: %q", e.Line, e.Err, e.Text)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// LoadResult summarises a pass over one input file.
type LoadResult struct {
	Source   string
	Lines    int
	Added    int
	Problems []error
}

// Problem records err against the given line.
func (r *LoadResult) Problem(line int, text string, err error) {
	r.Problems = append(r.Problems, &LineError{Line: line, Text: text, Err: err})
}
