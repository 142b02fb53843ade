package catalog

import (
	"bufio"
	"io"
	"strings"
)

const maxLineSize = 1 << 20

// LineReader yields lines with their 1-based numbers. Trailing carriage
// returns are dropped.
type LineReader struct {
	scanner *bufio.Scanner
	line    int
}

func NewLineReader(r io.Reader) *LineReader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &LineReader{scanner: scanner}
}

// Next returns the next line, or ok == false at end of input.
func (lr *LineReader) Next() (text string, line int, ok bool) {
	if !lr.scanner.Scan() {
		return "", lr.line, false
	}
	lr.line++
	return strings.TrimSuffix(lr.scanner.Text(), "\r"), lr.line, true
}

// Err returns the first non-EOF read error.
func (lr *LineReader) Err() error {
	return lr.scanner.Err()
}
