package util

import "strings"

// Split returns the fields of line between occurrences of delim. Empty fields
// are kept and nothing is trimmed; a line without delim is a single field.
func Split(line string, delim rune) []string {
	return strings.Split(line, string(delim))
}
