package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		delim rune
		want  []string
	}{
		{"no delimiter", "hello world", ',', []string{"hello world"}},
		{"empty line", "", ',', []string{""}},
		{"fields", "1,Apple,0.50", ',', []string{"1", "Apple", "0.50"}},
		{"empty fields kept", "a,,b,", ',', []string{"a", "", "b", ""}},
		{"no trimming", " a , b ", ',', []string{" a ", " b "}},
		{"hyphen", "10-3", '-', []string{"10", "3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Split(tt.line, tt.delim))
		})
	}
}
