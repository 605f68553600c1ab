// Package textutils provides small text normalization helpers.
package textutils

import (
	"regexp"
	"strings"
)

var lineBreak = regexp.MustCompile(`\r\n|\r|\n`)

// CleanText trims s and collapses every internal whitespace run to a single
// space. Unicode white space such as U+00A0 counts as whitespace.
func CleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// SplitLines splits text on \r\n, \r and \n. A trailing line break does not
// produce a final empty line, and empty text yields no lines.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := lineBreak.Split(text, -1)
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
