// Package textmatch holds the case-insensitive substring semantics shared by
// the intent classifier and the skill rule matcher.
package textmatch

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Lower lower-cases s using full Unicode case mapping.
// A new Caser is created per call because cases.Caser is stateful.
func Lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

// FirstKeyword returns the first keyword that occurs in lowerText, which must
// already be lower-cased with Lower. Keywords are lower-cased before the test.
// An empty keyword matches any text.
func FirstKeyword(lowerText string, keywords []string) (string, bool) {
	for _, kw := range keywords {
		if strings.Contains(lowerText, Lower(kw)) {
			return kw, true
		}
	}
	return "", false
}

// FirstLine returns the text before the first newline with a trailing
// carriage return removed.
func FirstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSuffix(s, "\r")
}

// Truncate shortens s to at most n runes. It never splits a UTF-8 sequence.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
