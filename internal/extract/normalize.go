package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Line is a surviving input line together with its index in the raw input.
type Line struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

var pageMarker = regexp.MustCompile(`(?i)\bpage\b`)

// Normalize trims and filters raw lines. Blank lines, page markers and lines
// shorter than minLen are dropped; purely numeric lines always survive since
// they may be record serials. Order is preserved.
func Normalize(raw []string, minLen int) []Line {
	out := make([]Line, 0, len(raw))
	for i, r := range raw {
		text := collapseSpace(norm.NFKC.String(r))
		if text == "" {
			continue
		}
		if pageMarker.MatchString(text) {
			continue
		}
		if !isNumeric(text) && utf8.RuneCountInString(text) < minLen {
			continue
		}
		out = append(out, Line{Index: i, Text: text})
	}
	return out
}

// collapseSpace trims s and folds every whitespace run into a single space.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
