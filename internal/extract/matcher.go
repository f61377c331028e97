package extract

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Matcher tests a single line. Implementations are case-insensitive.
type Matcher interface {
	Match(line string) bool
	String() string
}

// Matcher kinds accepted in dictionary files.
const (
	KindSubstring = "substring"
	KindRegex     = "regex"
	KindKeywords  = "keywords"
)

type substringMatcher struct {
	needle string
}

// Substring matches lines containing s.
func Substring(s string) Matcher {
	return substringMatcher{needle: strings.ToLower(s)}
}

func (m substringMatcher) Match(line string) bool {
	return m.needle != "" && strings.Contains(strings.ToLower(line), m.needle)
}

func (m substringMatcher) String() string { return KindSubstring + ":" + m.needle }

type regexMatcher struct {
	re *regexp.Regexp
}

// Regex compiles pattern as a case-insensitive matcher.
func Regex(pattern string) (Matcher, error) {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", pattern, err)
	}
	return regexMatcher{re: re}, nil
}

// MustRegex is Regex for built-in patterns.
func MustRegex(pattern string) Matcher {
	m, err := Regex(pattern)
	if err != nil {
		panic(err)
	}
	return m
}

func (m regexMatcher) Match(line string) bool { return m.re.MatchString(line) }

func (m regexMatcher) String() string { return KindRegex + ":" + m.re.String() }

type keywordMatcher struct {
	words []string
}

// Keywords matches lines containing every one of words as a whole word.
func Keywords(words ...string) Matcher {
	lower := make([]string, 0, len(words))
	for _, w := range words {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			lower = append(lower, w)
		}
	}
	return keywordMatcher{words: lower}
}

func (m keywordMatcher) Match(line string) bool {
	if len(m.words) == 0 {
		return false
	}
	have := make(map[string]bool)
	for _, w := range wordsOf(line) {
		have[w] = true
	}
	for _, w := range m.words {
		if !have[w] {
			return false
		}
	}
	return true
}

func (m keywordMatcher) String() string {
	return KindKeywords + ":" + strings.Join(m.words, "+")
}

// wordsOf splits line into lower-case runs of letters and digits.
func wordsOf(line string) []string {
	return strings.FieldsFunc(strings.ToLower(line), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '&'
	})
}

// NewMatcher builds a matcher of the given kind.
func NewMatcher(kind, pattern string, keywords []string) (Matcher, error) {
	switch strings.ToLower(kind) {
	case KindSubstring:
		if strings.TrimSpace(pattern) == "" {
			return nil, fmt.Errorf("substring matcher needs a pattern")
		}
		return Substring(pattern), nil
	case KindRegex, "":
		if pattern == "" {
			return nil, fmt.Errorf("regex matcher needs a pattern")
		}
		return Regex(pattern)
	case KindKeywords:
		if len(keywords) == 0 {
			return nil, fmt.Errorf("keywords matcher needs keywords")
		}
		return Keywords(keywords...), nil
	default:
		return nil, fmt.Errorf("unknown matcher kind %q", kind)
	}
}
