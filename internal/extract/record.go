package extract

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Employee is one directory entry. Every field is always populated.
type Employee struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Designation string `json:"designation"`
	Department  string `json:"department"`
	District    string `json:"district"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
}

var idPattern = regexp.MustCompile(`^EMP\d{4,}$`)

// FormatID renders the n-th (1-based) record id.
func FormatID(n int) string {
	return fmt.Sprintf("EMP%04d", n)
}

// DedupKey normalizes a name for duplicate detection: lower case with all
// whitespace removed, so "RAM   KUMAR" and "Ram Kumar" collide.
func DedupKey(name string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, name)
}

// Validate checks that a finished record is complete.
func (e *Employee) Validate() error {
	if e == nil {
		return fmt.Errorf("nil employee")
	}
	if !idPattern.MatchString(e.ID) {
		return fmt.Errorf("invalid id %q", e.ID)
	}
	fields := []struct {
		name, value string
	}{
		{"name", e.Name},
		{"designation", e.Designation},
		{"department", e.Department},
		{"district", e.District},
		{"phone", e.Phone},
		{"email", e.Email},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("employee %s: empty %s", e.ID, f.name)
		}
	}
	return nil
}
