package extract

import (
	"regexp"
	"strings"
)

const phoneExpr = `(?:\+?91[-\s]?)?[6-9]\d{9}|0\d{2,4}[-\s]?\d{6,8}`

var (
	// The surrounding groups keep a match from starting or ending inside a
	// longer digit run.
	phonePattern = regexp.MustCompile(`(?:^|\D)(` + phoneExpr + `)(?:\D|$)`)
	phoneAny     = regexp.MustCompile(phoneExpr)

	emailLabel   = regexp.MustCompile(`(?i)^e\s*-?\s*mail(\s*id)?\s*[:\-]?\s*`)
	continuation = regexp.MustCompile(`^[a-z.@][a-z0-9._@\-]*$`)
	emailShape   = regexp.MustCompile(`[a-z0-9.]+@[a-z0-9.]+`)
	invalidEmail = regexp.MustCompile(`[^a-z0-9@.]`)
	dotRun       = regexp.MustCompile(`\.{2,}`)
)

// findPhone returns the first phone-shaped token in line.
func findPhone(line string) (string, bool) {
	m := phonePattern.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// stripPhones removes phone-shaped substrings from s.
func stripPhones(s string) string {
	return phoneAny.ReplaceAllString(s, " ")
}

// emailFragment cuts the address part out of an email line: labels are
// dropped, text before the first address-looking word is ignored and the
// remaining words are glued together, since extraction often splits an
// address around "@" or ".".
func emailFragment(line string, fragments []string) string {
	line = emailLabel.ReplaceAllString(line, "")
	fields := strings.Fields(line)
	start := -1
	for i, f := range fields {
		if strings.Contains(f, "@") || hasFragment(f, fragments) {
			start = i
			break
		}
	}
	if start < 0 {
		return strings.Join(fields, "")
	}
	if start > 0 && strings.HasPrefix(fields[start], "@") {
		start--
	}
	return strings.Join(fields[start:], "")
}

func hasFragment(s string, fragments []string) bool {
	lower := strings.ToLower(s)
	for _, f := range fragments {
		if strings.Contains(lower, f) {
			return true
		}
	}
	return false
}

// complete reports whether acc already holds a full address.
func complete(acc string) bool {
	at := strings.Index(acc, "@")
	return at > 0 && strings.Contains(acc[at:], ".") && !strings.HasSuffix(acc, ".")
}

// sanitizeEmail lower-cases s, drops characters outside [a-z0-9@.] and
// returns the first address found.
func sanitizeEmail(s string) (string, bool) {
	s = invalidEmail.ReplaceAllString(strings.ToLower(s), "")
	s = dotRun.ReplaceAllString(s, ".")
	m := emailShape.FindString(s)
	if m == "" {
		return "", false
	}
	m = strings.Trim(m, ".")
	at := strings.Index(m, "@")
	if at <= 0 || at == len(m)-1 {
		return "", false
	}
	return m, true
}

// SynthesizeEmail builds the fallback address for name, e.g.
// "RAM KUMAR" -> "ram.kumar@domain".
func SynthesizeEmail(name, domain string) string {
	local := strings.ReplaceAll(strings.ToLower(collapseSpace(name)), " ", ".")
	local = invalidEmail.ReplaceAllString(local, "")
	local = strings.Trim(dotRun.ReplaceAllString(local, "."), ".")
	domain = strings.Trim(invalidEmail.ReplaceAllString(strings.ToLower(domain), ""), ".")
	return local + "@" + domain
}
