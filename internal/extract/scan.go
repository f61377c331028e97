package extract

import (
	"strings"
	"unicode/utf8"
)

// scanName collects the name printed after boundary b. Only the Name window
// is eligible. Lines that are not name-shaped are skipped until the first
// name line and end the name after it. A designation, an office or district
// line, or the next serial also ends the scan. The returned position follows
// the last accepted line, or is b+1 when no name was found.
func (s *session) scanName(b int) (string, int) {
	end := b + s.ex.opts.Windows.Name
	if end > len(s.lines)-1 {
		end = len(s.lines) - 1
	}

	var parts []string
	next := b + 1
	for i := b + 1; i <= end; i++ {
		text := s.lines[i].Text
		if s.isBoundary(i) || s.ex.dict.Designations.Matches(text) {
			break
		}
		if !s.isNameLine(text) || s.ex.dict.isDepartmentLine(text) {
			if len(parts) > 0 {
				break
			}
			continue
		}
		parts = append(parts, text)
		next = i + 1
	}
	return collapseSpace(strings.Join(parts, " ")), next
}

// classify returns the designation found in [from, to] and its position.
// Line order decides first, rule priority second.
func (s *session) classify(from, to int) (string, int) {
	for i := from; i <= to; i++ {
		if label, ok := s.ex.dict.Designations.Classify(s.lines[i].Text); ok {
			return label, i
		}
	}
	return "", -1
}

// scanDepartment fills phone, district and department from [from, to].
// The line at skip supplied the designation and is not department text.
func (s *session) scanDepartment(d *draft, from, to, skip int) {
	opts := s.ex.opts
	var parts []string
	for i := from; i <= to; i++ {
		text := s.lines[i].Text

		if d.district == "" {
			if name, ok := s.ex.dict.Districts.Find(text); ok {
				d.district = name
			}
		}

		if phone, ok := findPhone(text); ok {
			if d.phone == "" {
				d.phone = phone
			}
			if opts.StopDepartmentAtPhone {
				break
			}
			continue
		}

		if i == skip || isNumeric(text) || s.ex.dict.isEmailLine(text) {
			continue
		}
		if utf8.RuneCountInString(text) > opts.MaxDepartmentLineLength {
			continue
		}
		parts = append(parts, text)
	}

	dept := collapseSpace(stripPhones(strings.Join(parts, " ")))
	d.department = truncateRunes(dept, opts.MaxDepartmentLength)
}

// scanEmail accumulates an address starting at the first email line in
// [from, to]. Following lower-case fragments are appended until a line
// matches neither shape, or the address is complete and the line does not
// carry another address part.
func (s *session) scanEmail(from, to int) string {
	frags := s.ex.dict.EmailFragments
	var acc strings.Builder
	started := false
	for i := from; i <= to; i++ {
		text := s.lines[i].Text
		isEmail := s.ex.dict.isEmailLine(text)
		if !started {
			if isEmail {
				acc.WriteString(emailFragment(text, frags))
				started = true
			}
			continue
		}
		if complete(acc.String()) && (strings.Contains(text, "@") || !hasFragment(text, frags)) {
			break
		}
		if !isEmail && !continuation.MatchString(text) {
			break
		}
		acc.WriteString(emailFragment(text, frags))
	}
	if !started {
		return ""
	}
	email, ok := sanitizeEmail(acc.String())
	if !ok {
		return ""
	}
	return email
}

// truncateRunes cuts s to at most n runes without splitting a character.
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return strings.TrimSpace(string(r[:n]))
}
