package extract

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidRules is returned for dictionary files that cannot be used.
var ErrInvalidRules = errors.New("invalid rules")

// Dictionary holds the immutable lookup tables used during extraction.
type Dictionary struct {
	Designations RuleTable
	Districts    DistrictSet

	// DepartmentKeywords mark lines that describe an office rather than a
	// person, such as "JAIPUR OFFICE". Compared as whole words.
	DepartmentKeywords []string

	// EmailFragments mark lines that carry an address even when the "@" was
	// lost or wrapped onto another line.
	EmailFragments []string
}

// DefaultDictionary returns the built-in tables.
func DefaultDictionary() *Dictionary {
	return &Dictionary{
		Designations: DefaultDesignationRules(),
		Districts:    NewDistrictSet(DefaultDistricts()...),
		DepartmentKeywords: []string{
			"office", "department", "deptt", "directorate", "commissionerate",
			"secretariat", "bhawan", "bhavan", "division", "section", "cell",
			"branch", "doit&c", "doitc", "risl", "centre", "center", "zone",
			"district", "rajasthan", "government", "govt", "board", "nigam",
			"samiti", "parishad", "road", "marg",
		},
		EmailFragments: []string{
			"gov.in", "nic.in", "rajasthan.gov", ".gov", "gmail", "yahoo",
			"hotmail", "rediffmail", "outlook",
		},
	}
}

// isDepartmentLine reports whether line names an office, or is nothing but
// a district. A district word inside a longer line does not count, since
// surnames such as KOTA or PALI are also district names.
func (d *Dictionary) isDepartmentLine(line string) bool {
	for _, w := range wordsOf(line) {
		for _, k := range d.DepartmentKeywords {
			if w == k {
				return true
			}
		}
	}
	return d.Districts.IsDistrict(line)
}

// isEmailLine reports whether line carries (part of) an email address.
func (d *Dictionary) isEmailLine(line string) bool {
	if strings.Contains(line, "@") {
		return true
	}
	lower := strings.ToLower(line)
	for _, f := range d.EmailFragments {
		if strings.Contains(lower, f) {
			return true
		}
	}
	return false
}

type ruleFile struct {
	Label    string   `yaml:"label"`
	Kind     string   `yaml:"kind"`
	Pattern  string   `yaml:"pattern"`
	Keywords []string `yaml:"keywords"`
}

type dictionaryFile struct {
	Designations       []ruleFile `yaml:"designations"`
	Districts          []District `yaml:"districts"`
	DepartmentKeywords []string   `yaml:"department_keywords"`
	EmailFragments     []string   `yaml:"email_fragments"`
}

// LoadDictionary reads a YAML rules document. Sections that are absent keep
// their built-in values; a section that is present replaces them entirely,
// preserving the order given in the file.
func LoadDictionary(r io.Reader) (*Dictionary, error) {
	var f dictionaryFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: decode: %v", ErrInvalidRules, err)
	}

	d := DefaultDictionary()
	if len(f.Designations) > 0 {
		table := make(RuleTable, 0, len(f.Designations))
		for i, rf := range f.Designations {
			if strings.TrimSpace(rf.Label) == "" {
				return nil, fmt.Errorf("%w: designation %d has no label", ErrInvalidRules, i)
			}
			m, err := NewMatcher(rf.Kind, rf.Pattern, rf.Keywords)
			if err != nil {
				return nil, fmt.Errorf("%w: designation %q: %v", ErrInvalidRules, rf.Label, err)
			}
			table = append(table, Rule{Matcher: m, Label: rf.Label})
		}
		d.Designations = table
	}
	if len(f.Districts) > 0 {
		d.Districts = NewDistrictSet(f.Districts...)
		if d.Districts.Len() == 0 {
			return nil, fmt.Errorf("%w: districts section has no names", ErrInvalidRules)
		}
	}
	if len(f.DepartmentKeywords) > 0 {
		d.DepartmentKeywords = lowerAll(f.DepartmentKeywords)
	}
	if len(f.EmailFragments) > 0 {
		d.EmailFragments = lowerAll(f.EmailFragments)
	}
	return d, nil
}

// LoadDictionaryFile is LoadDictionary for a file path.
func LoadDictionaryFile(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open rules: %w", err)
	}
	defer f.Close()
	d, err := LoadDictionary(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}
