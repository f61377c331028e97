package extract

import (
	"strings"
)

// District is a canonical district name plus alternate spellings.
type District struct {
	Name    string   `yaml:"name" json:"name"`
	Aliases []string `yaml:"aliases,omitempty" json:"aliases,omitempty"`
}

type districtForm struct {
	words     []string
	canonical string
}

// DistrictSet is a closed set of district names. Matching is case-insensitive
// and works on whole words, so "PALI" is found in "PALI ROAD" but not in
// "GOPALIYA".
type DistrictSet struct {
	names []string
	forms []districtForm
}

// NewDistrictSet builds a set; canonical names are upper-cased.
func NewDistrictSet(districts ...District) DistrictSet {
	var s DistrictSet
	for _, d := range districts {
		canonical := strings.ToUpper(collapseSpace(d.Name))
		if canonical == "" {
			continue
		}
		s.names = append(s.names, canonical)
		for _, form := range append([]string{d.Name}, d.Aliases...) {
			if w := wordsOf(form); len(w) > 0 {
				s.forms = append(s.forms, districtForm{words: w, canonical: canonical})
			}
		}
	}
	return s
}

// Len returns the number of canonical districts.
func (s DistrictSet) Len() int { return len(s.names) }

// Names returns the canonical names in definition order.
func (s DistrictSet) Names() []string {
	return append([]string(nil), s.names...)
}

// Find returns the district mentioned in line. When several are mentioned the
// earliest one wins, and at equal positions the longer spelling wins.
func (s DistrictSet) Find(line string) (string, bool) {
	words := wordsOf(line)
	bestPos, bestLen := -1, 0
	best := ""
	for _, f := range s.forms {
		pos := indexWords(words, f.words)
		if pos < 0 {
			continue
		}
		if bestPos < 0 || pos < bestPos || (pos == bestPos && len(f.words) > bestLen) {
			bestPos, bestLen, best = pos, len(f.words), f.canonical
		}
	}
	return best, bestPos >= 0
}

// IsDistrict reports whether line is exactly one district spelling.
func (s DistrictSet) IsDistrict(line string) bool {
	words := wordsOf(line)
	for _, f := range s.forms {
		if len(f.words) == len(words) && indexWords(words, f.words) == 0 {
			return true
		}
	}
	return false
}

func indexWords(haystack, needle []string) int {
outer:
	for i := 0; i+len(needle) <= len(haystack); i++ {
		for j, w := range needle {
			if haystack[i+j] != w {
				continue outer
			}
		}
		return i
	}
	return -1
}

// DefaultDistricts returns the 33 districts of Rajasthan.
func DefaultDistricts() []District {
	return []District{
		{Name: "Ajmer"},
		{Name: "Alwar"},
		{Name: "Banswara"},
		{Name: "Baran"},
		{Name: "Barmer"},
		{Name: "Bharatpur"},
		{Name: "Bhilwara"},
		{Name: "Bikaner"},
		{Name: "Bundi"},
		{Name: "Chittorgarh", Aliases: []string{"Chittaurgarh"}},
		{Name: "Churu"},
		{Name: "Dausa"},
		{Name: "Dholpur", Aliases: []string{"Dhaulpur"}},
		{Name: "Dungarpur"},
		{Name: "Hanumangarh"},
		{Name: "Jaipur"},
		{Name: "Jaisalmer"},
		{Name: "Jalore", Aliases: []string{"Jalor"}},
		{Name: "Jhalawar"},
		{Name: "Jhunjhunu", Aliases: []string{"Jhunjhunun"}},
		{Name: "Jodhpur"},
		{Name: "Karauli"},
		{Name: "Kota"},
		{Name: "Nagaur"},
		{Name: "Pali"},
		{Name: "Pratapgarh"},
		{Name: "Rajsamand"},
		{Name: "Sawai Madhopur", Aliases: []string{"S. Madhopur", "Sawaimadhopur"}},
		{Name: "Sikar"},
		{Name: "Sirohi"},
		{Name: "Sri Ganganagar", Aliases: []string{"Ganganagar", "Shri Ganganagar"}},
		{Name: "Tonk"},
		{Name: "Udaipur"},
	}
}
