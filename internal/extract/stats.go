package extract

import "sort"

// Tally is the number of records sharing a label.
type Tally struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Stats groups finished records by district and designation.
type Stats struct {
	ByDistrict    []Tally `json:"by_district"`
	ByDesignation []Tally `json:"by_designation"`
}

// Aggregate tallies records. Tallies are ordered by descending count, then
// by label so that equal inputs always produce equal output.
func Aggregate(records []Employee) Stats {
	districts := make([]string, 0, len(records))
	designations := make([]string, 0, len(records))
	for _, r := range records {
		districts = append(districts, r.District)
		designations = append(designations, r.Designation)
	}
	return Stats{
		ByDistrict:    tally(districts),
		ByDesignation: tally(designations),
	}
}

func tally(values []string) []Tally {
	counts := make(map[string]int)
	for _, v := range values {
		counts[v]++
	}
	out := make([]Tally, 0, len(counts))
	for label, n := range counts {
		out = append(out, Tally{Label: label, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	return out
}
