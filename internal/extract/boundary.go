package extract

import "strconv"

// SerialRange is the inclusive range of plausible record serial numbers.
type SerialRange struct {
	Min int
	Max int
}

// Serial reports whether text is a bare serial number inside the range.
// Anything else, including wrapped phone digits, is not a boundary.
func (r SerialRange) Serial(text string) (int, bool) {
	if !isNumeric(text) {
		return 0, false
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, false
	}
	return n, n >= r.Min && n <= r.Max
}
