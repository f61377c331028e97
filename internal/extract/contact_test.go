package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindPhone(t *testing.T) {
	tests := []struct {
		line string
		want string
		ok   bool
	}{
		{"9812345678", "9812345678", true},
		{"Mob. +91-9812345678", "+91-9812345678", true},
		{"919812345678", "919812345678", true},
		{"Mob 91 9812345678", "91 9812345678", true},
		{"0141-2345678", "0141-2345678", true},
		{"Ph 0141 2345678 (O)", "0141 2345678", true},
		{"98123456789", "", false},
		{"5812345678", "", false},
		{"Room 12", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, ok := findPhone(tt.line)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStripPhones(t *testing.T) {
	assert.Equal(t, "IT CELL", collapseSpace(stripPhones("IT CELL 9812345678")))
}

func TestSanitizeEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"Ram_Kumar@Gov.In", "ramkumar@gov.in", true},
		{"ram..kumar@nic.in.", "ram.kumar@nic.in", true},
		{"rajasthan.gov.in", "", false},
		{"@gov.in", "", false},
		{"ram@", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := sanitizeEmail(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEmailFragment(t *testing.T) {
	frags := DefaultDictionary().EmailFragments
	assert.Equal(t, "ram@gov.in", emailFragment("E-mail ID: ram @gov.in", frags))
	assert.Equal(t, "ram.k@nic.in", emailFragment("Email: ram.k@nic.in", frags))
	assert.Equal(t, "gov.in", emailFragment("gov.in", frags))
}

func TestSynthesizeEmail(t *testing.T) {
	assert.Equal(t, "r.k.sharma@rajasthan.gov.in", SynthesizeEmail("R. K. SHARMA", "rajasthan.gov.in"))
	assert.Equal(t, "ram.kumar@example.org", SynthesizeEmail("RAM   KUMAR", "Example.org"))
}
