package extract

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func extractDefault(lines ...string) *Result {
	return New(DefaultOptions(), nil).Extract(lines)
}

func TestExtract_SingleRecord(t *testing.T) {
	res := extractDefault("1", "RAM KUMAR SHARMA", "PROGRAMMER", "JAIPUR OFFICE", "9812345678")

	require.Len(t, res.Employees, 1)
	emp := res.Employees[0]
	assert.Equal(t, "EMP0001", emp.ID)
	assert.Equal(t, "RAM KUMAR SHARMA", emp.Name)
	assert.Equal(t, "Programmer", emp.Designation)
	assert.Equal(t, "JAIPUR OFFICE", emp.Department)
	assert.Equal(t, "JAIPUR", emp.District)
	assert.Equal(t, "9812345678", emp.Phone)
	assert.Equal(t, "ram.kumar.sharma@rajasthan.gov.in", emp.Email)
}

func TestExtract_DuplicateNameKeepsFirst(t *testing.T) {
	res := extractDefault(
		"1", "RAM KUMAR", "PROGRAMMER", "9812345678",
		"5", "RAM   KUMAR", "CLERK", "9876543210",
	)

	require.Len(t, res.Employees, 1)
	assert.Equal(t, "Programmer", res.Employees[0].Designation)
	assert.Equal(t, "9812345678", res.Employees[0].Phone)
	assert.Equal(t, 1, res.Diagnostics.Duplicates)
	assert.Equal(t, 2, res.Diagnostics.Boundaries)
}

func TestExtract_BoundaryWithoutName(t *testing.T) {
	res := extractDefault("7", "123", "456")

	assert.Empty(t, res.Employees)
	assert.NotNil(t, res.Employees)
	assert.Equal(t, 3, res.Diagnostics.Boundaries)
	assert.Equal(t, 3, res.Diagnostics.SkippedWindows)
}

func TestExtract_DefaultsForMissingFields(t *testing.T) {
	res := extractDefault("1", "RAM KUMAR", "SOME OFFICE TEXT")

	require.Len(t, res.Employees, 1)
	emp := res.Employees[0]
	assert.Equal(t, "Staff Member", emp.Designation)
	assert.Equal(t, NoPhone, emp.Phone)
	assert.Equal(t, "ram.kumar@rajasthan.gov.in", emp.Email)
	assert.Equal(t, "SOME OFFICE TEXT", emp.Department)
	assert.Equal(t, "JAIPUR", emp.District)
}

func TestExtract_EmptyWindowUsesDefaultDepartment(t *testing.T) {
	res := extractDefault("1", "RAM KUMAR")

	require.Len(t, res.Employees, 1)
	assert.Equal(t, "DoIT&C", res.Employees[0].Department)
}

func TestExtract_ConfiguredDefaults(t *testing.T) {
	opts := DefaultOptions()
	opts.Defaults = Defaults{
		Designation: "Staff",
		Department:  "Head Office",
		District:    "AJMER",
		EmailDomain: "example.org",
	}
	res := New(opts, nil).Extract([]string{"1", "SITA DEVI"})

	require.Len(t, res.Employees, 1)
	emp := res.Employees[0]
	assert.Equal(t, "Staff", emp.Designation)
	assert.Equal(t, "Head Office", emp.Department)
	assert.Equal(t, "AJMER", emp.District)
	assert.Equal(t, "sita.devi@example.org", emp.Email)
}

func TestExtract_OutOfRangeSerialsNeverStartRecords(t *testing.T) {
	for _, serial := range []string{"0", "99999", "50000"} {
		t.Run(serial, func(t *testing.T) {
			res := extractDefault(serial, "RAM KUMAR", "PROGRAMMER")
			assert.Empty(t, res.Employees)
			assert.Equal(t, 0, res.Diagnostics.Boundaries)
		})
	}
}

func TestExtract_NameWindowBound(t *testing.T) {
	// The name-shaped line sits six lines after the boundary, one past the window.
	res := extractDefault("1", "a1", "b2", "c3", "d4", "e5", "RAM KUMAR")
	assert.Empty(t, res.Employees)

	res = extractDefault("1", "a1", "b2", "c3", "d4", "RAM KUMAR")
	require.Len(t, res.Employees, 1)
	assert.Equal(t, "RAM KUMAR", res.Employees[0].Name)
}

func TestExtract_NameNeverCrossesWindow(t *testing.T) {
	opts := DefaultOptions()
	opts.Windows.Name = 2
	res := New(opts, nil).Extract([]string{"1", "RAM", "KUMAR", "SHARMA"})

	require.Len(t, res.Employees, 1)
	assert.Equal(t, "RAM KUMAR", res.Employees[0].Name)
}

func TestExtract_MultiLineName(t *testing.T) {
	res := extractDefault("12", "RAJENDRA PRASAD", "MEENA", "Assistant Programmer", "DOIT&C UDAIPUR")

	require.Len(t, res.Employees, 1)
	emp := res.Employees[0]
	assert.Equal(t, "RAJENDRA PRASAD MEENA", emp.Name)
	assert.Equal(t, "Assistant Programmer", emp.Designation)
	assert.Equal(t, "UDAIPUR", emp.District)
}

func TestExtract_NameStopsAtOfficeLine(t *testing.T) {
	res := extractDefault("3", "MOHAN LAL", "JODHPUR DIVISION", "9812345678")

	require.Len(t, res.Employees, 1)
	emp := res.Employees[0]
	assert.Equal(t, "MOHAN LAL", emp.Name)
	assert.Equal(t, "JODHPUR DIVISION", emp.Department)
	assert.Equal(t, "JODHPUR", emp.District)
}

func TestExtract_NameWithDistrictWord(t *testing.T) {
	res := extractDefault(
		"1", "RAJESH KOTA", "PROGRAMMER", "9812345678",
		"2", "SURESH PALI", "CLERK",
		"3", "KOTA", "MOHAN LAL", "DRIVER",
	)

	require.Len(t, res.Employees, 3)
	assert.Equal(t, "RAJESH KOTA", res.Employees[0].Name)
	assert.Equal(t, "Programmer", res.Employees[0].Designation)
	assert.Equal(t, "9812345678", res.Employees[0].Phone)
	assert.Equal(t, "SURESH PALI", res.Employees[1].Name)
	assert.Equal(t, "Clerk", res.Employees[1].Designation)
	// A line holding only a district is an office line, not a name.
	assert.Equal(t, "MOHAN LAL", res.Employees[2].Name)
	assert.Equal(t, 0, res.Diagnostics.SkippedWindows)
}

func TestExtract_FirstDesignationLineWins(t *testing.T) {
	res := extractDefault("1", "RAM KUMAR", "CLERK", "DIRECTOR")

	require.Len(t, res.Employees, 1)
	assert.Equal(t, "Clerk", res.Employees[0].Designation)
	assert.Equal(t, "DIRECTOR", res.Employees[0].Department)
}

func TestExtract_WindowsStopAtNextBoundary(t *testing.T) {
	res := extractDefault(
		"1", "RAM KUMAR", "PROGRAMMER",
		"2", "SITA DEVI", "9812345678",
	)

	require.Len(t, res.Employees, 2)
	assert.Equal(t, NoPhone, res.Employees[0].Phone)
	assert.Equal(t, "Programmer", res.Employees[0].Designation)
	assert.Equal(t, "EMP0002", res.Employees[1].ID)
	assert.Equal(t, "Staff Member", res.Employees[1].Designation)
	assert.Equal(t, "9812345678", res.Employees[1].Phone)
}

func TestExtract_DepartmentAfterPhone(t *testing.T) {
	lines := []string{"1", "RAM KUMAR", "CLERK", "ACCOUNTS SECTION", "9812345678", "YOJANA BHAWAN"}

	res := extractDefault(lines...)
	require.Len(t, res.Employees, 1)
	assert.Equal(t, "ACCOUNTS SECTION YOJANA BHAWAN", res.Employees[0].Department)

	opts := DefaultOptions()
	opts.StopDepartmentAtPhone = true
	res = New(opts, nil).Extract(lines)
	require.Len(t, res.Employees, 1)
	assert.Equal(t, "ACCOUNTS SECTION", res.Employees[0].Department)
}

func TestExtract_DepartmentSanitizing(t *testing.T) {
	long := "CENTRAL PROCUREMENT AND IT INFRASTRUCTURE MANAGEMENT CELL"
	res := extractDefault(
		"1", "RAM KUMAR", "PROGRAMMER",
		long, long, long,
		"Tel 0141-2345678 extension desk",
	)

	require.Len(t, res.Employees, 1)
	emp := res.Employees[0]
	assert.LessOrEqual(t, len([]rune(emp.Department)), 100)
	assert.NotContains(t, emp.Department, "2345678")
	assert.Equal(t, "0141-2345678", emp.Phone)
}

func TestExtract_SplitEmail(t *testing.T) {
	res := extractDefault(
		"1", "RAM KUMAR", "PROGRAMMER", "DOIT&C JAIPUR",
		"Email: ram.kumar@rajasthan.", "gov.in", "9812345678",
	)

	require.Len(t, res.Employees, 1)
	emp := res.Employees[0]
	assert.Equal(t, "ram.kumar@rajasthan.gov.in", emp.Email)
	assert.Equal(t, "DOIT&C JAIPUR", emp.Department)
	assert.Equal(t, "9812345678", emp.Phone)
}

func TestExtract_EmailContinuationFragments(t *testing.T) {
	res := extractDefault("1", "R. K. SHARMA", "CLERK", "rk.sharma@", "doitc.", "rajasthan.gov.in")

	require.Len(t, res.Employees, 1)
	assert.Equal(t, "R. K. SHARMA", res.Employees[0].Name)
	assert.Equal(t, "rk.sharma@doitc.rajasthan.gov.in", res.Employees[0].Email)
}

func TestExtract_SecondAddressNotAppended(t *testing.T) {
	res := extractDefault("1", "RAM KUMAR", "CLERK", "ram.k@rajasthan.gov.in", "ramk@gmail.com")

	require.Len(t, res.Employees, 1)
	assert.Equal(t, "ram.k@rajasthan.gov.in", res.Employees[0].Email)
}

func TestExtract_CompleteEmailStopsAtPlainFragment(t *testing.T) {
	res := extractDefault("1", "RAM KUMAR", "CLERK", "ram@doitc.rajasthan.gov.in", "na")

	require.Len(t, res.Employees, 1)
	assert.Equal(t, "ram@doitc.rajasthan.gov.in", res.Employees[0].Email)
}

func TestExtract_EmailWithoutAtIsSynthesized(t *testing.T) {
	res := extractDefault("1", "RAM KUMAR", "CLERK", "rajasthan.gov.in")

	require.Len(t, res.Employees, 1)
	assert.Equal(t, "ram.kumar@rajasthan.gov.in", res.Employees[0].Email)
}

func TestExtract_PageMarkersIgnored(t *testing.T) {
	res := extractDefault("Page 4 of 20", "1", "RAM KUMAR", "Page 5", "PROGRAMMER")

	require.Len(t, res.Employees, 1)
	assert.Equal(t, "Programmer", res.Employees[0].Designation)
	assert.Equal(t, 5, res.Diagnostics.LinesScanned)
	assert.Equal(t, 3, res.Diagnostics.LinesKept)
}

func TestExtract_Diagnostics(t *testing.T) {
	res := extractDefault(
		"1", "RAM KUMAR", "PROGRAMMER", "JAIPUR",
		"2", "SITA DEVI", "CLERK", "KOTA",
		"3", "GITA RANI", "CLERK", "KOTA",
		"4", "##",
		"5", "SITA  DEVI",
	)

	d := res.Diagnostics
	assert.Equal(t, 3, d.Records)
	assert.Equal(t, 1, d.Duplicates)
	assert.Equal(t, 5, d.Boundaries)
	assert.Equal(t, 1, d.SkippedWindows)
	assert.Equal(t, []Tally{{"KOTA", 2}, {"JAIPUR", 1}}, d.Stats.ByDistrict)
	assert.Equal(t, []Tally{{"Clerk", 2}, {"Programmer", 1}}, d.Stats.ByDesignation)
}

func TestExtract_Idempotent(t *testing.T) {
	lines := randomDirectory(rand.New(rand.NewPCG(7, 11)), 200)
	ex := New(DefaultOptions(), nil)

	first, err := json.Marshal(ex.Extract(lines))
	require.NoError(t, err)
	second, err := json.Marshal(ex.Extract(lines))
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestExtract_Invariants(t *testing.T) {
	ex := New(DefaultOptions(), nil)
	for seed := uint64(1); seed <= 25; seed++ {
		t.Run(fmt.Sprintf("seed-%d", seed), func(t *testing.T) {
			res := ex.Extract(randomDirectory(rand.New(rand.NewPCG(seed, seed*31)), 120))

			keys := make(map[string]bool)
			for i, emp := range res.Employees {
				require.NoError(t, emp.Validate())
				assert.Equal(t, FormatID(i+1), emp.ID)
				key := DedupKey(emp.Name)
				assert.False(t, keys[key], "duplicate key %q", key)
				keys[key] = true
			}
			assert.Equal(t, len(res.Employees), res.Diagnostics.Records)
		})
	}
}

func TestExtract_JSONFieldOrder(t *testing.T) {
	res := extractDefault("1", "RAM KUMAR")
	data, err := json.Marshal(res.Employees)
	require.NoError(t, err)

	want := `[{"id":"EMP0001","name":"RAM KUMAR","designation":"Staff Member",` +
		`"department":"DoIT&C","district":"JAIPUR","phone":"Contact Office",` +
		`"email":"ram.kumar@rajasthan.gov.in"}]`
	assert.JSONEq(t, want, string(data))
	assert.Contains(t, string(data), `{"id":"EMP0001","name":`)
}

// randomDirectory produces a noisy but deterministic directory dump.
func randomDirectory(r *rand.Rand, records int) []string {
	names := []string{"RAM KUMAR", "SITA DEVI", "MOHAN LAL", "GITA RANI", "R. K. SHARMA", "ANIL MEENA"}
	surnames := []string{"", "SHARMA", "GUPTA", "JAIN", "SINGH"}
	titles := []string{"PROGRAMMER", "Joint Director", "CLERK", "Addl. Director", "", "Driver"}
	places := []string{"JAIPUR OFFICE", "DOIT&C KOTA", "Yojana Bhawan", "Sawai Madhopur", ""}

	var lines []string
	for i := 1; i <= records; i++ {
		if r.IntN(10) == 0 {
			lines = append(lines, "Page "+fmt.Sprint(i))
		}
		lines = append(lines, fmt.Sprint(i))
		if r.IntN(12) == 0 {
			continue
		}
		lines = append(lines, names[r.IntN(len(names))])
		if s := surnames[r.IntN(len(surnames))]; s != "" {
			lines = append(lines, s)
		}
		if t := titles[r.IntN(len(titles))]; t != "" {
			lines = append(lines, t)
		}
		if p := places[r.IntN(len(places))]; p != "" {
			lines = append(lines, p)
		}
		if r.IntN(2) == 0 {
			lines = append(lines, fmt.Sprintf("9%09d", r.IntN(1_000_000_000)))
		}
		if r.IntN(3) == 0 {
			lines = append(lines, "user"+fmt.Sprint(i)+"@rajasthan.", "gov.in")
		}
		if r.IntN(15) == 0 {
			lines = append(lines, "0", "99999")
		}
	}
	return lines
}
