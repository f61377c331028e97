// Package extract turns the line stream of a staff directory document into
// employee records.
package extract

// NoPhone is stored when no phone-shaped token is found for a record.
const NoPhone = "Contact Office"

// Window is an inclusive span of positions relative to a boundary line.
type Window struct {
	From int `yaml:"from" json:"from"`
	To   int `yaml:"to" json:"to"`
}

// Windows bounds how far past a boundary each field is searched for.
// Name, Designation and Department are measured from the boundary; the
// designation and department scans start right after the name lines.
type Windows struct {
	Name        int    `yaml:"name" json:"name"`
	Designation int    `yaml:"designation" json:"designation"`
	Department  int    `yaml:"department" json:"department"`
	Email       Window `yaml:"email" json:"email"`
}

// Defaults are substituted for fields that could not be resolved.
type Defaults struct {
	Designation string `yaml:"designation" json:"designation"`
	Department  string `yaml:"department" json:"department"`
	District    string `yaml:"district" json:"district"`
	EmailDomain string `yaml:"email_domain" json:"email_domain"`
}

// Options configures an Extractor. Zero values fall back to DefaultOptions.
type Options struct {
	SerialMin int
	SerialMax int

	MinLineLength int
	MinNameLength int

	MaxDepartmentLineLength int
	MaxDepartmentLength     int

	// StopDepartmentAtPhone ends the department scan at the first phone line.
	// Text printed after the phone is lost when this is set.
	StopDepartmentAtPhone bool

	Windows  Windows
	Defaults Defaults
}

// DefaultOptions returns the settings tuned for the DoIT&C telephone directory.
func DefaultOptions() Options {
	return Options{
		SerialMin:               1,
		SerialMax:               49999,
		MinLineLength:           2,
		MinNameLength:           2,
		MaxDepartmentLineLength: 150,
		MaxDepartmentLength:     100,
		Windows: Windows{
			Name:        5,
			Designation: 10,
			Department:  25,
			Email:       Window{From: 2, To: 30},
		},
		Defaults: Defaults{
			Designation: "Staff Member",
			Department:  "DoIT&C",
			District:    "JAIPUR",
			EmailDomain: "rajasthan.gov.in",
		},
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.SerialMin <= 0 {
		o.SerialMin = d.SerialMin
	}
	if o.SerialMax <= 0 {
		o.SerialMax = d.SerialMax
	}
	if o.MinLineLength <= 0 {
		o.MinLineLength = d.MinLineLength
	}
	if o.MinNameLength <= 0 {
		o.MinNameLength = d.MinNameLength
	}
	if o.MaxDepartmentLineLength <= 0 {
		o.MaxDepartmentLineLength = d.MaxDepartmentLineLength
	}
	if o.MaxDepartmentLength <= 0 {
		o.MaxDepartmentLength = d.MaxDepartmentLength
	}
	if o.Windows.Name <= 0 {
		o.Windows.Name = d.Windows.Name
	}
	if o.Windows.Designation <= 0 {
		o.Windows.Designation = d.Windows.Designation
	}
	if o.Windows.Department <= 0 {
		o.Windows.Department = d.Windows.Department
	}
	if o.Windows.Email.To <= 0 {
		o.Windows.Email = d.Windows.Email
	}
	if o.Windows.Email.From < 1 {
		o.Windows.Email.From = 1
	}
	if o.Defaults.Designation == "" {
		o.Defaults.Designation = d.Defaults.Designation
	}
	if o.Defaults.Department == "" {
		o.Defaults.Department = d.Defaults.Department
	}
	if o.Defaults.District == "" {
		o.Defaults.District = d.Defaults.District
	}
	if o.Defaults.EmailDomain == "" {
		o.Defaults.EmailDomain = d.Defaults.EmailDomain
	}
	return o
}
