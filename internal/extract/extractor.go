package extract

import (
	"regexp"
)

// Extractor holds the immutable configuration of an extraction. It is safe
// for concurrent use; every call to Extract runs an independent session.
type Extractor struct {
	opts   Options
	dict   *Dictionary
	serial SerialRange
}

// New returns an Extractor. A nil dictionary selects DefaultDictionary.
func New(opts Options, dict *Dictionary) *Extractor {
	if dict == nil {
		dict = DefaultDictionary()
	}
	opts = opts.withDefaults()
	return &Extractor{
		opts:   opts,
		dict:   dict,
		serial: SerialRange{Min: opts.SerialMin, Max: opts.SerialMax},
	}
}

// Options returns the effective options.
func (e *Extractor) Options() Options { return e.opts }

// Diagnostics summarizes an extraction pass. Informational only.
type Diagnostics struct {
	LinesScanned   int   `json:"lines_scanned"`
	LinesKept      int   `json:"lines_kept"`
	Boundaries     int   `json:"boundaries"`
	SkippedWindows int   `json:"skipped_windows"`
	Duplicates     int   `json:"duplicates"`
	Records        int   `json:"records"`
	Stats          Stats `json:"stats"`
}

// Result is the outcome of one extraction pass.
type Result struct {
	Employees   []Employee  `json:"employees"`
	Diagnostics Diagnostics `json:"diagnostics"`
}

// Extract runs the full pipeline over raw lines. It never fails: missing
// fields get defaults, windows without a name are skipped and repeated names
// are dropped, all of which is reported in the diagnostics.
func (e *Extractor) Extract(raw []string) *Result {
	s := &session{
		ex:      e,
		lines:   Normalize(raw, e.opts.MinLineLength),
		seen:    make(map[string]struct{}),
		records: make([]Employee, 0),
	}
	s.diag.LinesScanned = len(raw)
	s.diag.LinesKept = len(s.lines)
	s.run()

	s.diag.Records = len(s.records)
	s.diag.Stats = Aggregate(s.records)
	return &Result{Employees: s.records, Diagnostics: s.diag}
}

// session owns all mutable state of a single pass.
type session struct {
	ex      *Extractor
	lines   []Line
	seen    map[string]struct{}
	records []Employee
	diag    Diagnostics
}

// draft is a record still being filled in.
type draft struct {
	name        string
	designation string
	department  string
	district    string
	phone       string
	email       string
}

func (s *session) run() {
	for i := 0; i < len(s.lines); {
		if !s.isBoundary(i) {
			i++
			continue
		}
		s.diag.Boundaries++
		i = s.attempt(i)
	}
}

// attempt extracts the record starting at boundary b and returns the
// position where the outer scan resumes.
func (s *session) attempt(b int) int {
	name, next := s.scanName(b)
	if name == "" {
		s.diag.SkippedWindows++
		return b + 1
	}

	key := DedupKey(name)
	if _, dup := s.seen[key]; dup {
		s.diag.Duplicates++
		return next
	}

	d := &draft{name: name}
	w := s.ex.opts.Windows

	desigPos := -1
	d.designation, desigPos = s.classify(next, s.windowEnd(b, w.Designation))
	s.scanDepartment(d, next, s.windowEnd(b, w.Department), desigPos)

	emailFrom := b + w.Email.From
	if emailFrom < next {
		emailFrom = next
	}
	d.email = s.scanEmail(emailFrom, s.windowEnd(b, w.Email.To))

	s.seen[key] = struct{}{}
	s.assemble(d)
	return next
}

func (s *session) isBoundary(pos int) bool {
	_, ok := s.ex.serial.Serial(s.lines[pos].Text)
	return ok
}

// windowEnd returns the last position of a window of span lines after b,
// cut short before the next boundary and at the end of input.
func (s *session) windowEnd(b, span int) int {
	end := b + span
	if end > len(s.lines)-1 {
		end = len(s.lines) - 1
	}
	for i := b + 1; i <= end; i++ {
		if s.isBoundary(i) {
			return i - 1
		}
	}
	return end
}

// assemble applies defaults, assigns the next id and appends the record.
func (s *session) assemble(d *draft) {
	def := s.ex.opts.Defaults
	rec := Employee{
		ID:          FormatID(len(s.records) + 1),
		Name:        d.name,
		Designation: orDefault(d.designation, def.Designation),
		Department:  orDefault(d.department, def.Department),
		District:    orDefault(d.district, def.District),
		Phone:       orDefault(d.phone, NoPhone),
		Email:       d.email,
	}
	if rec.Email == "" {
		rec.Email = SynthesizeEmail(d.name, def.EmailDomain)
	}
	s.records = append(s.records, rec)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

var nameShape = regexp.MustCompile(`^[A-Z][A-Z. ]*$`)

// isNameLine reports whether text looks like (part of) a printed name:
// capitals and spaces, with dots allowed for initials.
func (s *session) isNameLine(text string) bool {
	if !nameShape.MatchString(text) {
		return false
	}
	letters := 0
	for i := 0; i < len(text); i++ {
		if text[i] >= 'A' && text[i] <= 'Z' {
			letters++
		}
	}
	return letters > s.ex.opts.MinNameLength
}
