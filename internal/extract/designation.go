package extract

// Rule maps lines accepted by Matcher to a canonical designation.
type Rule struct {
	Matcher Matcher
	Label   string
}

// RuleTable is evaluated in order; earlier rules take priority, so specific
// titles must precede the generic ones they contain.
type RuleTable []Rule

// Classify returns the label of the first rule matching line.
func (t RuleTable) Classify(line string) (string, bool) {
	for _, r := range t {
		if r.Matcher.Match(line) {
			return r.Label, true
		}
	}
	return "", false
}

// Matches reports whether any rule accepts line.
func (t RuleTable) Matches(line string) bool {
	_, ok := t.Classify(line)
	return ok
}

// DefaultDesignationRules returns the built-in designation table.
func DefaultDesignationRules() RuleTable {
	return RuleTable{
		{MustRegex(`\b(addl\.?|additional)\s*director\b`), "Additional Director"},
		{MustRegex(`\bjoint\s+director\b`), "Joint Director"},
		{MustRegex(`\b(deputy|dy\.?)\s*director\b`), "Deputy Director"},
		{MustRegex(`\b(assistant|asst\.?)\s*director\b`), "Assistant Director"},
		{MustRegex(`\bdirector\b`), "Director"},
		{MustRegex(`\b(sr\.?|senior)\s*system\s+analyst\b`), "Senior System Analyst"},
		{Keywords("system", "analyst"), "System Analyst"},
		{MustRegex(`\b(asst\.?|assistant)\s*programmer\b`), "Assistant Programmer"},
		{Substring("programmer"), "Programmer"},
		{Keywords("informatics", "assistant"), "Informatics Assistant"},
		{Keywords("technical", "assistant"), "Technical Assistant"},
		{MustRegex(`\b(jr\.?|junior)\s*engineer\b`), "Junior Engineer"},
		{MustRegex(`\b(sr\.?|senior)\s*engineer\b`), "Senior Engineer"},
		{MustRegex(`\b(executive|exen)\s*engineer\b`), "Executive Engineer"},
		{MustRegex(`\b(jr\.?|junior)\s*accountant\b`), "Junior Accountant"},
		{Substring("accountant"), "Accountant"},
		{MustRegex(`\bsteno(grapher)?\b`), "Stenographer"},
		{MustRegex(`\b(clerk|ldc|udc)\b`), "Clerk"},
		{MustRegex(`\bdriver\b`), "Driver"},
		{MustRegex(`\b(peon|class\s*iv|multi\s*tasking\s*staff)\b`), "Peon"},
		{MustRegex(`\bcommissioner\b`), "Commissioner"},
		{MustRegex(`\bsecretary\b`), "Secretary"},
		{MustRegex(`\bsuperintendent\b`), "Superintendent"},
		{MustRegex(`\bofficer\b`), "Officer"},
	}
}
