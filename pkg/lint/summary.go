package lint

// Totals contains aggregate statistics over a batch of reports, typically
// one filter pass.
type Totals struct {
	Files           int `json:"filesChecked"`
	FilesWithIssues int `json:"filesWithIssues"`
	Issues          int `json:"totalIssues"`
	Errors          int `json:"errors"`
	Warnings        int `json:"warnings"`
}

// HasIssues returns true if there are any issues.
func (t Totals) HasIssues() bool {
	return t.Issues > 0
}

// HasErrors returns true if there are any error-severity issues.
func (t Totals) HasErrors() bool {
	return t.Errors > 0
}

// Summarize computes totals across a batch of reports. Counts come from the
// messages themselves, not the reports' advisory count fields.
func Summarize(reports []*Report) Totals {
	var t Totals
	for _, r := range reports {
		if r == nil {
			continue
		}
		t.Files++
		if len(r.Messages) == 0 {
			continue
		}
		t.FilesWithIssues++
		for _, m := range r.Messages {
			t.Issues++
			if m.Severity == SeverityError {
				t.Errors++
			} else {
				t.Warnings++
			}
		}
	}
	return t
}
