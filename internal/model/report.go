package model

// Report is the aggregated grading result for one submission.
//
// Reports intentionally carry no timestamp: grading the same submission
// twice must produce byte-identical output.
type Report struct {
	// Profile is the name of the rubric profile used, e.g. "media".
	Profile string `json:"profile"`

	// ProfileTitle is the display title of the profile, e.g. "CSS & Media".
	ProfileTitle string `json:"profile_title"`

	// Results holds one entry per check, in rubric order.
	Results []CheckResult `json:"results"`

	// Warnings holds advisory notes, in rubric order.
	Warnings []Warning `json:"warnings,omitempty"`

	// Threshold is the minimum total score that passes.
	Threshold int `json:"threshold"`

	// Stylesheet is an optional overview of the stylesheet in use.
	Stylesheet *StylesheetSummary `json:"stylesheet,omitempty"`
}

// NewReport creates an empty report for the given profile.
func NewReport(profile, title string, threshold int) *Report {
	return &Report{
		Profile:      profile,
		ProfileTitle: title,
		Results:      make([]CheckResult, 0),
		Warnings:     make([]Warning, 0),
		Threshold:    threshold,
	}
}

// AddResult appends a check result.
func (r *Report) AddResult(result CheckResult) {
	r.Results = append(r.Results, result)
}

// AddWarning appends an advisory warning.
func (r *Report) AddWarning(w Warning) {
	r.Warnings = append(r.Warnings, w)
}

// Total returns the sum of awarded points.
func (r *Report) Total() int {
	total := 0
	for _, res := range r.Results {
		total += res.Awarded
	}
	return total
}

// Max returns the sum of possible points.
func (r *Report) Max() int {
	total := 0
	for _, res := range r.Results {
		total += res.Possible
	}
	return total
}

// Passed reports whether the total score reaches the threshold.
func (r *Report) Passed() bool {
	return r.Total() >= r.Threshold
}

// HasWarnings reports whether any warning fired.
func (r *Report) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// Verdict returns "PASS" or "FAIL".
func (r *Report) Verdict() string {
	if r.Passed() {
		return "PASS"
	}
	return "FAIL"
}
