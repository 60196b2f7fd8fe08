package rubric

import (
	"github.com/nao1215/pagegrade/internal/model"
)

// Engine evaluates a profile against submissions.
type Engine struct {
	profile *Profile
}

// NewEngine creates an Engine for the given profile.
func NewEngine(profile *Profile) *Engine {
	return &Engine{profile: profile}
}

// Profile returns the profile the engine evaluates.
func (e *Engine) Profile() *Profile {
	return e.profile
}

// Evaluate runs every check and warning rule in order and returns the
// report. Awarded points are clamped to [0, possible], so the total is
// always between zero and the profile maximum.
func (e *Engine) Evaluate(in *Input) *model.Report {
	report := model.NewReport(e.profile.Name, e.profile.Title, e.profile.Threshold)

	for _, c := range e.profile.Checks {
		result := c.Evaluate(in)
		result.Category = c.Category()
		result.Possible = c.Possible()
		result.Criterion = c.Criterion()
		result.Awarded = clamp(result.Awarded, 0, result.Possible)
		if result.Possible > 0 {
			result.Met = result.Awarded == result.Possible
		}
		report.AddResult(result)
	}

	for _, w := range e.profile.Warnings {
		if msg, ok := w.Detect(in); ok {
			report.AddWarning(model.Warning{Title: w.Title, Message: msg})
		}
	}

	return report
}

// clamp restricts v to [lo, hi].
func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
