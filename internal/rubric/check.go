package rubric

import (
	"github.com/nao1215/pagegrade/internal/document"
	"github.com/nao1215/pagegrade/internal/model"
)

// Input is everything a check may look at.
type Input struct {
	// Document is the parsed HTML page.
	Document *document.Document

	// HTML is the raw HTML text.
	HTML string

	// CSS is the raw text of the stylesheet in use, or empty.
	CSS string

	// HasStylesheet reports whether any stylesheet file was found.
	// A stylesheet file may exist and still be empty.
	HasStylesheet bool

	// ImageCredits holds authorship metadata found in the page's images.
	ImageCredits []model.ImageCredit
}

// Check is one scored rubric row.
type Check interface {
	// Category returns the rubric row name.
	Category() string

	// Possible returns the maximum points for the row.
	Possible() int

	// Criterion describes in prose what earns the points.
	Criterion() string

	// Evaluate scores the input. The engine clamps the awarded points
	// to [0, Possible()], so implementations need not.
	Evaluate(in *Input) model.CheckResult
}

// scoreFunc computes awarded points and a feedback message.
type scoreFunc func(in *Input) (int, string)

// feedbackFunc reports whether a criterion is met, with a message.
type feedbackFunc func(in *Input) (bool, string)

// check is a Check built from a scoring function.
type check struct {
	category  string
	possible  int
	criterion string
	score     scoreFunc
	feedback  feedbackFunc
}

// newCheck creates a Check.
func newCheck(category string, possible int, criterion string, score scoreFunc) Check {
	return &check{category: category, possible: possible, criterion: criterion, score: score}
}

// newFeedbackCheck creates a Check worth no points. It still reports
// whether its criterion is met.
func newFeedbackCheck(category, criterion string, feedback feedbackFunc) Check {
	return &check{category: category, criterion: criterion, feedback: feedback}
}

// Category returns the rubric row name.
func (c *check) Category() string {
	return c.category
}

// Possible returns the maximum points.
func (c *check) Possible() int {
	return c.possible
}

// Criterion describes what earns the points.
func (c *check) Criterion() string {
	return c.criterion
}

// Evaluate runs the scoring or feedback function.
func (c *check) Evaluate(in *Input) model.CheckResult {
	result := model.CheckResult{
		Category:  c.category,
		Possible:  c.possible,
		Criterion: c.criterion,
	}
	if c.feedback != nil {
		result.Met, result.Message = c.feedback(in)
		return result
	}
	result.Awarded, result.Message = c.score(in)
	result.Met = result.Awarded >= c.possible
	return result
}

// WarningRule detects one advisory condition.
type WarningRule struct {
	// Title is the warning label.
	Title string

	// Detect returns the warning message and true when the condition holds.
	Detect func(in *Input) (string, bool)
}
