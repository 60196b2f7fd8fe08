package model

// CheckResult is the outcome of one scored rubric check.
type CheckResult struct {
	// Category is the rubric row name, e.g. "Images Required".
	Category string `json:"category"`

	// Awarded is the number of points earned. Always in [0, Possible].
	Awarded int `json:"awarded"`

	// Possible is the maximum number of points for this check.
	// Feedback-only rows have zero possible points.
	Possible int `json:"possible"`

	// Met reports whether the criterion was satisfied. For scored rows it
	// is true when every possible point was awarded.
	Met bool `json:"met"`

	// Message explains why the points were (or were not) awarded.
	Message string `json:"message"`

	// Criterion describes in prose what the check looks for.
	Criterion string `json:"criterion,omitempty"`
}

// Status returns the derived pass/partial/fail status of the result.
func (r CheckResult) Status() Status {
	if r.Possible == 0 {
		if r.Met {
			return StatusFull
		}
		return StatusFail
	}
	return StatusOf(r.Awarded, r.Possible)
}

// Warning is an advisory note. Warnings never affect the score.
type Warning struct {
	// Title is a short label, e.g. "Inline Styles".
	Title string `json:"title"`

	// Message describes what was detected and what to do about it.
	Message string `json:"message"`
}

// ImageCredit is a piece of authorship metadata found inside an image file.
type ImageCredit struct {
	// Source is the src attribute of the <img> element.
	Source string `json:"source"`

	// Tag is the EXIF tag the value came from (Artist, Copyright, ...).
	Tag string `json:"tag"`

	// Value is the formatted tag value.
	Value string `json:"value"`
}

// StylesheetSummary is an informational overview of the stylesheet in use.
// It is not used for scoring.
type StylesheetSummary struct {
	// File is the stylesheet file name.
	File string `json:"file"`

	// Rules is the number of rule sets, including nested ones.
	Rules int `json:"rules"`

	// Declarations is the number of property declarations.
	Declarations int `json:"declarations"`

	// Properties lists distinct property names, sorted.
	Properties []string `json:"properties,omitempty"`

	// ParseError holds the parser's complaint when the stylesheet
	// could not be read as CSS.
	ParseError string `json:"parse_error,omitempty"`
}
