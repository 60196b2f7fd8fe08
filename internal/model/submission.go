package model

import "path/filepath"

// Submission is the raw material of one grading run.
// It is created once by the loader and never modified afterwards.
type Submission struct {
	// Dir is the directory the submission was loaded from.
	Dir string `json:"dir"`

	// HTMLPath is the path of the HTML document that was graded.
	HTMLPath string `json:"html_path"`

	// HTML is the full text of the HTML document.
	HTML string `json:"-"`

	// CSS is the text of the stylesheet in use.
	// Empty when no stylesheet file was found.
	CSS string `json:"-"`

	// Stylesheets lists every stylesheet file name found in Dir,
	// in directory listing order. The first one is the one in use.
	Stylesheets []string `json:"stylesheets,omitempty"`

	// Fingerprint is the hex digest of the HTML and CSS text.
	// Two submissions with the same fingerprint grade identically.
	Fingerprint string `json:"fingerprint"`
}

// HasStylesheet reports whether at least one stylesheet file was found.
func (s *Submission) HasStylesheet() bool {
	return len(s.Stylesheets) > 0
}

// Stylesheet returns the file name of the stylesheet in use,
// or an empty string when none was found.
func (s *Submission) Stylesheet() string {
	if !s.HasStylesheet() {
		return ""
	}
	return s.Stylesheets[0]
}

// StylesheetPath returns the full path of the stylesheet in use.
func (s *Submission) StylesheetPath() string {
	if !s.HasStylesheet() {
		return ""
	}
	return filepath.Join(s.Dir, s.Stylesheets[0])
}
