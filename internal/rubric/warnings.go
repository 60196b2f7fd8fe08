package rubric

import (
	"fmt"
	"regexp"
	"strings"
)

// Warning titles.
const (
	WarningInlineStyles = "Inline Styles"
	WarningUntaggedText = "Untagged Text"
	WarningNoCSSFile    = "No CSS File"
	WarningAIAssistance = "AI Assistance"
	WarningImageCredit  = "Image Metadata Credit"
)

// untaggedTextPattern matches body markup that starts with letters
// before any element.
var untaggedTextPattern = regexp.MustCompile(`^[^<]*[A-Za-z]`)

// defaultWarnings returns the warning rules of the media profile, in
// report order.
func defaultWarnings() []WarningRule {
	return []WarningRule{
		{Title: WarningInlineStyles, Detect: detectInlineStyles},
		{Title: WarningUntaggedText, Detect: detectUntaggedText},
		{Title: WarningNoCSSFile, Detect: detectNoCSSFile},
		{Title: WarningAIAssistance, Detect: detectAIAssistance},
		{Title: WarningImageCredit, Detect: detectImageCredit},
	}
}

func detectInlineStyles(in *Input) (string, bool) {
	if strings.Contains(in.HTML, "style=") {
		return "Inline style attributes found. Move styling into the stylesheet.", true
	}
	return "", false
}

func detectUntaggedText(in *Input) (string, bool) {
	body := strings.TrimSpace(in.Document.BodyInnerHTML())
	if untaggedTextPattern.MatchString(body) {
		return "Text found directly inside <body>. Wrap all text in elements such as <p>.", true
	}
	return "", false
}

func detectNoCSSFile(in *Input) (string, bool) {
	if !in.HasStylesheet {
		return "No .css file found. Link an external stylesheet.", true
	}
	return "", false
}

func detectAIAssistance(in *Input) (string, bool) {
	if strings.Contains(strings.ToLower(in.HTML), aiHTMLMarker) ||
		strings.Contains(strings.ToLower(in.CSS), aiCSSMarker) {
		return "Possible AI-generated content detected. Make sure the work is your own and disclose any assistance.", true
	}
	return "", false
}

func detectImageCredit(in *Input) (string, bool) {
	if len(in.ImageCredits) == 0 {
		return "", false
	}
	parts := make([]string, 0, len(in.ImageCredits))
	for _, c := range in.ImageCredits {
		parts = append(parts, fmt.Sprintf("%s (%s: %s)", c.Source, c.Tag, c.Value))
	}
	return fmt.Sprintf("Image metadata names a creator: %s. Make sure the credit is visible on the page.",
		strings.Join(parts, "; ")), true
}
