package rubric

import "strings"

// attributionKeywords signal that an image credit is shown on the page.
var attributionKeywords = []string{
	"attribution",
	"image by",
	"photo by",
	"credit",
	"source",
	"license",
	"cc-by",
	"public domain",
}

// licenseKeywords signal that a license is named somewhere on the page.
var licenseKeywords = []string{
	"cc-by",
	"cc-0",
	"public domain",
	"attribution",
	"creative commons",
	"cc license",
}

// textProperties are CSS properties that style text.
var textProperties = []string{
	"color",
	"font-size",
	"font-weight",
	"font-family",
	"font-style",
	"text-align",
	"line-height",
	"letter-spacing",
}

// elementProperties are CSS properties that style boxes and layout.
var elementProperties = []string{
	"margin",
	"padding",
	"background-color",
	"background",
	"border",
	"border-radius",
	"width",
	"height",
	"display",
	"position",
}

// AIToolKeywords names AI writing tools. The list is published for
// reference; the AI Assistance warning only looks for the generic
// phrases in aiHTMLMarker and aiCSSMarker.
var AIToolKeywords = []string{
	"chatgpt",
	"claude",
	"copilot",
	"artificial intelligence",
}

const (
	// aiHTMLMarker is searched for in the lowercased HTML.
	aiHTMLMarker = "generated by"

	// aiCSSMarker is searched for in the lowercased CSS.
	aiCSSMarker = "ai-generated"
)

// matchedKeywords returns the distinct keywords that occur in text,
// in keyword list order.
func matchedKeywords(text string, keywords []string) []string {
	found := make([]string, 0)
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			found = append(found, kw)
		}
	}
	return found
}
