// Package stylesheet produces an informational overview of a CSS file.
//
// The overview is shown in reports next to the score so that a student can
// see which properties the grader found. Scoring itself works on the raw
// stylesheet text and never consults this package.
package stylesheet

import (
	"sort"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"

	"github.com/nao1215/pagegrade/internal/model"
)

// Summarize parses text and counts its rules, declarations and distinct
// property names. A parse failure is recorded in the summary rather than
// returned, since the overview is never fatal.
func Summarize(file, text string) *model.StylesheetSummary {
	summary := &model.StylesheetSummary{
		File:       file,
		Properties: make([]string, 0),
	}
	if strings.TrimSpace(text) == "" {
		return summary
	}

	sheet, err := parser.Parse(text)
	if err != nil {
		summary.ParseError = err.Error()
		return summary
	}

	seen := make(map[string]struct{})
	var visit func(rules []*css.Rule)
	visit = func(rules []*css.Rule) {
		for _, rule := range rules {
			summary.Rules++
			for _, decl := range rule.Declarations {
				summary.Declarations++
				seen[strings.ToLower(decl.Property)] = struct{}{}
			}
			visit(rule.Rules)
		}
	}
	visit(sheet.Rules)

	for prop := range seen {
		summary.Properties = append(summary.Properties, prop)
	}
	sort.Strings(summary.Properties)
	return summary
}
