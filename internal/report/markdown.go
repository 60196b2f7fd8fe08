package report

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"

	"github.com/nao1215/pagegrade/internal/model"
)

// DefaultFeedbackFile is the name of the Markdown report written into
// each submission directory.
const DefaultFeedbackFile = "grading-feedback.md"

// MarkdownWriter outputs the feedback report in GitHub-flavored Markdown.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(report *model.Report) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeResults(md, report)
	w.writeTotal(md, report)
	w.writeWarnings(md, report)
	w.writeStylesheet(md, report)
	w.writeChecklist(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report title.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.Report) {
	md.H1("Grading Feedback: " + report.ProfileTitle)
	md.PlainText("")
}

// writeResults writes one table row per check.
func (w *MarkdownWriter) writeResults(md *markdown.Markdown, report *model.Report) {
	rows := make([][]string, len(report.Results))
	for i, res := range report.Results {
		rows[i] = []string{
			res.Status().Icon(),
			res.Category,
			pointsText(res.Awarded, res.Possible),
			escapeCell(res.Message),
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Status", "Category", "Points", "Feedback"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeTotal writes the score line and the pass/fail alert.
func (w *MarkdownWriter) writeTotal(md *markdown.Markdown, report *model.Report) {
	md.PlainTextf("**Total Score: %s** (%s, pass threshold %d)",
		pointsText(report.Total(), report.Max()), report.Verdict(), report.Threshold)
	md.PlainText("")

	if report.Passed() {
		md.Tip("This submission meets the passing threshold.")
	} else {
		md.Cautionf("This submission needs at least %d points to pass. Review the feedback above and resubmit.",
			report.Threshold)
	}
	md.PlainText("")
}

// writeWarnings writes advisory warnings. The section is omitted when
// nothing fired.
func (w *MarkdownWriter) writeWarnings(md *markdown.Markdown, report *model.Report) {
	if !report.HasWarnings() {
		return
	}

	md.H2("Warnings")
	md.PlainText("")
	items := make([]string, len(report.Warnings))
	for i, warn := range report.Warnings {
		items[i] = "**" + warn.Title + "**: " + warn.Message
	}
	md.BulletList(items...)
	md.PlainText("")
	md.Note("Warnings do not affect your score.")
	md.PlainText("")
}

// writeStylesheet writes the stylesheet overview when one is attached.
func (w *MarkdownWriter) writeStylesheet(md *markdown.Markdown, report *model.Report) {
	sheet := report.Stylesheet
	if sheet == nil {
		return
	}

	md.H2("Stylesheet Overview")
	md.PlainText("")

	properties := "-"
	if len(sheet.Properties) > 0 {
		properties = "`" + strings.Join(sheet.Properties, "`, `") + "`"
	}
	rows := [][]string{
		{"File", "`" + sheet.File + "`"},
		{"Rules", strconv.Itoa(sheet.Rules)},
		{"Declarations", strconv.Itoa(sheet.Declarations)},
		{"Properties", properties},
	}
	if sheet.ParseError != "" {
		rows = append(rows, []string{"Parse Error", escapeCell(sheet.ParseError)})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeChecklist writes the static description of every criterion.
func (w *MarkdownWriter) writeChecklist(md *markdown.Markdown, report *model.Report) {
	md.H2("Rubric Checklist")
	md.PlainText("")

	items := make([]string, 0, len(report.Results))
	for _, res := range report.Results {
		if res.Criterion == "" {
			continue
		}
		items = append(items, fmt.Sprintf("**%s** (%d pts): %s", res.Category, res.Possible, res.Criterion))
	}
	if len(items) > 0 {
		md.BulletList(items...)
		md.PlainText("")
	}
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainText("*Report generated by [pagegrade](https://github.com/nao1215/pagegrade)*")
}

// escapeCell keeps text from breaking a Markdown table row.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}

// RenderMarkdown returns the Markdown report as bytes.
func RenderMarkdown(report *model.Report) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := NewMarkdownWriter(&buf).Write(report); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteMarkdownFile writes the Markdown report to path, replacing any
// previous file, and returns the bytes written.
func WriteMarkdownFile(path string, report *model.Report) ([]byte, error) {
	data, err := RenderMarkdown(report)
	if err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return nil, fmt.Errorf("failed to write report: %w", err)
	}
	return data, nil
}
