package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/nao1215/pagegrade/internal/model"
)

// ruleWidth is the width of the separator lines.
const ruleWidth = 70

// SimpleWriter outputs human-readable text for the terminal.
// Status and verdict are colored unless color is disabled.
type SimpleWriter struct {
	baseWriter

	// colored enables ANSI colors.
	colored bool

	// heading is printed above the report, e.g. the submission directory.
	heading string

	pass *color.Color
	warn *color.Color
	fail *color.Color
	bold *color.Color
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithColor enables or disables ANSI colors. By default colors follow
// the terminal detection of fatih/color, which honors NO_COLOR.
func WithColor(enabled bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.colored = enabled
	}
}

// WithHeading prints heading above the report.
func WithHeading(heading string) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.heading = heading
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		colored:    !color.NoColor,
		pass:       color.New(color.FgGreen, color.Bold),
		warn:       color.New(color.FgYellow),
		fail:       color.New(color.FgRed, color.Bold),
		bold:       color.New(color.Bold),
	}

	for _, opt := range opts {
		opt(w)
	}

	for _, c := range []*color.Color{w.pass, w.warn, w.fail, w.bold} {
		if w.colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return w
}

// Write outputs the report in human-readable format.
func (w *SimpleWriter) Write(report *model.Report) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	w.writeResults(&sb, report)
	w.writeTotal(&sb, report)
	w.writeWarnings(&sb, report)

	return io.WriteString(w.output, sb.String())
}

// writeHeader writes the report title.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.Report) {
	sb.WriteString("\n")
	if w.heading != "" {
		sb.WriteString(w.bold.Sprint(w.heading))
		sb.WriteString("\n")
	}
	sb.WriteString(w.bold.Sprintf("Grading Feedback: %s", report.ProfileTitle))
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")
}

// writeResults writes one line per check.
func (w *SimpleWriter) writeResults(sb *strings.Builder, report *model.Report) {
	width := 0
	for _, res := range report.Results {
		width = max(width, len(res.Category))
	}

	for _, res := range report.Results {
		fmt.Fprintf(sb, "  %s  %-*s  %5s  %s\n",
			w.statusLabel(res.Status()),
			width, res.Category,
			pointsText(res.Awarded, res.Possible),
			res.Message,
		)
	}
}

// statusLabel returns a fixed-width colored status label.
func (w *SimpleWriter) statusLabel(s model.Status) string {
	label := fmt.Sprintf("%-7s", s.String())
	switch s {
	case model.StatusFull:
		return w.pass.Sprint(label)
	case model.StatusPartial:
		return w.warn.Sprint(label)
	default:
		return w.fail.Sprint(label)
	}
}

// writeTotal writes the score line.
func (w *SimpleWriter) writeTotal(sb *strings.Builder, report *model.Report) {
	sb.WriteString(strings.Repeat("-", ruleWidth))
	sb.WriteString("\n")

	verdict := w.fail.Sprint(report.Verdict())
	if report.Passed() {
		verdict = w.pass.Sprint(report.Verdict())
	}
	fmt.Fprintf(sb, "  Total Score: %s  %s (pass threshold %d)\n",
		pointsText(report.Total(), report.Max()), verdict, report.Threshold)
}

// writeWarnings writes advisory warnings, if any.
func (w *SimpleWriter) writeWarnings(sb *strings.Builder, report *model.Report) {
	if !report.HasWarnings() {
		return
	}

	sb.WriteString("\n")
	sb.WriteString(w.warn.Sprint("Warnings (not scored):"))
	sb.WriteString("\n")
	for _, warn := range report.Warnings {
		fmt.Fprintf(sb, "  ! %s: %s\n", warn.Title, warn.Message)
	}
}
