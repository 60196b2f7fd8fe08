package report

import (
	"encoding/json"
	"io"

	"github.com/nao1215/pagegrade/internal/model"
)

// JSONWriter outputs reports in JSON format.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	indent bool
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithPrettyPrint enables pretty-printed JSON with two-space indentation.
func WithPrettyPrint() JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// JSONReport adds the derived totals to a report.
type JSONReport struct {
	*model.Report

	// Total is the sum of awarded points.
	Total int `json:"total"`

	// Max is the sum of possible points.
	Max int `json:"max"`

	// Passed reports whether Total reaches the threshold.
	Passed bool `json:"passed"`
}

// NewJSONReport wraps report with its totals.
func NewJSONReport(report *model.Report) *JSONReport {
	return &JSONReport{
		Report: report,
		Total:  report.Total(),
		Max:    report.Max(),
		Passed: report.Passed(),
	}
}

// Result is the outcome of grading one submission directory.
// Report is nil when grading stopped with an error.
type Result struct {
	// Dir is the submission directory.
	Dir string

	// Fingerprint is the submission digest, if the submission was loaded.
	Fingerprint string

	// Report is the grading report.
	Report *model.Report

	// Err is the error that stopped grading.
	Err error
}

// jsonResult is the JSON form of Result.
type jsonResult struct {
	Directory   string      `json:"directory"`
	Fingerprint string      `json:"fingerprint,omitempty"`
	Error       string      `json:"error,omitempty"`
	Report      *JSONReport `json:"report,omitempty"`
}

// Write outputs a single report in JSON format.
func (w *JSONWriter) Write(report *model.Report) (int, error) {
	return w.writeJSON(NewJSONReport(report))
}

// WriteResults outputs the results of a batch as a JSON array.
func (w *JSONWriter) WriteResults(results []Result) (int, error) {
	out := make([]jsonResult, len(results))
	for i, r := range results {
		out[i] = jsonResult{
			Directory:   r.Dir,
			Fingerprint: r.Fingerprint,
		}
		if r.Err != nil {
			out[i].Error = r.Err.Error()
		}
		if r.Report != nil {
			out[i].Report = NewJSONReport(r.Report)
		}
	}
	return w.writeJSON(out)
}

// writeJSON marshals the given value to JSON and writes it to the output.
func (w *JSONWriter) writeJSON(v any) (int, error) {
	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return 0, err
	}

	data = append(data, '\n')
	return w.output.Write(data)
}
