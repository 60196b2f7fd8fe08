package report

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"os"
	"path/filepath"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/nao1215/pagegrade/internal/model"
)

// HTMLWriter renders the Markdown report as a standalone HTML page.
type HTMLWriter struct {
	baseWriter
	md goldmark.Markdown
}

// NewHTMLWriter creates an HTMLWriter that outputs to the given writer.
func NewHTMLWriter(output io.Writer) *HTMLWriter {
	return &HTMLWriter{
		baseWriter: newBaseWriter(output),
		md:         goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// Write outputs the report as HTML.
func (w *HTMLWriter) Write(report *model.Report) (int, error) {
	source, err := RenderMarkdown(report)
	if err != nil {
		return 0, err
	}

	var body bytes.Buffer
	if err := w.md.Convert(source, &body); err != nil {
		return 0, fmt.Errorf("failed to convert report to HTML: %w", err)
	}

	var page bytes.Buffer
	page.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&page, "<title>Grading Feedback: %s</title>\n", html.EscapeString(report.ProfileTitle))
	page.WriteString("</head>\n<body>\n")
	page.Write(body.Bytes())
	page.WriteString("</body>\n</html>\n")

	return w.output.Write(page.Bytes())
}

// WriteHTMLFile writes the HTML report to path, replacing any previous
// file. Missing parent directories are created.
func WriteHTMLFile(path string, report *model.Report) error {
	var buf bytes.Buffer
	if _, err := NewHTMLWriter(&buf).Write(report); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write HTML report: %w", err)
	}
	return nil
}
