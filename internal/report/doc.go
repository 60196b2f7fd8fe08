// Package report renders grading reports.
//
// This package contains writers for different output formats:
//   - MarkdownWriter: the feedback file committed next to the submission
//   - SimpleWriter: text for the terminal, colored when the terminal allows
//   - JSONWriter: structured output for other tools
//   - HTMLWriter: the Markdown report rendered as a standalone HTML page
//
// Reports carry no timestamps, so writing the same report twice produces
// identical bytes.
package report
