// Package model defines the core data structures used throughout pagegrade.
//
// This package contains the following main types:
//   - Submission: The student-provided HTML and optional stylesheet
//   - CheckResult: The outcome of one scored rubric check
//   - Warning: A non-scoring advisory note
//   - Report: The aggregated grading result for one submission
//
// Models live in their own package so that the loader, rubric, report and
// history packages can share them without import cycles. All types are
// serializable to JSON for report output and history storage.
package model
