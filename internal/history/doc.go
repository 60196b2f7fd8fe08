// Package history stores past grading runs in a local SQLite database.
//
// Every run records the submission directory, the profile, the score and
// a fingerprint of the submitted files. The full report is kept as JSON so
// that older runs can be shown again without regrading.
//
// The database uses modernc.org/sqlite, a pure Go driver, so the binary
// needs no C toolchain.
package history
