// Package main provides the entry point for the pagegrade CLI.
//
// pagegrade grades static HTML/CSS submissions against a rubric, writes a
// Markdown feedback file into each submission directory and exits non-zero
// when a submission fails.
//
// Usage:
//
//	pagegrade grade [dir...]
//	pagegrade history [dir]
//
// See --help for all available options.
package main

func main() {
	Execute()
}
