// Package loader reads a submission from disk.
//
// A submission is a directory holding a required HTML document
// (index.html by default) and zero or more stylesheets. The first
// stylesheet in directory listing order is the one that gets graded.
//
// A missing HTML document is the only fatal condition: it is a
// precondition of grading rather than something to score. A missing
// stylesheet simply yields empty CSS text.
package loader
