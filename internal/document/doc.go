// Package document provides a read-only query view over a parsed HTML page.
//
// The page is parsed once with golang.org/x/net/html, which follows the
// HTML5 parsing algorithm and therefore accepts any input: unclosed tags,
// stray end tags and missing <html>/<body> elements are repaired the same
// way a browser would repair them. Parse never fails.
//
// Tag and attribute names are compared in lowercase because the HTML5
// tokenizer lowercases them.
package document
