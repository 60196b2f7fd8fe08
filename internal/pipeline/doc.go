// Package pipeline runs a grading job as an ordered list of steps.
//
// A single run goes through four steps:
//
//  1. load: read the HTML document and stylesheet from disk
//  2. parse: build the query view of the HTML
//  3. inspect: gather image metadata and the stylesheet overview
//  4. evaluate: score the submission against the rubric
//
// Each step receives the shared Run state and fills in its part. A panic in
// any step is recovered and turned into an error so that one malformed
// submission cannot crash the process.
//
// Several submissions can be graded at once with BatchProcessor, which
// bounds concurrency with errgroup and returns results in input order.
package pipeline
