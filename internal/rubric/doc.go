// Package rubric scores a submission against a fixed grading rubric.
//
// A rubric is organised as a Profile: an ordered list of scored checks,
// an ordered list of advisory warnings and a pass threshold. Every check
// is a pure function of the parsed page and the raw HTML and CSS text, so
// checks can be evaluated in any order and a submission always receives
// the same score.
//
// Two profiles are compiled in:
//
//   - media: CSS & Media (12 points, pass at 8)
//   - structure: HTML Structure (12 points, pass at 8)
//
// A check may be worth no points and still report whether its criterion
// is met. Warnings never change the score. They point out habits the course
// discourages, such as inline styles or text outside any element.
package rubric
