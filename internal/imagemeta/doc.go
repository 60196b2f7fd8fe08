// Package imagemeta reads authorship metadata from the images a page uses.
//
// Photographers often embed their name or a copyright line in the EXIF
// block of a photo. When a submission uses such an image, the grader
// reminds the student that the credit belongs on the page as well.
//
// Only images stored inside the submission directory and inline data:
// URLs are examined. Remote images are never fetched, and src values that
// point outside the submission directory are ignored.
package imagemeta
