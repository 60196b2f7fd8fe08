package rubric

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Structure profile categories.
const (
	CategoryStructure   = "Structure"
	CategoryHierarchy   = "Hierarchy"
	CategoryCodeHygiene = "Code Hygiene"
	CategoryContent     = "Content"
	CategorySyntaxCheck = "Syntax Check"
)

// structureTags are the content elements counted by the Structure row.
var structureTags = []string{"h1", "h2", "h3", "h4", "h5", "h6", "p", "ul", "ol", "li"}

// minStructureTags is the number of distinct structureTags that earns
// the Structure points.
const minStructureTags = 3

// minBodyText is the body text length, in characters, that must be
// exceeded for the page to count as rendering.
const minBodyText = 50

// htmlCommentPattern matches an HTML comment in raw markup.
var htmlCommentPattern = regexp.MustCompile(`(?s)<!--.*?-->`)

// structureChecks returns the checks of the structure profile in rubric order.
func structureChecks() []Check {
	return []Check{
		newCheck(CategoryStructure, 3,
			"The page uses at least three kinds of headings, paragraphs and list elements.",
			scoreStructure),
		newFeedbackCheck(CategoryHierarchy,
			"The page has exactly one h1 main title.",
			checkHierarchy),
		newCheck(CategoryCodeHygiene, 3,
			"The markup labels its sections with HTML comments.",
			scoreCodeHygiene),
		newCheck(CategoryContent, 3,
			"The page has a paragraph and a ul or ol list with list items.",
			scoreContent),
		newCheck(CategorySyntaxCheck, 3,
			"The body renders more than 50 characters of text.",
			scoreSyntaxCheck),
	}
}

func scoreStructure(in *Input) (int, string) {
	used := 0
	for _, tag := range structureTags {
		if in.Document.CountByTag(tag) > 0 {
			used++
		}
	}
	if used >= minStructureTags {
		return 3, fmt.Sprintf("Great job! You used %d different types of tags.", used)
	}
	return 0, fmt.Sprintf("You only used %d tag types. Try adding lists or headers!", used)
}

func checkHierarchy(in *Input) (bool, string) {
	switch n := in.Document.CountByTag("h1"); {
	case n == 1:
		return true, "Perfect! You have exactly one main title (H1)."
	case n > 1:
		return false, "Warning: You generally only want ONE H1 tag per page."
	default:
		return false, "Missing an <h1> tag for your main title."
	}
}

func scoreCodeHygiene(in *Input) (int, string) {
	if htmlCommentPattern.MatchString(in.HTML) {
		return 3, "Comments found! Good job documenting your sections."
	}
	return 0, "No comments found. Use <!-- Comment --> to label sections."
}

func scoreContent(in *Input) (int, string) {
	doc := in.Document
	hasParagraphs := doc.CountByTag("p") > 0
	hasList := doc.CountByTag("ul") > 0 || doc.CountByTag("ol") > 0
	hasListItems := doc.CountByTag("li") > 0

	if hasParagraphs && hasList && hasListItems {
		return 3, "Page content looks substantial (Bio + List)."
	}

	missing := make([]string, 0, 3)
	if !hasParagraphs {
		missing = append(missing, "Paragraphs")
	}
	if !hasList {
		missing = append(missing, "A List (ul or ol)")
	}
	if !hasListItems {
		missing = append(missing, "List items (li)")
	}
	return 0, "Page is feeling thin. Missing: " + strings.Join(missing, ", ")
}

func scoreSyntaxCheck(in *Input) (int, string) {
	text := strings.TrimSpace(in.Document.BodyText())
	if utf8.RuneCountInString(text) > minBodyText {
		return 3, "Content is rendering text to the screen."
	}
	return 0, "Your page seems empty. Check for unclosed tags!"
}
