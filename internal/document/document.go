package document

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

// Document is a parsed HTML page.
type Document struct {
	root *html.Node
	body *html.Node
}

// Parse parses htmlText into a Document.
// When the parser reports an error the Document is an empty tree.
func Parse(htmlText string) *Document {
	root, err := html.Parse(strings.NewReader(htmlText))
	if err != nil {
		root = &html.Node{Type: html.DocumentNode}
	}
	return &Document{
		root: root,
		body: findFirst(root, "body"),
	}
}

// CountByTag returns the number of elements named tag.
func (d *Document) CountByTag(tag string) int {
	return len(d.Elements(tag))
}

// CountWithValue returns the number of elements named tag whose attr is
// present with a non-empty value.
func (d *Document) CountWithValue(tag, attr string) int {
	count := 0
	for _, n := range d.Elements(tag) {
		if Attr(n, attr) != "" {
			count++
		}
	}
	return count
}

// Elements returns every element named tag in document order.
func (d *Document) Elements(tag string) []*html.Node {
	tag = strings.ToLower(tag)
	nodes := make([]*html.Node, 0)
	walk(d.root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.Data == tag {
			nodes = append(nodes, n)
		}
		return true
	})
	return nodes
}

// HasAttr reports whether n carries the attribute key.
func HasAttr(n *html.Node, key string) bool {
	_, ok := lookupAttr(n, key)
	return ok
}

// Attr returns the value of attribute key on n, or "" when absent.
func Attr(n *html.Node, key string) string {
	val, _ := lookupAttr(n, key)
	return val
}

// Text returns the lowercased text of the whole page.
// Text nodes are concatenated as written, without separators, and text
// inside <script>, <style> and <template> is excluded.
func (d *Document) Text() string {
	return strings.ToLower(textOf(d.root))
}

// BodyText returns the text of <body> as written, or "" without a body.
func (d *Document) BodyText() string {
	if d.body == nil {
		return ""
	}
	return textOf(d.body)
}

// ParentText returns the lowercased text of the parent elements of the
// elements named tag. A parent shared by several elements contributes its
// text once, and parents appear in document order.
func (d *Document) ParentText(tag string) string {
	parents := make(map[*html.Node]bool)
	for _, n := range d.Elements(tag) {
		if n.Parent != nil && n.Parent.Type == html.ElementNode {
			parents[n.Parent] = true
		}
	}
	if len(parents) == 0 {
		return ""
	}

	var sb strings.Builder
	walk(d.root, func(n *html.Node) bool {
		if parents[n] {
			sb.WriteString(textOf(n))
		}
		return true
	})
	return strings.ToLower(sb.String())
}

// BodyInnerHTML returns the rendered markup of the children of <body>.
func (d *Document) BodyInnerHTML() string {
	if d.body == nil {
		return ""
	}
	var buf bytes.Buffer
	for c := d.body.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			// Render only fails on writer errors, which bytes.Buffer never returns.
			return buf.String()
		}
	}
	return buf.String()
}

// ImageSources returns the non-empty src attributes of <img> elements.
func (d *Document) ImageSources() []string {
	sources := make([]string, 0)
	for _, n := range d.Elements("img") {
		if src := strings.TrimSpace(Attr(n, "src")); src != "" {
			sources = append(sources, src)
		}
	}
	return sources
}

// walk visits n and its descendants depth-first in document order.
// Returning false from fn skips the node's children.
func walk(n *html.Node, fn func(*html.Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

// findFirst returns the first element named tag, or nil.
func findFirst(root *html.Node, tag string) *html.Node {
	var found *html.Node
	walk(root, func(n *html.Node) bool {
		if found != nil {
			return false
		}
		if n.Type == html.ElementNode && n.Data == tag {
			found = n
			return false
		}
		return true
	})
	return found
}

// textOf concatenates the text nodes under n verbatim.
func textOf(n *html.Node) string {
	var sb strings.Builder
	walk(n, func(c *html.Node) bool {
		switch c.Type {
		case html.ElementNode:
			if isOpaque(c.Data) {
				return false
			}
		case html.TextNode:
			sb.WriteString(c.Data)
		}
		return true
	})
	return sb.String()
}

// isOpaque reports whether the text content of an element is not page text.
func isOpaque(tag string) bool {
	switch tag {
	case "script", "style", "template":
		return true
	default:
		return false
	}
}

// lookupAttr retrieves an attribute value from an HTML node.
func lookupAttr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	key = strings.ToLower(key)
	for _, attr := range n.Attr {
		if attr.Namespace == "" && attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}
