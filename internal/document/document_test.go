package document

import (
	"slices"
	"testing"
)

// TestParse tests that any input produces a usable document.
func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()

		doc := Parse("")
		if doc.CountByTag("img") != 0 {
			t.Error("expected no images")
		}
		if doc.BodyInnerHTML() != "" {
			t.Errorf("expected empty body, got %q", doc.BodyInnerHTML())
		}
		if doc.BodyText() != "" {
			t.Errorf("expected no body text, got %q", doc.BodyText())
		}
	})

	t.Run("malformed markup is repaired", func(t *testing.T) {
		t.Parallel()

		doc := Parse(`<p>unclosed <div><img src="a.png"></span>`)
		if got := doc.CountByTag("p"); got != 1 {
			t.Errorf("expected 1 p, got %d", got)
		}
		if got := doc.CountByTag("IMG"); got != 1 {
			t.Errorf("expected tag lookup to be case-insensitive, got %d", got)
		}
	})
}

// TestCounting tests element and attribute counting.
func TestCounting(t *testing.T) {
	t.Parallel()

	doc := Parse(`<html><body>
		<img src="a.png" class="hero">
		<img src="b.png" alt="" class="">
		<img class=" ">
		<p class="intro">text</p>
	</body></html>`)

	tests := []struct {
		name string
		tag  string
		attr string
		want int
	}{
		{"empty class does not count", "img", "class", 2},
		{"empty alt does not count", "img", "alt", 0},
		{"src", "img", "src", 2},
		{"class on p", "p", "class", 1},
		{"missing tag", "video", "src", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := doc.CountWithValue(tt.tag, tt.attr); got != tt.want {
				t.Errorf("CountWithValue(%q, %q) = %d, want %d", tt.tag, tt.attr, got, tt.want)
			}
		})
	}

	if got := doc.CountByTag("img"); got != 3 {
		t.Errorf("expected 3 images, got %d", got)
	}
}

// TestAttr tests attribute lookup on individual elements.
func TestAttr(t *testing.T) {
	t.Parallel()

	doc := Parse(`<img src="cat.jpg" ALT="A cat">`)
	imgs := doc.Elements("img")
	if len(imgs) != 1 {
		t.Fatalf("expected 1 image, got %d", len(imgs))
	}

	if got := Attr(imgs[0], "src"); got != "cat.jpg" {
		t.Errorf("expected src cat.jpg, got %q", got)
	}
	if got := Attr(imgs[0], "alt"); got != "A cat" {
		t.Errorf("expected alt 'A cat', got %q", got)
	}
	if HasAttr(imgs[0], "class") {
		t.Error("expected no class attribute")
	}
	if Attr(nil, "src") != "" {
		t.Error("expected empty value for nil node")
	}
}

// TestText tests page text extraction.
func TestText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "text nodes are concatenated as written",
			html: `<p>Licensed <strong>CC</strong>-BY</p>`,
			want: "licensed cc-by",
		},
		{
			name: "no separator between adjacent elements",
			html: `<ul><li>Photo</li><li>by</li></ul>`,
			want: "photoby",
		},
		{
			name: "whitespace is kept",
			html: "<p>Hello\n   <b>World</b></p>",
			want: "hello\n   world",
		},
		{
			name: "script, style, template and comments are excluded",
			html: `<html><head><title>My Page</title><style>p { color: red; }</style></head>` +
				`<body><p>Hi</p><script>var secret = 1;</script>` +
				`<template><p>hidden</p></template><!-- Creative Commons --></body></html>`,
			want: "my pagehi",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Parse(tt.html).Text(); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestBodyText tests the text of the body element.
func TestBodyText(t *testing.T) {
	t.Parallel()

	doc := Parse(`<html><head><title>Title</title></head><body> <h1>Fan Page</h1><p>About <em>Me</em></p> </body></html>`)
	want := " Fan PageAbout Me "
	if got := doc.BodyText(); got != want {
		t.Errorf("BodyText() = %q, want %q", got, want)
	}
}

// TestParentText tests the text of image parent elements.
func TestParentText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "figure captions in document order",
			html: `<body><figure><img src="a.jpg"><figcaption>Photo by Jane, CC-BY</figcaption></figure>` +
				`<figure><img src="b.jpg"><figcaption>Image by Sam</figcaption></figure>` +
				`<p>Unrelated text</p></body>`,
			want: "photo by jane, cc-byimage by sam",
		},
		{
			name: "shared parent contributes once",
			html: `<body><div><img src="a.jpg"><img src="b.jpg"><span>Photo by Jane</span></div></body>`,
			want: "photo by jane",
		},
		{
			name: "no elements",
			html: `<p>credit</p>`,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Parse(tt.html).ParentText("img"); got != tt.want {
				t.Errorf("ParentText() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestBodyInnerHTML tests rendering of body children.
func TestBodyInnerHTML(t *testing.T) {
	t.Parallel()

	doc := Parse(`<html><head><title>x</title></head><body>Hello <b>there</b></body></html>`)
	if got := doc.BodyInnerHTML(); got != "Hello <b>there</b>" {
		t.Errorf("unexpected inner HTML %q", got)
	}
}

// TestImageSources tests image source extraction.
func TestImageSources(t *testing.T) {
	t.Parallel()

	doc := Parse(`<img src="a.jpg"><img src=""><img><img src=" photos/b.png ">`)
	want := []string{"a.jpg", "photos/b.png"}
	if got := doc.ImageSources(); !slices.Equal(got, want) {
		t.Errorf("ImageSources() = %v, want %v", got, want)
	}
}
