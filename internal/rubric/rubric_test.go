package rubric

import (
	"errors"
	"strings"
	"testing"

	"github.com/nao1215/pagegrade/internal/document"
	"github.com/nao1215/pagegrade/internal/model"
)

// newInput builds a check input from raw texts.
func newInput(html, css string, hasStylesheet bool) *Input {
	return &Input{
		Document:      document.Parse(html),
		HTML:          html,
		CSS:           css,
		HasStylesheet: hasStylesheet,
	}
}

// evaluate grades html and css with the named profile.
func evaluate(t *testing.T, profile string, in *Input) *model.Report {
	t.Helper()
	p, err := Lookup(profile)
	if err != nil {
		t.Fatalf("failed to look up profile %q: %v", profile, err)
	}
	return NewEngine(p).Evaluate(in)
}

// awarded returns the points per category.
func awarded(r *model.Report) map[string]int {
	m := make(map[string]int)
	for _, res := range r.Results {
		m[res.Category] = res.Awarded
	}
	return m
}

const galleryHTML = `<!DOCTYPE html>
<html>
<head><title>Gallery</title><link rel="stylesheet" href="style.css"></head>
<body>
<h1>Gallery</h1>
<figure><img src="a.jpg" class="img-class" alt="A"><figcaption>Photo by Jane, CC-BY</figcaption></figure>
<figure><img src="b.jpg" class="img-class" alt="B"><figcaption>Photo by Jane, CC-BY</figcaption></figure>
<figure><img src="c.jpg" class="img-class" alt="C"><figcaption>Photo by Jane, CC-BY</figcaption></figure>
</body>
</html>`

const galleryCSS = `.img-class { color: red; margin: 4px; background: blue; }`

// TestMediaProfile tests the CSS & Media rubric end to end.
func TestMediaProfile(t *testing.T) {
	t.Parallel()

	t.Run("well formed gallery scores 11 of 12", func(t *testing.T) {
		t.Parallel()

		r := evaluate(t, ProfileMedia, newInput(galleryHTML, galleryCSS, true))

		want := map[string]int{
			CategoryImagesRequired:     2,
			CategoryAttributionVisible: 2,
			CategoryLicenseInformation: 2,
			CategoryImageStyling:       2,
			CategoryTextStyling:        1,
			CategoryElementStyling:     2,
		}
		got := awarded(r)
		for category, points := range want {
			if got[category] != points {
				t.Errorf("%s: expected %d, got %d", category, points, got[category])
			}
		}
		if r.Total() != 11 || r.Max() != 12 {
			t.Errorf("expected 11/12, got %d/%d", r.Total(), r.Max())
		}
		if !r.Passed() {
			t.Error("expected report to pass")
		}
		if r.HasWarnings() {
			t.Errorf("expected no warnings, got %v", r.Warnings)
		}
	})

	t.Run("no images and no stylesheet fails", func(t *testing.T) {
		t.Parallel()

		r := evaluate(t, ProfileMedia, newInput(`<html><body><p>Hello</p></body></html>`, "", false))

		got := awarded(r)
		for _, category := range []string{CategoryImagesRequired, CategoryImageStyling, CategoryTextStyling, CategoryElementStyling} {
			if got[category] != 0 {
				t.Errorf("%s: expected 0, got %d", category, got[category])
			}
		}
		if r.Total() > 4 {
			t.Errorf("expected total <= 4, got %d", r.Total())
		}
		if r.Passed() {
			t.Error("expected report to fail")
		}
		if !hasWarning(r, WarningNoCSSFile) {
			t.Errorf("expected %q warning, got %v", WarningNoCSSFile, r.Warnings)
		}
	})

	t.Run("border only styling earns partial credit", func(t *testing.T) {
		t.Parallel()

		r := evaluate(t, ProfileMedia, newInput(galleryHTML, `img { border: 1px solid black; border-radius: 2px; }`, true))
		if got := awarded(r)[CategoryElementStyling]; got != 1 {
			t.Errorf("expected Element Styling 1, got %d", got)
		}
	})

	t.Run("results follow rubric order", func(t *testing.T) {
		t.Parallel()

		r := evaluate(t, ProfileMedia, newInput("", "", false))
		want := []string{
			CategoryImagesRequired,
			CategoryAttributionVisible,
			CategoryLicenseInformation,
			CategoryImageStyling,
			CategoryTextStyling,
			CategoryElementStyling,
		}
		if len(r.Results) != len(want) {
			t.Fatalf("expected %d results, got %d", len(want), len(r.Results))
		}
		for i, category := range want {
			if r.Results[i].Category != category {
				t.Errorf("result %d: expected %q, got %q", i, category, r.Results[i].Category)
			}
		}
	})
}

// TestMediaChecks tests individual media check tiers.
func TestMediaChecks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		score scoreFunc
		html  string
		css   string
		want  int
	}{
		{"one image", scoreImagesRequired, `<img><p>x</p>`, "", 1},
		{"two images", scoreImagesRequired, `<img><img>`, "", 1},
		{"attribution outside image parent", scoreAttributionVisible, `<div><img></div><p>Photo by Jane</p>`, "", 0},
		{"attribution in image parent", scoreAttributionVisible, `<p><img> Source: Unsplash</p>`, "", 2},
		{"license anywhere", scoreLicenseInformation, `<footer>Creative Commons</footer>`, "", 2},
		{"license in script ignored", scoreLicenseInformation, `<script>// cc-by</script>`, "", 0},
		{"classed image without selector", scoreImageStyling, `<img class="x">`, `img { color: red; }`, 1},
		{"selector without classed image", scoreImageStyling, `<img>`, `.x { color: red; }`, 0},
		{"empty class does not count", scoreImageStyling, `<img class="">`, `.x{}`, 0},
		{"blank class counts", scoreImageStyling, `<img class=" ">`, `.x{}`, 2},
		{"arrow in css comment is not a selector", scoreImageStyling, `<img class="x">`, `img { margin: 0 auto; } /* see ...-> */`, 1},
		{"license split by inline element", scoreLicenseInformation, `<p>Licensed <strong>CC</strong>-BY</p>`, "", 2},
		{"two text properties", scoreTextStyling, "", `p { font-size: 2em; text-align: center; }`, 2},
		{"background-color counts as color", scoreTextStyling, "", `p { background-color: red; font-family: serif; }`, 2},
		{"single element property", scoreElementStyling, "", `p { padding: 1em; }`, 0},
		{"border and padding", scoreElementStyling, "", `p { border: 0; padding: 1em; }`, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, msg := tt.score(newInput(tt.html, tt.css, tt.css != ""))
			if got != tt.want {
				t.Errorf("expected %d, got %d (%s)", tt.want, got, msg)
			}
			if msg == "" {
				t.Error("expected a feedback message")
			}
		})
	}
}

// TestImagesRequiredMonotonic tests that adding images never lowers the score.
func TestImagesRequiredMonotonic(t *testing.T) {
	t.Parallel()

	prev := -1
	for n := 0; n <= 6; n++ {
		html := "<body>" + strings.Repeat(`<img src="x.jpg">`, n) + "</body>"
		got, _ := scoreImagesRequired(newInput(html, "", false))
		if got < prev {
			t.Errorf("score dropped from %d to %d at %d images", prev, got, n)
		}
		prev = got
	}
	if prev != 2 {
		t.Errorf("expected full credit with many images, got %d", prev)
	}
}

// TestStructureProfile tests the HTML Structure rubric.
func TestStructureProfile(t *testing.T) {
	t.Parallel()

	t.Run("fan page earns full marks", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<!-- intro -->
<h1>My Fan Page</h1>
<h2>About</h2>
<p>` + strings.Repeat("a", 60) + `</p>
<ul><li>One</li><li>Two</li></ul>
</body></html>`

		r := evaluate(t, ProfileStructure, newInput(html, "", false))
		want := map[string]int{
			CategoryStructure:   3,
			CategoryHierarchy:   0,
			CategoryCodeHygiene: 3,
			CategoryContent:     3,
			CategorySyntaxCheck: 3,
		}
		got := awarded(r)
		for category, points := range want {
			if got[category] != points {
				t.Errorf("%s: expected %d, got %d", category, points, got[category])
			}
		}
		if r.Total() != 12 || r.Max() != 12 {
			t.Errorf("expected 12/12, got %d/%d: %+v", r.Total(), r.Max(), r.Results)
		}
		if r.Threshold != 8 || !r.Passed() {
			t.Errorf("expected a pass at threshold 8, got threshold %d passed %v", r.Threshold, r.Passed())
		}
		for _, res := range r.Results {
			if !res.Met || res.Status() != model.StatusFull {
				t.Errorf("%s: expected criterion met, got %+v", res.Category, res)
			}
		}
		if r.HasWarnings() {
			t.Errorf("expected no warnings, got %v", r.Warnings)
		}
	})

	t.Run("results follow rubric order", func(t *testing.T) {
		t.Parallel()

		r := evaluate(t, ProfileStructure, newInput("", "", false))
		want := []string{CategoryStructure, CategoryHierarchy, CategoryCodeHygiene, CategoryContent, CategorySyntaxCheck}
		if len(r.Results) != len(want) {
			t.Fatalf("expected %d results, got %d", len(want), len(r.Results))
		}
		for i, category := range want {
			if r.Results[i].Category != category {
				t.Errorf("result %d: expected %q, got %q", i, category, r.Results[i].Category)
			}
		}
		if r.Total() != 0 || r.Passed() {
			t.Errorf("expected an empty page to fail with 0, got %d", r.Total())
		}
	})

	t.Run("tiers", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name    string
			score   scoreFunc
			html    string
			want    int
			message string
		}{
			{"two tag types", scoreStructure, `<h1>T</h1><p>x</p>`, 0, "You only used 2 tag types."},
			{"three tag types", scoreStructure, `<h1>T</h1><p>x</p><h3>y</h3>`, 3, "You used 3 different"},
			{"other tags do not count", scoreStructure, `<p><em>x</em><b>y</b><img></p>`, 0, "You only used 1 tag types."},
			{"comment in head", scoreCodeHygiene, `<html><head><!-- meta --></head><body></body></html>`, 3, "Comments found!"},
			{"no comment", scoreCodeHygiene, `<p>x</p>`, 0, "No comments found."},
			{"no list", scoreContent, `<p>x</p>`, 0, "Missing: A List (ul or ol)"},
			{"list without items", scoreContent, `<p>x</p><ol></ol>`, 0, "Missing: List items (li)"},
			{"no paragraph", scoreContent, `<ol><li>x</li></ol>`, 0, "Missing: Paragraphs"},
			{"ordered list", scoreContent, `<p>x</p><ol><li>x</li></ol>`, 3, "substantial"},
			{"fifty characters", scoreSyntaxCheck, `<p>` + strings.Repeat("x", 50) + `</p>`, 0, "seems empty"},
			{"fifty one characters", scoreSyntaxCheck, `<p>` + strings.Repeat("x", 51) + `</p>`, 3, "rendering text"},
			{"surrounding space is trimmed", scoreSyntaxCheck, `<p>   ` + strings.Repeat("x", 50) + `   </p>`, 0, "seems empty"},
			{"script text does not render", scoreSyntaxCheck, `<script>` + strings.Repeat("x", 60) + `</script>`, 0, "seems empty"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()
				got, msg := tt.score(newInput(tt.html, "", false))
				if got != tt.want {
					t.Errorf("expected %d, got %d (%s)", tt.want, got, msg)
				}
				if !strings.Contains(msg, tt.message) {
					t.Errorf("expected message containing %q, got %q", tt.message, msg)
				}
			})
		}
	})

	t.Run("hierarchy", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name    string
			html    string
			met     bool
			message string
		}{
			{"one h1", `<h1>a</h1><h2>b</h2>`, true, "exactly one main title"},
			{"two h1", `<h1>a</h1><h1>b</h1>`, false, "only want ONE H1"},
			{"no h1", `<h2>b</h2>`, false, "Missing an <h1>"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()
				r := evaluate(t, ProfileStructure, newInput(tt.html, "", false))
				res := r.Results[1]
				if res.Category != CategoryHierarchy || res.Possible != 0 || res.Awarded != 0 {
					t.Fatalf("unexpected hierarchy row %+v", res)
				}
				if res.Met != tt.met {
					t.Errorf("expected met %v, got %v", tt.met, res.Met)
				}
				if !strings.Contains(res.Message, tt.message) {
					t.Errorf("expected message containing %q, got %q", tt.message, res.Message)
				}
			})
		}
	})
}

// TestWarnings tests advisory warnings.
func TestWarnings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		in    *Input
		title string
		want  bool
	}{
		{"inline style", newInput(`<p style="color:red">x</p>`, "", true), WarningInlineStyles, true},
		{"no inline style", newInput(`<p>x</p>`, "", true), WarningInlineStyles, false},
		{"untagged text", newInput(`<body>Hello <p>x</p></body>`, "", true), WarningUntaggedText, true},
		{"tagged text", newInput(`<body><p>Hello</p></body>`, "", true), WarningUntaggedText, false},
		{"no css file", newInput(`<p>x</p>`, "", false), WarningNoCSSFile, true},
		{"empty css file", newInput(`<p>x</p>`, "", true), WarningNoCSSFile, false},
		{"generated by in html", newInput(`<meta name="generator" content="Generated by a tool">`, "", true), WarningAIAssistance, true},
		{"ai-generated in css", newInput(`<p>x</p>`, "/* AI-Generated */", true), WarningAIAssistance, true},
		{"tool name alone", newInput(`<p>I used ChatGPT</p>`, "", true), WarningAIAssistance, false},
		{
			"image credit",
			&Input{
				Document:      document.Parse(`<img src="a.jpg">`),
				HasStylesheet: true,
				ImageCredits:  []model.ImageCredit{{Source: "a.jpg", Tag: "Artist", Value: "Jane"}},
			},
			WarningImageCredit,
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := evaluate(t, ProfileMedia, tt.in)
			if got := hasWarning(r, tt.title); got != tt.want {
				t.Errorf("warning %q: expected %v, got %v (%v)", tt.title, tt.want, got, r.Warnings)
			}
		})
	}

	t.Run("warnings keep rule order and never change the score", func(t *testing.T) {
		t.Parallel()

		plain := evaluate(t, ProfileMedia, newInput(galleryHTML, galleryCSS, true))
		noisy := evaluate(t, ProfileMedia, newInput(
			strings.Replace(galleryHTML, "<h1>", `Generated by me <h1 style="x">`, 1), galleryCSS, false))

		if plain.Total() != noisy.Total() {
			t.Errorf("warnings changed score: %d vs %d", plain.Total(), noisy.Total())
		}
		want := []string{WarningInlineStyles, WarningUntaggedText, WarningNoCSSFile, WarningAIAssistance}
		if len(noisy.Warnings) != len(want) {
			t.Fatalf("expected %d warnings, got %v", len(want), noisy.Warnings)
		}
		for i, title := range want {
			if noisy.Warnings[i].Title != title {
				t.Errorf("warning %d: expected %q, got %q", i, title, noisy.Warnings[i].Title)
			}
		}
	})
}

// TestEngineClamps tests that out-of-range scores are clamped.
func TestEngineClamps(t *testing.T) {
	t.Parallel()

	p := &Profile{
		Name:      "test",
		Title:     "Test",
		Threshold: 1,
		Checks: []Check{
			newCheck("Too High", 2, "", func(*Input) (int, string) { return 5, "" }),
			newCheck("Negative", 3, "", func(*Input) (int, string) { return -1, "" }),
		},
	}

	r := NewEngine(p).Evaluate(newInput("", "", false))
	if r.Results[0].Awarded != 2 {
		t.Errorf("expected clamp to 2, got %d", r.Results[0].Awarded)
	}
	if r.Results[1].Awarded != 0 {
		t.Errorf("expected clamp to 0, got %d", r.Results[1].Awarded)
	}
	if r.Total() < 0 || r.Total() > r.Max() {
		t.Errorf("total %d outside [0, %d]", r.Total(), r.Max())
	}
	if !r.Results[0].Met || r.Results[1].Met {
		t.Errorf("expected met to follow the clamped points, got %+v", r.Results)
	}
}

// TestLookup tests profile selection.
func TestLookup(t *testing.T) {
	t.Parallel()

	t.Run("default profile", func(t *testing.T) {
		t.Parallel()

		p, err := Lookup("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Name != ProfileMedia || p.Max() != 12 || p.Threshold != 8 {
			t.Errorf("unexpected default profile %s (%d, %d)", p.Name, p.Max(), p.Threshold)
		}
	})

	t.Run("case insensitive", func(t *testing.T) {
		t.Parallel()

		p, err := Lookup("Structure")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Name != ProfileStructure || p.Max() != 12 || p.Threshold != 8 {
			t.Errorf("unexpected profile %s (%d)", p.Name, p.Max())
		}
	})

	t.Run("unknown profile", func(t *testing.T) {
		t.Parallel()

		_, err := Lookup("typography")
		if !errors.Is(err, ErrUnknownProfile) {
			t.Errorf("expected ErrUnknownProfile, got %v", err)
		}
	})

	t.Run("all profiles sorted", func(t *testing.T) {
		t.Parallel()

		all := All()
		if len(all) != 2 || all[0].Name != ProfileMedia || all[1].Name != ProfileStructure {
			t.Errorf("unexpected profiles %v", Names())
		}
	})
}

// hasWarning reports whether r contains a warning with the given title.
func hasWarning(r *model.Report, title string) bool {
	for _, w := range r.Warnings {
		if w.Title == title {
			return true
		}
	}
	return false
}
