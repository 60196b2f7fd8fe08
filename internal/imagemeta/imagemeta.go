package imagemeta

import (
	"context"
	"encoding/base64"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	exif "github.com/dsoprea/go-exif/v3"

	"github.com/nao1215/pagegrade/internal/model"
)

// defaultMaxImageSize limits how much of an image file is read.
const defaultMaxImageSize = 10 * 1024 * 1024

// dataURLSource is reported as the source of inline images.
const dataURLSource = "data:URL"

// exifImagePattern matches file names of formats that carry EXIF.
var exifImagePattern = regexp.MustCompile(`(?i)\.(jpe?g|tiff?)$`)

// creditTags are the EXIF tags that name an author or rights holder.
var creditTags = map[string]bool{
	"Artist":    true,
	"Author":    true,
	"Copyright": true,
	"XPAuthor":  true,
}

// Extractor finds credit metadata in local images.
type Extractor struct {
	maxImageSize int64
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithMaxImageSize sets the maximum number of bytes read per image.
func WithMaxImageSize(n int64) Option {
	return func(e *Extractor) {
		if n > 0 {
			e.maxImageSize = n
		}
	}
}

// NewExtractor creates an Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{maxImageSize: defaultMaxImageSize}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract returns the credits found in the images named by sources,
// resolved relative to dir. Each distinct source is read once.
// Unreadable or metadata-free images are skipped silently.
func (e *Extractor) Extract(ctx context.Context, dir string, sources []string) ([]model.ImageCredit, error) {
	credits := make([]model.ImageCredit, 0)
	processed := make(map[string]bool)

	for _, src := range sources {
		select {
		case <-ctx.Done():
			return credits, ctx.Err()
		default:
		}

		if processed[src] {
			continue
		}
		processed[src] = true

		data, label, ok := e.load(dir, src)
		if !ok {
			continue
		}
		credits = append(credits, creditsFrom(data, label)...)
	}

	return credits, nil
}

// load returns the bytes of the image referenced by src.
func (e *Extractor) load(dir, src string) ([]byte, string, bool) {
	if strings.HasPrefix(src, "data:image/") {
		data, ok := decodeDataURL(src)
		return data, dataURLSource, ok
	}

	path, ok := localPath(dir, src)
	if !ok || !exifImagePattern.MatchString(path) {
		return nil, "", false
	}

	f, err := os.Open(path) //nolint:gosec // Path is confined to the submission directory
	if err != nil {
		return nil, "", false
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, e.maxImageSize))
	if err != nil {
		return nil, "", false
	}
	return data, src, true
}

// localPath resolves src against dir. It rejects URLs with a scheme or
// host and paths that escape dir.
func localPath(dir, src string) (string, bool) {
	if strings.Contains(src, "://") || strings.HasPrefix(src, "//") {
		return "", false
	}
	if i := strings.IndexAny(src, "?#"); i >= 0 {
		src = src[:i]
	}
	rel := filepath.FromSlash(strings.TrimPrefix(src, "./"))
	if !filepath.IsLocal(rel) {
		return "", false
	}
	return filepath.Join(dir, rel), true
}

// decodeDataURL extracts the payload of a base64 data URL.
func decodeDataURL(dataURL string) ([]byte, bool) {
	parts := strings.SplitN(dataURL, ",", 2)
	if len(parts) != 2 {
		return nil, false
	}

	data, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		data, err = base64.URLEncoding.DecodeString(parts[1])
		if err != nil {
			return nil, false
		}
	}
	return data, true
}

// creditsFrom extracts credit tags from image bytes.
// The EXIF decoder panics on some corrupt inputs; those images are skipped.
func creditsFrom(data []byte, source string) (credits []model.ImageCredit) {
	defer func() {
		if r := recover(); r != nil {
			credits = nil
		}
	}()

	rawExif, err := exif.SearchAndExtractExif(data)
	if err != nil || rawExif == nil {
		return nil
	}

	entries, _, err := exif.GetFlatExifData(rawExif, nil)
	if err != nil {
		return nil
	}

	for _, entry := range entries {
		if !creditTags[entry.TagName] {
			continue
		}
		value := strings.TrimSpace(strings.Trim(entry.Formatted, "\x00"))
		if value == "" {
			continue
		}
		credits = append(credits, model.ImageCredit{
			Source: source,
			Tag:    entry.TagName,
			Value:  value,
		})
	}
	return credits
}
