package loader

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/sha3"

	"github.com/nao1215/pagegrade/internal/model"
)

const (
	// DefaultSubmissionFile is the HTML document graded in each submission.
	DefaultSubmissionFile = "index.html"

	// DefaultStylesheetExt is the suffix that identifies stylesheet files.
	DefaultStylesheetExt = ".css"
)

// ErrSubmissionNotFound is returned when the HTML document does not exist.
var ErrSubmissionNotFound = errors.New("submission file not found")

// options configures Load.
type options struct {
	submissionFile string
	stylesheetExt  string
}

// Option configures Load.
type Option func(*options)

// WithSubmissionFile overrides the HTML document name.
func WithSubmissionFile(name string) Option {
	return func(o *options) {
		if name != "" {
			o.submissionFile = name
		}
	}
}

// WithStylesheetExt overrides the stylesheet file suffix.
func WithStylesheetExt(ext string) Option {
	return func(o *options) {
		if ext != "" {
			o.stylesheetExt = ext
		}
	}
}

// Load reads the submission stored in dir.
//
// It returns ErrSubmissionNotFound (wrapped with the path) when the HTML
// document is absent. Any other I/O failure is returned as-is.
func Load(dir string, opts ...Option) (*model.Submission, error) {
	o := options{
		submissionFile: DefaultSubmissionFile,
		stylesheetExt:  DefaultStylesheetExt,
	}
	for _, opt := range opts {
		opt(&o)
	}

	htmlPath := filepath.Join(dir, o.submissionFile)
	htmlData, err := os.ReadFile(htmlPath) //nolint:gosec // Submission path is user-provided
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSubmissionNotFound, htmlPath)
		}
		return nil, fmt.Errorf("failed to read submission: %w", err)
	}

	stylesheets, err := FindStylesheets(dir, o.stylesheetExt)
	if err != nil {
		return nil, err
	}

	var css string
	if len(stylesheets) > 0 {
		cssData, err := os.ReadFile(filepath.Join(dir, stylesheets[0])) //nolint:gosec // Same directory as the submission
		if err != nil {
			return nil, fmt.Errorf("failed to read stylesheet %s: %w", stylesheets[0], err)
		}
		css = string(cssData)
	}

	html := string(htmlData)
	return &model.Submission{
		Dir:         dir,
		HTMLPath:    htmlPath,
		HTML:        html,
		CSS:         css,
		Stylesheets: stylesheets,
		Fingerprint: Fingerprint(html, css),
	}, nil
}

// FindStylesheets lists regular files in dir whose name ends in ext,
// in directory listing order (os.ReadDir sorts by file name).
// Symbolic links are followed; dangling links are skipped.
func FindStylesheets(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	names := make([]string, 0)
	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), ext) {
			continue
		}
		mode := entry.Type()
		if mode&fs.ModeSymlink != 0 {
			info, err := os.Stat(filepath.Join(dir, entry.Name()))
			if err != nil {
				continue
			}
			mode = info.Mode()
		}
		if mode.IsRegular() {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

// Fingerprint returns the hex SHA3-256 digest of the HTML and CSS text.
// A NUL byte separates the two so that moving text between them changes
// the digest.
func Fingerprint(html, css string) string {
	h := sha3.New256()
	h.Write([]byte(html))
	h.Write([]byte{0})
	h.Write([]byte(css))
	return hex.EncodeToString(h.Sum(nil))
}
