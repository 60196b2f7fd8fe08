package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"github.com/nao1215/pagegrade/internal/report"
	"github.com/nao1215/pagegrade/internal/rubric"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "pagegrade"

	// DefaultProfile is the rubric profile used when none is selected.
	DefaultProfile = rubric.DefaultProfile

	// DefaultSubmissionFile is the HTML document graded in each directory.
	DefaultSubmissionFile = "index.html"

	// DefaultReportFile is the Markdown feedback file written into each
	// submission directory.
	DefaultReportFile = report.DefaultFeedbackFile

	// DefaultSummaryEnv names the environment variable holding the CI job
	// summary path.
	DefaultSummaryEnv = report.DefaultSummaryEnv

	// DefaultJobs is the number of submissions graded concurrently.
	DefaultJobs = 4
)

// Config holds all configuration options for a grading run.
// It is populated from CLI flags and the optional config file, then passed
// down explicitly rather than kept in global state.
type Config struct {
	// Profile is the rubric profile name.
	Profile string

	// SubmissionFile is the HTML document name, relative to each
	// submission directory.
	SubmissionFile string

	// ReportFile is the Markdown feedback file name, relative to each
	// submission directory.
	ReportFile string

	// SummaryEnv is the environment variable that names the CI summary
	// file. The Markdown report is appended there when it is set.
	SummaryEnv string

	// HTMLReport is an optional path for an HTML rendering of the report.
	// With several submissions the file name is placed in each directory.
	HTMLReport string

	// JSONOutput prints JSON to stdout instead of text.
	JSONOutput bool

	// NoColor disables ANSI colors in text output.
	NoColor bool

	// Verbose enables debug logging.
	Verbose bool

	// SaveHistory stores each run in the history database.
	SaveHistory bool

	// HistoryDir is the directory holding the history database.
	// Defaults to the XDG data directory.
	HistoryDir string

	// Jobs is the number of submissions graded concurrently.
	Jobs int

	// ConfigFilePath is an explicit config file path.
	ConfigFilePath string

	// Dirs are the submission directories to grade.
	Dirs []string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Profile:        DefaultProfile,
		SubmissionFile: DefaultSubmissionFile,
		ReportFile:     DefaultReportFile,
		SummaryEnv:     DefaultSummaryEnv,
		HistoryDir:     XDGDataDir(),
		Jobs:           DefaultJobs,
	}
}

// XDGDataDir returns the XDG data directory for pagegrade.
// On Linux: ~/.local/share/pagegrade
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for pagegrade.
// On Linux: ~/.config/pagegrade
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks the configuration and returns the first problem found.
func (c *Config) Validate() error {
	if len(c.Dirs) == 0 {
		return ErrNoSubmission
	}

	if _, err := rubric.Lookup(c.Profile); err != nil {
		return fmt.Errorf("%w: %q (available: %s)", ErrUnknownProfile, c.Profile, strings.Join(rubric.Names(), ", "))
	}

	if strings.TrimSpace(c.SubmissionFile) == "" {
		return ErrEmptySubmissionFile
	}

	if strings.TrimSpace(c.ReportFile) == "" {
		return ErrEmptyReportFile
	}

	if c.Jobs <= 0 {
		return ErrInvalidJobs
	}

	if c.SaveHistory && c.HistoryDir == "" {
		return ErrNoHistoryDir
	}

	return nil
}
