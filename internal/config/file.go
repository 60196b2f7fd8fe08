package config

// Flag names shared by the CLI and File.Apply.
const (
	FlagProfile    = "profile"
	FlagSubmission = "submission"
	FlagOutput     = "output"
	FlagSummaryEnv = "summary-env"
	FlagHTMLReport = "html-report"
	FlagHistory    = "history"
	FlagJobs       = "jobs"
)

// File represents the structure of the .pagegrade configuration file.
// Every key is optional.
type File struct {
	// Profile selects the rubric profile.
	Profile string `yaml:"profile,omitempty"`

	// Submission is the HTML document name.
	Submission string `yaml:"submission,omitempty"`

	// Report is the Markdown feedback file name.
	Report string `yaml:"report,omitempty"`

	// SummaryEnv names the CI summary environment variable.
	SummaryEnv string `yaml:"summaryEnv,omitempty"`

	// History enables the history database.
	History *bool `yaml:"history,omitempty"`

	// HTMLReport is the HTML report path.
	HTMLReport string `yaml:"htmlReport,omitempty"`

	// Jobs is the number of concurrent gradings.
	Jobs int `yaml:"jobs,omitempty"`
}

// Apply copies the values set in the file into cfg. A value is skipped
// when the corresponding flag was given on the command line, so flags
// always win. flagSet may be nil, meaning no flag was given.
func (f *File) Apply(cfg *Config, flagSet func(name string) bool) {
	if flagSet == nil {
		flagSet = func(string) bool { return false }
	}

	if f.Profile != "" && !flagSet(FlagProfile) {
		cfg.Profile = f.Profile
	}
	if f.Submission != "" && !flagSet(FlagSubmission) {
		cfg.SubmissionFile = f.Submission
	}
	if f.Report != "" && !flagSet(FlagOutput) {
		cfg.ReportFile = f.Report
	}
	if f.SummaryEnv != "" && !flagSet(FlagSummaryEnv) {
		cfg.SummaryEnv = f.SummaryEnv
	}
	if f.History != nil && !flagSet(FlagHistory) {
		cfg.SaveHistory = *f.History
	}
	if f.HTMLReport != "" && !flagSet(FlagHTMLReport) {
		cfg.HTMLReport = f.HTMLReport
	}
	if f.Jobs != 0 && !flagSet(FlagJobs) {
		cfg.Jobs = f.Jobs
	}
}
