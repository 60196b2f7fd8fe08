package config

import "errors"

// Configuration validation errors returned by Config.Validate.
var (
	// ErrNoSubmission is returned when no submission directory is given.
	ErrNoSubmission = errors.New("no submission directory specified")

	// ErrUnknownProfile is returned when the profile name is not compiled in.
	ErrUnknownProfile = errors.New("unknown profile")

	// ErrEmptySubmissionFile is returned when the submission file name is blank.
	ErrEmptySubmissionFile = errors.New("invalid submission file: must not be empty")

	// ErrEmptyReportFile is returned when the report file name is blank.
	ErrEmptyReportFile = errors.New("invalid report file: must not be empty")

	// ErrInvalidJobs is returned when the job count is not positive.
	ErrInvalidJobs = errors.New("invalid jobs: must be positive")

	// ErrNoHistoryDir is returned when history is enabled without a directory.
	ErrNoHistoryDir = errors.New("history enabled but no history directory set")
)
