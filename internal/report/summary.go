package report

import (
	"fmt"
	"os"
)

// DefaultSummaryEnv names the environment variable that points at the
// CI job summary file.
const DefaultSummaryEnv = "GITHUB_STEP_SUMMARY"

// AppendSummary appends data to the file named by the environment
// variable envName. It does nothing when the variable is unset or empty.
// It returns the path written to, or "" when nothing was written.
func AppendSummary(envName string, data []byte) (string, error) {
	if envName == "" {
		return "", nil
	}
	path := os.Getenv(envName)
	if path == "" {
		return "", nil
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600) //nolint:gosec // Path comes from the CI environment
	if err != nil {
		return path, fmt.Errorf("failed to open summary file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return path, fmt.Errorf("failed to append summary: %w", err)
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		if _, err := f.Write([]byte("\n")); err != nil {
			return path, fmt.Errorf("failed to append summary: %w", err)
		}
	}
	return path, nil
}
