package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// unsetSummaryEnv names an environment variable that tests never set, so
// grading under CI does not append to the real job summary.
const unsetSummaryEnv = "PAGEGRADE_TEST_SUMMARY_UNSET"

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

const plainHTML = `<!DOCTYPE html>
<html><head><title>Plain</title></head>
<body><h1>About me</h1><p>Hello there.</p></body>
</html>`

// writeSubmission creates a submission directory holding files.
func writeSubmission(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0600); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	return dir
}

// execute runs the root command with args and captures its output.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// grade runs the grade command with test-safe defaults.
func grade(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	base := []string{"grade", "--no-color", "--summary-env", unsetSummaryEnv, "--history-dir", t.TempDir()}
	return execute(t, append(base, args...)...)
}
