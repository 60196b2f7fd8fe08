// Package log provides the logging setup for pagegrade, built on top of the
// standard slog package.
//
// Loggers write to stderr at Warn level, or Debug in verbose mode. The
// RelativeHandler rewrites absolute paths under a base directory into paths
// relative to it, so logs produced on CI runners do not depend on where the
// repository was checked out:
//
//	logger := log.NewLogger(os.Stderr, verbose, cwd)
//	logger.Debug("loaded submission", "path", "/home/runner/work/site/index.html")
//	// path=site/index.html when cwd is /home/runner/work
package log
