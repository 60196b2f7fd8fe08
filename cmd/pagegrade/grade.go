package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/nao1215/pagegrade/internal/clierr"
	"github.com/nao1215/pagegrade/internal/config"
	"github.com/nao1215/pagegrade/internal/history"
	"github.com/nao1215/pagegrade/internal/loader"
	"github.com/nao1215/pagegrade/internal/log"
	"github.com/nao1215/pagegrade/internal/pipeline"
	"github.com/nao1215/pagegrade/internal/report"
	"github.com/nao1215/pagegrade/internal/rubric"
)

// NewGradeCmd creates the grade command.
func NewGradeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grade [dir...]",
		Short: "Grade one or more submission directories",
		Long: `Grade evaluates each submission directory against a rubric profile.

A submission is an index.html file plus an optional stylesheet (the first
*.css file in the directory). For every directory pagegrade:
- prints the per-category results and the total score
- writes grading-feedback.md into the directory
- appends the feedback to the CI job summary when $GITHUB_STEP_SUMMARY is set

The exit code is 0 when every submission passes and 1 otherwise, including
when index.html is missing.

Examples:
  # Grade the current directory
  pagegrade grade

  # Grade several submissions, four at a time
  pagegrade grade -J 4 alice/ bob/ carol/

  # Use the HTML structure rubric and print JSON
  pagegrade grade -p structure --json site/

  # Keep a history of runs
  pagegrade grade --history site/`,
		Args: cobra.ArbitraryArgs,
		RunE: runGradeCmd,
	}

	cmd.Flags().StringP(config.FlagProfile, "p", config.DefaultProfile,
		"Rubric profile (see 'pagegrade profiles')")
	cmd.Flags().StringP(config.FlagSubmission, "s", config.DefaultSubmissionFile,
		"HTML document graded in each directory")
	cmd.Flags().StringP(config.FlagOutput, "o", config.DefaultReportFile,
		"Feedback file name written into each directory")
	cmd.Flags().String(config.FlagSummaryEnv, config.DefaultSummaryEnv,
		"Environment variable naming the CI summary file")
	cmd.Flags().String(config.FlagHTMLReport, "",
		"Also write the feedback as an HTML page to this path")
	cmd.Flags().BoolP("json", "j", false,
		"Print JSON instead of text")
	cmd.Flags().Bool("no-color", false,
		"Disable colored output")
	cmd.Flags().Bool(config.FlagHistory, false,
		"Save the run to the history database")
	cmd.Flags().String("history-dir", config.XDGDataDir(),
		"Directory holding the history database")
	cmd.Flags().IntP(config.FlagJobs, "J", config.DefaultJobs,
		"Number of submissions graded concurrently")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .pagegrade in current or home directory)")

	return cmd
}

// runGradeCmd executes the grade command.
func runGradeCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return clierr.Wrap(clierr.ExitFailure, "configuration error", err)
	}

	if err := cfg.Validate(); err != nil {
		return clierr.Wrap(clierr.ExitFailure, "configuration error", err)
	}

	cwd, _ := os.Getwd() //nolint:errcheck // An empty base disables path rewriting
	logger := log.NewLogger(cmd.ErrOrStderr(), cfg.Verbose, cwd)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runGrade(ctx, cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg, logger)
}

// buildConfig creates a Config from cobra command flags and the config file.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	flags := cmd.Flags()

	var err error
	if cfg.Profile, err = flags.GetString(config.FlagProfile); err != nil {
		return nil, err
	}
	if cfg.SubmissionFile, err = flags.GetString(config.FlagSubmission); err != nil {
		return nil, err
	}
	if cfg.ReportFile, err = flags.GetString(config.FlagOutput); err != nil {
		return nil, err
	}
	if cfg.SummaryEnv, err = flags.GetString(config.FlagSummaryEnv); err != nil {
		return nil, err
	}
	if cfg.HTMLReport, err = flags.GetString(config.FlagHTMLReport); err != nil {
		return nil, err
	}
	if cfg.JSONOutput, err = flags.GetBool("json"); err != nil {
		return nil, err
	}
	if cfg.NoColor, err = flags.GetBool("no-color"); err != nil {
		return nil, err
	}
	if cfg.SaveHistory, err = flags.GetBool(config.FlagHistory); err != nil {
		return nil, err
	}
	if cfg.HistoryDir, err = flags.GetString("history-dir"); err != nil {
		return nil, err
	}
	if cfg.Jobs, err = flags.GetInt(config.FlagJobs); err != nil {
		return nil, err
	}
	if cfg.ConfigFilePath, err = flags.GetString("config"); err != nil {
		return nil, err
	}
	cfg.Verbose = getVerboseFlag(cmd)

	// An explicit config path must exist; otherwise a missing file is fine.
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	if configPath == "" && cfg.ConfigFilePath != "" {
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}
	if configPath != "" {
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		file.Apply(cfg, flags.Changed)
	}

	cfg.Dirs = args
	if len(cfg.Dirs) == 0 {
		cfg.Dirs = []string{"."}
	}

	return cfg, nil
}

// outcome collects what happened to each submission.
type outcome struct {
	results  []report.Result
	errored  int
	failed   int
	firstErr error
}

// runGrade grades every configured directory, writes the feedback files
// and prints the results. It returns an ExitError when any submission
// could not be graded or did not pass.
func runGrade(ctx context.Context, stdout, stderr io.Writer, cfg *config.Config, logger *slog.Logger) error {
	profile, err := rubric.Lookup(cfg.Profile)
	if err != nil {
		return clierr.Wrap(clierr.ExitFailure, "configuration error", err)
	}
	engine := rubric.NewEngine(profile)
	loaderOpts := []loader.Option{loader.WithSubmissionFile(cfg.SubmissionFile)}

	logger.Debug("starting grading",
		"dirs", cfg.Dirs,
		"profile", profile.Name,
		"jobs", cfg.Jobs,
		"history", cfg.SaveHistory,
	)

	store := openHistory(cfg, logger)
	if store != nil {
		defer store.Close()
	}

	bp := pipeline.NewBatchProcessor(
		func() *pipeline.Pipeline {
			return pipeline.NewGrading(engine, loaderOpts, pipeline.WithLogger(logger))
		},
		pipeline.WithConcurrency(cfg.Jobs),
		pipeline.WithBatchLogger(logger),
	)

	runs, batchErr := bp.ProcessBatch(ctx, cfg.Dirs)

	var out outcome
	batch := len(cfg.Dirs) > 1
	for _, run := range runs {
		result := report.Result{Dir: run.Dir, Report: run.Report, Err: run.Err}
		if run.Submission != nil {
			result.Fingerprint = run.Submission.Fingerprint
		}

		if result.Err == nil {
			result.Err = publish(ctx, cfg, run, store, logger)
		}

		if result.Err != nil {
			out.errored++
			if out.firstErr == nil {
				out.firstErr = result.Err
			}
			if batch || cfg.JSONOutput {
				fmt.Fprintf(stderr, "error: %s: %v\n", run.Dir, result.Err)
			}
		} else if !run.Report.Passed() {
			out.failed++
		}

		if !cfg.JSONOutput && result.Err == nil {
			if err := printText(stdout, cfg, run, batch); err != nil {
				return clierr.Wrap(clierr.ExitFailure, "failed to print report", err)
			}
		}
		out.results = append(out.results, result)
	}

	if cfg.JSONOutput {
		if err := printJSON(stdout, out.results, batch); err != nil {
			return clierr.Wrap(clierr.ExitFailure, "failed to print report", err)
		}
	}

	if batchErr != nil {
		return clierr.Wrap(clierr.ExitFailure, "grading interrupted", batchErr)
	}

	return exitFor(&out, cfg, batch)
}

// exitFor maps the collected outcome to the command's error.
func exitFor(out *outcome, cfg *config.Config, batch bool) error {
	if out.errored > 0 {
		if !batch && !cfg.JSONOutput {
			return clierr.Wrapf(clierr.ExitFailure, out.firstErr, "failed to grade %s", cfg.Dirs[0])
		}
		return clierr.Silentf(clierr.ExitFailure, "%d of %d submissions could not be graded", out.errored, len(cfg.Dirs))
	}
	if out.failed > 0 {
		return clierr.Silentf(clierr.ExitFailure, "%d of %d submissions did not pass", out.failed, len(cfg.Dirs))
	}
	return nil
}

// publish writes the feedback file, appends the CI summary, writes the
// optional HTML report and saves the run to history. Only a failure to
// write the feedback file is returned; the rest is logged.
func publish(ctx context.Context, cfg *config.Config, run *pipeline.Run, store *history.Store, logger *slog.Logger) error {
	feedbackPath := filepath.Join(run.Dir, cfg.ReportFile)
	data, err := report.WriteMarkdownFile(feedbackPath, run.Report)
	if err != nil {
		return err
	}
	logger.Debug("feedback written", "path", feedbackPath)

	if path, err := report.AppendSummary(cfg.SummaryEnv, data); err != nil {
		logger.Warn("failed to append CI summary", "path", path, "error", err)
	} else if path != "" {
		logger.Debug("CI summary appended", "path", path)
	}

	if cfg.HTMLReport != "" {
		htmlPath := htmlReportPath(cfg, run.Dir)
		if err := report.WriteHTMLFile(htmlPath, run.Report); err != nil {
			logger.Warn("failed to write HTML report", "path", htmlPath, "error", err)
		}
	}

	if store != nil {
		id, err := store.SaveRun(ctx, run.Dir, run.Submission.Fingerprint, run.Report)
		if err != nil {
			logger.Warn("failed to save run to history", "dir", run.Dir, "error", err)
		} else {
			logger.Debug("run saved to history", "dir", run.Dir, "id", id)
		}
	}

	return nil
}

// htmlReportPath returns where the HTML report of dir goes. With several
// directories the configured file name is placed inside each of them.
func htmlReportPath(cfg *config.Config, dir string) string {
	if len(cfg.Dirs) == 1 {
		return cfg.HTMLReport
	}
	return filepath.Join(dir, filepath.Base(cfg.HTMLReport))
}

// openHistory opens the history store when enabled. A store that cannot
// be opened is logged and grading continues without it.
func openHistory(cfg *config.Config, logger *slog.Logger) *history.Store {
	if !cfg.SaveHistory {
		return nil
	}
	store, err := history.Open(cfg.HistoryDir, history.DefaultOptions())
	if err != nil {
		logger.Warn("history disabled: failed to open database", "dir", cfg.HistoryDir, "error", err)
		return nil
	}
	return store
}

// printText prints the human-readable report of a run.
func printText(w io.Writer, cfg *config.Config, run *pipeline.Run, batch bool) error {
	opts := []report.SimpleWriterOption{report.WithColor(!cfg.NoColor && !color.NoColor)}
	if batch {
		opts = append(opts, report.WithHeading(run.Dir))
	}
	_, err := report.NewSimpleWriter(w, opts...).Write(run.Report)
	return err
}

// printJSON prints a single report object, or an array of results in batch
// mode.
func printJSON(w io.Writer, results []report.Result, batch bool) error {
	writer := report.NewJSONWriter(w, report.WithPrettyPrint())
	if !batch && len(results) == 1 {
		if results[0].Report == nil {
			return nil
		}
		_, err := writer.Write(results[0].Report)
		return err
	}
	_, err := writer.WriteResults(results)
	return err
}
