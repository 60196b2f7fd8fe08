package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nao1215/pagegrade/internal/config"
	"github.com/nao1215/pagegrade/internal/history"
)

// defaultHistoryLimit is the number of runs listed by default.
const defaultHistoryLimit = 20

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [dir]",
		Short: "Show past grading runs",
		Long: `History lists the grading runs saved with 'pagegrade grade --history'.

For each run it shows the ID, date, score and result. A run whose
submission did not change since the previous run is marked with "=".

Examples:
  # Runs of the submission in the current directory
  pagegrade history

  # Last 5 runs of a submission, as JSON
  pagegrade history -n 5 --json site/

  # All graded submission directories
  pagegrade history -L`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	cmd.Flags().BoolP("submissions", "L", false,
		"List all graded submission directories")
	cmd.Flags().BoolP("json", "j", false,
		"Output in JSON format")
	cmd.Flags().IntP("limit", "n", defaultHistoryLimit,
		"Maximum number of runs to list (0 for all)")
	cmd.Flags().String("history-dir", config.XDGDataDir(),
		"Directory holding the history database")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	listSubmissions, err := cmd.Flags().GetBool("submissions")
	if err != nil {
		return err
	}
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	historyDir, err := cmd.Flags().GetString("history-dir")
	if err != nil {
		return err
	}
	if limit < 0 {
		return errors.New("limit must not be negative")
	}

	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	out := cmd.OutOrStdout()
	opts := history.DefaultOptions()
	opts.CreateIfNotExists = false

	store, err := history.Open(historyDir, opts)
	if errors.Is(err, history.ErrDatabaseNotFound) {
		fmt.Fprintln(out, "No grading history found.")
		fmt.Fprintln(out, "\nUse 'pagegrade grade --history' to record grading runs.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer store.Close()

	ctx := cmd.Context()

	if listSubmissions {
		subs, err := store.ListSubmissions(ctx)
		if err != nil {
			return fmt.Errorf("failed to list submissions: %w", err)
		}
		if jsonOutput {
			return writeJSON(out, subs)
		}
		printSubmissions(out, subs)
		return nil
	}

	runs, err := store.ListRuns(ctx, dir, limit)
	if err != nil {
		return fmt.Errorf("failed to get grading history: %w", err)
	}
	if jsonOutput {
		return writeJSON(out, runs)
	}
	printRuns(out, history.SubmissionKey(dir), runs)
	return nil
}

// printSubmissions prints every graded directory.
func printSubmissions(w io.Writer, subs []history.SubmissionSummary) {
	if len(subs) == 0 {
		fmt.Fprintln(w, "No graded submissions found in the history database.")
		return
	}

	fmt.Fprintf(w, "Graded submissions (%d):\n\n", len(subs))
	fmt.Fprintf(w, "  %-5s  %-20s  %s\n", "Runs", "Last Run", "Directory")
	fmt.Fprintln(w, "  "+strings.Repeat("-", 60))
	for _, s := range subs {
		fmt.Fprintf(w, "  %-5d  %-20s  %s\n", s.Runs, s.LastRun.Local().Format("2006-01-02 15:04:05"), s.Directory)
	}
	fmt.Fprintln(w, "\nUse 'pagegrade history <dir>' to see the runs of a submission.")
}

// printRuns prints the runs of one submission, newest first.
func printRuns(w io.Writer, dir string, runs []history.RunRecord) {
	if len(runs) == 0 {
		fmt.Fprintf(w, "No grading history found for %s\n", dir)
		fmt.Fprintln(w, "\nUse 'pagegrade grade --history' to record grading runs.")
		return
	}

	fmt.Fprintf(w, "Grading history for %s (%d runs):\n\n", dir, len(runs))
	fmt.Fprintf(w, "  %-6s  %-20s  %-10s  %-7s  %s\n", "ID", "Date", "Profile", "Score", "Result")
	fmt.Fprintln(w, "  "+strings.Repeat("-", 60))
	for _, r := range runs {
		result := "FAIL"
		if r.Passed {
			result = "PASS"
		}
		if r.Unchanged {
			result += " ="
		}
		fmt.Fprintf(w, "  %-6d  %-20s  %-10s  %-7s  %s\n",
			r.ID,
			r.Timestamp.Local().Format("2006-01-02 15:04:05"),
			r.Profile,
			fmt.Sprintf("%d/%d", r.Total, r.Max),
			result,
		)
	}
}

// writeJSON writes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
