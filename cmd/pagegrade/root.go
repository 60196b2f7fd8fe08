package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nao1215/pagegrade/internal/clierr"
)

// NewRootCmd creates the root command for pagegrade.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pagegrade",
		Short: "Rubric-based grader for static HTML/CSS submissions",
		Long: `pagegrade grades static web page submissions (index.html plus an optional
stylesheet) against a points rubric. Each graded directory receives a
Markdown feedback file, and the exit code reports whether every submission
reached the pass threshold, so pagegrade can gate a CI job.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(NewGradeCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewProfilesCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command and exits with the code carried by the
// returned error.
func Execute() {
	err := NewRootCmd().ExecuteContext(context.Background())
	if err != nil && !clierr.IsSilent(err) {
		fmt.Fprintln(os.Stderr, "error:", err)
	}
	os.Exit(clierr.ExitCodeOf(err))
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}
