package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nao1215/pagegrade/internal/rubric"
)

// NewProfilesCmd creates the profiles command.
func NewProfilesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "List the available rubric profiles",
		Long: `Profiles lists every compiled-in rubric profile with its maximum score,
pass threshold and checks.`,
		Args: cobra.NoArgs,
		RunE: runProfilesCmd,
	}
	cmd.Flags().BoolP("long", "l", false, "Also list each profile's checks and warnings")
	return cmd
}

func runProfilesCmd(cmd *cobra.Command, _ []string) error {
	long, err := cmd.Flags().GetBool("long")
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "  %-10s  %-16s  %-5s  %s\n", "Name", "Title", "Max", "Pass")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 44))

	for _, p := range rubric.All() {
		name := p.Name
		if name == rubric.DefaultProfile {
			name += "*"
		}
		fmt.Fprintf(out, "  %-10s  %-16s  %-5d  %d\n", name, p.Title, p.Max(), p.Threshold)
		if !long {
			continue
		}
		for _, c := range p.Checks {
			fmt.Fprintf(out, "      %-22s %d  %s\n", c.Category(), c.Possible(), c.Criterion())
		}
		for _, w := range p.Warnings {
			fmt.Fprintf(out, "      ! %s\n", w.Title)
		}
	}

	fmt.Fprintln(out, "\n* default profile")
	return nil
}
