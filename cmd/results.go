package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/abhisek/examiz/internal/store"
	"github.com/abhisek/examiz/internal/ui/layout"
	"github.com/spf13/cobra"
)

var resultsCmd = &cobra.Command{
	Use:   "results [session-id]",
	Short: "List stored results, or show one in detail",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, envOpts{withStore: true})
		if err != nil {
			return err
		}
		defer e.Close()

		repo := e.store.ResultRepo()
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		if len(args) == 1 {
			rec, err := repo.Get(ctx, args[0])
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("no result for session %q", args[0])
			}
			if err != nil {
				return fmt.Errorf("get result: %w", err)
			}
			printOutcome(out, rec.Outcome)
			return nil
		}

		limit, _ := cmd.Flags().GetInt("limit")
		recs, err := repo.List(ctx, store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("list results: %w", err)
		}
		printResultList(out, recs)
		return nil
	},
}

func init() {
	resultsCmd.Flags().Int("limit", 20, "Maximum number of results to list (0 = all)")
}

func printResultList(w io.Writer, recs []store.ResultRecord) {
	if len(recs) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	// Header.
	fmt.Fprintf(w, "%-36s  %-19s  %-24s  %4s  %-14s  %-6s  %s\n",
		"Session", "Submitted", "Exam", "Pct", "Band", "Passed", "Time")
	fmt.Fprintln(w, strings.Repeat("─", 122))

	for _, r := range recs {
		title := r.ExamTitle
		if len(title) > 24 {
			title = title[:21] + "..."
		}
		passed := "✗"
		if r.Passed {
			passed = "✓"
		}
		fmt.Fprintf(w, "%-36s  %-19s  %-24s  %3d%%  %-14s  %-6s  %s\n",
			r.SessionID,
			r.SubmittedAt.Local().Format(timeFormat),
			title,
			r.Percentage,
			r.Band,
			passed,
			layout.FormatClock(r.ElapsedSecs),
		)
	}

	fmt.Fprintf(w, "\n%d results\n", len(recs))
}
