package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/abhisek/examiz/internal/store"
	"github.com/abhisek/examiz/internal/ui/components"
	"github.com/spf13/cobra"
)

var journalCmd = &cobra.Command{
	Use:   "journal [session-id]",
	Short: "Inspect the session journal, or the answer trail of one session",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, envOpts{withStore: true})
		if err != nil {
			return err
		}
		defer e.Close()

		repo := e.store.EventRepo()
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		if len(args) == 1 {
			events, err := repo.AnswerEvents(ctx, args[0])
			if err != nil {
				return fmt.Errorf("query answer events: %w", err)
			}
			printAnswerTrail(out, events)
			return nil
		}

		limit, _ := cmd.Flags().GetInt("limit")
		events, err := repo.QuerySessionEvents(ctx, store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query session events: %w", err)
		}
		printSessionEvents(out, events)
		return nil
	},
}

func init() {
	journalCmd.Flags().Int("limit", 50, "Maximum number of events to list (0 = all)")
}

func printSessionEvents(w io.Writer, events []store.SessionEventRecord) {
	if len(events) == 0 {
		fmt.Fprintln(w, "No session events found.")
		return
	}

	// Header.
	fmt.Fprintf(w, "%-6s  %-19s  %-36s  %-7s  %-7s  %s\n",
		"Seq", "Timestamp", "Session", "Action", "Trigger", "Answered")
	fmt.Fprintln(w, strings.Repeat("─", 100))

	for _, ev := range events {
		trigger := ev.Trigger
		if trigger == "" {
			trigger = "-"
		}
		fmt.Fprintf(w, "%-6d  %-19s  %-36s  %-7s  %-7s  %d/%d\n",
			ev.Sequence,
			ev.Timestamp.Local().Format(timeFormat),
			ev.SessionID,
			ev.Action,
			trigger,
			ev.Answered, ev.Total,
		)
	}
}

func printAnswerTrail(w io.Writer, events []store.AnswerEventRecord) {
	if len(events) == 0 {
		fmt.Fprintln(w, "No answers recorded for this session.")
		return
	}

	fmt.Fprintf(w, "%-6s  %-19s  %-8s  %-4s  %s\n",
		"Seq", "Timestamp", "Question", "Part", "Option")
	fmt.Fprintln(w, strings.Repeat("─", 56))

	for _, ev := range events {
		fmt.Fprintf(w, "%-6d  %-19s  %-8d  %-4s  %s\n",
			ev.Sequence,
			ev.Timestamp.Local().Format(timeFormat),
			ev.QuestionID,
			ev.PartID,
			components.OptionLabel(ev.Option),
		)
	}

	fmt.Fprintf(w, "\n%d selections\n", len(events))
}
