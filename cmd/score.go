package cmd

import (
	"context"
	"fmt"

	"github.com/abhisek/examiz/internal/exam"
	"github.com/abhisek/examiz/internal/session"
	"github.com/spf13/cobra"
)

var scoreCmd = &cobra.Command{
	Use:   "score <exam-file> <answers-file>",
	Short: "Score an answers file against an exam without the TUI",
	Long: `Score runs a session headlessly: it starts the exam, records every answer
from the answers file and submits. The answers file is a JSON or YAML map of
question ID to option, given as a 0-based index or a letter.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		noSave, _ := cmd.Flags().GetBool("no-save")
		ctx := cmd.Context()

		def, err := exam.FileProvider{Path: args[0]}.Load(ctx)
		if err != nil {
			return fmt.Errorf("load exam: %w", err)
		}
		sheet, err := loadAnswers(args[1])
		if err != nil {
			return err
		}

		e, err := openEnv(cmd, envOpts{withStore: !noSave})
		if err != nil {
			return err
		}
		defer e.Close()

		opts := session.Options{
			Scoring: e.scoring,
			Media:   e.media(),
			Logger:  e.component("session"),
		}

		// The controller logs sink failures without returning them, so the
		// sink reports back through deliverErr.
		var deliverErr error
		opts.Sink = session.ResultSinkFunc(func(ctx context.Context, o *session.Outcome) error {
			if e.store != nil {
				if err := e.store.ResultRepo().Deliver(ctx, o); err != nil {
					deliverErr = fmt.Errorf("save result: %w", err)
					return deliverErr
				}
			}
			printOutcome(cmd.OutOrStdout(), o)
			return nil
		})
		if e.store != nil {
			opts.Journal = e.store.EventRepo()
		}

		if _, err := scoreSheet(def, sheet, opts); err != nil {
			return err
		}
		return deliverErr
	},
}

func init() {
	scoreCmd.Flags().Bool("no-save", false, "Print the result without storing it")
}

// scoreSheet drives a controller through Start, one SelectAnswer per sheet
// entry in question order, and Submit.
func scoreSheet(def *exam.Definition, sheet answerSheet, opts session.Options) (*session.Outcome, error) {
	ctrl, err := session.New(def, opts)
	if err != nil {
		return nil, err
	}
	ctrl.Start()
	for _, id := range sheet.IDs() {
		if err := ctrl.SelectAnswer(id, sheet[id]); err != nil {
			return nil, err
		}
	}
	return ctrl.Submit()
}
