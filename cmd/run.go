package cmd

import (
	"fmt"

	"github.com/abhisek/examiz/internal/app"
	"github.com/abhisek/examiz/internal/exam"
	examscreen "github.com/abhisek/examiz/internal/screens/exam"
	"github.com/spf13/cobra"
)

// runApp opens the store, loads the exam, and launches the TUI. With
// takeNow the exam briefing opens immediately instead of the home menu.
func runApp(cmd *cobra.Command, provider exam.Provider, takeNow bool) error {
	e, err := openEnv(cmd, envOpts{withStore: true, logToFile: true})
	if err != nil {
		return err
	}
	defer e.Close()

	def, err := provider.Load(cmd.Context())
	if err != nil {
		return fmt.Errorf("load exam: %w", err)
	}

	results := e.store.ResultRepo()
	events := e.store.EventRepo()
	opts := app.Options{
		Exam: examscreen.Deps{
			Definition: def,
			Sink:       results,
			Journal:    events,
			Scoring:    e.scoring,
			Media:      e.media(),
			Logger:     e.component("session"),
		},
		Results: results,
		Events:  events,
		TakeNow: takeNow,
	}

	e.log.Info().
		Str("exam", def.Title).
		Int("questions", def.TotalQuestions()).
		Bool("take_now", takeNow).
		Msg("starting tui")

	return app.Run(opts)
}
