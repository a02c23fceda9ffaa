package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/abhisek/examiz/internal/exam"
	"github.com/abhisek/examiz/internal/ui/layout"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <exam-file>",
	Short: "Check an exam file and print its outline",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		def, err := exam.FileProvider{Path: args[0]}.Load(cmd.Context())
		if err != nil {
			return err
		}
		printOutline(cmd.OutOrStdout(), def)
		return nil
	},
}

func printOutline(w io.Writer, def *exam.Definition) {
	fmt.Fprintf(w, "%s\n", def.Title)
	fmt.Fprintf(w, "Time limit: %s", layout.FormatClock(def.TimeLimitSecs))
	if def.Audio != nil {
		fmt.Fprintf(w, "   Audio: %s (%s)", def.Audio.Source, layout.FormatClock(int(def.Audio.DurationSecs)))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w)

	// Header.
	fmt.Fprintf(w, "%-6s  %-32s  %9s  %-9s  %s\n",
		"Part", "Title", "Questions", "Audio", "Time")
	fmt.Fprintln(w, strings.Repeat("─", 72))

	for _, p := range def.Parts {
		title := p.Title
		if len(title) > 32 {
			title = title[:29] + "..."
		}
		audio := "-"
		if p.HasAudio {
			audio = "yes"
		}
		limit := "-"
		if p.TimeLimitSecs > 0 {
			limit = layout.FormatClock(p.TimeLimitSecs)
		}
		fmt.Fprintf(w, "%-6s  %-32s  %9d  %-9s  %s\n",
			p.ID, title, p.QuestionCount, audio, limit)
	}

	fmt.Fprintf(w, "\n%d parts, %d questions\n", len(def.Parts), def.TotalQuestions())
}
