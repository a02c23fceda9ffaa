package cmd

import (
	"github.com/abhisek/examiz/internal/exam"
	"github.com/spf13/cobra"
)

var takeCmd = &cobra.Command{
	Use:   "take [exam-file]",
	Short: "Take an exam (the bundled sample when no file is given)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var provider exam.Provider = exam.SampleProvider{}
		if len(args) == 1 {
			provider = exam.FileProvider{Path: args[0]}
		}
		return runApp(cmd, provider, true)
	},
}
