package cmd

import (
	"fmt"

	"github.com/abhisek/examiz/internal/exam"
	"github.com/abhisek/examiz/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "examiz",
	Short: "Timed multiple-choice exams in the terminal",
	Long:  "Examiz runs timed, multi-part listening and reading exams in the terminal and keeps a history of results.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, exam.SampleProvider{}, false)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides EXAMIZ_DB env var)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides EXAMIZ_LOG_LEVEL)")
	rootCmd.PersistentFlags().String("bands", "", "YAML grade band file (overrides EXAMIZ_BANDS)")

	rootCmd.AddCommand(takeCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(journalCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then EXAMIZ_DB (directly or from .env), then the default XDG path.
func resolveDBPath(cmd *cobra.Command, fromEnv string) (string, error) {
	p, _ := cmd.Flags().GetString("db")
	if p == "" {
		p = fromEnv
	}
	if p != "" {
		if err := store.EnsureDir(p); err != nil {
			return "", fmt.Errorf("create database dir: %w", err)
		}
		return p, nil
	}
	return store.DefaultDBPath()
}
