package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all stored results and journal entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			return fmt.Errorf("reset deletes every stored result; pass --yes to confirm")
		}

		e, err := openEnv(cmd, envOpts{withStore: true})
		if err != nil {
			return err
		}
		defer e.Close()

		n, err := e.store.Reset(cmd.Context())
		if err != nil {
			return err
		}
		e.log.Info().Int64("results", n).Msg("store reset")
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d results.\n", n)
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm deletion")
}
