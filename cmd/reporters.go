package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/prosumption/core/report"
)

var reportersCmd = &cobra.Command{
	Use:   "reporters",
	Short: "List the available reporter types",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range report.Types() {
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), name); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportersCmd)
}
