package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/btcq-org/bounty/app"
	"github.com/spf13/cobra"
)

const flagOutput = "output"

func (c *cli) exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the ledger state as genesis JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			output, _ := cmd.Flags().GetString(flagOutput)
			return c.withApp(func(a *app.App) error {
				gs, err := a.ExportGenesis()
				if err != nil {
					return err
				}
				if output == "" {
					return printJSON(cmd, gs)
				}
				bz, err := json.MarshalIndent(gs, "", "  ")
				if err != nil {
					return err
				}
				if err := os.WriteFile(output, bz, 0o644); err != nil {
					return fmt.Errorf("failed to write %s: %w", output, err)
				}
				return nil
			})
		},
	}
	cmd.Flags().String(flagOutput, "", "write to this file instead of stdout")
	return cmd
}
