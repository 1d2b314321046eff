package cmd

import (
	"fmt"

	"github.com/btcq-org/bounty/app"
	"github.com/spf13/cobra"
)

func (c *cli) invariantsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "invariants",
		Short: "Check that the escrow account backs every open bounty",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withApp(func(a *app.App) error {
				msg, broken := a.CheckInvariants()
				fmt.Fprint(cmd.OutOrStdout(), msg)
				if broken {
					return fmt.Errorf("invariant broken at height %d", a.LastBlockHeight())
				}
				return nil
			})
		},
	}
}
