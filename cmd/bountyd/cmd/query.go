package cmd

import (
	"fmt"

	"github.com/btcq-org/bounty/app"
	bountytypes "github.com/btcq-org/bounty/x/bounty/types"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
)

func (c *cli) queryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "query",
		Aliases: []string{"q"},
		Short:   "Querying subcommands",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "bounty [bounty-id]",
			Short: "Show a bounty",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := cast.ToUint64E(args[0])
				if err != nil {
					return fmt.Errorf("invalid bounty id: %w", err)
				}
				return c.query(cmd, &bountytypes.QueryBountyRequest{BountyID: id})
			},
		},
		&cobra.Command{
			Use:   "bounties",
			Short: "List every bounty in ascending id order",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return c.query(cmd, &bountytypes.QueryBountiesRequest{})
			},
		},
		&cobra.Command{
			Use:   "contract",
			Short: "Show the contract name, version, owner and next bounty id",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return c.query(cmd, &bountytypes.QueryContractInfoRequest{})
			},
		},
		&cobra.Command{
			Use:   "balance [address]",
			Short: "Show the coins held by an account",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.withApp(func(a *app.App) error {
					coins, err := a.Balances(args[0])
					if err != nil {
						return err
					}
					return printJSON(cmd, map[string]any{"address": args[0], "balances": coins})
				})
			},
		},
	)
	return cmd
}

func (c *cli) query(cmd *cobra.Command, req bountytypes.QueryMsg) error {
	return c.withApp(func(a *app.App) error {
		resp, err := a.Query(req)
		if err != nil {
			return err
		}
		return printJSON(cmd, resp)
	})
}
