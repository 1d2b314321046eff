package cmd

import (
	"strings"

	"github.com/btcq-org/bounty/app"
	"github.com/btcq-org/bounty/common"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
)

// parseCoins reads a coin list; a bare integer is taken in the default denom.
func (c *cli) parseCoins(s string) (sdk.Coins, error) {
	s = strings.TrimSpace(s)
	if amount, err := cast.ToInt64E(s); err == nil && s != "" {
		return sdk.NewCoins(sdk.NewInt64Coin(c.cfg.Denom, amount)), nil
	}
	return common.ParseCoins(s)
}

func (c *cli) fundCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fund [address] [amount]",
		Short: "Credit an account with coins",
		Long: `Credit an account with coins out of thin air, the way a faucet would.
Accounts need funds before they can escrow them in a bounty.`,
		Example: "bountyd fund bounty1... 1000ubty",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			coins, err := c.parseCoins(args[1])
			if err != nil {
				return err
			}
			return c.withApp(func(a *app.App) error {
				res, err := a.Fund(args[0], coins)
				if err != nil {
					return err
				}
				return printJSON(cmd, res)
			})
		},
	}
}
