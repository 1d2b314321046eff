package cmd

import (
	"fmt"

	"cosmossdk.io/math"
	"github.com/btcq-org/bounty/app"
	bountytypes "github.com/btcq-org/bounty/x/bounty/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
)

const (
	flagTitle       = "title"
	flagDescription = "description"
	flagRecipient   = "recipient"
	flagEndHeight   = "end-height"
	flagEndTime     = "end-time"
	flagFunds       = "funds"
)

func (c *cli) txCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Bounty transaction subcommands",
	}
	cmd.AddCommand(
		c.createBountyCmd(),
		c.finalizeBountyCmd(),
		c.expireBountyCmd(),
	)
	return cmd
}

func (c *cli) execute(cmd *cobra.Command, sender string, funds sdk.Coins, msg bountytypes.ExecuteMsg) error {
	return c.withApp(func(a *app.App) error {
		res, err := a.Execute(sender, funds, msg)
		if err != nil {
			return err
		}
		return printJSON(cmd, res)
	})
}

func (c *cli) createBountyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create [issuer] [quantity]",
		Short: "Escrow funds in a new bounty",
		Long: `Escrow funds in a new bounty. The attached funds default to exactly
quantity of the default denom; use --funds to attach more.`,
		Example: "bountyd tx create bounty1... 500 --title 'Fix bug #12' --recipient bounty1... --end-height 120",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			quantity, ok := math.NewIntFromString(args[1])
			if !ok || quantity.IsNegative() {
				return fmt.Errorf("invalid quantity %q", args[1])
			}
			msg := &bountytypes.MsgCreateBounty{
				TokenDenom: c.cfg.Denom,
				Quantity:   quantity,
			}
			msg.Title, _ = cmd.Flags().GetString(flagTitle)
			msg.Description, _ = cmd.Flags().GetString(flagDescription)
			msg.Recipient, _ = cmd.Flags().GetString(flagRecipient)
			if cmd.Flags().Changed(flagEndHeight) {
				h, err := cmd.Flags().GetUint64(flagEndHeight)
				if err != nil {
					return err
				}
				msg.EndHeight = &h
			}
			if cmd.Flags().Changed(flagEndTime) {
				t, err := cmd.Flags().GetInt64(flagEndTime)
				if err != nil {
					return err
				}
				msg.EndTime = &t
			}

			funds := sdk.NewCoins(sdk.NewCoin(msg.TokenDenom, quantity))
			if raw, _ := cmd.Flags().GetString(flagFunds); raw != "" {
				var err error
				if funds, err = c.parseCoins(raw); err != nil {
					return err
				}
			}
			return c.execute(cmd, args[0], funds, msg)
		},
	}
	cmd.Flags().String(flagTitle, "", "bounty title")
	cmd.Flags().String(flagDescription, "", "bounty description")
	cmd.Flags().String(flagRecipient, "", "address paid on successful finalization")
	cmd.Flags().Uint64(flagEndHeight, 0, "height after which the bounty can be expired")
	cmd.Flags().Int64(flagEndTime, 0, "unix time after which the bounty can be expired")
	cmd.Flags().String(flagFunds, "", "coins to attach, defaults to quantity")
	return cmd
}

func (c *cli) finalizeBountyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "finalize [issuer] [bounty-id] [success]",
		Short: "Pay the recipient (success=true) or refund the issuer",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := cast.ToUint64E(args[1])
			if err != nil {
				return fmt.Errorf("invalid bounty id: %w", err)
			}
			success, err := cast.ToBoolE(args[2])
			if err != nil {
				return fmt.Errorf("invalid success flag: %w", err)
			}
			return c.execute(cmd, args[0], nil, &bountytypes.MsgFinalizeBounty{BountyID: id, Success: success})
		},
	}
}

func (c *cli) expireBountyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "expire [issuer] [bounty-id]",
		Short: "Refund the issuer of a bounty past its deadline",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := cast.ToUint64E(args[1])
			if err != nil {
				return fmt.Errorf("invalid bounty id: %w", err)
			}
			return c.execute(cmd, args[0], nil, &bountytypes.MsgExpireBounty{BountyID: id})
		},
	}
}
