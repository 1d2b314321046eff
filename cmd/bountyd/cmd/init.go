package cmd

import (
	"fmt"

	"github.com/btcq-org/bounty/app"
	bountytypes "github.com/btcq-org/bounty/x/bounty/types"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const (
	flagStartID     = "start-id"
	flagGenesisFile = "genesis"
)

func (c *cli) initCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [owner]",
		Short: "Write the config file and instantiate the ledger",
		Long: `Write <home>/config.json and instantiate the ledger with owner as the
contract owner. With --genesis the ledger state is imported from an exported
genesis file instead, and owner is ignored.`,
		Args: cobra.RangeArgs(0, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			genesisFile, _ := cmd.Flags().GetString(flagGenesisFile)
			if genesisFile == "" && len(args) == 0 {
				return fmt.Errorf("owner is required unless --genesis is given")
			}
			if err := c.cfg.WriteConfigFile(); err != nil {
				return err
			}
			return c.withApp(func(a *app.App) error {
				if genesisFile != "" {
					gs, err := app.ReadGenesisFile(genesisFile)
					if err != nil {
						return err
					}
					if err := a.InitGenesis(gs); err != nil {
						return err
					}
					log.Info().Str("genesis", genesisFile).Msg("ledger imported")
					return printJSON(cmd, map[string]int64{"height": a.LastBlockHeight()})
				}

				msg := &bountytypes.InstantiateMsg{}
				if cmd.Flags().Changed(flagStartID) {
					id, err := cmd.Flags().GetUint64(flagStartID)
					if err != nil {
						return fmt.Errorf("invalid %s: %w", flagStartID, err)
					}
					msg.StartID = &id
				}
				res, err := a.Instantiate(args[0], msg)
				if err != nil {
					return err
				}
				log.Info().Str("owner", args[0]).Str("home", c.cfg.Home).Msg("ledger instantiated")
				return printJSON(cmd, res)
			})
		},
	}
	cmd.Flags().Uint64(flagStartID, bountytypes.DefaultStartBountyID, "first bounty id")
	cmd.Flags().String(flagGenesisFile, "", "import state from an exported genesis file")
	return cmd
}
