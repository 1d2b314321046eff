package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/btcq-org/bounty/app"
	"github.com/btcq-org/bounty/server/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	flagHome           = "home"
	flagDBBackend      = "db-backend"
	flagChainID        = "chain-id"
	flagLogLevel       = "log-level"
	flagInvariantCheck = "invariant-check"
	flagDenom          = "denom"
)

// cli carries the configuration shared by every sub command.
type cli struct {
	v   *viper.Viper
	cfg *config.Config
}

// NewRootCmd returns the bountyd command tree.
func NewRootCmd() *cobra.Command {
	c := &cli{v: viper.New()}
	def := config.DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "bountyd",
		Short: "Bounty escrow ledger",
		Long: `bountyd runs a bounty escrow ledger on a local database.

An issuer escrows funds in a bounty, optionally naming a recipient and a
deadline. The issuer later finalizes the bounty, paying the recipient or
refunding itself, or expires it once the deadline has passed.

Every flag can also be set in <home>/config.json or through a BOUNTYD_
prefixed environment variable, e.g. BOUNTYD_LOG_LEVEL=debug.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.load(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String(flagHome, def.Home, "directory for config and data")
	flags.String(flagDBBackend, def.DBBackend, "database backend (goleveldb or memdb)")
	flags.String(flagChainID, def.ChainID, "chain id reported to the ledger")
	flags.String(flagLogLevel, def.LogLevel, "log level (trace|debug|info|warn|error)")
	flags.Bool(flagInvariantCheck, def.InvariantCheck, "assert the escrow invariant after every transaction")
	flags.String(flagDenom, def.Denom, "default denom for amounts given without one")

	rootCmd.AddCommand(
		c.initCmd(),
		c.fundCmd(),
		c.txCmd(),
		c.queryCmd(),
		c.invariantsCmd(),
		c.exportCmd(),
		c.serveCmd(),
	)
	return rootCmd
}

func (c *cli) bindFlags(flags *pflag.FlagSet) error {
	bindings := map[string]string{
		config.KeyHome:           flagHome,
		config.KeyDBBackend:      flagDBBackend,
		config.KeyChainID:        flagChainID,
		config.KeyLogLevel:       flagLogLevel,
		config.KeyInvariantCheck: flagInvariantCheck,
		config.KeyDenom:          flagDenom,
	}
	for key, name := range bindings {
		if f := flags.Lookup(name); f != nil {
			if err := c.v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("failed to bind flag %s: %w", name, err)
			}
		}
	}
	return nil
}

func (c *cli) load(cmd *cobra.Command) error {
	if err := c.bindFlags(cmd.Flags()); err != nil {
		return err
	}
	cfg, err := config.GetConfig(c.v)
	if err != nil {
		return err
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	c.cfg = cfg
	return nil
}

// openApp opens the ledger database. The caller closes the returned app.
func (c *cli) openApp() (*app.App, error) {
	db, err := c.cfg.OpenDB()
	if err != nil {
		return nil, err
	}
	logger, err := c.cfg.Logger()
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	a, err := app.New(logger, db, c.cfg.AppOptions()...)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return a, nil
}

// withApp runs fn on an opened ledger and closes it afterwards.
func (c *cli) withApp(fn func(a *app.App) error) error {
	a, err := c.openApp()
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close database")
		}
	}()
	return fn(a)
}

func printJSON(cmd *cobra.Command, v any) error {
	bz, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(bz))
	return err
}
