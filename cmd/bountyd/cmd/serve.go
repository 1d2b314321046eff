package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/btcq-org/bounty/app"
	"github.com/btcq-org/bounty/server"
	"github.com/btcq-org/bounty/server/config"
	"github.com/btcq-org/bounty/server/metrics"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const (
	flagHTTPListenAddress = "http-listen-address"
	flagFaucet            = "faucet"
)

func (c *cli) serveCmd() *cobra.Command {
	def := config.DefaultConfig()
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the ledger over HTTP until interrupted",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.v.BindPFlag(config.KeyHTTPListenAddress, cmd.Flags().Lookup(flagHTTPListenAddress)); err != nil {
				return err
			}
			if err := c.v.BindPFlag(config.KeyFaucet, cmd.Flags().Lookup(flagFaucet)); err != nil {
				return err
			}
			return c.load(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			m := metrics.NewMetrics()
			db, err := c.cfg.OpenDB()
			if err != nil {
				return err
			}
			logger, err := c.cfg.Logger()
			if err != nil {
				return err
			}
			opts := append(c.cfg.AppOptions(), app.WithTelemetry(m))
			a, err := app.New(logger, db, opts...)
			if err != nil {
				_ = db.Close()
				return err
			}
			defer func() {
				if err := a.Close(); err != nil {
					log.Error().Err(err).Msg("failed to close database")
				}
			}()

			svc, err := server.NewService(*c.cfg, a, m)
			if err != nil {
				return err
			}
			if err := svc.Start(cmd.Context()); err != nil {
				return err
			}

			// wait for termination signal (Ctrl+C / SIGINT or SIGTERM)
			sig := make(chan os.Signal, 1)
			signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
			select {
			case s := <-sig:
				log.Info().Str("signal", s.String()).Msg("shutting down")
			case <-cmd.Context().Done():
			}
			return svc.Stop()
		},
	}
	cmd.Flags().String(flagHTTPListenAddress, def.HTTPListenAddress, "HTTP listen address")
	cmd.Flags().Bool(flagFaucet, def.Faucet, "expose POST /fund")
	return cmd
}
