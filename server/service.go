package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/btcq-org/bounty/app"
	"github.com/btcq-org/bounty/server/config"
	"github.com/btcq-org/bounty/server/metrics"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const shutdownTimeout = 5 * time.Second

// Service exposes the ledger host over HTTP.
type Service struct {
	cfg     config.Config
	logger  zerolog.Logger
	app     *app.App
	metrics *metrics.Metrics

	hs       *http.Server
	listener net.Listener
	wg       *sync.WaitGroup
}

func NewService(cfg config.Config, a *app.App, m *metrics.Metrics) (*Service, error) {
	if a == nil {
		return nil, fmt.Errorf("app cannot be nil")
	}
	if m == nil {
		m = metrics.NewMetrics()
	}
	s := &Service{
		cfg:     cfg,
		logger:  log.With().Str("module", "bounty_service").Logger(),
		app:     a,
		metrics: m,
		wg:      &sync.WaitGroup{},
	}
	s.hs = &http.Server{
		Addr:              cfg.HTTPListenAddress,
		Handler:           s.registerRoutes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// Handler returns the routed HTTP handler.
func (s *Service) Handler() http.Handler {
	return s.hs.Handler
}

// Addr is the bound listen address once started.
func (s *Service) Addr() string {
	if s.listener == nil {
		return s.cfg.HTTPListenAddress
	}
	return s.listener.Addr().String()
}

// Start binds the listen address and serves in the background.
func (s *Service) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.cfg.HTTPListenAddress)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.HTTPListenAddress, err)
	}
	s.listener = listener
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.hs.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error().Err(err).Msg("http server stopped")
		}
	}()
	s.logger.Info().
		Str("listen_addr", s.Addr()).
		Int64("height", s.app.LastBlockHeight()).
		Msg("bounty service started")
	return nil
}

// Stop shuts the HTTP server down and waits for it to exit.
func (s *Service) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := s.hs.Shutdown(ctx)
	s.wg.Wait()
	s.logger.Info().Msg("bounty service stopped")
	return err
}
