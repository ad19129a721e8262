// Package server runs the HTTP server and shuts it down gracefully.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"tasks-go/app/config"
)

// Closer releases the storage connection once the server has drained.
type Closer interface {
	Close(ctx context.Context) error
}

type Server struct {
	http            *http.Server
	db              Closer
	logger          zerolog.Logger
	shutdownTimeout time.Duration
}

func New(cfg config.HTTPConfig, handler http.Handler, db Closer, logger zerolog.Logger) *Server {
	return &Server{
		http: &http.Server{
			Addr:              net.JoinHostPort(cfg.Host, cfg.Port),
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		db:              db,
		logger:          logger,
		shutdownTimeout: cfg.ShutdownTimeout,
	}
}

// Run serves until ctx is cancelled, then stops accepting connections,
// waits for in-flight requests and closes the database.
func (s *Server) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listener)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	serveErr := make(chan error, 1)
	go func() {
		s.logger.Info().
			Str("addr", listener.Addr().String()).
			Msg("server running")
		err := s.http.Serve(listener)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			s.logger.Error().Err(err).Msg("failed to serve http")
			return errors.Join(err, s.closeDB())
		}
	case <-ctx.Done():
	}

	s.logger.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	err := s.http.Shutdown(shutdownCtx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to shutdown http server")
	}

	return errors.Join(err, s.closeDB())
}

func (s *Server) closeDB() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.db.Close(ctx); err != nil {
		s.logger.Error().Err(err).Msg("failed to close database")
		return err
	}
	s.logger.Info().Msg("server and database connections closed")
	return nil
}
