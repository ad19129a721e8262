package store

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

var (
	DefaultStatuses = []string{"Todo", "In Progress", "Done"}
	DefaultUsers    = []string{"user1", "user2"}
)

// InitOptions controls Initialize.
type InitOptions struct {
	Force      bool
	Retries    int
	RetryDelay time.Duration
}

// Initialize syncs the schema and seeds default statuses and users when
// their tables are empty. The whole step is retried with a fixed delay so
// a database that is still starting up does not abort the process.
func Initialize(ctx context.Context, s Store, opts InitOptions, logger zerolog.Logger) error {
	retries := opts.Retries
	if retries < 1 {
		retries = 1
	}

	var err error
	for attempt := 1; attempt <= retries; attempt++ {
		err = initialize(ctx, s, opts.Force)
		if err == nil {
			logger.Info().
				Int("attempt", attempt).
				Msg("database initialized")
			return nil
		}

		logger.Error().
			Err(err).
			Int("attempt", attempt).
			Msg("database sync attempt failed")
		if attempt == retries {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(opts.RetryDelay):
		}
	}

	return fmt.Errorf("failed to initialize database after %d attempts: %w", retries, err)
}

func initialize(ctx context.Context, s Store, force bool) error {
	if err := s.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	if err := s.Migrate(ctx, force); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	count, err := s.CountStatuses(ctx)
	if err != nil {
		return fmt.Errorf("count statuses: %w", err)
	}
	if count == 0 {
		for _, name := range DefaultStatuses {
			if _, err := s.CreateStatus(ctx, name); err != nil {
				return fmt.Errorf("seed status %q: %w", name, err)
			}
		}
	}

	count, err = s.CountUsers(ctx)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count == 0 {
		for _, username := range DefaultUsers {
			if _, err := s.CreateUser(ctx, username); err != nil {
				return fmt.Errorf("seed user %q: %w", username, err)
			}
		}
	}

	return nil
}
