package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"tasks-go/app/config"
	"tasks-go/app/routes"
	"tasks-go/app/server"
	"tasks-go/app/store"
	"tasks-go/app/store/neo4jstore"
	"tasks-go/app/store/pgstore"
	"tasks-go/app/store/sqlitestore"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var envFiles []string

	serve := func(cmd *cobra.Command, _ []string) error {
		return runServe(cmd.Context(), envFiles)
	}

	root := &cobra.Command{
		Use:           "tasks-api",
		Short:         "HTTP API for tasks with statuses and assigned users",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve,
	}
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Sync the database and serve the HTTP API",
		RunE:  serve,
	}

	root.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "dotenv files to load before reading the environment")
	root.AddCommand(serveCmd)
	return root
}

func runServe(ctx context.Context, envFiles []string) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Read(envFiles...)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to read config:", err)
		return err
	}

	logger, err := config.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to init logger:", err)
		return err
	}
	logger.Info().
		Str("env", cfg.Env).
		Str("driver", cfg.Database.Driver).
		Msg("read config")

	db, err := openStore(ctx, cfg)
	if err != nil {
		logger.Error().Err(err).Msg("failed to open database")
		return err
	}

	err = store.Initialize(ctx, db, store.InitOptions{
		Force:      cfg.Database.ForceSync,
		Retries:    cfg.Database.SyncRetries,
		RetryDelay: cfg.Database.SyncRetryDelay,
	}, logger)
	if err != nil {
		logger.Error().Err(err).Msg("failed to start server")
		_ = db.Close(context.Background())
		return err
	}

	srv := server.New(cfg.HTTP, routes.NewHandler(db, logger), db, logger)
	if err := srv.Run(ctx); err != nil {
		logger.Error().Err(err).Msg("server stopped with error")
		return err
	}
	return nil
}

func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		pool, err := config.InitPostgres(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		return pgstore.New(pool), nil
	case config.DriverSQLite:
		db, err := config.InitSQLite(cfg.Database)
		if err != nil {
			return nil, err
		}
		return sqlitestore.New(db), nil
	case config.DriverNeo4j:
		driver, err := config.InitNeo4j(cfg.Database, cfg.Neo4j)
		if err != nil {
			return nil, err
		}
		return neo4jstore.New(driver), nil
	default:
		return nil, fmt.Errorf("unknown database driver: %s", cfg.Database.Driver)
	}
}
