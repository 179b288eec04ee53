package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/event-registration/internal/bootstrap"
	"github.com/example/event-registration/internal/config"
	"github.com/example/event-registration/internal/logging"
	"github.com/example/event-registration/internal/persistence/sqlite"
	"github.com/example/event-registration/internal/persistence/sqlite/migration"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:           "eventreg",
		Short:         "Event registration admin server",
		Long:          "Serves the HTML administration pages for events and their registrations, backed by SQLite.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file preloaded into the environment when present")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Apply pending migrations and start the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := setup(cmd.OutOrStdout(), envFile)
			if err != nil {
				return reportErr(cmd, err)
			}
			if err := runServe(cmd.Context(), cfg, logger); err != nil {
				logger.Error("server encountered error", "error", err)
				return err
			}
			return nil
		},
	}

	var statusOnly bool
	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := setup(cmd.OutOrStdout(), envFile)
			if err != nil {
				return reportErr(cmd, err)
			}
			if err := runMigrate(cmd.Context(), cmd.OutOrStdout(), cfg, logger, statusOnly); err != nil {
				logger.Error("migration failed", "error", err)
				return err
			}
			return nil
		},
	}
	migrate.Flags().BoolVar(&statusOnly, "status", false, "report migration status without applying anything")

	root.AddCommand(serve, migrate)
	root.RunE = serve.RunE
	return root
}

func reportErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), "eventreg:", err)
	return err
}

func setup(out io.Writer, envFile string) (config.Config, *slog.Logger, error) {
	if err := config.LoadEnvFile(envFile); err != nil {
		return config.Config{}, nil, err
	}
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, logging.New(out, cfg.LogLevel), nil
}

func openStorage(ctx context.Context, cfg config.Config, logger *slog.Logger) (*sqlite.Storage, error) {
	storage, err := sqlite.Open(ctx, migration.DefaultSQLiteConfig(cfg.SQLitePath), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}
	return storage, nil
}

func runMigrate(ctx context.Context, out io.Writer, cfg config.Config, logger *slog.Logger, statusOnly bool) error {
	storage, err := openStorage(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := storage.Close(); cerr != nil {
			logger.Error("failed to close storage", "error", cerr)
		}
	}()

	if !statusOnly {
		if err := storage.Migrate(ctx); err != nil {
			return err
		}
	}

	status, err := storage.MigrationStatus(ctx)
	if err != nil {
		return err
	}
	version := status.CurrentVersion
	if version == "" {
		version = "none"
	}
	fmt.Fprintf(out, "schema version %s, %d applied, %d pending\n", version, len(status.AppliedMigrations), status.PendingCount)
	return nil
}

func runServe(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	storage, err := openStorage(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := storage.Close(); cerr != nil {
			logger.Error("failed to close storage", "error", cerr)
		}
	}()

	if err := storage.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	handler, err := bootstrap.NewHandler(storage, nil, logger)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	logger.Info("event registration server listening", "addr", server.Addr, "database", cfg.SQLitePath)
	return serveUntilDone(ctx, server, cfg.ShutdownTimeout, logger)
}

// serveUntilDone runs server until ctx is cancelled, then drains in-flight
// requests for at most timeout.
func serveUntilDone(ctx context.Context, server *http.Server, timeout time.Duration, logger *slog.Logger) error {
	serveDone := make(chan struct{})
	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		select {
		case <-ctx.Done():
		case <-serveDone:
			return
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	err := server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		close(serveDone)
		<-shutdownDone
		return err
	}
	<-shutdownDone
	logger.Info("server stopped")
	return nil
}
