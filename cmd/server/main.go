// Package main implements the entry point for the Spotly meeting API server,
// which lets users host, schedule and join meetings and discuss them through
// comments and tags.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"

	"github.com/spotly/meeting-api/internal/config"
	"github.com/spotly/meeting-api/internal/platform/logger"
	"github.com/spotly/meeting-api/internal/platform/postgres"
)

func main() {
	migrate := flag.String("migrate", "",
		"run a database migration command and exit ("+strings.Join(postgres.MigrationCommands, "|")+")")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *migrate); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// run loads configuration, connects to the database and either runs the
// requested migration command or serves HTTP until ctx is cancelled.
func run(ctx context.Context, migrateCommand string) error {
	if migrateCommand != "" && !slices.Contains(postgres.MigrationCommands, migrateCommand) {
		return fmt.Errorf("unknown migration command %q", migrateCommand)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	l.Info("Server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel))

	db, err := setupAppDatabase(ctx, cfg.Database, l)
	if err != nil {
		return err
	}

	if migrateCommand != "" {
		defer func() {
			if err := db.Close(); err != nil {
				l.Error("Error closing database connection", slog.String("error", err.Error()))
			}
		}()
		return postgres.Migrate(ctx, db, migrateCommand, l)
	}

	app, err := newApplication(cfg, l, db)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return app.Run(ctx)
}
