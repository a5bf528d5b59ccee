package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"roombooking/config"
	"roombooking/internal/repository/postgres"

	_ "github.com/lib/pq"
)

func main() {
	seed := flag.Bool("seed", false, "insert the default rooms after migrating")
	flag.Parse()

	logger := config.NewLogger()
	if err := run(logger, *seed); err != nil {
		logger.Error("migration failed", "err", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, seed bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := postgres.Migrate(ctx, db, logger); err != nil {
		return err
	}
	if seed {
		if err := postgres.Seed(ctx, db); err != nil {
			return err
		}
		logger.Info("default rooms seeded", "count", len(postgres.DefaultRooms))
	}
	logger.Info("database is up to date")
	return nil
}
