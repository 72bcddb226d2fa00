// Command dbreset drops the application tables and recreates them with
// the bootstrap admin account. Development tool; refuses to run without
// -yes.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/diebraga/daily-diet-api/internal/config"
	"github.com/diebraga/daily-diet-api/internal/db"
)

func main() {
	yes := flag.Bool("yes", false, "confirm dropping all tables")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if !*yes {
		logger.Error("refusing to drop tables without -yes")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	if err := db.DropAll(ctx, cfg.DBURL); err != nil {
		logger.Error("failed to drop tables", "error", err)
		os.Exit(1)
	}
	logger.Info("tables dropped")

	if err := db.Migrate(ctx, cfg.DBURL); err != nil {
		logger.Error("failed to recreate schema", "error", err)
		os.Exit(1)
	}
	logger.Info("schema recreated")

	dbConn, err := db.Connect(ctx, cfg.DBURL)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	if err := db.EnsureAdminUser(ctx, dbConn.Pool, cfg.RequestTimeout); err != nil {
		logger.Error("failed to seed admin user", "error", err)
		os.Exit(1)
	}
	logger.Info("admin user seeded")
}
