package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/vikask011/react-native/internal/repository"
	"github.com/vikask011/react-native/internal/seed"
	"github.com/vikask011/react-native/pkg/config"
	"github.com/vikask011/react-native/pkg/database"
	"github.com/vikask011/react-native/pkg/logger"
)

func main() {
	force := flag.Bool("force", false, "add missing demo events even when the catalog is not empty")
	envFile := flag.String("env", "", "path to an env file (defaults to ./.env when present)")
	flag.Parse()

	var (
		cfg *config.Config
		err error
	)
	if *envFile != "" {
		cfg, err = config.LoadWithPath(*envFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(&logger.Config{
		Level:       cfg.Log.Level,
		ServiceName: "seed",
		Development: cfg.IsDevelopment(),
	}); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLog := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, database.DefaultPostgresConfig(cfg.Database.DSN()), nil)
	if err != nil {
		appLog.Fatal("Database connection failed", zap.Error(err))
	}
	defer db.Close()

	if err := repository.EnsureSchema(ctx, db.Pool()); err != nil {
		appLog.Fatal("Failed to apply schema", zap.Error(err))
	}

	created, err := seed.Seed(ctx, repository.NewPostgresEventRepository(db.Pool()), *force)
	if err != nil {
		appLog.Fatal("Seeding failed", zap.Error(err))
	}
	appLog.Info("Seeding finished", zap.Int("created", created), zap.Bool("force", *force))
}
