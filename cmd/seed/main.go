package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	intconfig "hrms/internal/config"
	intdb "hrms/internal/db"
	"hrms/internal/seed"
	"hrms/internal/utils"

	"go.uber.org/zap"
)

func main() {
	cfg, err := intconfig.Load()
	if err != nil {
		log.Fatalf("seed: %v", err)
	}
	logger, err := utils.NewLogger(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("seed: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := intconfig.OpenDB(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	defer db.Close()

	if err := intdb.Migrate(db.DB); err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}

	res, err := seed.New(db, logger).Run(ctx)
	if err != nil {
		logger.Fatal("seeding failed", zap.Error(err))
	}
	logger.Info("seeding completed",
		zap.Int("departments", res.Departments),
		zap.Int("employees", res.Employees),
		zap.Int("users", res.Users),
	)
}
