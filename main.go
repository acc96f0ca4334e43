package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hrms/internal/auth"
	intconfig "hrms/internal/config"
	intdb "hrms/internal/db"
	router "hrms/internal/http"
	"hrms/internal/metrics"
	"hrms/internal/notify"
	"hrms/internal/services"
	"hrms/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("hrms: %v", err)
	}
}

func run() error {
	cfg, err := intconfig.Load()
	if err != nil {
		return err
	}
	if cfg.App.GinMode != "" {
		gin.SetMode(cfg.App.GinMode)
	}

	logger, err := utils.NewLogger(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := intconfig.OpenDB(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := intdb.Migrate(db.DB); err != nil {
			return err
		}
		logger.Info("database migrated")
	}

	m := metrics.New()
	dispatcher := notify.NewDispatcher(notify.LogSender{Logger: logger}, logger, cfg.Notify.QueueSize)
	m.RegisterNotifyStats(dispatcher.Sent, dispatcher.Dropped)

	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.TTL)
	users := services.NewUserService(db)

	r := router.NewRouter(router.Deps{
		DB:              db,
		Log:             logger,
		Metrics:         m,
		Tokens:          tokens,
		Employees:       services.NewEmployeeService(db, dispatcher, logger),
		Departments:     services.NewDepartmentService(db),
		Users:           users,
		Auth:            services.NewAuthService(users, tokens, logger),
		AllowedOrigins:  cfg.CORS.AllowedOrigins,
		LoginRatePerMin: cfg.Auth.LoginRatePerMin,
	})

	srv := &http.Server{
		Addr:              cfg.App.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return dispatcher.Run(gctx)
	})
	g.Go(func() error {
		logger.Info("server listening", zap.String("addr", cfg.App.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("server stopped")
	return nil
}
