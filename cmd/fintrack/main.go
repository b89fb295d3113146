package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"fintrack/internal/charts"
	"fintrack/internal/config"
	apphttp "fintrack/internal/http"
	"fintrack/internal/kv"
	kvmem "fintrack/internal/kv/memory"
	"fintrack/internal/kv/sqlitekv"
	"fintrack/internal/ledger"
	"fintrack/internal/log"
	"fintrack/internal/services"
	"fintrack/internal/settings"
	"fintrack/internal/worker"
)

func main() {
	// .env is optional in production.
	_ = godotenv.Load()

	logger := log.New(log.DefaultConfig())
	log.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}

	var store kv.Store
	var closeStore func() error
	switch cfg.StoreBackend {
	case "sqlite":
		sqlStore, err := sqlitekv.New(cfg.SQLiteDBPath)
		if err != nil {
			logger.Error("Failed to open sqlite store", log.FieldError, err, "path", cfg.SQLiteDBPath)
			os.Exit(1)
		}
		store = sqlStore
		closeStore = sqlStore.Close
	default:
		store = kvmem.New()
		closeStore = func() error { return nil }
	}
	logger.Info("Store initialized", log.FieldBackend, cfg.StoreBackend)

	repo := ledger.NewRepository(store, logger)
	settingsSvc := settings.NewService(store, logger)
	tracker := services.NewTracker(repo, settingsSvc, logger)
	renderer := charts.NewRenderer()

	srv := apphttp.NewServer(":"+cfg.Port, tracker, settingsSvc, renderer, cfg.CacheSize, cfg.CacheTTL)
	notifier := worker.NewReminderNotifier(settingsSvc, cfg.ReminderInterval, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting fintrack server", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		return notifier.Run(ctx)
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", log.FieldError, err)
	}

	if err := closeStore(); err != nil {
		logger.Error("Store close failed", log.FieldError, err)
	}
	logger.Info("Server stopped gracefully")
}
