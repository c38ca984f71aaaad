package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tallyup/backend/internal/api"
	"github.com/tallyup/backend/internal/auth"
	"github.com/tallyup/backend/internal/config"
	"github.com/tallyup/backend/internal/metrics"
	"github.com/tallyup/backend/internal/service"
	"github.com/tallyup/backend/internal/storage"
	"github.com/tallyup/backend/internal/storage/postgres"
	"github.com/tallyup/backend/internal/storage/sqlite"
	"github.com/tallyup/backend/pkg/logging"
)

func main() {
	cfg := config.Load()
	if cfg.Env == "prod" {
		logging.SetupJSON()
	} else {
		logging.Setup()
	}
	metrics.Init()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg)
	if err != nil {
		slog.Error("Failed to initialize storage", "driver", cfg.StorageDriver, "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "driver", cfg.StorageDriver)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)
	server := &api.Server{
		Auth:      service.NewAuthService(auth.NewPasswordAuthenticator(store), jwtManager),
		Groups:    service.NewGroupService(store),
		Expenses:  service.NewExpenseService(store),
		Transfers: service.NewTransferService(store),
		Balances:  service.NewBalanceService(store),
	}

	httpServer := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           api.NewRouter(server, jwtManager),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server starting", "address", httpServer.Addr, "env", cfg.Env)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("Graceful shutdown failed", "error", err)
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}
}

func openStore(ctx context.Context, cfg config.Config) (storage.Store, error) {
	switch cfg.StorageDriver {
	case "sqlite":
		return sqlite.New(cfg.SQLitePath)
	case "postgres":
		return postgres.New(ctx, cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
