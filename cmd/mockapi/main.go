package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/lorrc/merchant-support-console/internal/config"
	"github.com/lorrc/merchant-support-console/internal/infrastructure/logging"
	"github.com/lorrc/merchant-support-console/internal/mockapi"
	"github.com/lorrc/merchant-support-console/internal/mockapi/token"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// 2. Initialize Structured Logger
	logger := logging.NewLogger(logging.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Output:      os.Stdout,
		ServiceName: cfg.App.Name + "-mockapi",
		Environment: cfg.App.Environment,
	})

	logger.Info("starting mock API",
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	// 3. Seed the In-Memory Store
	store := mockapi.NewStore()
	if err := store.Seed(); err != nil {
		logger.Error("failed to seed fixture data", "error", err)
		os.Exit(1)
	}
	logger.Info("fixture data seeded")

	// 4. Wire the Server
	tokens := token.NewManager(cfg.MockAPI.JWTSecret, cfg.MockAPI.TokenTTL)
	server := mockapi.NewServer(store, tokens, logger)

	srv := &http.Server{
		Addr:    cfg.MockAPI.Port,
		Handler: server.Router(cfg.MockAPI.RateLimit),
	}

	// 5. Start Server with Graceful Shutdown
	go func() {
		logger.Info("server starting", "port", cfg.MockAPI.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutdown signal received", "signal", sig.String())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.MockAPI.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
		os.Exit(1)
	}

	logger.Info("server shutdown complete")
}
