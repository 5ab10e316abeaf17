package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lorrc/merchant-support-console/internal/api"
	"github.com/lorrc/merchant-support-console/internal/auth"
	"github.com/lorrc/merchant-support-console/internal/config"
	"github.com/lorrc/merchant-support-console/internal/console"
	"github.com/lorrc/merchant-support-console/internal/infrastructure/logging"
	"github.com/lorrc/merchant-support-console/internal/querycache"
	"github.com/lorrc/merchant-support-console/internal/session"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// 2. Initialize Structured Logger. Stdout belongs to the TUI, so
	// logs go to a file (or are discarded when none is configured).
	logger, closeLogger := logging.NewFileLogger(logging.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		ServiceName: cfg.App.Name,
		Environment: cfg.App.Environment,
	}, cfg.Logging.File)
	defer closeLogger()

	logger.Info("starting console",
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
		"api", cfg.API.BaseURL,
	)

	// 3. Restore Session
	sessions := session.NewStore(cfg.Session.FilePath, logger)
	sessions.Restore()

	// 4. Wire the Client Stack
	client := api.NewClient(cfg.API.BaseURL, sessions, logger)
	cache := querycache.New(logger)
	notices := console.NewNotices()
	authFacade := auth.New(sessions, client, cache, notices, logger)

	// 5. Run the Program. Focus reporting drives the stale-data
	// refresh when the terminal regains focus.
	model := console.New(console.Deps{
		Config:   cfg,
		Sessions: sessions,
		Client:   client,
		Cache:    cache,
		Auth:     authFacade,
		Notices:  notices,
		Logger:   logger,
	})

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithReportFocus())
	if _, err := program.Run(); err != nil {
		logger.Error("console exited with error", "error", err)
		os.Exit(1)
	}
	logger.Info("console exited")
}
