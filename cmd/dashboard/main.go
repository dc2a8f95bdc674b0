package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Shivarajkushals/Dashboard/internal/client"
	"github.com/Shivarajkushals/Dashboard/internal/config"
	"github.com/Shivarajkushals/Dashboard/internal/storage"
	"github.com/Shivarajkushals/Dashboard/internal/tui"
	"github.com/Shivarajkushals/Dashboard/pkg/logger"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()

	// The terminal belongs to the UI, so logs go to a file.
	logFile, err := os.OpenFile(cfg.Dashboard.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.Dashboard.LogFile).Msg("Failed to open log file")
	}
	defer logFile.Close()
	logger.SetOutput(logFile)
	logger.SetLevel(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	store, err := storage.New(cfg.Export)
	if err != nil {
		log.Warn().Err(err).Msg("export storage unavailable")
		store = nil
	}

	api := client.New(cfg.Dashboard.APIBaseURL, client.WithTimeout(cfg.Dashboard.RequestTimeout))
	model := tui.New(ctx, tui.Options{
		API:            api,
		Storage:        store,
		PageSize:       cfg.Dashboard.PageSize,
		RequestTimeout: cfg.Dashboard.RequestTimeout,
	})

	log.Info().Str("api", cfg.Dashboard.APIBaseURL).Msg("Starting dashboard")
	if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		log.Error().Err(err).Msg("dashboard exited with error")
		os.Exit(1)
	}
	log.Info().Msg("Dashboard exiting")
}
