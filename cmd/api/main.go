package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Shivarajkushals/Dashboard/internal/api"
	"github.com/Shivarajkushals/Dashboard/internal/cache"
	"github.com/Shivarajkushals/Dashboard/internal/config"
	"github.com/Shivarajkushals/Dashboard/internal/metrics"
	"github.com/Shivarajkushals/Dashboard/internal/repository/postgres"
	"github.com/Shivarajkushals/Dashboard/internal/service"
	"github.com/Shivarajkushals/Dashboard/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger.SetLevel(cfg.LogLevel)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	salesCache, err := cache.NewSalesCache(cfg.Cache)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, serving without cache")
		salesCache = cache.NewNoopSalesCache()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	rec := metrics.NewRecorder(reg)

	// Initialize services
	salesService := service.NewSalesService(postgres.NewSalesRepository(db), salesCache, rec)

	// Initialize HTTP server
	router := api.NewRouter(&api.Services{SalesService: salesService}, cfg.Server.AllowedOrigins,
		api.Observability{Recorder: rec, Gatherer: reg})
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
