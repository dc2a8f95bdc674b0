package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/Shivarajkushals/Dashboard/internal/api/handlers"
	"github.com/Shivarajkushals/Dashboard/internal/api/middleware"
	"github.com/Shivarajkushals/Dashboard/internal/metrics"
	"github.com/Shivarajkushals/Dashboard/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Services struct {
	SalesService *service.SalesService
}

// Observability carries the metrics recorder and the registry served on
// /metrics. Both may be nil.
type Observability struct {
	Recorder *metrics.Recorder
	Gatherer prometheus.Gatherer
}

func NewRouter(services *Services, allowedOrigins []string, obs Observability) *gin.Engine {
	router := gin.New()

	// Add middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.Metrics(obs.Recorder))
	router.Use(cors.New(corsConfig(allowedOrigins)))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if obs.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(obs.Gatherer, promhttp.HandlerOpts{})))
	}

	apiGroup := router.Group("/api")

	if services != nil && services.SalesService != nil {
		salesHandler := handlers.NewSalesHandler(services.SalesService)
		apiGroup.GET("/store-summary/", salesHandler.GetStoreSummary)
		apiGroup.GET("/shop-type-summary/", salesHandler.GetShopTypeSummary)
		apiGroup.GET("/month-on-month/", salesHandler.GetMonthOnMonth)
		apiGroup.GET("/store-list/", salesHandler.GetStoreList)
		apiGroup.GET("/tran_type-list/", salesHandler.GetTranTypeList)
		apiGroup.GET("/shop_type-list/", salesHandler.GetShopTypeList)
	}

	return router
}

func corsConfig(allowedOrigins []string) cors.Config {
	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	cfg := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			cfg.AllowOrigins = nil
			cfg.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			cfg.AllowOrigins = normalizedOrigins
		}
	}
	return cfg
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		for _, part := range strings.Split(origin, ",") {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
