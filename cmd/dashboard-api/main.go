package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/ejm-support/registrations-dashboard-api/api/swagger"
	"github.com/ejm-support/registrations-dashboard-api/internal/dataset"
	"github.com/ejm-support/registrations-dashboard-api/internal/handler"
	"github.com/ejm-support/registrations-dashboard-api/internal/middleware"
	"github.com/ejm-support/registrations-dashboard-api/internal/repository"
	"github.com/ejm-support/registrations-dashboard-api/internal/service"
	"github.com/ejm-support/registrations-dashboard-api/internal/upstream"
	"github.com/ejm-support/registrations-dashboard-api/pkg/cache"
	"github.com/ejm-support/registrations-dashboard-api/pkg/config"
	"github.com/ejm-support/registrations-dashboard-api/pkg/logger"
	corsmiddleware "github.com/ejm-support/registrations-dashboard-api/pkg/middleware/cors"
	reqidmiddleware "github.com/ejm-support/registrations-dashboard-api/pkg/middleware/requestid"
)

// @title EJM Registrations Dashboard API
// @version 0.1.0
// @description Applicant registration analytics over the June-May academic calendar
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	// The dataset is loaded exactly once; without it no view can be
	// served, so any failure here is fatal.
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Upstream.Timeout)
	client := upstream.NewClient(cfg.Upstream.URL, cfg.Upstream.Timeout)
	raw, err := client.Fetch(ctx)
	cancel()
	if err != nil {
		logr.Sugar().Fatalw("failed to load registrations", "url", cfg.Upstream.URL, "error", err)
	}
	data := dataset.Build(raw, cfg.Dataset.RetentionCutoff, logr)

	metricsSvc := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if cfg.Dashboard.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Fatalw("failed to connect redis", "error", err)
		}
		cacheRepo := repository.NewCacheRepository(redisClient)
		defer cacheRepo.Close() //nolint:errcheck
		cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Dashboard.CacheTTL, logr, true)
	}

	chartSvc := service.NewChartService(data, cacheSvc, metricsSvc, logr)
	summarySvc := service.NewSummaryService(data, cacheSvc, metricsSvc, logr)
	optionsSvc := service.NewFilterOptionsService(data)
	registrationSvc := service.NewRegistrationService(data)

	dashboardHandler := handler.NewDashboardHandler(chartSvc, summarySvc)
	filtersHandler := handler.NewFiltersHandler(optionsSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	var exportSvc *service.ExportService
	if cfg.Exports.Enabled {
		exportSvc = service.NewExportService(data, nil, nil, logr)
	}
	registrationHandler := handler.NewRegistrationHandler(registrationSvc, exportSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))
	r.Use(middleware.WithResponseMeta())

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready", "records": data.Total()})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	api := r.Group(cfg.APIPrefix)
	{
		api.GET("/dashboard/chart", dashboardHandler.Chart)
		api.GET("/dashboard/summary", dashboardHandler.Summary)
		api.GET("/dashboard/filters", filtersHandler.Options)
		api.GET("/registrations", registrationHandler.List)
		if cfg.Exports.Enabled {
			api.GET("/registrations/export", registrationHandler.Export)
		}
		api.GET("/system/metrics", metricsHandler.System)
	}

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "records", data.Total())
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
