// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/internal/api"
	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/internal/cache"
	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/internal/category"
	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/internal/config"
	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/internal/forecast"
	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/internal/repository/postgres"
	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/internal/service"
	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/internal/storage"
	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/internal/training"
	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger
	logger.Setup(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize database
	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	if err := postgres.Migrate(db.DB.DB); err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	lookup, err := category.Load(cfg.Categories.MappingFile)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to load category mapping")
	}

	objects, err := storage.New(ctx, cfg.Artifacts)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to initialize artifact storage")
	}

	metricsCache := cache.NewNoopMetricsCache()
	if cfg.Cache.Enabled {
		redisCache, err := cache.NewMetricsCache(ctx, cfg.Cache)
		if err != nil {
			logger.Log.Warn().Err(err).Msg("Redis unavailable, serving metrics without cache")
		} else {
			metricsCache = redisCache
		}
	}
	defer metricsCache.Close()

	// Repositories
	products := postgres.NewProductRepository(db)
	suppliers := postgres.NewSupplierRepository(db)
	sales := postgres.NewSaleRepository(db)

	engine := forecast.NewEngine(forecast.NewObjectArtifactStore(objects), forecast.Options{
		MinHistory:      cfg.Forecast.MinHistoryDays,
		ReuseWithinDays: cfg.Forecast.ReuseWithinDays,
		MaxIterations:   cfg.Forecast.MaxIterations,
	}, logger.Component("forecast"))

	trainer := training.NewTrainer(products, sales, engine, training.NewRepository(db.DB.DB), training.Config{
		Workers: cfg.Training.Workers,
		Horizon: cfg.Forecast.Horizon,
	})

	// Initialize services
	services := &api.Services{
		Products:  service.NewProductService(products, suppliers, lookup, metricsCache),
		Forecasts: service.NewForecastService(products, sales, engine, cfg.Forecast.Horizon),
		Suppliers: service.NewSupplierService(suppliers),
		Sales:     service.NewSaleService(sales, metricsCache),
		Alerts:    service.NewAlertService(products, sales, engine, cfg.Forecast.Horizon),
		Metrics:   service.NewMetricsService(products, sales, metricsCache, engine.MinHistory()),
		Category:  service.NewCategoryService(products, lookup, metricsCache),
		Trainer:   trainer,
	}

	if cfg.Training.Enabled {
		go training.NewScheduler(trainer, cfg.Training.Interval).Start(ctx)
	}

	// Initialize HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      api.NewRouter(services, cfg.Server.AllowedOrigins),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	<-ctx.Done()
	logger.Log.Info().Msg("Shutting down server...")

	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error().Err(err).Msg("Server forced to shutdown")
	}

	trainer.Wait()
	logger.Log.Info().Msg("Server exiting")
}
