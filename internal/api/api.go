// internal/api/api.go
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/internal/api/handlers"
	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/internal/api/middleware"
)

// Services groups the dependencies of the HTTP handlers. Nil members leave
// their routes unregistered.
type Services struct {
	Products  handlers.ProductService
	Forecasts handlers.ProductForecaster
	Suppliers handlers.SupplierService
	Sales     handlers.SaleService
	Alerts    handlers.AlertService
	Metrics   handlers.MetricsService
	Category  handlers.CategoryService
	Trainer   handlers.Trainer
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	// Add middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")
	if services == nil {
		return router
	}

	if services.Products != nil {
		productHandler := handlers.NewProductHandler(services.Products, services.Forecasts)
		productGroup := apiGroup.Group("/products")
		{
			productGroup.GET("", productHandler.ListProducts)
			productGroup.POST("", productHandler.CreateProduct)
			productGroup.GET("/:id", productHandler.GetProduct)
			productGroup.PUT("/:id", productHandler.UpdateProduct)
			productGroup.DELETE("/:id", productHandler.DeleteProduct)
			if services.Forecasts != nil {
				productGroup.GET("/:id/forecast", productHandler.GetForecast)
			}
		}
	}

	if services.Suppliers != nil {
		supplierHandler := handlers.NewSupplierHandler(services.Suppliers)
		supplierGroup := apiGroup.Group("/suppliers")
		{
			supplierGroup.GET("", supplierHandler.ListSuppliers)
			supplierGroup.POST("", supplierHandler.CreateSupplier)
			supplierGroup.GET("/:id", supplierHandler.GetSupplier)
		}
	}

	if services.Sales != nil {
		saleHandler := handlers.NewSaleHandler(services.Sales)
		apiGroup.POST("/sales", saleHandler.RecordSale)
		apiGroup.GET("/sales", saleHandler.ListSales)
	}

	if services.Alerts != nil {
		alertHandler := handlers.NewAlertHandler(services.Alerts)
		alertGroup := apiGroup.Group("/alerts")
		{
			alertGroup.GET("/low-stock", alertHandler.GetLowStock)
			alertGroup.GET("/forecast", alertHandler.GetForecastAlerts)
		}
	}

	if services.Metrics != nil {
		metricsHandler := handlers.NewMetricsHandler(services.Metrics)
		metricsGroup := apiGroup.Group("/metrics")
		{
			metricsGroup.GET("/dashboard", metricsHandler.GetDashboard)
			metricsGroup.GET("/profit", metricsHandler.GetProfit)
		}
	}

	if services.Category != nil {
		categoryHandler := handlers.NewCategoryHandler(services.Category)
		categoryGroup := apiGroup.Group("/categories")
		{
			categoryGroup.GET("/verify", categoryHandler.Verify)
			categoryGroup.POST("/fix", categoryHandler.Fix)
		}
	}

	if services.Trainer != nil {
		trainingHandler := handlers.NewTrainingHandler(services.Trainer)
		forecastGroup := apiGroup.Group("/forecasts")
		{
			forecastGroup.POST("/train", trainingHandler.StartTraining)
			forecastGroup.GET("/runs/latest", trainingHandler.GetLatestRun)
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
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
