package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/internal/domain"
)

type MetricsService interface {
	Dashboard(ctx context.Context) (*domain.DashboardMetrics, error)
	ProfitAnalysis(ctx context.Context) (*domain.ProfitAnalysis, error)
}

type MetricsHandler struct {
	metrics MetricsService
}

func NewMetricsHandler(metrics MetricsService) *MetricsHandler {
	return &MetricsHandler{metrics: metrics}
}

func (h *MetricsHandler) GetDashboard(c *gin.Context) {
	dashboard, err := h.metrics.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to fetch dashboard metrics")
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

func (h *MetricsHandler) GetProfit(c *gin.Context) {
	analysis, err := h.metrics.ProfitAnalysis(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to fetch profit analysis")
		return
	}
	c.JSON(http.StatusOK, analysis)
}
