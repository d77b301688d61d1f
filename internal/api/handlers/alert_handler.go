package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/internal/domain"
)

type AlertService interface {
	LowStock(ctx context.Context) ([]domain.LowStockAlert, error)
	ForecastAlerts(ctx context.Context, onlyAlerting bool) ([]domain.ForecastAlert, error)
}

type AlertHandler struct {
	alerts AlertService
}

func NewAlertHandler(alerts AlertService) *AlertHandler {
	return &AlertHandler{alerts: alerts}
}

func (h *AlertHandler) GetLowStock(c *gin.Context) {
	alerts, err := h.alerts.LowStock(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to fetch low stock alerts")
		return
	}
	c.JSON(http.StatusOK, alerts)
}

// GetForecastAlerts handles GET /alerts/forecast?only_alerting=true
func (h *AlertHandler) GetForecastAlerts(c *gin.Context) {
	alerts, err := h.alerts.ForecastAlerts(c.Request.Context(), parseBool(c.Query("only_alerting")))
	if err != nil {
		respondError(c, err, "failed to evaluate forecast alerts")
		return
	}
	c.JSON(http.StatusOK, alerts)
}
