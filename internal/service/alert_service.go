package service

import (
	"context"

	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/internal/domain"
	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/internal/forecast"
	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/internal/metrics"
	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/internal/repository"
)

const (
	alertStatusLow        = "low"
	alertStatusOutOfStock = "out_of_stock"
)

type AlertService struct {
	products repository.ProductRepository
	sales    repository.SaleRepository
	engine   Forecaster
	horizon  int
}

func NewAlertService(products repository.ProductRepository, sales repository.SaleRepository, engine Forecaster, horizon int) *AlertService {
	if horizon < 1 {
		horizon = forecast.DefaultHorizon
	}
	return &AlertService{products: products, sales: sales, engine: engine, horizon: horizon}
}

// LowStock lists products whose current stock is at or below their reorder level.
func (s *AlertService) LowStock(ctx context.Context) ([]domain.LowStockAlert, error) {
	products, err := s.products.List(ctx, domain.ProductFilter{})
	if err != nil {
		return nil, err
	}

	alerts := make([]domain.LowStockAlert, 0)
	for _, p := range metrics.LowStock(products) {
		status := alertStatusLow
		if p.StockQuantity <= 0 {
			status = alertStatusOutOfStock
		}
		alerts = append(alerts, domain.LowStockAlert{
			ProductID:     p.ID,
			Product:       p.Name,
			SKU:           p.SKU,
			StockQuantity: p.StockQuantity,
			ReorderLevel:  p.ReorderLevel,
			Status:        status,
		})
	}
	return alerts, nil
}

// ForecastAlerts checks every product against its forecast demand. Products
// without a usable forecast are evaluated on their current stock. When
// onlyAlerting is set, products that would not alert are left out.
func (s *AlertService) ForecastAlerts(ctx context.Context, onlyAlerting bool) ([]domain.ForecastAlert, error) {
	products, err := s.products.List(ctx, domain.ProductFilter{})
	if err != nil {
		return nil, err
	}
	records, err := s.sales.List(ctx, domain.SaleFilter{Type: domain.SaleTypeSale})
	if err != nil {
		return nil, err
	}
	byProduct := groupByProduct(records)

	alerts := make([]domain.ForecastAlert, 0)
	for _, p := range products {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		res := s.engine.Forecast(ctx, p.ID, forecast.BuildDemandSeries(byProduct[p.ID]), s.horizon)
		a := forecast.EvaluateAlert(p.StockQuantity, p.ReorderLevel, res.ValuesOrZeros())
		if onlyAlerting && !a.WillAlert {
			continue
		}
		alerts = append(alerts, domain.ForecastAlert{
			ProductID:         p.ID,
			Product:           p.Name,
			StockQuantity:     p.StockQuantity,
			ReorderLevel:      p.ReorderLevel,
			ForecastSum:       a.ForecastSum,
			ExpectedStock:     a.ExpectedStock,
			WillAlert:         a.WillAlert,
			ForecastAvailable: res.Status != forecast.StatusInsufficientHistory,
			ForecastStatus:    string(res.Status),
		})
	}
	return alerts, nil
}

func groupByProduct(records []domain.SaleRecord) map[int64][]domain.SaleRecord {
	out := make(map[int64][]domain.SaleRecord)
	for _, r := range records {
		out[r.ProductID] = append(out[r.ProductID], r)
	}
	return out
}
