package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/internal/domain"
	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/internal/forecast"
	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/internal/repository"
)

// Forecaster is the part of forecast.Engine the services depend on.
type Forecaster interface {
	Forecast(ctx context.Context, productID int64, series forecast.Series, horizon int) forecast.Result
	MinHistory() int
}

type ForecastService struct {
	products repository.ProductRepository
	sales    repository.SaleRepository
	engine   Forecaster
	horizon  int
}

func NewForecastService(products repository.ProductRepository, sales repository.SaleRepository, engine Forecaster, horizon int) *ForecastService {
	if horizon < 1 {
		horizon = forecast.DefaultHorizon
	}
	return &ForecastService{products: products, sales: sales, engine: engine, horizon: horizon}
}

// ProductForecast loads a product's sales history and forecasts its demand.
func (s *ForecastService) ProductForecast(ctx context.Context, productID int64) (*domain.ProductForecast, error) {
	p, err := s.products.Get(ctx, productID)
	if err != nil {
		return nil, err
	}
	records, err := s.sales.List(ctx, domain.SaleFilter{ProductID: productID, Type: domain.SaleTypeSale})
	if err != nil {
		return nil, err
	}

	series := forecast.BuildDemandSeries(records)
	res := s.engine.Forecast(ctx, p.ID, series, s.horizon)
	return s.view(p, series, res), nil
}

func (s *ForecastService) view(p *domain.Product, series forecast.Series, res forecast.Result) *domain.ProductForecast {
	out := &domain.ProductForecast{
		ProductID:      p.ID,
		ProductName:    p.Name,
		Status:         string(res.Status),
		Reason:         res.Reason,
		Actual:         []domain.DemandPoint(series),
		Forecast:       []domain.ForecastPoint{},
		HistoryDays:    len(series),
		MinHistoryDays: s.engine.MinHistory(),
	}
	if out.Actual == nil {
		out.Actual = []domain.DemandPoint{}
	}

	// without enough history there is nothing to show; every other outcome
	// is rendered with the zero-filled default
	if res.Status != forecast.StatusInsufficientHistory {
		out.Available = true
		out.Forecast = res.Points
		sum := decimal.NewFromFloat(res.Sum())
		out.ForecastSum = sum.Round(2).InexactFloat64()
		if res.Horizon > 0 {
			out.ForecastAvg = sum.Div(decimal.NewFromInt(int64(res.Horizon))).Round(2).InexactFloat64()
		}
		out.ProjectedRevenue = sum.Mul(decimal.NewFromFloat(p.SellingPrice)).Round(2).InexactFloat64()
	}

	alert := forecast.EvaluateAlert(p.StockQuantity, p.ReorderLevel, res.ValuesOrZeros())
	out.ExpectedStock = alert.ExpectedStock
	out.WillAlert = alert.WillAlert
	return out
}
