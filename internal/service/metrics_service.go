package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/internal/cache"
	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/internal/domain"
	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/internal/metrics"
	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/internal/repository"
)

type MetricsService struct {
	products       repository.ProductRepository
	sales          repository.SaleRepository
	cache          cache.MetricsCache
	minHistoryDays int
}

func NewMetricsService(products repository.ProductRepository, sales repository.SaleRepository, cacheImpl cache.MetricsCache, minHistoryDays int) *MetricsService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopMetricsCache()
	}
	return &MetricsService{products: products, sales: sales, cache: cacheImpl, minHistoryDays: minHistoryDays}
}

func (s *MetricsService) Dashboard(ctx context.Context) (*domain.DashboardMetrics, error) {
	if m, ok, err := s.cache.GetDashboard(ctx); err == nil && ok {
		return m, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("metrics: cache get dashboard failed")
	}

	products, records, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	m := metrics.Dashboard(products, records, s.minHistoryDays)

	if err := s.cache.SetDashboard(ctx, &m); err != nil {
		log.Warn().Err(err).Msg("metrics: cache set dashboard failed")
	}
	return &m, nil
}

func (s *MetricsService) ProfitAnalysis(ctx context.Context) (*domain.ProfitAnalysis, error) {
	if p, ok, err := s.cache.GetProfit(ctx); err == nil && ok {
		return p, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("metrics: cache get profit failed")
	}

	products, records, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	report := metrics.ProfitAnalysis(products, records)

	if err := s.cache.SetProfit(ctx, &report); err != nil {
		log.Warn().Err(err).Msg("metrics: cache set profit failed")
	}
	return &report, nil
}

func (s *MetricsService) load(ctx context.Context) ([]domain.Product, []domain.SaleRecord, error) {
	products, err := s.products.List(ctx, domain.ProductFilter{})
	if err != nil {
		return nil, nil, err
	}
	records, err := s.sales.List(ctx, domain.SaleFilter{})
	if err != nil {
		return nil, nil, err
	}
	return products, records, nil
}
