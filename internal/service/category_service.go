package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/internal/cache"
	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/internal/category"
	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/internal/domain"
	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/internal/repository"
)

type CategoryService struct {
	products repository.ProductRepository
	lookup   category.Lookup
	cache    cache.MetricsCache
}

func NewCategoryService(products repository.ProductRepository, lookup category.Lookup, cacheImpl cache.MetricsCache) *CategoryService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopMetricsCache()
	}
	return &CategoryService{products: products, lookup: lookup, cache: cacheImpl}
}

func (s *CategoryService) Verify(ctx context.Context) (*domain.CategoryReport, error) {
	products, err := s.products.List(ctx, domain.ProductFilter{})
	if err != nil {
		return nil, err
	}
	report := category.Verify(products, s.lookup)
	return &report, nil
}

// Fix rewrites every category that disagrees with the lookup.
func (s *CategoryService) Fix(ctx context.Context) (*domain.CategoryFixResult, error) {
	products, err := s.products.List(ctx, domain.ProductFilter{})
	if err != nil {
		return nil, err
	}

	changed, result := category.Fixes(products, s.lookup)
	if err := s.products.UpdateCategories(ctx, changed); err != nil {
		return nil, err
	}
	if result.Fixed > 0 {
		if err := s.cache.InvalidateAll(ctx); err != nil {
			log.Warn().Err(err).Msg("categories: cache invalidate failed")
		}
	}

	log.Info().Int("fixed", result.Fixed).Int("not_found", result.NotFound).Msg("product categories fixed")
	return &result, nil
}
