// internal/service/product_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/internal/cache"
	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/internal/category"
	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/internal/domain"
	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/internal/repository"
)

// ProductInput carries the writable fields of a product. A nil ReorderLevel
// means "use the default".
type ProductInput struct {
	SKU           string  `json:"sku"`
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	CostPrice     float64 `json:"cost_price"`
	SellingPrice  float64 `json:"selling_price"`
	StockQuantity int     `json:"stock_quantity"`
	ReorderLevel  *int    `json:"reorder_level"`
	SupplierID    *int64  `json:"supplier_id"`
}

func (in ProductInput) validate() error {
	switch {
	case strings.TrimSpace(in.SKU) == "":
		return fmt.Errorf("%w: sku is required", domain.ErrInvalidProduct)
	case strings.TrimSpace(in.Name) == "":
		return fmt.Errorf("%w: name is required", domain.ErrInvalidProduct)
	case in.CostPrice < 0 || in.SellingPrice < 0:
		return fmt.Errorf("%w: prices must not be negative", domain.ErrInvalidProduct)
	case in.StockQuantity < 0:
		return fmt.Errorf("%w: stock quantity must not be negative", domain.ErrInvalidProduct)
	case in.ReorderLevel != nil && *in.ReorderLevel < 0:
		return fmt.Errorf("%w: reorder level must not be negative", domain.ErrInvalidProduct)
	}
	return nil
}

type ProductService struct {
	repo      repository.ProductRepository
	suppliers repository.SupplierRepository
	lookup    category.Lookup
	cache     cache.MetricsCache
}

func NewProductService(repo repository.ProductRepository, suppliers repository.SupplierRepository, lookup category.Lookup, cacheImpl cache.MetricsCache) *ProductService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopMetricsCache()
	}
	return &ProductService{repo: repo, suppliers: suppliers, lookup: lookup, cache: cacheImpl}
}

func (s *ProductService) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	filter.Category = strings.TrimSpace(filter.Category)
	return s.repo.List(ctx, filter)
}

func (s *ProductService) Get(ctx context.Context, id int64) (*domain.Product, error) {
	return s.repo.Get(ctx, id)
}

// Create adds a product. When no category is given it is looked up by name;
// names the lookup does not know stay uncategorized.
func (s *ProductService) Create(ctx context.Context, in ProductInput) (*domain.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if err := s.checkSupplier(ctx, in.SupplierID); err != nil {
		return nil, err
	}

	p := &domain.Product{
		SKU:           strings.TrimSpace(in.SKU),
		Name:          strings.TrimSpace(in.Name),
		Category:      strings.TrimSpace(in.Category),
		CostPrice:     in.CostPrice,
		SellingPrice:  in.SellingPrice,
		StockQuantity: in.StockQuantity,
		ReorderLevel:  domain.DefaultReorderLevel,
		SupplierID:    in.SupplierID,
	}
	if in.ReorderLevel != nil {
		p.ReorderLevel = *in.ReorderLevel
	}
	if p.Category == "" {
		p.Category = s.autoCategory(p.Name)
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return p, nil
}

func (s *ProductService) Update(ctx context.Context, id int64, in ProductInput) (*domain.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkSupplier(ctx, in.SupplierID); err != nil {
		return nil, err
	}

	p.SKU = strings.TrimSpace(in.SKU)
	p.Name = strings.TrimSpace(in.Name)
	p.Category = strings.TrimSpace(in.Category)
	p.CostPrice = in.CostPrice
	p.SellingPrice = in.SellingPrice
	p.StockQuantity = in.StockQuantity
	if in.ReorderLevel != nil {
		p.ReorderLevel = *in.ReorderLevel
	}
	p.SupplierID = in.SupplierID

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return p, nil
}

func (s *ProductService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *ProductService) autoCategory(name string) string {
	if s.lookup == nil {
		return ""
	}
	c, err := s.lookup.Category(name)
	if err != nil {
		if !errors.Is(err, domain.ErrCategoryNotFound) {
			log.Warn().Err(err).Str("product", name).Msg("category lookup failed")
		}
		return ""
	}
	return c
}

func (s *ProductService) checkSupplier(ctx context.Context, id *int64) error {
	if id == nil || s.suppliers == nil {
		return nil
	}
	if _, err := s.suppliers.Get(ctx, *id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: supplier %d does not exist", domain.ErrInvalidProduct, *id)
		}
		return err
	}
	return nil
}

func (s *ProductService) invalidate(ctx context.Context) {
	if err := s.cache.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("products: cache invalidate failed")
	}
}
