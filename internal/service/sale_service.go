package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/internal/cache"
	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/internal/domain"
	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/internal/repository"
)

type SaleService struct {
	repo  repository.SaleRepository
	cache cache.MetricsCache
	now   func() time.Time
}

func NewSaleService(repo repository.SaleRepository, cacheImpl cache.MetricsCache) *SaleService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopMetricsCache()
	}
	return &SaleService{repo: repo, cache: cacheImpl, now: time.Now}
}

// Record stores a stock movement and applies it to the product. An empty
// type is a sale; a zero time means now.
func (s *SaleService) Record(ctx context.Context, productID int64, qty int, typ domain.SaleType, at time.Time) (*domain.SaleRecord, *domain.Product, error) {
	if qty <= 0 {
		return nil, nil, domain.ErrInvalidQuantity
	}
	if typ == "" {
		typ = domain.SaleTypeSale
	}
	if at.IsZero() {
		at = s.now()
	}

	rec := &domain.SaleRecord{
		ProductID: productID,
		Quantity:  qty,
		Type:      typ,
		Date:      at.UTC(),
	}
	p, err := s.repo.RecordSale(ctx, rec)
	if err != nil {
		return nil, nil, err
	}

	if err := s.cache.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("sales: cache invalidate failed")
	}
	log.Debug().
		Int64("product_id", productID).
		Str("type", string(typ)).
		Int("qty", qty).
		Int("stock", p.StockQuantity).
		Msg("stock movement recorded")
	return rec, p, nil
}

func (s *SaleService) List(ctx context.Context, filter domain.SaleFilter) ([]domain.SaleRecord, error) {
	return s.repo.List(ctx, filter)
}
