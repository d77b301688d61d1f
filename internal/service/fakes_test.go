package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/internal/domain"
	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/internal/forecast"
)

type memStore struct {
	mu        sync.Mutex
	products  map[int64]domain.Product
	suppliers map[int64]domain.Supplier
	sales     []domain.SaleRecord
	nextID    int64
}

func newMemStore() *memStore {
	return &memStore{
		products:  make(map[int64]domain.Product),
		suppliers: make(map[int64]domain.Supplier),
	}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memStore) addProduct(p domain.Product) domain.Product {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = m.id()
	m.products[p.ID] = p
	return p
}

type memProducts struct{ *memStore }

func (r memProducts) List(_ context.Context, f domain.ProductFilter) ([]domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Product{}
	for _, p := range r.products {
		if f.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Search)) {
			continue
		}
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memProducts) Get(_ context.Context, id int64) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (r memProducts) Create(_ context.Context, p *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.products {
		if existing.SKU == p.SKU {
			return domain.ErrDuplicateSKU
		}
	}
	p.ID = r.id()
	r.products[p.ID] = *p
	return nil
}

func (r memProducts) Update(_ context.Context, p *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	r.products[p.ID] = *p
	return nil
}

func (r memProducts) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

func (r memProducts) UpdateCategories(_ context.Context, products []domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range products {
		stored := r.products[p.ID]
		stored.Category = p.Category
		r.products[p.ID] = stored
	}
	return nil
}

type memSuppliers struct{ *memStore }

func (r memSuppliers) List(context.Context) ([]domain.Supplier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Supplier{}
	for _, s := range r.suppliers {
		out = append(out, s)
	}
	return out, nil
}

func (r memSuppliers) Get(_ context.Context, id int64) (*domain.Supplier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.suppliers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &s, nil
}

func (r memSuppliers) Create(_ context.Context, s *domain.Supplier) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s.ID = r.id()
	r.suppliers[s.ID] = *s
	return nil
}

type memSales struct{ *memStore }

func (r memSales) RecordSale(_ context.Context, rec *domain.SaleRecord) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[rec.ProductID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	p.StockQuantity = rec.Type.Apply(p.StockQuantity, rec.Quantity)
	r.products[p.ID] = p
	rec.ID = r.id()
	r.sales = append(r.sales, *rec)
	return &p, nil
}

func (r memSales) List(_ context.Context, f domain.SaleFilter) ([]domain.SaleRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.SaleRecord{}
	for _, s := range r.sales {
		if f.ProductID > 0 && s.ProductID != f.ProductID {
			continue
		}
		if f.Type != "" && s.Type != f.Type {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (m *memStore) addSales(productID int64, start time.Time, qty ...int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, q := range qty {
		m.sales = append(m.sales, domain.SaleRecord{
			ID:        m.id(),
			ProductID: productID,
			Quantity:  q,
			Type:      domain.SaleTypeSale,
			Date:      start.AddDate(0, 0, i),
		})
	}
}

// stubForecaster returns a fixed per-day value for eligible series.
type stubForecaster struct {
	perDay     float64
	status     forecast.Status
	minHistory int
	calls      int
}

func (f *stubForecaster) Forecast(_ context.Context, productID int64, series forecast.Series, horizon int) forecast.Result {
	f.calls++
	res := forecast.Result{ProductID: productID, Horizon: horizon}
	if !forecast.Eligible(series, f.minHistory) {
		res.Status = forecast.StatusInsufficientHistory
		return res
	}
	res.Status = f.status
	if res.Status == "" {
		res.Status = forecast.StatusOK
	}
	if res.OK() {
		res.Values = make([]float64, horizon)
		for i := range res.Values {
			res.Values[i] = f.perDay
		}
	}
	for i, v := range res.ValuesOrZeros() {
		res.Points = append(res.Points, domain.ForecastPoint{Date: series.LastDay().AddDate(0, 0, i+1), Quantity: v})
	}
	return res
}

func (f *stubForecaster) MinHistory() int {
	return f.minHistory
}

type countingCache struct {
	invalidations int
	dashboard     *domain.DashboardMetrics
}

func (c *countingCache) GetDashboard(context.Context) (*domain.DashboardMetrics, bool, error) {
	if c.dashboard == nil {
		return nil, false, nil
	}
	return c.dashboard, true, nil
}

func (c *countingCache) SetDashboard(_ context.Context, m *domain.DashboardMetrics) error {
	c.dashboard = m
	return nil
}

func (c *countingCache) GetProfit(context.Context) (*domain.ProfitAnalysis, bool, error) {
	return nil, false, nil
}

func (c *countingCache) SetProfit(context.Context, *domain.ProfitAnalysis) error {
	return nil
}

func (c *countingCache) InvalidateAll(context.Context) error {
	c.invalidations++
	c.dashboard = nil
	return nil
}

func (c *countingCache) Close() error {
	return nil
}
