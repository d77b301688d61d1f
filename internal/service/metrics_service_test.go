package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/internal/domain"
)

func TestMetricsServiceDashboardIsCached(t *testing.T) {
	store := newMemStore()
	p := store.addProduct(domain.Product{SKU: "A", Name: "Rice", CostPrice: 2, SellingPrice: 3, StockQuantity: 10, ReorderLevel: 5})
	store.addSales(p.ID, salesStart, 2, 2)
	c := &countingCache{}
	svc := NewMetricsService(memProducts{store}, memSales{store}, c, 10)

	m, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, m.TotalProducts)
	assert.Equal(t, 2, m.TotalSales)
	assert.InDelta(t, 12.0, m.SalesRevenue, 1e-9)

	store.addProduct(domain.Product{SKU: "B", Name: "Salt"})
	cached, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, cached.TotalProducts, "served from cache")

	require.NoError(t, c.InvalidateAll(context.Background()))
	fresh, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, fresh.TotalProducts)
}

func TestMetricsServiceProfitAnalysis(t *testing.T) {
	store := newMemStore()
	p := store.addProduct(domain.Product{SKU: "A", Name: "Rice", CostPrice: 2, SellingPrice: 3, StockQuantity: 10})
	store.addSales(p.ID, salesStart, 4)
	svc := NewMetricsService(memProducts{store}, memSales{store}, nil, 10)

	r, err := svc.ProfitAnalysis(context.Background())
	require.NoError(t, err)

	require.Len(t, r.Products, 1)
	assert.InDelta(t, 4.0, r.TotalProfit, 1e-9)
	require.Len(t, r.Monthly, 1)
	assert.Equal(t, "2024-01", r.Monthly[0].Key)
}
