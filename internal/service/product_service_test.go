package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/internal/category"
	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/internal/domain"
)

func newProductService(t *testing.T) (*ProductService, *memStore, *countingCache) {
	t.Helper()
	store := newMemStore()
	lookup, err := category.Default()
	require.NoError(t, err)
	c := &countingCache{}
	return NewProductService(memProducts{store}, memSuppliers{store}, lookup, c), store, c
}

func TestProductServiceCreateDefaults(t *testing.T) {
	svc, _, c := newProductService(t)

	p, err := svc.Create(context.Background(), ProductInput{
		SKU: "SKU1", Name: "Yoga Mat", CostPrice: 10, SellingPrice: 15, StockQuantity: 40,
	})
	require.NoError(t, err)

	assert.NotZero(t, p.ID)
	assert.Equal(t, "Sports", p.Category)
	assert.Equal(t, domain.DefaultReorderLevel, p.ReorderLevel)
	assert.Equal(t, 1, c.invalidations)
}

func TestProductServiceCreateKeepsExplicitValues(t *testing.T) {
	svc, _, _ := newProductService(t)
	zero := 0

	p, err := svc.Create(context.Background(), ProductInput{
		SKU: "SKU1", Name: "Yoga Mat", Category: "Fitness", ReorderLevel: &zero,
	})
	require.NoError(t, err)

	assert.Equal(t, "Fitness", p.Category)
	assert.Equal(t, 0, p.ReorderLevel)
}

func TestProductServiceCreateUnknownNameStaysUncategorized(t *testing.T) {
	svc, _, _ := newProductService(t)

	p, err := svc.Create(context.Background(), ProductInput{SKU: "X", Name: "Quantum Toaster"})
	require.NoError(t, err)

	assert.Empty(t, p.Category)
	assert.Equal(t, domain.UncategorizedLabel, p.CategoryOrDefault())
}

func TestProductServiceCreateValidation(t *testing.T) {
	svc, _, _ := newProductService(t)
	ctx := context.Background()
	missingSupplier := int64(99)

	tests := map[string]ProductInput{
		"missing sku":      {Name: "A"},
		"missing name":     {SKU: "A"},
		"negative price":   {SKU: "A", Name: "A", CostPrice: -1},
		"negative stock":   {SKU: "A", Name: "A", StockQuantity: -5},
		"unknown supplier": {SKU: "A", Name: "A", SupplierID: &missingSupplier},
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Create(ctx, in)
			assert.ErrorIs(t, err, domain.ErrInvalidProduct)
		})
	}
}

func TestProductServiceDuplicateSKU(t *testing.T) {
	svc, _, _ := newProductService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, ProductInput{SKU: "DUP", Name: "One"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, ProductInput{SKU: "DUP", Name: "Two"})
	assert.ErrorIs(t, err, domain.ErrDuplicateSKU)
}

func TestProductServiceUpdateAndDelete(t *testing.T) {
	svc, store, _ := newProductService(t)
	ctx := context.Background()
	existing := store.addProduct(domain.Product{SKU: "A", Name: "Hammer", ReorderLevel: 7})

	updated, err := svc.Update(ctx, existing.ID, ProductInput{SKU: "A", Name: "Big Hammer", StockQuantity: 3})
	require.NoError(t, err)
	assert.Equal(t, "Big Hammer", updated.Name)
	assert.Equal(t, 7, updated.ReorderLevel, "omitted reorder level keeps the stored one")

	_, err = svc.Update(ctx, 404, ProductInput{SKU: "A", Name: "B"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, svc.Delete(ctx, existing.ID))
	assert.ErrorIs(t, svc.Delete(ctx, existing.ID), domain.ErrNotFound)
}

func TestProductServiceListSearch(t *testing.T) {
	svc, store, _ := newProductService(t)
	store.addProduct(domain.Product{SKU: "A", Name: "Garden Hose"})
	store.addProduct(domain.Product{SKU: "B", Name: "Hammer"})

	got, err := svc.List(context.Background(), domain.ProductFilter{Search: "  garden "})
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "Garden Hose", got[0].Name)
}
