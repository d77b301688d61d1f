//go:build integration

package postgres

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/internal/domain"
)

// Run with: TEST_DATABASE_URL=postgres://... go test -tags integration ./internal/repository/postgres/
func setupTestDB(t *testing.T) *DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	sqlDB, err := sql.Open("pgx", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, sqlDB.Ping())
	require.NoError(t, Migrate(sqlDB))

	_, err = sqlDB.Exec(`TRUNCATE sale_records, products, suppliers RESTART IDENTITY CASCADE`)
	require.NoError(t, err)

	return FromSQL(sqlDB, "pgx", 4)
}

func TestProductRepositoryCRUD(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	p := &domain.Product{SKU: "RICE-1", Name: "Basmati Rice", Category: "Grocery", CostPrice: 2.5, SellingPrice: 4, StockQuantity: 20, ReorderLevel: 5}
	require.NoError(t, repo.Create(ctx, p))
	assert.NotZero(t, p.ID)
	assert.False(t, p.CreatedAt.IsZero())

	got, err := repo.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Basmati Rice", got.Name)
	assert.Equal(t, "Grocery", got.Category)
	assert.InDelta(t, 2.5, got.CostPrice, 1e-9)
	assert.Nil(t, got.SupplierID)

	got.Category = ""
	got.StockQuantity = 7
	require.NoError(t, repo.Update(ctx, got))
	got, err = repo.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "", got.Category)
	assert.Equal(t, 7, got.StockQuantity)

	require.NoError(t, repo.Delete(ctx, p.ID))
	_, err = repo.Get(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, p.ID), domain.ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, p), domain.ErrNotFound)
}

func TestProductRepositoryDuplicateSKU(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.Product{SKU: "SOAP-1", Name: "Soap"}))
	err := repo.Create(ctx, &domain.Product{SKU: "SOAP-1", Name: "Other soap"})
	assert.ErrorIs(t, err, domain.ErrDuplicateSKU)

	other := &domain.Product{SKU: "SOAP-2", Name: "Soap bar"}
	require.NoError(t, repo.Create(ctx, other))
	other.SKU = "SOAP-1"
	assert.ErrorIs(t, repo.Update(ctx, other), domain.ErrDuplicateSKU)
}

func TestProductRepositoryListFilters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	for _, p := range []*domain.Product{
		{SKU: "A", Name: "Brown Rice", Category: "Grocery"},
		{SKU: "B", Name: "Rice Cooker", Category: "Kitchen"},
		{SKU: "C", Name: "Milk", Category: "Grocery"},
	} {
		require.NoError(t, repo.Create(ctx, p))
	}

	all, err := repo.List(ctx, domain.ProductFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	rice, err := repo.List(ctx, domain.ProductFilter{Search: "rice"})
	require.NoError(t, err)
	assert.Len(t, rice, 2)

	grocery, err := repo.List(ctx, domain.ProductFilter{Search: "rice", Category: "Grocery"})
	require.NoError(t, err)
	require.Len(t, grocery, 1)
	assert.Equal(t, "Brown Rice", grocery[0].Name)

	grocery[0].Category = "Pantry"
	require.NoError(t, repo.UpdateCategories(ctx, grocery))
	pantry, err := repo.List(ctx, domain.ProductFilter{Category: "Pantry"})
	require.NoError(t, err)
	assert.Len(t, pantry, 1)
}

func TestSaleRepositoryRecordSale(t *testing.T) {
	db := setupTestDB(t)
	products := NewProductRepository(db)
	sales := NewSaleRepository(db)
	ctx := context.Background()

	p := &domain.Product{SKU: "MILK-1", Name: "Milk", StockQuantity: 5}
	require.NoError(t, products.Create(ctx, p))

	day := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	sale := &domain.SaleRecord{ProductID: p.ID, Quantity: 8, Type: domain.SaleTypeSale, Date: day}
	updated, err := sales.RecordSale(ctx, sale)
	require.NoError(t, err)
	assert.NotZero(t, sale.ID)
	assert.Equal(t, 0, updated.StockQuantity)

	restock := &domain.SaleRecord{ProductID: p.ID, Quantity: 12, Type: domain.SaleTypeRestock, Date: day.AddDate(0, 0, 1)}
	updated, err = sales.RecordSale(ctx, restock)
	require.NoError(t, err)
	assert.Equal(t, 12, updated.StockQuantity)

	stored, err := products.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 12, stored.StockQuantity)

	_, err = sales.RecordSale(ctx, &domain.SaleRecord{ProductID: p.ID + 100, Quantity: 1, Type: domain.SaleTypeSale, Date: day})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	records, err := sales.List(ctx, domain.SaleFilter{ProductID: p.ID})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 8, records[0].Quantity)
	assert.True(t, day.Equal(records[0].Date))

	onlySales, err := sales.List(ctx, domain.SaleFilter{Type: domain.SaleTypeSale})
	require.NoError(t, err)
	require.Len(t, onlySales, 1)
	assert.Equal(t, sale.ID, onlySales[0].ID)

	limited, err := sales.List(ctx, domain.SaleFilter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestSupplierRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSupplierRepository(db)
	ctx := context.Background()

	s := &domain.Supplier{Name: "Acme", Contact: "acme@example.com"}
	require.NoError(t, repo.Create(ctx, s))
	require.NoError(t, repo.Create(ctx, &domain.Supplier{Name: "Beta"}))

	got, err := repo.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "acme@example.com", got.Contact)

	_, err = repo.Get(ctx, s.ID+100)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Acme", all[0].Name)

	products := NewProductRepository(db)
	p := &domain.Product{SKU: "SUP-1", Name: "Supplied", SupplierID: &s.ID}
	require.NoError(t, products.Create(ctx, p))
	stored, err := products.Get(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.SupplierID)
	assert.Equal(t, s.ID, *stored.SupplierID)
}
