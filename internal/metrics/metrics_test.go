package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/internal/domain"
)

func fixtures() ([]domain.Product, []domain.SaleRecord) {
	products := []domain.Product{
		{ID: 1, Name: "Rice", Category: "Grocery", CostPrice: 2, SellingPrice: 3, StockQuantity: 100, ReorderLevel: 10},
		{ID: 2, Name: "Soap", Category: "", CostPrice: 1.5, SellingPrice: 2.5, StockQuantity: 4, ReorderLevel: 10},
		{ID: 3, Name: "Milk", Category: "Grocery", CostPrice: 0.8, SellingPrice: 1.2, StockQuantity: 10, ReorderLevel: 10},
	}
	jan := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	feb := time.Date(2024, 2, 3, 10, 0, 0, 0, time.UTC)
	records := []domain.SaleRecord{
		{ProductID: 1, Quantity: 10, Type: domain.SaleTypeSale, Date: jan},
		{ProductID: 1, Quantity: 5, Type: domain.SaleTypeSale, Date: feb},
		{ProductID: 1, Quantity: 50, Type: domain.SaleTypeRestock, Date: feb},
		{ProductID: 2, Quantity: 2, Type: domain.SaleTypeSale, Date: feb},
	}
	return products, records
}

func TestDashboard(t *testing.T) {
	products, records := fixtures()

	m := Dashboard(products, records, 10)

	assert.Equal(t, 3, m.TotalProducts)
	// 100*2 + 4*1.5 + 10*0.8
	assert.InDelta(t, 214.0, m.TotalStockValue, 1e-9)
	// 100*3 + 4*2.5 + 10*1.2
	assert.InDelta(t, 322.0, m.TotalPotentialRevenue, 1e-9)
	assert.InDelta(t, 108.0, m.TotalPotentialProfit, 1e-9)
	// 15*3 + 2*2.5
	assert.InDelta(t, 50.0, m.SalesRevenue, 1e-9)
	// 15*2 + 2*1.5
	assert.InDelta(t, 33.0, m.SalesCost, 1e-9)
	assert.InDelta(t, 17.0, m.ActualProfit, 1e-9)
	assert.Equal(t, 3, m.TotalSales)
	// rice spans 2024-01-15..2024-02-03, twenty daily points
	assert.Equal(t, 1, m.ProductsWithForecast)
	assert.Equal(t, 2, m.LowStockProducts)
}

func TestDashboardCountsForecastableProducts(t *testing.T) {
	products := []domain.Product{{ID: 1, Name: "Rice"}, {ID: 2, Name: "Soap"}}
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	records := []domain.SaleRecord{
		{ProductID: 1, Quantity: 1, Type: domain.SaleTypeSale, Date: start},
		{ProductID: 1, Quantity: 1, Type: domain.SaleTypeSale, Date: start.AddDate(0, 0, 11)},
		{ProductID: 2, Quantity: 1, Type: domain.SaleTypeSale, Date: start},
		{ProductID: 2, Quantity: 1, Type: domain.SaleTypeSale, Date: start.AddDate(0, 0, 3)},
	}

	m := Dashboard(products, records, 10)

	assert.Equal(t, 1, m.ProductsWithForecast)
}

func TestProfitAnalysis(t *testing.T) {
	products, records := fixtures()

	r := ProfitAnalysis(products, records)

	require.Len(t, r.Products, 3)
	rice := r.Products[0]
	assert.Equal(t, "Rice", rice.Product)
	assert.Equal(t, 15, rice.UnitsSold)
	assert.InDelta(t, 45.0, rice.Revenue, 1e-9)
	assert.InDelta(t, 30.0, rice.Cost, 1e-9)
	assert.InDelta(t, 15.0, rice.Profit, 1e-9)
	assert.InDelta(t, 33.33, rice.ProfitMargin, 1e-9)
	assert.InDelta(t, 1.0, rice.ProfitPerUnit, 1e-9)
	assert.InDelta(t, 100.0, rice.PotentialProfit, 1e-9)
	assert.InDelta(t, 200.0, rice.StockValue, 1e-9)

	soap := r.Products[1]
	assert.Equal(t, domain.UncategorizedLabel, soap.Category)
	assert.InDelta(t, 40.0, soap.ProfitMargin, 1e-9)

	milk := r.Products[2]
	assert.Zero(t, milk.UnitsSold)
	assert.Zero(t, milk.ProfitMargin)

	assert.InDelta(t, 50.0, r.TotalRevenue, 1e-9)
	assert.InDelta(t, 33.0, r.TotalCost, 1e-9)
	assert.InDelta(t, 17.0, r.TotalProfit, 1e-9)
	assert.InDelta(t, 108.0, r.TotalPotentialProfit, 1e-9)
	assert.InDelta(t, 214.0, r.TotalStockValue, 1e-9)

	require.Len(t, r.Categories, 2)
	assert.Equal(t, "Grocery", r.Categories[0].Key)
	assert.InDelta(t, 15.0, r.Categories[0].Profit, 1e-9)
	assert.Equal(t, domain.UncategorizedLabel, r.Categories[1].Key)

	require.Len(t, r.Monthly, 2)
	assert.Equal(t, "2024-01", r.Monthly[0].Key)
	assert.InDelta(t, 10.0, r.Monthly[0].Profit, 1e-9)
	assert.Equal(t, "2024-02", r.Monthly[1].Key)
	// 5*(3-2) + 2*(2.5-1.5)
	assert.InDelta(t, 7.0, r.Monthly[1].Profit, 1e-9)
}

func TestProfitAnalysisEmpty(t *testing.T) {
	r := ProfitAnalysis(nil, nil)

	assert.Empty(t, r.Products)
	assert.Empty(t, r.Categories)
	assert.Empty(t, r.Monthly)
	assert.Zero(t, r.TotalProfit)
}

func TestLowStock(t *testing.T) {
	products, _ := fixtures()

	low := LowStock(products)

	require.Len(t, low, 2)
	assert.Equal(t, "Soap", low[0].Name)
	assert.Equal(t, "Milk", low[1].Name)
}
