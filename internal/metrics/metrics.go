// Package metrics computes the stock and profit figures shown on the
// dashboard and in the profit report. Every function is pure: callers load
// products and sale records and pass them in.
//
// Realized figures use each product's current prices, not the price at the
// time of the sale.
package metrics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/internal/domain"
	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/internal/forecast"
)

const monthLayout = "2006-01"

var hundred = decimal.NewFromInt(100)

type money = decimal.Decimal

func price(v float64) money {
	return decimal.NewFromFloat(v)
}

func qty(n int) money {
	return decimal.NewFromInt(int64(n))
}

// StockValue is the cost of the units on hand.
func StockValue(p domain.Product) money {
	return qty(p.StockQuantity).Mul(price(p.CostPrice))
}

// PotentialRevenue is what the units on hand sell for at the current price.
func PotentialRevenue(p domain.Product) money {
	return qty(p.StockQuantity).Mul(price(p.SellingPrice))
}

// Dashboard summarizes the catalog and the realized sales. A product counts
// towards ProductsWithForecast when its daily demand series has at least
// minHistoryDays points.
func Dashboard(products []domain.Product, records []domain.SaleRecord, minHistoryDays int) domain.DashboardMetrics {
	byID := indexProducts(products)

	stockValue, potentialRevenue := decimal.Zero, decimal.Zero
	lowStock := 0
	for _, p := range products {
		stockValue = stockValue.Add(StockValue(p))
		potentialRevenue = potentialRevenue.Add(PotentialRevenue(p))
		if p.IsLowStock() {
			lowStock++
		}
	}

	revenue, cost := decimal.Zero, decimal.Zero
	sales := 0
	perProduct := make(map[int64][]domain.SaleRecord)
	for _, r := range records {
		perProduct[r.ProductID] = append(perProduct[r.ProductID], r)
		if !r.Type.IsSale() {
			continue
		}
		sales++
		p, ok := byID[r.ProductID]
		if !ok {
			continue
		}
		revenue = revenue.Add(qty(r.Quantity).Mul(price(p.SellingPrice)))
		cost = cost.Add(qty(r.Quantity).Mul(price(p.CostPrice)))
	}

	withForecast := 0
	for _, p := range products {
		if forecast.Eligible(forecast.BuildDemandSeries(perProduct[p.ID]), minHistoryDays) {
			withForecast++
		}
	}

	return domain.DashboardMetrics{
		TotalProducts:         len(products),
		TotalStockValue:       stockValue.InexactFloat64(),
		TotalPotentialRevenue: potentialRevenue.InexactFloat64(),
		TotalPotentialProfit:  potentialRevenue.Sub(stockValue).InexactFloat64(),
		SalesRevenue:          revenue.InexactFloat64(),
		SalesCost:             cost.InexactFloat64(),
		ActualProfit:          revenue.Sub(cost).InexactFloat64(),
		TotalSales:            sales,
		ProductsWithForecast:  withForecast,
		LowStockProducts:      lowStock,
	}
}

type bucket struct {
	revenue, cost money
}

func (b *bucket) add(revenue, cost money) {
	b.revenue = b.revenue.Add(revenue)
	b.cost = b.cost.Add(cost)
}

func (b bucket) profitBucket(key string) domain.ProfitBucket {
	return domain.ProfitBucket{
		Key:     key,
		Revenue: b.revenue.InexactFloat64(),
		Cost:    b.cost.InexactFloat64(),
		Profit:  b.revenue.Sub(b.cost).InexactFloat64(),
	}
}

// ProfitAnalysis builds the per-product, per-category and monthly profit
// report. Products are ordered by realized profit (highest first), categories
// likewise, and months chronologically.
func ProfitAnalysis(products []domain.Product, records []domain.SaleRecord) domain.ProfitAnalysis {
	byID := indexProducts(products)

	unitsSold := make(map[int64]int)
	monthly := make(map[string]*bucket)
	for _, r := range records {
		if !r.Type.IsSale() {
			continue
		}
		p, ok := byID[r.ProductID]
		if !ok {
			continue
		}
		unitsSold[r.ProductID] += r.Quantity

		key := r.Date.UTC().Format(monthLayout)
		if monthly[key] == nil {
			monthly[key] = &bucket{}
		}
		monthly[key].add(qty(r.Quantity).Mul(price(p.SellingPrice)), qty(r.Quantity).Mul(price(p.CostPrice)))
	}

	report := domain.ProfitAnalysis{
		Products:   make([]domain.ProductProfit, 0, len(products)),
		Categories: []domain.ProfitBucket{},
		Monthly:    make([]domain.ProfitBucket, 0, len(monthly)),
	}

	var totalRevenue, totalCost, totalPotential, totalStock money
	categories := make(map[string]*bucket)
	for _, p := range products {
		units := qty(unitsSold[p.ID])
		revenue := units.Mul(price(p.SellingPrice))
		cost := units.Mul(price(p.CostPrice))
		profit := revenue.Sub(cost)
		perUnit := price(p.SellingPrice).Sub(price(p.CostPrice))
		potential := qty(p.StockQuantity).Mul(perUnit)
		stock := StockValue(p)

		margin := decimal.Zero
		if revenue.IsPositive() {
			margin = profit.Div(revenue).Mul(hundred).Round(2)
		}

		report.Products = append(report.Products, domain.ProductProfit{
			ProductID:       p.ID,
			Product:         p.Name,
			Category:        p.CategoryOrDefault(),
			UnitsSold:       unitsSold[p.ID],
			Revenue:         revenue.InexactFloat64(),
			Cost:            cost.InexactFloat64(),
			Profit:          profit.InexactFloat64(),
			ProfitMargin:    margin.InexactFloat64(),
			ProfitPerUnit:   perUnit.InexactFloat64(),
			PotentialProfit: potential.InexactFloat64(),
			StockValue:      stock.InexactFloat64(),
		})

		totalRevenue = totalRevenue.Add(revenue)
		totalCost = totalCost.Add(cost)
		totalPotential = totalPotential.Add(potential)
		totalStock = totalStock.Add(stock)

		c := p.CategoryOrDefault()
		if categories[c] == nil {
			categories[c] = &bucket{}
		}
		categories[c].add(revenue, cost)
	}

	sort.SliceStable(report.Products, func(i, j int) bool {
		return report.Products[i].Profit > report.Products[j].Profit
	})

	for key, b := range categories {
		report.Categories = append(report.Categories, b.profitBucket(key))
	}
	sort.Slice(report.Categories, func(i, j int) bool {
		if report.Categories[i].Profit != report.Categories[j].Profit {
			return report.Categories[i].Profit > report.Categories[j].Profit
		}
		return report.Categories[i].Key < report.Categories[j].Key
	})

	for key, b := range monthly {
		report.Monthly = append(report.Monthly, b.profitBucket(key))
	}
	sort.Slice(report.Monthly, func(i, j int) bool {
		return report.Monthly[i].Key < report.Monthly[j].Key
	})

	report.TotalRevenue = totalRevenue.InexactFloat64()
	report.TotalCost = totalCost.InexactFloat64()
	report.TotalProfit = totalRevenue.Sub(totalCost).InexactFloat64()
	report.TotalPotentialProfit = totalPotential.InexactFloat64()
	report.TotalStockValue = totalStock.InexactFloat64()
	return report
}

// LowStock returns the products whose stock is at or below their reorder level.
func LowStock(products []domain.Product) []domain.Product {
	out := make([]domain.Product, 0)
	for _, p := range products {
		if p.IsLowStock() {
			out = append(out, p)
		}
	}
	return out
}

func indexProducts(products []domain.Product) map[int64]domain.Product {
	byID := make(map[int64]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return byID
}
