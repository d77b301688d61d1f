// internal/domain/models.go
package domain

import (
	"strings"
	"time"
)

// SaleType classifies a stock movement. Only SaleTypeSale decrements stock;
// every other value is treated as an inbound movement.
type SaleType string

const (
	SaleTypeSale    SaleType = "sale"
	SaleTypeRestock SaleType = "restock"
)

// DefaultReorderLevel is applied when a product is created without one.
const DefaultReorderLevel = 10

// UncategorizedLabel groups products that carry no category.
const UncategorizedLabel = "Uncategorized"

// IsSale reports whether the movement takes units out of stock.
func (t SaleType) IsSale() bool {
	return t == SaleTypeSale
}

// Apply returns the stock level after the movement. Sales never take stock
// below zero.
func (t SaleType) Apply(stock, qty int) int {
	if t.IsSale() {
		if qty > stock {
			return 0
		}
		return stock - qty
	}
	return stock + qty
}

// Supplier provides products.
type Supplier struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Contact   string    `json:"contact" db:"contact"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Product is a catalog entry with its current stock position.
type Product struct {
	ID            int64     `json:"id" db:"id"`
	SKU           string    `json:"sku" db:"sku"`
	Name          string    `json:"name" db:"name"`
	Category      string    `json:"category" db:"category"`
	CostPrice     float64   `json:"cost_price" db:"cost_price"`
	SellingPrice  float64   `json:"selling_price" db:"selling_price"`
	StockQuantity int       `json:"stock_quantity" db:"stock_quantity"`
	ReorderLevel  int       `json:"reorder_level" db:"reorder_level"`
	SupplierID    *int64    `json:"supplier_id,omitempty" db:"supplier_id"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// CategoryOrDefault returns the category, or UncategorizedLabel when empty.
func (p Product) CategoryOrDefault() string {
	if strings.TrimSpace(p.Category) == "" {
		return UncategorizedLabel
	}
	return p.Category
}

// IsLowStock reports whether the current stock is at or below the reorder level.
func (p Product) IsLowStock() bool {
	return p.StockQuantity <= p.ReorderLevel
}

// SaleRecord is a single stock movement for a product.
type SaleRecord struct {
	ID        int64     `json:"id" db:"id"`
	ProductID int64     `json:"product_id" db:"product_id"`
	Quantity  int       `json:"qty" db:"qty"`
	Type      SaleType  `json:"type" db:"type"`
	Date      time.Time `json:"date" db:"date"`
}

// ProductFilter narrows product listings.
type ProductFilter struct {
	Search   string
	Category string
}

// SaleFilter narrows sale record listings. Zero values are ignored.
type SaleFilter struct {
	ProductID int64
	Type      SaleType
	Limit     int
}
