// internal/repository/inventory_repository.go
package repository

import (
	"context"

	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/internal/domain"
)

type ProductRepository interface {
	List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	Get(ctx context.Context, id int64) (*domain.Product, error)
	Create(ctx context.Context, p *domain.Product) error
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id int64) error
	// UpdateCategories rewrites the category of every given product in one transaction.
	UpdateCategories(ctx context.Context, products []domain.Product) error
}

type SupplierRepository interface {
	List(ctx context.Context) ([]domain.Supplier, error)
	Get(ctx context.Context, id int64) (*domain.Supplier, error)
	Create(ctx context.Context, s *domain.Supplier) error
}

type SaleRepository interface {
	// RecordSale inserts the record and applies it to the product's stock
	// atomically, returning the product as updated.
	RecordSale(ctx context.Context, rec *domain.SaleRecord) (*domain.Product, error)
	List(ctx context.Context, filter domain.SaleFilter) ([]domain.SaleRecord, error)
}
