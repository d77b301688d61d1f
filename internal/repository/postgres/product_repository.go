// internal/repository/postgres/product_repository.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/internal/domain"
)

const productColumns = `
	id, sku, name, COALESCE(category, '') AS category,
	cost_price, selling_price, stock_quantity, reorder_level,
	supplier_id, created_at, updated_at`

type productRepository struct {
	db *DB
}

func NewProductRepository(db *DB) *productRepository {
	return &productRepository{db: db}
}

func (r *productRepository) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
		  AND ($2 = '' OR category = $2)
		ORDER BY id
	`

	products := []domain.Product{}
	if err := sqlx.SelectContext(ctx, r.db, &products, query, filter.Search, filter.Category); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (r *productRepository) Get(ctx context.Context, id int64) (*domain.Product, error) {
	return getProduct(ctx, r.db, id, false)
}

// getProduct loads one product; forUpdate locks the row for the rest of the
// surrounding transaction.
func getProduct(ctx context.Context, q sqlx.QueryerContext, id int64, forUpdate bool) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	var p domain.Product
	err := sqlx.GetContext(ctx, q, &p, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product %d: %w", id, err)
	}
	return &p, nil
}

func (r *productRepository) Create(ctx context.Context, p *domain.Product) error {
	query := `
		INSERT INTO products (
			sku, name, category, cost_price, selling_price,
			stock_quantity, reorder_level, supplier_id
		) VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		p.SKU, p.Name, p.Category, p.CostPrice, p.SellingPrice,
		p.StockQuantity, p.ReorderLevel, p.SupplierID,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if isUniqueViolation(err) {
		return domain.ErrDuplicateSKU
	}
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (r *productRepository) Update(ctx context.Context, p *domain.Product) error {
	query := `
		UPDATE products
		SET sku = $1, name = $2, category = NULLIF($3, ''), cost_price = $4,
		    selling_price = $5, stock_quantity = $6, reorder_level = $7,
		    supplier_id = $8, updated_at = NOW()
		WHERE id = $9
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		p.SKU, p.Name, p.Category, p.CostPrice, p.SellingPrice,
		p.StockQuantity, p.ReorderLevel, p.SupplierID, p.ID,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return domain.ErrNotFound
	case isUniqueViolation(err):
		return domain.ErrDuplicateSKU
	case err != nil:
		return fmt.Errorf("failed to update product %d: %w", p.ID, err)
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete product %d: %w", id, err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *productRepository) UpdateCategories(ctx context.Context, products []domain.Product) error {
	if len(products) == 0 {
		return nil
	}
	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		stmt, err := tx.PreparexContext(ctx, `
			UPDATE products SET category = NULLIF($1, ''), updated_at = NOW() WHERE id = $2
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare statement: %w", err)
		}
		defer stmt.Close()

		for _, p := range products {
			if _, err := stmt.ExecContext(ctx, p.Category, p.ID); err != nil {
				return fmt.Errorf("failed to update category of product %d: %w", p.ID, err)
			}
		}
		return nil
	})
}
