package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/internal/domain"
)

type saleRepository struct {
	db *DB
}

func NewSaleRepository(db *DB) *saleRepository {
	return &saleRepository{db: db}
}

// RecordSale locks the product row, applies the movement to its stock and
// inserts the record in the same transaction.
func (r *saleRepository) RecordSale(ctx context.Context, rec *domain.SaleRecord) (*domain.Product, error) {
	var updated *domain.Product
	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		p, err := getProduct(ctx, tx, rec.ProductID, true)
		if err != nil {
			return err
		}

		p.StockQuantity = rec.Type.Apply(p.StockQuantity, rec.Quantity)
		err = tx.QueryRowxContext(ctx, `
			UPDATE products SET stock_quantity = $1, updated_at = NOW()
			WHERE id = $2
			RETURNING updated_at
		`, p.StockQuantity, p.ID).Scan(&p.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to update stock of product %d: %w", p.ID, err)
		}

		err = tx.QueryRowxContext(ctx, `
			INSERT INTO sale_records (product_id, qty, type, date)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, rec.ProductID, rec.Quantity, rec.Type, rec.Date).Scan(&rec.ID)
		if err != nil {
			return fmt.Errorf("failed to insert sale record: %w", err)
		}

		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *saleRepository) List(ctx context.Context, filter domain.SaleFilter) ([]domain.SaleRecord, error) {
	var (
		where []string
		args  []interface{}
	)
	if filter.ProductID > 0 {
		args = append(args, filter.ProductID)
		where = append(where, fmt.Sprintf("product_id = $%d", len(args)))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		where = append(where, fmt.Sprintf("type = $%d", len(args)))
	}

	query := `SELECT id, product_id, qty, type, date FROM sale_records`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY date, id`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	records := []domain.SaleRecord{}
	if err := sqlx.SelectContext(ctx, r.db, &records, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list sale records: %w", err)
	}
	return records, nil
}
