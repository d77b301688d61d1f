package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/internal/domain"
)

type supplierRepository struct {
	db *DB
}

func NewSupplierRepository(db *DB) *supplierRepository {
	return &supplierRepository{db: db}
}

func (r *supplierRepository) List(ctx context.Context) ([]domain.Supplier, error) {
	suppliers := []domain.Supplier{}
	err := sqlx.SelectContext(ctx, r.db, &suppliers, `
		SELECT id, name, contact, created_at, updated_at
		FROM suppliers
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list suppliers: %w", err)
	}
	return suppliers, nil
}

func (r *supplierRepository) Get(ctx context.Context, id int64) (*domain.Supplier, error) {
	var s domain.Supplier
	err := sqlx.GetContext(ctx, r.db, &s, `
		SELECT id, name, contact, created_at, updated_at
		FROM suppliers
		WHERE id = $1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get supplier %d: %w", id, err)
	}
	return &s, nil
}

func (r *supplierRepository) Create(ctx context.Context, s *domain.Supplier) error {
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO suppliers (name, contact)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`, s.Name, s.Contact).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create supplier: %w", err)
	}
	return nil
}
