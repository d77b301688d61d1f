package training

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/internal/domain"
)

// RunStore persists training runs.
type RunStore interface {
	CreateRun(ctx context.Context, run *Run) error
	UpdateRun(ctx context.Context, run *Run) error
	LatestRun(ctx context.Context) (*Run, error)
}

// Repository handles database operations for training run tracking
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new training run repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateRun inserts a run record and fills in its ID
func (r *Repository) CreateRun(ctx context.Context, run *Run) error {
	query := `
		INSERT INTO training_runs (
			status, source, total_products, trained, skipped, failed, started_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	return r.db.QueryRowContext(
		ctx, query,
		run.Status, run.Source, run.TotalProducts,
		run.Trained, run.Skipped, run.Failed, run.StartedAt,
	).Scan(&run.ID)
}

// UpdateRun updates an existing run
func (r *Repository) UpdateRun(ctx context.Context, run *Run) error {
	query := `
		UPDATE training_runs
		SET status = $1, total_products = $2, trained = $3, skipped = $4,
		    failed = $5, completed_at = $6, error_message = $7
		WHERE id = $8
	`

	_, err := r.db.ExecContext(
		ctx, query,
		run.Status, run.TotalProducts, run.Trained, run.Skipped,
		run.Failed, run.CompletedAt, run.ErrorMessage, run.ID,
	)

	return err
}

// LatestRun returns the most recently started run, or domain.ErrNotFound
func (r *Repository) LatestRun(ctx context.Context) (*Run, error) {
	query := `
		SELECT id, status, source, total_products, trained, skipped, failed,
		       started_at, completed_at, error_message
		FROM training_runs
		ORDER BY started_at DESC, id DESC
		LIMIT 1
	`

	run := &Run{}
	err := r.db.QueryRowContext(ctx, query).Scan(
		&run.ID, &run.Status, &run.Source, &run.TotalProducts,
		&run.Trained, &run.Skipped, &run.Failed,
		&run.StartedAt, &run.CompletedAt, &run.ErrorMessage,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return run, nil
}
