package training

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/internal/domain"
	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/internal/forecast"
)

// ErrRunInProgress is returned when a run is requested while one is active.
var ErrRunInProgress = errors.New("training run already in progress")

type ProductSource interface {
	List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
}

type SaleSource interface {
	List(ctx context.Context, filter domain.SaleFilter) ([]domain.SaleRecord, error)
}

// Fitter refits and persists one product's model.
type Fitter interface {
	Train(ctx context.Context, productID int64, series forecast.Series, horizon int) forecast.Result
}

// Trainer refits the demand model of every product with a bounded pool of
// workers and records the outcome as a Run.
type Trainer struct {
	products ProductSource
	sales    SaleSource
	fitter   Fitter
	runs     RunStore
	config   Config

	running atomic.Bool
	wg      sync.WaitGroup
	now     func() time.Time
}

// NewTrainer creates a trainer. runs may be nil, in which case runs are not
// persisted.
func NewTrainer(products ProductSource, sales SaleSource, fitter Fitter, runs RunStore, config Config) *Trainer {
	if config.Workers < 1 {
		config.Workers = 1
	}
	if config.Horizon < 1 {
		config.Horizon = forecast.DefaultHorizon
	}
	return &Trainer{
		products: products,
		sales:    sales,
		fitter:   fitter,
		runs:     runs,
		config:   config,
		now:      time.Now,
	}
}

// Run trains every product and blocks until done.
func (t *Trainer) Run(ctx context.Context, source Source) (*Run, error) {
	if !t.running.CompareAndSwap(false, true) {
		return nil, ErrRunInProgress
	}
	defer t.running.Store(false)

	run, err := t.begin(ctx, source)
	if err != nil {
		return nil, err
	}
	err = t.execute(ctx, run)
	return run, err
}

// Start records a new run and trains in the background. The returned run is
// a snapshot taken before training starts.
func (t *Trainer) Start(ctx context.Context, source Source) (*Run, error) {
	if !t.running.CompareAndSwap(false, true) {
		return nil, ErrRunInProgress
	}

	run, err := t.begin(ctx, source)
	if err != nil {
		t.running.Store(false)
		return nil, err
	}
	snapshot := *run

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		defer t.running.Store(false)
		if err := t.execute(context.WithoutCancel(ctx), run); err != nil {
			log.Error().Err(err).Int64("run_id", run.ID).Msg("training run failed")
		}
	}()
	return &snapshot, nil
}

// Wait blocks until background runs started with Start have finished.
func (t *Trainer) Wait() {
	t.wg.Wait()
}

// Running reports whether a run is in progress.
func (t *Trainer) Running() bool {
	return t.running.Load()
}

// Latest returns the most recent run.
func (t *Trainer) Latest(ctx context.Context) (*Run, error) {
	if t.runs == nil {
		return nil, domain.ErrNotFound
	}
	return t.runs.LatestRun(ctx)
}

func (t *Trainer) begin(ctx context.Context, source Source) (*Run, error) {
	run := &Run{
		Status:    StatusPending,
		Source:    source,
		StartedAt: t.now().UTC(),
	}
	if t.runs != nil {
		if err := t.runs.CreateRun(ctx, run); err != nil {
			return nil, fmt.Errorf("failed to create training run: %w", err)
		}
	}
	return run, nil
}

func (t *Trainer) execute(ctx context.Context, run *Run) error {
	log.Info().Int64("run_id", run.ID).Str("source", string(run.Source)).Msg("starting model training")
	start := time.Now()

	products, err := t.products.List(ctx, domain.ProductFilter{})
	if err != nil {
		return t.fail(ctx, run, fmt.Errorf("failed to list products: %w", err))
	}
	records, err := t.sales.List(ctx, domain.SaleFilter{Type: domain.SaleTypeSale})
	if err != nil {
		return t.fail(ctx, run, fmt.Errorf("failed to list sales: %w", err))
	}
	byProduct := make(map[int64][]domain.SaleRecord)
	for _, r := range records {
		byProduct[r.ProductID] = append(byProduct[r.ProductID], r)
	}

	run.Status = StatusProcessing
	run.TotalProducts = len(products)
	t.update(ctx, run)

	var trained, skipped, failed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(t.config.Workers)
	for _, p := range products {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res := t.fitter.Train(gctx, p.ID, forecast.BuildDemandSeries(byProduct[p.ID]), t.config.Horizon)
			switch res.Status {
			case forecast.StatusOK:
				trained.Add(1)
			case forecast.StatusInsufficientHistory:
				skipped.Add(1)
			default:
				failed.Add(1)
				log.Debug().Int64("product_id", p.ID).Str("status", string(res.Status)).Msg("model not trained")
			}
			return nil
		})
	}
	waitErr := g.Wait()

	run.Trained = int(trained.Load())
	run.Skipped = int(skipped.Load())
	run.Failed = int(failed.Load())
	if waitErr != nil {
		return t.fail(ctx, run, waitErr)
	}

	run.Status = StatusCompleted
	completed := t.now().UTC()
	run.CompletedAt = &completed
	t.update(ctx, run)

	log.Info().
		Int64("run_id", run.ID).
		Int("total", run.TotalProducts).
		Int("trained", run.Trained).
		Int("skipped", run.Skipped).
		Int("failed", run.Failed).
		Dur("duration", time.Since(start)).
		Msg("model training completed")
	return nil
}

func (t *Trainer) fail(ctx context.Context, run *Run, err error) error {
	run.Status = StatusFailed
	run.ErrorMessage = err.Error()
	completed := t.now().UTC()
	run.CompletedAt = &completed
	// the run context may already be canceled; record the failure regardless
	t.update(context.WithoutCancel(ctx), run)
	return err
}

func (t *Trainer) update(ctx context.Context, run *Run) {
	if t.runs == nil {
		return
	}
	if err := t.runs.UpdateRun(ctx, run); err != nil {
		log.Error().Err(err).Int64("run_id", run.ID).Msg("failed to update training run")
	}
}
