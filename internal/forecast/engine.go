package forecast

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/stat"

	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/internal/domain"
)

// DefaultHorizon is the number of days forecast when the caller does not say.
const DefaultHorizon = 14

// Status is the outcome of a forecast attempt.
type Status string

const (
	StatusOK                  Status = "ok"
	StatusInsufficientHistory Status = "insufficient_history"
	StatusDegenerate          Status = "degenerate"
	StatusFitFailed           Status = "fit_failed"
)

// Result is the outcome of Engine.Forecast. Values is only set when Status is
// StatusOK; Points always covers the horizon when the series was not empty,
// with zero quantities for every non-ok status.
type Result struct {
	ProductID int64                  `json:"product_id"`
	Status    Status                 `json:"status"`
	Horizon   int                    `json:"horizon"`
	Values    []float64              `json:"values,omitempty"`
	Points    []domain.ForecastPoint `json:"points"`
	Reason    string                 `json:"reason,omitempty"`
	Err       error                  `json:"-"`
	Reused    bool                   `json:"reused"`
	Persisted bool                   `json:"persisted"`
}

// OK reports whether a model was fitted and produced a forecast.
func (r Result) OK() bool {
	return r.Status == StatusOK
}

// ValuesOrZeros returns the forecast, or horizon zeros when there is none.
func (r Result) ValuesOrZeros() []float64 {
	if r.OK() && len(r.Values) == r.Horizon {
		return r.Values
	}
	return make([]float64, r.Horizon)
}

// Sum is the total forecast demand, zero when there is no forecast.
func (r Result) Sum() float64 {
	total := 0.0
	for _, v := range r.ValuesOrZeros() {
		total += v
	}
	return total
}

// Options tunes the engine.
type Options struct {
	// MinHistory is the minimum number of daily points required to fit.
	MinHistory int
	// ReuseWithinDays lets Forecast reuse stored coefficients when the
	// series grew by at most this many days since they were fitted. Zero
	// always refits.
	ReuseWithinDays int
	MaxIterations   int
}

type fitFunc func(y []float64, maxIter int) (*arimaModel, error)

// Engine fits ARIMA(1,1,1) models per product and persists their parameters.
type Engine struct {
	store ArtifactStore
	opts  Options
	log   zerolog.Logger
	fit   fitFunc
	now   func() time.Time
}

// NewEngine builds an engine. store may be nil, in which case fitted models
// are not persisted.
func NewEngine(store ArtifactStore, opts Options, logger zerolog.Logger) *Engine {
	if opts.MinHistory <= 0 {
		opts.MinHistory = DefaultMinHistoryDays
	}
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = defaultIterations
	}
	return &Engine{
		store: store,
		opts:  opts,
		log:   logger,
		fit:   fitARIMA111,
		now:   time.Now,
	}
}

// MinHistory returns the effective minimum history length.
func (e *Engine) MinHistory() int {
	return e.opts.MinHistory
}

// Forecast predicts the next horizon days of demand for a product. It never
// returns an error: every failure is reported through Result.Status.
func (e *Engine) Forecast(ctx context.Context, productID int64, series Series, horizon int) Result {
	return e.run(ctx, productID, series, horizon, e.opts.ReuseWithinDays > 0)
}

// Train always refits the model and overwrites the stored artifact.
func (e *Engine) Train(ctx context.Context, productID int64, series Series, horizon int) Result {
	return e.run(ctx, productID, series, horizon, false)
}

func (e *Engine) run(ctx context.Context, productID int64, series Series, horizon int, allowReuse bool) (res Result) {
	if horizon < 1 {
		horizon = DefaultHorizon
	}
	series = series.normalize()
	res = Result{ProductID: productID, Horizon: horizon}
	defer func() { res.Points = points(series.LastDay(), res.ValuesOrZeros(), len(series) > 0) }()

	if !Eligible(series, e.opts.MinHistory) {
		res.Status = StatusInsufficientHistory
		res.Err = domain.ErrInsufficientHistory
		res.Reason = "not enough sales history to forecast"
		return res
	}
	if err := ctx.Err(); err != nil {
		return e.failed(res, StatusFitFailed, err)
	}

	y := series.Values()
	for i, v := range y {
		if v < 0 || math.IsNaN(v) {
			y[i] = 0
		}
	}
	if noDemand(y) {
		return e.failed(res, StatusDegenerate, errDegenerate)
	}

	var model *arimaModel
	if allowReuse {
		model = e.reuse(ctx, productID, y)
		res.Reused = model != nil
	}
	if model == nil {
		fit := e.fit
		if flatSteps(y) {
			// nothing left to estimate: repeat the last daily step
			fit = stepModel
		}
		m, err := fit(y, e.opts.MaxIterations)
		if err != nil {
			return e.failed(res, StatusFitFailed, err)
		}
		model = m
	}

	values, err := model.Forecast(horizon)
	if err != nil {
		return e.failed(res, StatusFitFailed, err)
	}
	for i, v := range values {
		if v < 0 {
			values[i] = 0
		}
	}
	res.Status = StatusOK
	res.Values = values

	if !res.Reused {
		res.Persisted = e.persist(ctx, artifactFromModel(productID, model, series.LastDay(), e.now().UTC()))
	}
	return res
}

func (e *Engine) failed(res Result, status Status, err error) Result {
	res.Status = status
	res.Err = err
	res.Reason = err.Error()
	e.log.Warn().
		Err(err).
		Int64("product_id", res.ProductID).
		Str("status", string(status)).
		Msg("forecast unavailable, falling back to zeros")
	return res
}

// reuse returns a model built from the stored coefficients, or nil when
// there is no usable artifact.
func (e *Engine) reuse(ctx context.Context, productID int64, y []float64) *arimaModel {
	if e.store == nil {
		return nil
	}
	a, err := e.store.Load(ctx, productID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			e.log.Warn().Err(err).Int64("product_id", productID).Msg("failed to load model artifact")
		}
		return nil
	}
	// step models (phi = 1) are exact for the series they came from only
	if a.Order != DefaultOrder || math.Abs(a.Phi) >= 1 || a.NObs > len(y) || len(y)-a.NObs > e.opts.ReuseWithinDays {
		return nil
	}
	m, err := newARIMAModel(y, a.Phi, a.Theta)
	if err != nil {
		return nil
	}
	e.log.Debug().Int64("product_id", productID).Int("stored_nobs", a.NObs).Msg("reusing stored model")
	return m
}

func (e *Engine) persist(ctx context.Context, a Artifact) bool {
	if e.store == nil {
		return false
	}
	if err := e.store.Save(ctx, a); err != nil {
		e.log.Error().Err(err).Int64("product_id", a.ProductID).Msg("failed to persist model artifact")
		return false
	}
	return true
}

// noDemand reports a series without a single positive day.
func noDemand(y []float64) bool {
	for _, v := range y {
		if v > 0 {
			return false
		}
	}
	return true
}

// flatSteps reports a series whose day-to-day change is constant, such as a
// steady daily quantity or an exact linear trend.
func flatSteps(y []float64) bool {
	w := difference(y)
	return len(w) < 2 || stat.Variance(w, nil) < varianceEpsilon
}

// stepModel is the exact ARIMA(1,1,1) fit of a flat-step series: phi = 1
// carries the last difference forward and every residual is zero.
func stepModel(y []float64, _ int) (*arimaModel, error) {
	return newARIMAModel(y, 1, 0)
}

func points(lastDay time.Time, values []float64, dated bool) []domain.ForecastPoint {
	if !dated {
		return []domain.ForecastPoint{}
	}
	out := make([]domain.ForecastPoint, len(values))
	for i, v := range values {
		out[i] = domain.ForecastPoint{Date: lastDay.Add(time.Duration(i+1) * day), Quantity: v}
	}
	return out
}
