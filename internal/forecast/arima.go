package forecast

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/optimize"
	"gonum.org/v1/gonum/stat"
)

// Order is the (p, d, q) order of an ARIMA model.
type Order struct {
	P int `json:"p"`
	D int `json:"d"`
	Q int `json:"q"`
}

// DefaultOrder is the only order the engine fits: one AR lag, one difference,
// one MA lag.
var DefaultOrder = Order{P: 1, D: 1, Q: 1}

const (
	// minFitPoints leaves at least three first differences to estimate from.
	minFitPoints      = 4
	varianceEpsilon   = 1e-10
	sigmaFloor        = 1e-12
	coefficientBound  = 0.999
	defaultIterations = 500
)

var (
	errDegenerate = errors.New("series has no demand")
	errFlatSteps  = errors.New("series has no variation after differencing")
	errTooShort   = errors.New("series too short for ARIMA(1,1,1)")
	errNonFinite  = errors.New("likelihood is not finite")
)

// arimaModel is an ARIMA(1,1,1) without constant, estimated on the first
// differences w of the input:
//
//	w[t] = phi*w[t-1] + e[t] + theta*e[t-1]
type arimaModel struct {
	Phi    float64
	Theta  float64
	Sigma2 float64
	LogLik float64
	AIC    float64
	NObs   int

	diff      []float64
	residuals []float64
	last      float64
}

// fitARIMA111 estimates phi and theta by maximising the conditional Gaussian
// likelihood with Nelder-Mead. Both coefficients are optimised through tanh so
// the search stays inside the stationary and invertible region.
func fitARIMA111(y []float64, maxIter int) (*arimaModel, error) {
	if len(y) < minFitPoints {
		return nil, errTooShort
	}
	w := difference(y)
	if stat.Variance(w, nil) < varianceEpsilon {
		return nil, errFlatSteps
	}
	if maxIter <= 0 {
		maxIter = defaultIterations
	}

	phi0 := lagOneCorrelation(w)
	x0 := []float64{math.Atanh(phi0), math.Atanh(0.1)}

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			return negLogLik(w, math.Tanh(x[0]), math.Tanh(x[1]))
		},
	}
	settings := &optimize.Settings{
		MajorIterations: maxIter,
		Converger: &optimize.FunctionConverge{
			Absolute:   1e-9,
			Iterations: 50,
		},
	}

	res, err := optimize.Minimize(problem, x0, settings, &optimize.NelderMead{})
	if err != nil && !hitLimit(res) {
		return nil, fmt.Errorf("nelder-mead: %w", err)
	}
	if res == nil || math.IsNaN(res.F) || math.IsInf(res.F, 0) {
		return nil, errNonFinite
	}

	return newARIMAModel(y, clampCoefficient(math.Tanh(res.X[0])), clampCoefficient(math.Tanh(res.X[1])))
}

// newARIMAModel evaluates fixed coefficients against y. It is used both after
// fitting and when stored coefficients are reused on a longer series.
func newARIMAModel(y []float64, phi, theta float64) (*arimaModel, error) {
	if len(y) < minFitPoints {
		return nil, errTooShort
	}
	w := difference(y)
	e := make([]float64, len(w))
	sse := cssResiduals(w, phi, theta, e)

	m := float64(len(w) - 1)
	sigma2 := math.Max(sse/m, sigmaFloor)
	ll := -0.5 * m * (math.Log(2*math.Pi*sigma2) + 1)
	if math.IsNaN(ll) || math.IsInf(ll, 0) {
		return nil, errNonFinite
	}

	// phi, theta and sigma2
	const k = 3
	return &arimaModel{
		Phi:       phi,
		Theta:     theta,
		Sigma2:    sigma2,
		LogLik:    ll,
		AIC:       2*k - 2*ll,
		NObs:      len(y),
		diff:      w,
		residuals: e,
		last:      y[len(y)-1],
	}, nil
}

// Forecast projects the undifferenced series h steps ahead. Future shocks are
// zero, so only the first step carries the MA term.
func (m *arimaModel) Forecast(h int) ([]float64, error) {
	out := make([]float64, h)
	wPrev := m.diff[len(m.diff)-1]
	ePrev := m.residuals[len(m.residuals)-1]
	level := m.last

	for i := 0; i < h; i++ {
		next := m.Phi * wPrev
		if i == 0 {
			next += m.Theta * ePrev
		}
		level += next
		if math.IsNaN(level) || math.IsInf(level, 0) {
			return nil, errNonFinite
		}
		out[i] = level
		wPrev = next
	}
	return out, nil
}

// cssResiduals fills e with the conditional residuals (e[0] = 0) and returns
// their sum of squares.
func cssResiduals(w []float64, phi, theta float64, e []float64) float64 {
	e[0] = 0
	sse := 0.0
	for t := 1; t < len(w); t++ {
		e[t] = w[t] - phi*w[t-1] - theta*e[t-1]
		sse += e[t] * e[t]
	}
	return sse
}

func negLogLik(w []float64, phi, theta float64) float64 {
	e := make([]float64, len(w))
	sse := cssResiduals(w, phi, theta, e)
	m := float64(len(w) - 1)
	sigma2 := math.Max(sse/m, sigmaFloor)
	return 0.5 * m * (math.Log(2*math.Pi*sigma2) + 1)
}

func difference(y []float64) []float64 {
	if len(y) < 2 {
		return nil
	}
	w := make([]float64, len(y)-1)
	for i := 1; i < len(y); i++ {
		w[i-1] = y[i] - y[i-1]
	}
	return w
}

func lagOneCorrelation(w []float64) float64 {
	if len(w) < 3 {
		return 0
	}
	r := stat.Correlation(w[:len(w)-1], w[1:], nil)
	if math.IsNaN(r) {
		return 0
	}
	return math.Max(-0.9, math.Min(0.9, r))
}

// hitLimit reports whether the optimiser stopped on an iteration budget; the
// best point found so far is still usable.
func hitLimit(res *optimize.Result) bool {
	if res == nil {
		return false
	}
	return res.Status == optimize.IterationLimit || res.Status == optimize.FunctionEvaluationLimit
}

func clampCoefficient(v float64) float64 {
	return math.Max(-coefficientBound, math.Min(coefficientBound, v))
}
