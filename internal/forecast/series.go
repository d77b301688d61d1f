package forecast

import (
	"time"

	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/internal/domain"
)

// DefaultMinHistoryDays is the shortest daily series the engine will fit.
const DefaultMinHistoryDays = 10

const day = 24 * time.Hour

// Series is a contiguous, zero-filled daily demand series.
type Series []domain.DemandPoint

// BuildDemandSeries aggregates sale events into one point per calendar day
// (UTC) from the first to the last sale. Quantities on the same day are
// summed and days without sales are present with a zero quantity. Records
// that are not sales are ignored. The input does not need to be sorted.
func BuildDemandSeries(records []domain.SaleRecord) Series {
	totals := make(map[time.Time]float64)
	var first, last time.Time
	for _, r := range records {
		if !r.Type.IsSale() {
			continue
		}
		d := truncateDay(r.Date)
		if len(totals) == 0 || d.Before(first) {
			first = d
		}
		if len(totals) == 0 || d.After(last) {
			last = d
		}
		totals[d] += float64(r.Quantity)
	}

	if len(totals) == 0 {
		return Series{}
	}

	n := int(last.Sub(first)/day) + 1
	series := make(Series, 0, n)
	for d := first; !d.After(last); d = d.Add(day) {
		series = append(series, domain.DemandPoint{Date: d, Quantity: totals[d]})
	}
	return series
}

// Eligible reports whether the series is long enough to be forecast.
func Eligible(s Series, minDays int) bool {
	if minDays <= 0 {
		minDays = DefaultMinHistoryDays
	}
	return len(s) >= minDays
}

// Values returns the quantities in date order.
func (s Series) Values() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Quantity
	}
	return out
}

// LastDay returns the date of the final point, or the zero time when empty.
func (s Series) LastDay() time.Time {
	if len(s) == 0 {
		return time.Time{}
	}
	return s[len(s)-1].Date
}

// Contiguous reports whether the points are strictly increasing by exactly one day.
func (s Series) Contiguous() bool {
	for i := 1; i < len(s); i++ {
		if !s[i].Date.Equal(s[i-1].Date.Add(day)) {
			return false
		}
	}
	return true
}

// normalize sorts points by date and fills any missing days with zeros, so
// callers that assemble a series by hand still satisfy the daily index invariant.
func (s Series) normalize() Series {
	if len(s) == 0 || s.Contiguous() {
		return s
	}

	totals := make(map[time.Time]float64, len(s))
	var first, last time.Time
	for i, p := range s {
		d := truncateDay(p.Date)
		if i == 0 || d.Before(first) {
			first = d
		}
		if i == 0 || d.After(last) {
			last = d
		}
		totals[d] += p.Quantity
	}

	out := make(Series, 0, int(last.Sub(first)/day)+1)
	for d := first; !d.After(last); d = d.Add(day) {
		out = append(out, domain.DemandPoint{Date: d, Quantity: totals[d]})
	}
	return out
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
