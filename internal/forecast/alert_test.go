package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateAlert(t *testing.T) {
	tests := []struct {
		name     string
		stock    int
		reorder  int
		forecast []float64
		want     Alert
	}{
		{
			name:     "demand pushes stock below reorder level",
			stock:    50,
			reorder:  10,
			forecast: []float64{20, 15, 10},
			want:     Alert{ForecastSum: 45, ExpectedStock: 5, WillAlert: true},
		},
		{
			name:     "stock stays above reorder level",
			stock:    50,
			reorder:  10,
			forecast: []float64{2, 3},
			want:     Alert{ForecastSum: 5, ExpectedStock: 45, WillAlert: false},
		},
		{
			name:     "expected stock equal to reorder level alerts",
			stock:    20,
			reorder:  10,
			forecast: []float64{10},
			want:     Alert{ForecastSum: 10, ExpectedStock: 10, WillAlert: true},
		},
		{
			name:     "negative forecast total counts as no demand",
			stock:    30,
			reorder:  10,
			forecast: []float64{-4, 1},
			want:     Alert{ForecastSum: 0, ExpectedStock: 30, WillAlert: false},
		},
		{
			name:     "zero-filled default forecast",
			stock:    8,
			reorder:  10,
			forecast: make([]float64, 14),
			want:     Alert{ForecastSum: 0, ExpectedStock: 8, WillAlert: true},
		},
		{
			name:     "expected stock is rounded to cents",
			stock:    10,
			reorder:  5,
			forecast: []float64{0.333, 0.333, 0.333},
			want:     Alert{ForecastSum: 1, ExpectedStock: 9, WillAlert: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EvaluateAlert(tt.stock, tt.reorder, tt.forecast))
		})
	}
}
