package forecast

import "github.com/shopspring/decimal"

// Alert is the forecast-based reorder check for one product.
type Alert struct {
	ForecastSum   float64 `json:"forecast_sum"`
	ExpectedStock float64 `json:"expected_stock"`
	WillAlert     bool    `json:"will_alert"`
}

// EvaluateAlert projects the stock left after the forecast demand and flags
// a reorder when it reaches the reorder level. A negative forecast total
// counts as no demand. Expected stock is rounded to two decimals before the
// comparison.
func EvaluateAlert(stock, reorderLevel int, forecast []float64) Alert {
	sum := decimal.Zero
	for _, v := range forecast {
		sum = sum.Add(decimal.NewFromFloat(v))
	}
	if sum.IsNegative() {
		sum = decimal.Zero
	}

	expected := decimal.NewFromInt(int64(stock)).Sub(sum).Round(2)
	return Alert{
		ForecastSum:   sum.Round(2).InexactFloat64(),
		ExpectedStock: expected.InexactFloat64(),
		WillAlert:     expected.LessThanOrEqual(decimal.NewFromInt(int64(reorderLevel))),
	}
}
