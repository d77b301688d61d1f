package domain

import "time"

// DemandPoint is the number of units sold on one calendar day.
type DemandPoint struct {
	Date     time.Time `json:"date"`
	Quantity float64   `json:"quantity"`
}

// ForecastPoint is the predicted demand for one future day.
type ForecastPoint struct {
	Date     time.Time `json:"date"`
	Quantity float64   `json:"quantity"`
}

// ProductForecast is the forecast view for a single product page.
type ProductForecast struct {
	ProductID        int64           `json:"product_id"`
	ProductName      string          `json:"product_name"`
	Available        bool            `json:"forecast_available"`
	Status           string          `json:"status"`
	Reason           string          `json:"reason,omitempty"`
	Actual           []DemandPoint   `json:"actual"`
	Forecast         []ForecastPoint `json:"forecast"`
	ForecastSum      float64         `json:"forecast_sum"`
	ForecastAvg      float64         `json:"forecast_avg"`
	ProjectedRevenue float64         `json:"projected_revenue"`
	ExpectedStock    float64         `json:"expected_stock"`
	WillAlert        bool            `json:"will_alert"`
	HistoryDays      int             `json:"history_days"`
	MinHistoryDays   int             `json:"min_history_days"`
}

// LowStockAlert flags a product whose current stock is at or below its reorder level.
type LowStockAlert struct {
	ProductID     int64  `json:"product_id"`
	Product       string `json:"product"`
	SKU           string `json:"sku"`
	StockQuantity int    `json:"expected_stock"`
	ReorderLevel  int    `json:"reorder_level"`
	Status        string `json:"status"`
}

// ForecastAlert is the forecast-based reorder check for one product.
type ForecastAlert struct {
	ProductID         int64   `json:"product_id"`
	Product           string  `json:"product"`
	StockQuantity     int     `json:"stock_quantity"`
	ReorderLevel      int     `json:"reorder_level"`
	ForecastSum       float64 `json:"forecast_sum"`
	ExpectedStock     float64 `json:"expected_stock"`
	WillAlert         bool    `json:"will_alert"`
	ForecastAvailable bool    `json:"forecast_available"`
	ForecastStatus    string  `json:"forecast_status"`
}
