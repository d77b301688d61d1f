package domain

// DashboardMetrics aggregates the headline numbers of the dashboard.
type DashboardMetrics struct {
	TotalProducts         int     `json:"total_products"`
	TotalStockValue       float64 `json:"total_stock_value"`
	TotalPotentialRevenue float64 `json:"total_potential_revenue"`
	TotalPotentialProfit  float64 `json:"total_potential_profit"`
	SalesRevenue          float64 `json:"sales_revenue"`
	SalesCost             float64 `json:"sales_cost"`
	ActualProfit          float64 `json:"actual_profit"`
	TotalSales            int     `json:"total_sales"`
	ProductsWithForecast  int     `json:"products_with_forecast"`
	LowStockProducts      int     `json:"low_stock_products"`
}

// ProductProfit is the realized and potential profit of one product.
// Values are computed with the product's current prices.
type ProductProfit struct {
	ProductID       int64   `json:"product_id"`
	Product         string  `json:"product"`
	Category        string  `json:"category"`
	UnitsSold       int     `json:"units_sold"`
	Revenue         float64 `json:"revenue"`
	Cost            float64 `json:"cost"`
	Profit          float64 `json:"profit"`
	ProfitMargin    float64 `json:"profit_margin"`
	ProfitPerUnit   float64 `json:"profit_per_unit"`
	PotentialProfit float64 `json:"potential_profit"`
	StockValue      float64 `json:"stock_value"`
}

// ProfitBucket is a revenue/cost/profit triple for a group-by key.
type ProfitBucket struct {
	Key     string  `json:"key"`
	Revenue float64 `json:"revenue"`
	Cost    float64 `json:"cost"`
	Profit  float64 `json:"profit"`
}

// ProfitAnalysis is the full profit report.
type ProfitAnalysis struct {
	Products             []ProductProfit `json:"product_profits"`
	TotalRevenue         float64         `json:"total_revenue"`
	TotalCost            float64         `json:"total_cost"`
	TotalProfit          float64         `json:"total_profit"`
	TotalPotentialProfit float64         `json:"total_potential_profit"`
	TotalStockValue      float64         `json:"total_stock_value"`
	Categories           []ProfitBucket  `json:"category_profits"`
	Monthly              []ProfitBucket  `json:"monthly_trend"`
}
