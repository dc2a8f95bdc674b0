package domain

// SummaryRow is one aggregated row of the store or shop-type summary.
// Store is set for store rows, ShopType (and StoreCount) for shop-type rows.
type SummaryRow struct {
	Store               string  `json:"store,omitempty"`
	ShopType            string  `json:"shop_type,omitempty"`
	TranType            string  `json:"tran_type,omitempty"`
	CurrentSales        float64 `json:"current_sales"`
	LastYearSales       float64 `json:"last_year_sales"`
	TotalBills          float64 `json:"total_bills"`
	TotalQty            float64 `json:"total_qty"`
	OnlineSalesAmount   float64 `json:"online_sales_amount"`
	OfflineSalesAmount  float64 `json:"offline_sales_amount"`
	GrowthPercent       float64 `json:"growth_percent"`
	StoreCount          int     `json:"store_count,omitempty"`
	AvgSellingPrice     float64 `json:"avg_selling_price"`
	UnitsPerTransaction float64 `json:"units_per_transaction"`
}

// Label is the grouping value of the row.
func (r SummaryRow) Label() string {
	if r.Store != "" {
		return r.Store
	}
	return r.ShopType
}

// GrowthPercent is the year-over-year change of current against lastYear.
// A non-positive lastYear yields 0.
func GrowthPercent(current, lastYear float64) float64 {
	if lastYear <= 0 {
		return 0
	}
	return (current - lastYear) / lastYear * 100
}

// DailySales is one store/day aggregate read from the daily summary table.
type DailySales struct {
	Store        string
	ShopType     string
	BillDate     Date
	Sales        float64
	Qty          float64
	Bills        int64
	OnlineSales  float64
	OfflineSales float64
}
