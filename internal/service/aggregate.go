package service

import (
	"sort"

	"github.com/Shivarajkushals/Dashboard/internal/domain"
	"github.com/shopspring/decimal"
)

// unknownShopType is what the repository reports for a NULL shop type.
const unknownShopType = "Unknown"

type tally struct {
	current  float64
	lastYear float64
	qty      float64
	bills    float64
	online   float64
	offline  float64
	stores   map[string]struct{}
}

func (t *tally) add(row domain.DailySales, f domain.FilterSet) {
	if !inRange(row.BillDate, f) {
		t.lastYear += row.Sales
		return
	}
	t.current += row.Sales
	t.qty += row.Qty
	t.bills += float64(row.Bills)
	t.online += row.OnlineSales
	t.offline += row.OfflineSales
	if t.stores != nil {
		t.stores[row.Store] = struct{}{}
	}
}

func (t *tally) row() domain.SummaryRow {
	r := domain.SummaryRow{
		CurrentSales:       t.current,
		LastYearSales:      t.lastYear,
		TotalBills:         t.bills,
		TotalQty:           t.qty,
		OnlineSalesAmount:  t.online,
		OfflineSalesAmount: t.offline,
		GrowthPercent:      round2(domain.GrowthPercent(t.current, t.lastYear)),
	}
	if t.qty > 0 {
		r.AvgSellingPrice = round2(t.current / t.qty)
	}
	if t.bills > 0 {
		r.UnitsPerTransaction = round2(t.qty / t.bills)
	}
	return r
}

func inRange(d domain.Date, f domain.FilterSet) bool {
	return !d.Before(f.FromDate) && !d.After(f.ToDate)
}

func round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// AggregateStores folds daily rows into one summary row per store. Rows
// dated inside the filter range count towards the current period, all
// others towards last year. Stores without current sales are dropped and
// the result is ordered by current sales, highest first.
func AggregateStores(rows []domain.DailySales, f domain.FilterSet) []domain.SummaryRow {
	tallies := make(map[string]*tally)
	for _, row := range rows {
		t, ok := tallies[row.Store]
		if !ok {
			t = &tally{}
			tallies[row.Store] = t
		}
		t.add(row, f)
	}

	out := make([]domain.SummaryRow, 0, len(tallies))
	for store, t := range tallies {
		if t.current == 0 {
			continue
		}
		r := t.row()
		r.Store = store
		out = append(out, r)
	}
	sortByCurrentSales(out)
	return out
}

// AggregateShopTypes folds daily rows into one summary row per shop type.
// Unknown shop types are skipped. StoreCount is the number of distinct
// stores that sold in the current period.
func AggregateShopTypes(rows []domain.DailySales, f domain.FilterSet) []domain.SummaryRow {
	tallies := make(map[string]*tally)
	for _, row := range rows {
		if row.ShopType == "" || row.ShopType == unknownShopType {
			continue
		}
		t, ok := tallies[row.ShopType]
		if !ok {
			t = &tally{stores: make(map[string]struct{})}
			tallies[row.ShopType] = t
		}
		t.add(row, f)
	}

	out := make([]domain.SummaryRow, 0, len(tallies))
	for shopType, t := range tallies {
		if t.current == 0 {
			continue
		}
		r := t.row()
		r.ShopType = shopType
		r.StoreCount = len(t.stores)
		out = append(out, r)
	}
	sortByCurrentSales(out)
	return out
}

func sortByCurrentSales(rows []domain.SummaryRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].CurrentSales != rows[j].CurrentSales {
			return rows[i].CurrentSales > rows[j].CurrentSales
		}
		return rows[i].Label() < rows[j].Label()
	})
}
