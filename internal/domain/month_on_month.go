package domain

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidReportShape marks a month-on-month payload whose matrix is not
// rectangular or is missing its months/stores.
var ErrInvalidReportShape = errors.New("invalid month-on-month shape")

// MonthValue is one store/month cell.
type MonthValue struct {
	Sales float64 `json:"sales"`
	Qty   float64 `json:"qty"`
}

// StoreMonths is one store row of the matrix, aligned with the report months.
type StoreMonths struct {
	Store string       `json:"store"`
	Data  []MonthValue `json:"data"`
}

// MonthOnMonthReport is a store x month matrix for the current period.
type MonthOnMonthReport struct {
	Months []string      `json:"months"`
	Stores []StoreMonths `json:"stores"`
}

// Validate checks that months and stores are present and every store row
// has exactly one cell per month.
func (r *MonthOnMonthReport) Validate() error {
	if r == nil || r.Months == nil || r.Stores == nil {
		return fmt.Errorf("%w: months and stores are required", ErrInvalidReportShape)
	}
	for _, s := range r.Stores {
		if len(s.Data) != len(r.Months) {
			return fmt.Errorf("%w: store %q has %d cells for %d months",
				ErrInvalidReportShape, s.Store, len(s.Data), len(r.Months))
		}
	}
	return nil
}

// MonthCell is a sparse aggregate as returned by the database.
type MonthCell struct {
	Store string  `db:"store"`
	Month string  `db:"month"`
	Sales float64 `db:"total_sales"`
	Qty   float64 `db:"total_qty"`
}

// NewMonthOnMonthReport builds the dense matrix from sparse cells. Months are
// sorted ascending, stores by name, missing cells are zero.
func NewMonthOnMonthReport(cells []MonthCell) *MonthOnMonthReport {
	byStore := make(map[string]map[string]MonthValue)
	monthSet := make(map[string]struct{})
	for _, c := range cells {
		if _, ok := byStore[c.Store]; !ok {
			byStore[c.Store] = make(map[string]MonthValue)
		}
		v := byStore[c.Store][c.Month]
		v.Sales += c.Sales
		v.Qty += c.Qty
		byStore[c.Store][c.Month] = v
		monthSet[c.Month] = struct{}{}
	}

	months := make([]string, 0, len(monthSet))
	for m := range monthSet {
		months = append(months, m)
	}
	sort.Strings(months)

	names := make([]string, 0, len(byStore))
	for s := range byStore {
		names = append(names, s)
	}
	sort.Strings(names)

	report := &MonthOnMonthReport{Months: months, Stores: make([]StoreMonths, 0, len(names))}
	for _, name := range names {
		row := StoreMonths{Store: name, Data: make([]MonthValue, len(months))}
		for i, m := range months {
			row.Data[i] = byStore[name][m]
		}
		report.Stores = append(report.Stores, row)
	}
	return report
}
