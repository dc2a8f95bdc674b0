// Package momview derives the month-on-month matrix shown on the dashboard.
// Totals are computed on demand from the report and never stored.
package momview

import (
	"github.com/Shivarajkushals/Dashboard/internal/domain"
	"github.com/Shivarajkushals/Dashboard/pkg/format"
	"github.com/Shivarajkushals/Dashboard/pkg/pagination"
)

// Mode selects which measure the matrix shows.
type Mode int

const (
	ModeSales Mode = iota
	ModeQty
)

func (m Mode) String() string {
	if m == ModeQty {
		return "qty"
	}
	return "sales"
}

// Toggle switches between sales and quantity.
func (m Mode) Toggle() Mode {
	if m == ModeQty {
		return ModeSales
	}
	return ModeQty
}

// Status is the render state of the matrix.
type Status int

const (
	StatusLoading Status = iota
	StatusInvalid
	StatusEmpty
	StatusReady
)

func (s Status) String() string {
	switch s {
	case StatusInvalid:
		return "invalid"
	case StatusEmpty:
		return "empty"
	case StatusReady:
		return "ready"
	default:
		return "loading"
	}
}

const (
	LoadingMessage = "Loading month-on-month data..."
	InvalidMessage = "Invalid data structure. Expected 'months' and 'stores' properties."
	EmptyMessage   = "No data available for the selected date range."
)

type View struct {
	report *domain.MonthOnMonthReport
	mode   Mode
	status Status
	err    error
}

// Row is one visible store line.
type Row struct {
	Index int
	Store string
	Cells []float64
	Total float64
}

// Build classifies report and wraps it for rendering. It never panics on a
// malformed report; such reports yield StatusInvalid.
func Build(report *domain.MonthOnMonthReport, mode Mode) *View {
	v := &View{report: report, mode: mode}
	switch {
	case report == nil:
		v.status = StatusLoading
	case report.Validate() != nil:
		v.status = StatusInvalid
		v.err = report.Validate()
	case len(report.Stores) == 0:
		v.status = StatusEmpty
	default:
		v.status = StatusReady
	}
	return v
}

func (v *View) Status() Status { return v.status }
func (v *View) Err() error     { return v.err }
func (v *View) Mode() Mode     { return v.mode }

// Message is the placeholder text for non-ready states.
func (v *View) Message() string {
	switch v.status {
	case StatusLoading:
		return LoadingMessage
	case StatusInvalid:
		return InvalidMessage
	case StatusEmpty:
		return EmptyMessage
	}
	return ""
}

func (v *View) ready() bool { return v.status == StatusReady }

func (v *View) Months() []string {
	if !v.ready() {
		return nil
	}
	return v.report.Months
}

// MonthLabels returns the months formatted like "Jan 2025".
func (v *View) MonthLabels() []string {
	months := v.Months()
	out := make([]string, len(months))
	for i, m := range months {
		out[i] = format.MonthLabel(m)
	}
	return out
}

func (v *View) StoreCount() int {
	if !v.ready() {
		return 0
	}
	return len(v.report.Stores)
}

// Cell is the selected measure for a store/month pair, 0 when out of range.
func (v *View) Cell(store, month int) float64 {
	if !v.ready() || store < 0 || store >= len(v.report.Stores) {
		return 0
	}
	data := v.report.Stores[store].Data
	if month < 0 || month >= len(data) {
		return 0
	}
	return v.measure(data[month])
}

func (v *View) RowTotal(store int) float64 {
	var total float64
	for m := range v.Months() {
		total += v.Cell(store, m)
	}
	return total
}

func (v *View) ColumnTotal(month int) float64 {
	var total float64
	for s := 0; s < v.StoreCount(); s++ {
		total += v.Cell(s, month)
	}
	return total
}

func (v *View) GrandTotal() float64 {
	var total float64
	for s := 0; s < v.StoreCount(); s++ {
		total += v.RowTotal(s)
	}
	return total
}

// Rows returns the store lines visible on p.
func (v *View) Rows(p pagination.Page) []Row {
	if !v.ready() {
		return nil
	}
	var rows []Row
	for s := p.StartIndex; s < p.EndIndex && s < len(v.report.Stores); s++ {
		cells := make([]float64, len(v.report.Months))
		for m := range cells {
			cells[m] = v.Cell(s, m)
		}
		rows = append(rows, Row{
			Index: s,
			Store: v.report.Stores[s].Store,
			Cells: cells,
			Total: v.RowTotal(s),
		})
	}
	return rows
}

// Format renders a value of the current measure.
func (v *View) Format(value float64) string {
	if v.mode == ModeQty {
		return format.Number(value)
	}
	return format.Crore(value, 2)
}

func (v *View) measure(mv domain.MonthValue) float64 {
	if v.mode == ModeQty {
		return mv.Qty
	}
	return mv.Sales
}

// AllRows returns every store line, ignoring pagination.
func (v *View) AllRows() []Row {
	return v.Rows(pagination.Page{EndIndex: v.StoreCount()})
}
