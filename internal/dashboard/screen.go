package dashboard

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/Shivarajkushals/Dashboard/internal/client"
	"github.com/Shivarajkushals/Dashboard/internal/domain"
	"github.com/Shivarajkushals/Dashboard/internal/kpi"
	"github.com/Shivarajkushals/Dashboard/internal/momview"
	"github.com/Shivarajkushals/Dashboard/internal/orchestrator"
	"github.com/Shivarajkushals/Dashboard/pkg/format"
	"github.com/Shivarajkushals/Dashboard/pkg/pagination"
)

const (
	Title        = "KSIM Sales Dashboard"
	DirtyHint    = "Filters changed. Press Apply to update the dashboard."
	EmptyMessage = "No data available for the selected date range."
	SelectMarker = "👉 "
	UnknownLabel = "Unknown"
)

// Status is the render state of one screen section.
type Status string

const (
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusEmpty   Status = "empty"
	StatusError   Status = "error"
)

// Trend is the direction shown next to a KPI.
type Trend int

const (
	TrendFlat Trend = iota
	TrendUp
	TrendDown
)

type Screen struct {
	Header       Header
	Form         Form
	Cards        []Card
	RevenueChart ChartSpec
	ShopTypeMix  ChartSpec
	ChannelMix   ChartSpec
	Stores       TableView
	ShopTypes    TableView
	Channels     TableView
	MonthOnMonth MonthOnMonthView
}

type Header struct {
	Title     string
	DateRange string
	Loading   bool
	UpdatedAt time.Time
}

type Form struct {
	Draft     domain.FilterSet
	Applied   domain.FilterSet
	Dirty     bool
	Hint      string
	MinDate   domain.Date
	MaxDate   domain.Date
	Stores    []string
	ShopTypes []string
	TranTypes []string
	Error     string
}

type Card struct {
	Title  string
	Value  string
	Detail string
	Trend  Trend
}

type ChartKind string

const (
	ChartBar ChartKind = "bar"
	ChartPie ChartKind = "pie"
)

// Point is one bar or slice. Share is the fraction of the series total.
type Point struct {
	Label    string
	Value    float64
	Display  string
	Share    float64
	Selected bool
}

// ChartSpec describes a chart; drawing it is up to the front end.
type ChartSpec struct {
	Kind    ChartKind
	Title   string
	Points  []Point
	Status  Status
	Message string
}

type TableRow struct {
	Key      string
	Cells    []string
	Selected bool
}

type TableView struct {
	Title   string
	Columns []string
	Rows    []TableRow
	Page    pagination.Page
	Status  Status
	Message string
}

type MonthOnMonthView struct {
	Mode    momview.Mode
	Status  Status
	Message string
	Columns []string
	Rows    []TableRow
	Footer  []string
	Page    pagination.Page
}

// Screen builds a full snapshot for rendering. Fetch errors are reported per
// section and never returned.
func (d *Dashboard) Screen() Screen {
	st := d.orch.Snapshot()
	applied := d.filters.Applied()
	draft := d.filters.Draft()
	summary := kpi.Compute(st.Stores)

	return Screen{
		Header: Header{
			Title:     Title,
			DateRange: format.DateRange(applied.FromDate, applied.ToDate),
			Loading:   st.Loading,
			UpdatedAt: st.UpdatedAt,
		},
		Form:         d.form(st, applied, draft),
		Cards:        cards(summary, len(st.Stores)),
		RevenueChart: revenueChart(st, applied.Store),
		ShopTypeMix:  shopTypeChart(st, applied.ShopType),
		ChannelMix:   channelChart(st, summary),
		Stores:       d.storeTable(st, applied.Store),
		ShopTypes:    d.shopTypeTable(st, applied.ShopType),
		Channels:     d.channelTable(st, applied.Store),
		MonthOnMonth: d.monthOnMonth(st),
	}
}

func (d *Dashboard) form(st orchestrator.State, applied, draft domain.FilterSet) Form {
	bounds := d.filters.Bounds()
	f := Form{
		Draft:   draft,
		Applied: applied,
		Dirty:   d.filters.Dirty(),
		MinDate: bounds.Min,
		MaxDate: bounds.Max,
	}
	if f.Dirty {
		f.Hint = DirtyHint
	}
	for _, o := range st.StoreOptions {
		f.Stores = append(f.Stores, o.Store)
	}
	for _, o := range st.ShopTypeOptions {
		f.ShopTypes = append(f.ShopTypes, o.ShopType)
	}
	for _, o := range st.TranTypeOptions {
		f.TranTypes = append(f.TranTypes, o.TranType)
	}
	for _, sec := range []orchestrator.Section{orchestrator.SectionStoreList, orchestrator.SectionShopTypeList, orchestrator.SectionTranTypeList} {
		if err := st.Err(sec); err != nil {
			f.Error = "Could not load filter options: " + describe(err)
			break
		}
	}
	return f
}

func cards(s kpi.Summary, storeCount int) []Card {
	growth := TrendFlat
	switch {
	case s.AvgGrowth > 0:
		growth = TrendUp
	case s.AvgGrowth < 0:
		growth = TrendDown
	}
	return []Card{
		{
			Title:  "Revenue",
			Value:  format.Crore(s.TotalRevenue, 1),
			Detail: format.Growth(s.AvgGrowth) + " vs last year",
			Trend:  growth,
		},
		{
			Title:  "Bill Count",
			Value:  format.Thousands(s.TotalBills),
			Detail: fmt.Sprintf("%d stores", storeCount),
		},
		{
			Title:  "Online Mix",
			Value:  format.Percent(s.OnlinePercentage),
			Detail: format.Crore(s.OnlineSales, 1) + " online",
		},
		{
			Title:  "Total Quantity",
			Value:  format.Thousands(s.TotalQty),
			Detail: "units sold",
		},
	}
}

func revenueChart(st orchestrator.State, selected string) ChartSpec {
	spec := ChartSpec{Kind: ChartBar, Title: "Revenue by Store"}
	spec.Status, spec.Message = sectionStatus(st, orchestrator.SectionStores, len(st.Stores))
	total := kpi.Compute(st.Stores).TotalRevenue
	for _, r := range st.Stores {
		spec.Points = append(spec.Points, Point{
			Label:    r.Store,
			Value:    r.CurrentSales,
			Display:  format.Crore(r.CurrentSales, 2),
			Share:    share(r.CurrentSales, total),
			Selected: selected != "" && r.Store == selected,
		})
	}
	return spec
}

// shopTypeChart groups revenue by shop type, largest first.
func shopTypeChart(st orchestrator.State, selected string) ChartSpec {
	spec := ChartSpec{Kind: ChartPie, Title: "Revenue by Shop Type"}
	spec.Status, spec.Message = sectionStatus(st, orchestrator.SectionShopTypes, len(st.ShopTypes))

	byType := make(map[string]float64)
	var total float64
	for _, r := range st.ShopTypes {
		label := r.ShopType
		if label == "" {
			label = UnknownLabel
		}
		byType[label] += r.CurrentSales
		total += r.CurrentSales
	}
	for label, v := range byType {
		spec.Points = append(spec.Points, Point{
			Label:    label,
			Value:    v,
			Display:  format.Crore(v, 2),
			Share:    share(v, total),
			Selected: selected != "" && label == selected,
		})
	}
	sort.SliceStable(spec.Points, func(i, j int) bool {
		if spec.Points[i].Value == spec.Points[j].Value {
			return spec.Points[i].Label < spec.Points[j].Label
		}
		return spec.Points[i].Value > spec.Points[j].Value
	})
	return spec
}

func channelChart(st orchestrator.State, s kpi.Summary) ChartSpec {
	spec := ChartSpec{Kind: ChartPie, Title: "Online vs Offline"}
	spec.Status, spec.Message = sectionStatus(st, orchestrator.SectionStores, len(st.Stores))
	total := s.OnlineSales + s.OfflineSales
	spec.Points = []Point{
		{Label: "Online", Value: s.OnlineSales, Display: format.Crore(s.OnlineSales, 2), Share: share(s.OnlineSales, total)},
		{Label: "Offline", Value: s.OfflineSales, Display: format.Crore(s.OfflineSales, 2), Share: share(s.OfflineSales, total)},
	}
	return spec
}

func (d *Dashboard) storeTable(st orchestrator.State, selected string) TableView {
	tv := TableView{
		Title:   "Store Performance",
		Columns: []string{"Market", "Revenue", "Bill Count", "Conversion", "Growth %", "Total Qty", "ASP"},
	}
	tv.Status, tv.Message = sectionStatus(st, orchestrator.SectionStores, len(st.Stores))
	tv.Page = d.pager(TableStores).Page(len(st.Stores))
	for _, r := range pagination.Slice(st.Stores, tv.Page) {
		sel := selected != "" && r.Store == selected
		tv.Rows = append(tv.Rows, TableRow{
			Key:      r.Store,
			Selected: sel,
			Cells: []string{
				marker(sel) + r.Store,
				format.Crore(r.CurrentSales, 1) + " " + format.Arrow(r.CurrentSales, r.LastYearSales),
				format.Number(r.TotalBills),
				upt(r.UnitsPerTransaction),
				growthCell(r.GrowthPercent),
				format.Number(r.TotalQty),
				format.Rupees(r.AvgSellingPrice),
			},
		})
	}
	return tv
}

func (d *Dashboard) shopTypeTable(st orchestrator.State, selected string) TableView {
	tv := TableView{
		Title:   "Shop Type Performance",
		Columns: []string{"Shop Type", "Revenue", "Bill Count", "Growth %", "Total Qty", "Stores", "ASP", "UPT"},
	}
	tv.Status, tv.Message = sectionStatus(st, orchestrator.SectionShopTypes, len(st.ShopTypes))
	tv.Page = d.pager(TableShopTypes).Page(len(st.ShopTypes))
	for _, r := range pagination.Slice(st.ShopTypes, tv.Page) {
		sel := selected != "" && r.ShopType == selected
		tv.Rows = append(tv.Rows, TableRow{
			Key:      r.ShopType,
			Selected: sel,
			Cells: []string{
				marker(sel) + r.ShopType,
				format.Crore(r.CurrentSales, 1) + " " + format.Arrow(r.CurrentSales, r.LastYearSales),
				format.Number(r.TotalBills),
				growthCell(r.GrowthPercent),
				format.Number(r.TotalQty),
				fmt.Sprintf("%d", r.StoreCount),
				format.Rupees(r.AvgSellingPrice),
				format.Fixed(r.UnitsPerTransaction, 2),
			},
		})
	}
	return tv
}

func (d *Dashboard) channelTable(st orchestrator.State, selected string) TableView {
	tv := TableView{
		Title:   "Channel Mix by Store",
		Columns: []string{"Store", "Online Sales", "Offline Sales", "Online %", "Total"},
	}
	tv.Status, tv.Message = sectionStatus(st, orchestrator.SectionStores, len(st.Stores))
	tv.Page = d.pager(TableChannels).Page(len(st.Stores))
	for _, r := range pagination.Slice(st.Stores, tv.Page) {
		c := kpi.ChannelSplit(r)
		sel := selected != "" && r.Store == selected
		tv.Rows = append(tv.Rows, TableRow{
			Key:      r.Store,
			Selected: sel,
			Cells: []string{
				marker(sel) + c.Label,
				format.Crore(c.Online, 2),
				format.Crore(c.Offline, 2),
				format.Percent(c.OnlinePercent),
				format.Crore(c.Total, 2),
			},
		})
	}
	return tv
}

func (d *Dashboard) monthOnMonth(st orchestrator.State) MonthOnMonthView {
	view := momview.Build(st.MonthOnMonth, d.momMode)
	out := MonthOnMonthView{Mode: d.momMode, Message: view.Message()}

	switch view.Status() {
	case momview.StatusLoading:
		out.Status = StatusLoading
	case momview.StatusInvalid:
		out.Status = StatusError
	case momview.StatusEmpty:
		out.Status = StatusEmpty
	default:
		out.Status = StatusReady
	}
	if err := st.Err(orchestrator.SectionMonthOnMonth); err != nil {
		out.Status = StatusError
		out.Message = describe(err)
	}

	out.Page = d.pager(TableMonthOnMonth).Page(view.StoreCount())
	if view.Status() != momview.StatusReady {
		return out
	}

	out.Columns = append(append([]string{"Store"}, view.MonthLabels()...), "Total")
	for _, r := range view.Rows(out.Page) {
		cells := make([]string, 0, len(r.Cells)+2)
		cells = append(cells, r.Store)
		for _, c := range r.Cells {
			cells = append(cells, view.Format(c))
		}
		cells = append(cells, view.Format(r.Total))
		out.Rows = append(out.Rows, TableRow{Key: r.Store, Cells: cells})
	}

	out.Footer = append(out.Footer, "Total")
	for m := range view.Months() {
		out.Footer = append(out.Footer, view.Format(view.ColumnTotal(m)))
	}
	out.Footer = append(out.Footer, view.Format(view.GrandTotal()))
	return out
}

// sectionStatus classifies a section. An error keeps whatever rows are
// already shown and only adds the message.
func sectionStatus(st orchestrator.State, section orchestrator.Section, rows int) (Status, string) {
	if err := st.Err(section); err != nil {
		return StatusError, describe(err)
	}
	if !st.HasData(section) {
		if st.Loading || st.Generation == 0 {
			return StatusLoading, "Loading..."
		}
		return StatusEmpty, EmptyMessage
	}
	if rows == 0 {
		return StatusEmpty, EmptyMessage
	}
	return StatusReady, ""
}

// describe maps fetch errors to the inline message users see.
func describe(err error) string {
	var statusErr *client.StatusError
	switch {
	case errors.As(err, &statusErr):
		return fmt.Sprintf("Server error (%d). Showing last loaded data.", statusErr.StatusCode)
	case errors.Is(err, client.ErrMalformedResponse), errors.Is(err, domain.ErrInvalidReportShape):
		return "Received unexpected data from the server."
	default:
		return "Could not reach the server. Showing last loaded data."
	}
}

func marker(selected bool) string {
	if selected {
		return SelectMarker
	}
	return ""
}

func upt(v float64) string {
	if v == 0 {
		return "-"
	}
	return format.Fixed(v, 2)
}

func growthCell(v float64) string {
	arrow := "▲"
	if v < 0 {
		arrow = "▼"
	}
	return arrow + " " + format.Percent(math.Abs(v))
}

func share(v, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return v / total
}
