package tui

import (
	"fmt"
	"strings"

	"github.com/Shivarajkushals/Dashboard/internal/dashboard"
	"github.com/Shivarajkushals/Dashboard/internal/domain"
	"github.com/Shivarajkushals/Dashboard/internal/filters"
	"github.com/Shivarajkushals/Dashboard/pkg/format"
	"github.com/Shivarajkushals/Dashboard/pkg/pagination"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

const (
	barWidth     = 30
	chartTopN    = 10
	defaultWidth = 120
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	upStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	downStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	cardStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).Width(26)
	activeTab    = lipgloss.NewStyle().Bold(true).Underline(true)
	cursorStyle  = lipgloss.NewStyle().Reverse(true)
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	barStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	selectedBar  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	sectionStyle = lipgloss.NewStyle().MarginTop(1)
)

var tabTitles = map[dashboard.Table]string{
	dashboard.TableStores:       "Stores",
	dashboard.TableShopTypes:    "Shop Types",
	dashboard.TableChannels:     "Channels",
	dashboard.TableMonthOnMonth: "Month on Month",
}

func (m *Model) View() string {
	sc := m.dash.Screen()

	sections := []string{
		m.viewHeader(sc.Header),
		m.viewFilters(sc.Form),
		viewCards(sc.Cards),
		lipgloss.JoinHorizontal(lipgloss.Top,
			viewChart(sc.RevenueChart),
			"  ",
			lipgloss.JoinVertical(lipgloss.Left, viewChart(sc.ShopTypeMix), viewChart(sc.ChannelMix)),
		),
		m.viewTabs(),
		m.viewTable(sc),
		mutedStyle.Render("tab section · ↑/↓ row · enter select · n/p page · s page size · m sales/qty · f filters · x reset · r refresh · e export · q quit"),
	}
	return strings.Join(sections, "\n")
}

func (m *Model) viewHeader(h dashboard.Header) string {
	line := titleStyle.Render(h.Title) + "  " + h.DateRange
	if h.Loading {
		line += "  " + hintStyle.Render("Loading...")
	} else if !h.UpdatedAt.IsZero() {
		line += "  " + mutedStyle.Render("updated "+h.UpdatedAt.Format("15:04:05"))
	}
	if m.status != "" {
		line += "\n" + hintStyle.Render(m.status)
	}
	return line
}

func (m *Model) viewFilters(f dashboard.Form) string {
	var b strings.Builder
	if !m.form.open {
		fmt.Fprintf(&b, "%s %s → %s   Store: %s   Shop type: %s   Tran type: %s",
			mutedStyle.Render("Filters"),
			f.Applied.FromDate, f.Applied.ToDate,
			orAll(f.Applied.Store), orAll(f.Applied.ShopType), orAll(f.Applied.TranType))
	} else {
		b.WriteString(titleStyle.Render("Filters") + mutedStyle.Render(fmt.Sprintf("  (%s … %s)  ↑/↓ field · ←/→ choose · enter edit date · a apply · x reset · esc close", f.MinDate, f.MaxDate)))
		for i, field := range formFields {
			value := draftValue(f.Draft, field)
			if !isDate(field) {
				value = orAll(value)
			}
			if m.form.editing && i == m.form.field {
				value = m.form.input + "▏"
			}
			line := fmt.Sprintf("  %-10s %s", fieldLabel(field), value)
			if i == m.form.field {
				line = cursorStyle.Render(line)
			}
			b.WriteString("\n" + line)
		}
	}
	if f.Hint != "" {
		b.WriteString("\n" + hintStyle.Render(f.Hint))
	}
	if f.Error != "" {
		b.WriteString("\n" + errorStyle.Render(f.Error))
	}
	return b.String()
}

func viewCards(cards []dashboard.Card) string {
	boxes := make([]string, 0, len(cards))
	for _, c := range cards {
		detail := mutedStyle.Render(c.Detail)
		switch c.Trend {
		case dashboard.TrendUp:
			detail = upStyle.Render(c.Detail)
		case dashboard.TrendDown:
			detail = downStyle.Render(c.Detail)
		}
		boxes = append(boxes, cardStyle.Render(mutedStyle.Render(c.Title)+"\n"+lipgloss.NewStyle().Bold(true).Render(c.Value)+"\n"+detail))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}

func viewChart(spec dashboard.ChartSpec) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(spec.Title))
	if spec.Status != dashboard.StatusReady {
		style := mutedStyle
		if spec.Status == dashboard.StatusError {
			style = errorStyle
		}
		b.WriteString("\n" + style.Render(spec.Message))
		if spec.Status != dashboard.StatusError || len(spec.Points) == 0 {
			return sectionStyle.Render(b.String())
		}
	}

	points := spec.Points
	if len(points) > chartTopN {
		points = points[:chartTopN]
	}
	labelWidth := 0
	for _, p := range points {
		labelWidth = max(labelWidth, lipgloss.Width(p.Label))
	}
	for _, p := range points {
		n := int(p.Share*barWidth + 0.5)
		style := barStyle
		if p.Selected {
			style = selectedBar
		}
		bar := style.Render(strings.Repeat("█", n)) + strings.Repeat(" ", barWidth-n)
		label := p.Label + strings.Repeat(" ", labelWidth-lipgloss.Width(p.Label))
		fmt.Fprintf(&b, "\n%s %s %s %s", label, bar, p.Display, mutedStyle.Render(format.Percent(p.Share*100)))
	}
	return sectionStyle.Render(b.String())
}

func (m *Model) viewTabs() string {
	tabs := make([]string, 0, len(dashboard.Tables))
	for i, t := range dashboard.Tables {
		title := tabTitles[t]
		if i == m.focus {
			title = activeTab.Render(title)
		} else {
			title = mutedStyle.Render(title)
		}
		tabs = append(tabs, title)
	}
	return sectionStyle.Render(strings.Join(tabs, "   "))
}

func (m *Model) viewTable(sc dashboard.Screen) string {
	var (
		columns []string
		rows    []dashboard.TableRow
		footer  []string
		page    pagination.Page
		status  dashboard.Status
		message string
		title   string
	)
	switch m.table() {
	case dashboard.TableStores:
		tv := sc.Stores
		title, columns, rows, page, status, message = tv.Title, tv.Columns, tv.Rows, tv.Page, tv.Status, tv.Message
	case dashboard.TableShopTypes:
		tv := sc.ShopTypes
		title, columns, rows, page, status, message = tv.Title, tv.Columns, tv.Rows, tv.Page, tv.Status, tv.Message
	case dashboard.TableChannels:
		tv := sc.Channels
		title, columns, rows, page, status, message = tv.Title, tv.Columns, tv.Rows, tv.Page, tv.Status, tv.Message
	default:
		mv := sc.MonthOnMonth
		title = "Month on Month (" + mv.Mode.String() + ")"
		columns, rows, footer, page, status, message = mv.Columns, mv.Rows, mv.Footer, mv.Page, mv.Status, mv.Message
	}

	out := titleStyle.Render(title)
	if status != dashboard.StatusReady {
		style := mutedStyle
		if status == dashboard.StatusError {
			style = errorStyle
		}
		out += "\n" + style.Render(message)
		if len(rows) == 0 {
			return out
		}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(columns...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if row == m.cursor {
				return cellStyle.Reverse(true)
			}
			return cellStyle
		})
	if m.width > 0 {
		t = t.Width(min(m.width, defaultWidth))
	}
	for _, r := range rows {
		t.Row(r.Cells...)
	}
	if len(footer) > 0 {
		t.Row(footer...)
	}
	return out + "\n" + t.Render() + "\n" + viewPager(page)
}

func viewPager(p pagination.Page) string {
	if p.TotalItems == 0 {
		return ""
	}
	var parts []string
	if p.HasPrev() {
		parts = append(parts, "‹")
	}
	for _, l := range p.Links {
		switch {
		case l.Ellipsis:
			parts = append(parts, "…")
		case l.Current:
			parts = append(parts, activeTab.Render(fmt.Sprint(l.Number)))
		default:
			parts = append(parts, fmt.Sprint(l.Number))
		}
	}
	if p.HasNext() {
		parts = append(parts, "›")
	}
	return strings.Join(parts, " ") + mutedStyle.Render(fmt.Sprintf("   %d–%d of %d · %d per page",
		p.StartIndex+1, p.EndIndex, p.TotalItems, p.PageSize))
}

func fieldLabel(f filters.Field) string {
	switch f {
	case filters.FieldFromDate:
		return "From"
	case filters.FieldToDate:
		return "To"
	case filters.FieldStore:
		return "Store"
	case filters.FieldShopType:
		return "Shop type"
	default:
		return "Tran type"
	}
}

func draftValue(f domain.FilterSet, field filters.Field) string {
	switch field {
	case filters.FieldFromDate:
		return f.FromDate.String()
	case filters.FieldToDate:
		return f.ToDate.String()
	case filters.FieldStore:
		return f.Store
	case filters.FieldShopType:
		return f.ShopType
	default:
		return f.TranType
	}
}

func orAll(v string) string {
	if v == "" {
		return "All"
	}
	return v
}
