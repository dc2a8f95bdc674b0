// Package tui is the terminal front end of the sales dashboard.
package tui

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Shivarajkushals/Dashboard/internal/dashboard"
	"github.com/Shivarajkushals/Dashboard/internal/filters"
	"github.com/Shivarajkushals/Dashboard/internal/orchestrator"
	"github.com/Shivarajkushals/Dashboard/internal/storage"
	"github.com/Shivarajkushals/Dashboard/pkg/pagination"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
)

type Options struct {
	API            orchestrator.SalesAPI
	Storage        storage.ObjectStorage
	PageSize       int
	RequestTimeout time.Duration
	Now            func() time.Time
}

// formFields is the order of the filter form.
var formFields = []filters.Field{
	filters.FieldFromDate,
	filters.FieldToDate,
	filters.FieldStore,
	filters.FieldShopType,
	filters.FieldTranType,
}

type formState struct {
	open    bool
	field   int
	editing bool
	input   string
}

// Model is the bubbletea model. It owns the dashboard; fetch goroutines
// only signal through updates.
type Model struct {
	ctx     context.Context
	dash    *dashboard.Dashboard
	store   storage.ObjectStorage
	updates chan struct{}

	focus  int
	cursor int
	form   formState
	status string
	width  int
}

type updatedMsg struct{}

type exportedMsg struct {
	paths []string
	err   error
}

func New(ctx context.Context, opts Options) *Model {
	m := &Model{
		ctx:     ctx,
		store:   opts.Storage,
		updates: make(chan struct{}, 1),
	}
	m.dash = dashboard.New(opts.API, dashboard.Options{
		Now:            opts.Now,
		PageSize:       opts.PageSize,
		RequestTimeout: opts.RequestTimeout,
		OnChange: func(orchestrator.State) {
			select {
			case m.updates <- struct{}{}:
			default:
			}
		},
	})
	return m
}

// Dashboard exposes the underlying dashboard, mainly for tests.
func (m *Model) Dashboard() *dashboard.Dashboard { return m.dash }

func (m *Model) Init() tea.Cmd {
	m.dash.Start(m.ctx)
	return m.listen()
}

func (m *Model) listen() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-m.updates:
			return updatedMsg{}
		case <-m.ctx.Done():
			return nil
		}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case updatedMsg:
		m.clampCursor()
		return m, m.listen()
	case exportedMsg:
		if msg.err != nil {
			m.status = "Export failed: " + msg.err.Error()
		} else {
			m.status = "Exported " + strings.Join(msg.paths, ", ")
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.dash.Close()
			return m, tea.Quit
		}
		if m.form.open {
			return m, m.updateForm(msg)
		}
		return m, m.updateMain(msg)
	}
	return m, nil
}

func (m *Model) table() dashboard.Table {
	return dashboard.Tables[m.focus]
}

func (m *Model) updateMain(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		m.dash.Close()
		return tea.Quit
	case "tab":
		m.focus = (m.focus + 1) % len(dashboard.Tables)
		m.cursor = 0
	case "shift+tab":
		m.focus = (m.focus + len(dashboard.Tables) - 1) % len(dashboard.Tables)
		m.cursor = 0
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		m.cursor++
		m.clampCursor()
	case "n", "right":
		m.dash.NextPage(m.table())
		m.cursor = 0
	case "p", "left":
		m.dash.PrevPage(m.table())
		m.cursor = 0
	case "s":
		m.dash.SetPageSize(m.table(), nextPageSize(m.currentPage().PageSize))
		m.cursor = 0
	case "m":
		m.dash.ToggleMonthOnMonthMode()
	case "r":
		m.dash.Refresh(m.ctx)
		m.status = "Refreshing..."
	case "x":
		m.dash.Reset(m.ctx)
		m.status = "Filters reset"
	case "f":
		m.form = formState{open: true}
	case "enter", " ":
		m.toggleSelected()
	case "e":
		return m.export()
	}
	return nil
}

func (m *Model) updateForm(msg tea.KeyMsg) tea.Cmd {
	field := formFields[m.form.field]

	if m.form.editing {
		switch msg.Type {
		case tea.KeyEnter:
			m.form.editing = false
			if err := m.dash.Edit(field, m.form.input); err != nil {
				m.status = err.Error()
			} else {
				m.status = ""
			}
		case tea.KeyEsc:
			m.form.editing = false
		case tea.KeyBackspace:
			_, size := utf8.DecodeLastRuneInString(m.form.input)
			m.form.input = m.form.input[:len(m.form.input)-size]
		case tea.KeyRunes:
			m.form.input += string(msg.Runes)
		}
		return nil
	}

	switch msg.String() {
	case "esc", "f":
		m.form.open = false
	case "up", "k":
		if m.form.field > 0 {
			m.form.field--
		}
	case "down", "j", "tab":
		if m.form.field < len(formFields)-1 {
			m.form.field++
		}
	case "left", "right":
		if isDate(field) {
			return nil
		}
		step := 1
		if msg.String() == "left" {
			step = -1
		}
		next := cycle(m.options(field), draftValue(m.dash.Draft(), field), step)
		if err := m.dash.Edit(field, next); err != nil {
			m.status = err.Error()
		}
	case "enter":
		if isDate(field) {
			m.form.editing = true
			m.form.input = draftValue(m.dash.Draft(), field)
		}
	case "a":
		if _, err := m.dash.Confirm(m.ctx); err != nil {
			m.status = err.Error()
			return nil
		}
		m.form.open = false
		m.status = ""
	case "x":
		m.dash.Reset(m.ctx)
		m.form.open = false
		m.status = "Filters reset"
	}
	return nil
}

func (m *Model) toggleSelected() {
	rows := m.currentRows()
	if m.cursor >= len(rows) {
		return
	}
	key := rows[m.cursor].Key
	if m.table() == dashboard.TableShopTypes {
		m.dash.ToggleShopType(m.ctx, key)
	} else {
		m.dash.ToggleStore(m.ctx, key)
	}
	m.cursor = 0
}

func (m *Model) export() tea.Cmd {
	if m.store == nil {
		m.status = "Export is not configured"
		return nil
	}
	job, ctx, store := m.dash.ExportJob(), m.ctx, m.store
	m.status = "Exporting..."
	return func() tea.Msg {
		paths, err := job.Run(ctx, store)
		if err != nil {
			log.Error().Err(err).Msg("export failed")
		}
		return exportedMsg{paths: paths, err: err}
	}
}

func (m *Model) currentRows() []dashboard.TableRow {
	sc := m.dash.Screen()
	switch m.table() {
	case dashboard.TableStores:
		return sc.Stores.Rows
	case dashboard.TableShopTypes:
		return sc.ShopTypes.Rows
	case dashboard.TableChannels:
		return sc.Channels.Rows
	default:
		return sc.MonthOnMonth.Rows
	}
}

func (m *Model) currentPage() pagination.Page {
	sc := m.dash.Screen()
	switch m.table() {
	case dashboard.TableStores:
		return sc.Stores.Page
	case dashboard.TableShopTypes:
		return sc.ShopTypes.Page
	case dashboard.TableChannels:
		return sc.Channels.Page
	default:
		return sc.MonthOnMonth.Page
	}
}

func (m *Model) clampCursor() {
	if n := len(m.currentRows()); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
}

func (m *Model) options(field filters.Field) []string {
	form := m.dash.Screen().Form
	switch field {
	case filters.FieldStore:
		return form.Stores
	case filters.FieldShopType:
		return form.ShopTypes
	default:
		return form.TranTypes
	}
}

func isDate(f filters.Field) bool {
	return f == filters.FieldFromDate || f == filters.FieldToDate
}

// cycle moves through "" (all) followed by options.
func cycle(options []string, current string, step int) string {
	values := append([]string{""}, options...)
	idx := 0
	for i, v := range values {
		if v == current {
			idx = i
			break
		}
	}
	idx = (idx + step + len(values)) % len(values)
	return values[idx]
}

func nextPageSize(current int) int {
	for i, s := range pagination.PageSizes {
		if s == current {
			return pagination.PageSizes[(i+1)%len(pagination.PageSizes)]
		}
	}
	return pagination.PageSizes[0]
}
