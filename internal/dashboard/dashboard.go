// Package dashboard composes filter state, fetching and derived metrics into
// render-ready screens.
package dashboard

import (
	"context"
	"time"

	"github.com/Shivarajkushals/Dashboard/internal/domain"
	"github.com/Shivarajkushals/Dashboard/internal/filters"
	"github.com/Shivarajkushals/Dashboard/internal/momview"
	"github.com/Shivarajkushals/Dashboard/internal/orchestrator"
	"github.com/Shivarajkushals/Dashboard/pkg/pagination"
	"github.com/rs/zerolog/log"
)

// Table identifies a paginated section.
type Table string

const (
	TableStores       Table = "stores"
	TableShopTypes    Table = "shop_types"
	TableChannels     Table = "channels"
	TableMonthOnMonth Table = "month_on_month"
)

// Tables lists the paginated sections in screen order.
var Tables = []Table{TableStores, TableShopTypes, TableChannels, TableMonthOnMonth}

type Options struct {
	Now            func() time.Time
	PageSize       int
	RequestTimeout time.Duration
	// OnChange is called from fetch goroutines whenever new data arrives.
	OnChange func(orchestrator.State)
}

// Dashboard is driven by a single event loop: its methods are not safe for
// concurrent use, but fetch results may arrive on other goroutines through
// OnChange at any time.
type Dashboard struct {
	filters *filters.State
	orch    *orchestrator.Orchestrator
	pagers  map[Table]*pagination.Pager
	momMode momview.Mode
	now     func() time.Time
}

func New(api orchestrator.SalesAPI, opts Options) *Dashboard {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	pagers := make(map[Table]*pagination.Pager, len(Tables))
	for _, t := range Tables {
		pagers[t] = pagination.NewPager(opts.PageSize)
	}
	return &Dashboard{
		filters: filters.New(opts.Now()),
		orch: orchestrator.New(api, orchestrator.Options{
			Notify:         opts.OnChange,
			RequestTimeout: opts.RequestTimeout,
			Now:            opts.Now,
		}),
		pagers:  pagers,
		momMode: momview.ModeSales,
		now:     opts.Now,
	}
}

// Start loads the reference lists and the summaries for the default filters.
// The returned channel closes when both have settled.
func (d *Dashboard) Start(ctx context.Context) <-chan struct{} {
	refs := d.orch.LoadReferences(ctx)
	fetch := d.apply(ctx, d.filters.Applied())
	done := make(chan struct{})
	go func() {
		defer close(done)
		<-refs
		<-fetch
	}()
	return done
}

// Close cancels in-flight requests.
func (d *Dashboard) Close() { d.orch.Close() }

// State exposes the latest fetched data.
func (d *Dashboard) State() orchestrator.State { return d.orch.Snapshot() }

func (d *Dashboard) Applied() domain.FilterSet { return d.filters.Applied() }
func (d *Dashboard) Draft() domain.FilterSet   { return d.filters.Draft() }

// Edit changes a pending filter without fetching.
func (d *Dashboard) Edit(field filters.Field, value string) error {
	return d.filters.Edit(field, value)
}

// Confirm applies the pending filters.
func (d *Dashboard) Confirm(ctx context.Context) (<-chan struct{}, error) {
	applied, err := d.filters.Confirm()
	if err != nil {
		return nil, err
	}
	return d.apply(ctx, applied), nil
}

// Reset clears the categorical filters and keeps the date range.
func (d *Dashboard) Reset(ctx context.Context) <-chan struct{} {
	return d.apply(ctx, d.filters.Reset())
}

// ToggleStore selects or deselects a store from a chart bar or table row.
func (d *Dashboard) ToggleStore(ctx context.Context, store string) <-chan struct{} {
	return d.toggle(ctx, filters.FieldStore, store)
}

// ToggleShopType selects or deselects a shop type from its table or chart.
func (d *Dashboard) ToggleShopType(ctx context.Context, shopType string) <-chan struct{} {
	return d.toggle(ctx, filters.FieldShopType, shopType)
}

func (d *Dashboard) ToggleTranType(ctx context.Context, tranType string) <-chan struct{} {
	return d.toggle(ctx, filters.FieldTranType, tranType)
}

// Refresh refetches the applied filters.
func (d *Dashboard) Refresh(ctx context.Context) <-chan struct{} {
	return d.orch.Refresh(ctx)
}

func (d *Dashboard) NextPage(t Table) { d.pager(t).Next() }
func (d *Dashboard) PrevPage(t Table) { d.pager(t).Prev() }

func (d *Dashboard) SetPage(t Table, n int) { d.pager(t).SetPage(n) }

// SetPageSize changes a table's page size and returns it to page 1.
func (d *Dashboard) SetPageSize(t Table, n int) { d.pager(t).SetPageSize(n) }

// ToggleMonthOnMonthMode flips the matrix between sales and quantity.
func (d *Dashboard) ToggleMonthOnMonthMode() { d.momMode = d.momMode.Toggle() }

func (d *Dashboard) MonthOnMonthMode() momview.Mode { return d.momMode }

func (d *Dashboard) toggle(ctx context.Context, field filters.Field, value string) <-chan struct{} {
	applied, err := d.filters.Toggle(field, value)
	if err != nil {
		// Only categorical fields are passed in; reaching this is a bug.
		log.Error().Err(err).Str("field", string(field)).Msg("dashboard: toggle rejected")
		return closed()
	}
	return d.apply(ctx, applied)
}

func (d *Dashboard) apply(ctx context.Context, f domain.FilterSet) <-chan struct{} {
	if d.orch.Snapshot().Filters != f {
		for _, p := range d.pagers {
			p.Reset()
		}
	}
	return d.orch.Apply(ctx, f)
}

func (d *Dashboard) pager(t Table) *pagination.Pager {
	p, ok := d.pagers[t]
	if !ok {
		p = pagination.NewPager(pagination.DefaultPageSize)
		d.pagers[t] = p
	}
	return p
}

func closed() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
