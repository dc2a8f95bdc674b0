// Package orchestrator fetches the dashboard data for the applied filters.
// Every change of filters starts a new generation; results from older
// generations are dropped when they arrive.
package orchestrator

import (
	"context"
	"sync"
	"time"

	"github.com/Shivarajkushals/Dashboard/internal/domain"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const DefaultRequestTimeout = 15 * time.Second

// SalesAPI is the remote summary service.
type SalesAPI interface {
	StoreSummary(ctx context.Context, f domain.FilterSet) ([]domain.SummaryRow, error)
	ShopTypeSummary(ctx context.Context, f domain.FilterSet) ([]domain.SummaryRow, error)
	MonthOnMonth(ctx context.Context, f domain.FilterSet) (*domain.MonthOnMonthReport, error)
	StoreList(ctx context.Context) ([]domain.StoreOption, error)
	TranTypeList(ctx context.Context) ([]domain.TranTypeOption, error)
	ShopTypeList(ctx context.Context) ([]domain.ShopTypeOption, error)
}

type Options struct {
	// Notify receives a snapshot after every state change. It runs on the
	// fetching goroutine and must not block for long.
	Notify func(State)
	// RequestTimeout bounds each request. Defaults to DefaultRequestTimeout.
	RequestTimeout time.Duration
	Now            func() time.Time
}

type Orchestrator struct {
	api  SalesAPI
	opts Options

	mu       sync.Mutex
	state    State
	started  bool
	lastKey  string
	cancel   context.CancelFunc
	refsDone chan struct{}
}

func New(api SalesAPI, opts Options) *Orchestrator {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = DefaultRequestTimeout
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Orchestrator{
		api:   api,
		opts:  opts,
		state: State{Errors: make(map[Section]error)},
	}
}

// Snapshot returns a copy of the current state.
func (o *Orchestrator) Snapshot() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state.clone()
}

// Apply fetches the three summaries for f unless f equals the filters of the
// latest generation. The returned channel closes once that generation has
// settled.
func (o *Orchestrator) Apply(ctx context.Context, f domain.FilterSet) <-chan struct{} {
	o.mu.Lock()
	if o.started && f.Key() == o.lastKey {
		o.mu.Unlock()
		return closedChan()
	}
	o.mu.Unlock()
	return o.start(ctx, f)
}

// Refresh refetches the current filters.
func (o *Orchestrator) Refresh(ctx context.Context) <-chan struct{} {
	o.mu.Lock()
	if !o.started {
		o.mu.Unlock()
		return closedChan()
	}
	f := o.state.Filters
	o.mu.Unlock()
	return o.start(ctx, f)
}

// Close cancels any in-flight generation.
func (o *Orchestrator) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.cancel != nil {
		o.cancel()
		o.cancel = nil
	}
}

func (o *Orchestrator) start(ctx context.Context, f domain.FilterSet) <-chan struct{} {
	o.mu.Lock()
	if o.cancel != nil {
		o.cancel()
	}
	genCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel
	o.started = true
	o.lastKey = f.Key()
	o.state.Generation++
	gen := o.state.Generation
	o.state.Filters = f
	o.state.Loading = true
	snap := o.bumpLocked()
	o.mu.Unlock()

	log.Debug().Uint64("generation", gen).Str("filters", f.Key()).Msg("orchestrator: fetch started")
	o.notify(snap)

	done := make(chan struct{})
	go o.run(genCtx, cancel, gen, f, done)
	return done
}

func (o *Orchestrator) run(ctx context.Context, cancel context.CancelFunc, gen uint64, f domain.FilterSet, done chan struct{}) {
	defer close(done)
	defer cancel()

	// Each request records its own outcome and returns nil so a failure
	// never cancels its siblings.
	var g errgroup.Group
	g.Go(func() error {
		rows, err := withTimeout(ctx, o.opts.RequestTimeout, func(c context.Context) ([]domain.SummaryRow, error) {
			return o.api.StoreSummary(c, f)
		})
		o.publish(gen, SectionStores, err, func(s *State) { s.Stores = rows })
		return nil
	})
	g.Go(func() error {
		rows, err := withTimeout(ctx, o.opts.RequestTimeout, func(c context.Context) ([]domain.SummaryRow, error) {
			return o.api.ShopTypeSummary(c, f)
		})
		o.publish(gen, SectionShopTypes, err, func(s *State) { s.ShopTypes = rows })
		return nil
	})
	g.Go(func() error {
		report, err := withTimeout(ctx, o.opts.RequestTimeout, func(c context.Context) (*domain.MonthOnMonthReport, error) {
			return o.api.MonthOnMonth(c, f)
		})
		o.publish(gen, SectionMonthOnMonth, err, func(s *State) { s.MonthOnMonth = report })
		return nil
	})
	_ = g.Wait()

	o.mu.Lock()
	if gen != o.state.Generation {
		o.mu.Unlock()
		log.Debug().Uint64("generation", gen).Msg("orchestrator: superseded generation settled")
		return
	}
	o.state.Loading = false
	o.state.UpdatedAt = o.opts.Now()
	snap := o.bumpLocked()
	o.mu.Unlock()

	log.Debug().Uint64("generation", gen).Msg("orchestrator: fetch settled")
	o.notify(snap)
}

func (o *Orchestrator) publish(gen uint64, section Section, err error, apply func(*State)) {
	o.mu.Lock()
	if gen != o.state.Generation {
		o.mu.Unlock()
		log.Debug().Uint64("generation", gen).Str("section", string(section)).Msg("orchestrator: stale response dropped")
		return
	}
	o.recordLocked(section, err, apply)
	snap := o.bumpLocked()
	o.mu.Unlock()
	o.notify(snap)
}

// LoadReferences fetches the store, shop-type and transaction-type lists.
// Only the first call issues requests; later calls return its channel.
func (o *Orchestrator) LoadReferences(ctx context.Context) <-chan struct{} {
	o.mu.Lock()
	if o.refsDone != nil {
		done := o.refsDone
		o.mu.Unlock()
		return done
	}
	done := make(chan struct{})
	o.refsDone = done
	o.mu.Unlock()

	go func() {
		defer close(done)

		var g errgroup.Group
		g.Go(func() error {
			out, err := withTimeout(ctx, o.opts.RequestTimeout, o.api.StoreList)
			o.publishReference(SectionStoreList, err, func(s *State) { s.StoreOptions = out })
			return nil
		})
		g.Go(func() error {
			out, err := withTimeout(ctx, o.opts.RequestTimeout, o.api.ShopTypeList)
			o.publishReference(SectionShopTypeList, err, func(s *State) { s.ShopTypeOptions = out })
			return nil
		})
		g.Go(func() error {
			out, err := withTimeout(ctx, o.opts.RequestTimeout, o.api.TranTypeList)
			o.publishReference(SectionTranTypeList, err, func(s *State) { s.TranTypeOptions = out })
			return nil
		})
		_ = g.Wait()

		o.mu.Lock()
		o.state.ReferencesLoaded = true
		snap := o.bumpLocked()
		o.mu.Unlock()
		o.notify(snap)
	}()
	return done
}

func (o *Orchestrator) publishReference(section Section, err error, apply func(*State)) {
	o.mu.Lock()
	o.recordLocked(section, err, apply)
	snap := o.bumpLocked()
	o.mu.Unlock()
	o.notify(snap)
}

func (o *Orchestrator) recordLocked(section Section, err error, apply func(*State)) {
	if err != nil {
		log.Warn().Err(err).Str("section", string(section)).Msg("orchestrator: fetch failed, keeping previous data")
		o.state.Errors[section] = err
		return
	}
	apply(&o.state)
	delete(o.state.Errors, section)
}

func (o *Orchestrator) bumpLocked() State {
	o.state.Version++
	return o.state.clone()
}

func (o *Orchestrator) notify(s State) {
	if o.opts.Notify != nil {
		o.opts.Notify(s)
	}
}

func withTimeout[T any](ctx context.Context, d time.Duration, call func(context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()
	return call(ctx)
}

func closedChan() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
