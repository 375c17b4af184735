package records

import (
	"context"
	"sync"
	"time"

	"github.com/ridoystarlord/invctl/events"
	"github.com/ridoystarlord/invctl/schema"
	"go.uber.org/zap"
)

// DefaultDebounce is the quiet period applied to search input.
const DefaultDebounce = 300 * time.Millisecond

// View holds the state of one record table. Only the view writes it; other
// components observe it through the bus or Snapshot.
type View struct {
	ctx      context.Context
	ctrl     *Controller
	bus      *events.Bus
	debounce *Debouncer
	logger   *zap.Logger

	// OnResult runs after a result has been applied.
	OnResult func(ctx context.Context, res Result)

	mu      sync.Mutex
	params  Params
	columns schema.ColumnSet
	result  *Result
	err     error
}

type ViewConfig struct {
	Controller *Controller
	Bus        *events.Bus
	Logger     *zap.Logger
	Debounce   time.Duration
}

// NewView creates a view bound to ctx; cancelling ctx stops all pending work.
func NewView(ctx context.Context, cfg ViewConfig, params Params, columns schema.ColumnSet) *View {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &View{
		ctx:      ctx,
		ctrl:     cfg.Controller,
		bus:      cfg.Bus,
		debounce: NewDebouncer(cfg.Debounce),
		logger:   cfg.Logger,
		params:   params,
		columns:  columns.Clone(),
	}
}

// Snapshot returns the current parameters and last applied result.
func (v *View) Snapshot() (Params, *Result, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.params, v.result, v.err
}

func (v *View) Columns() schema.ColumnSet {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.columns.Clone()
}

// SetColumns replaces the column set used to derive search and sort keys.
func (v *View) SetColumns(columns schema.ColumnSet) {
	v.mu.Lock()
	v.columns = columns.Clone()
	v.mu.Unlock()
}

// SetSearch schedules a debounced refresh for text.
func (v *View) SetSearch(text string) {
	v.debounce.Trigger(func() {
		v.mu.Lock()
		v.params.Search = text
		v.mu.Unlock()
		if err := v.Refresh(v.ctx); err != nil {
			v.logger.Warn("search refresh failed", zap.String("search", text), zap.Error(err))
		}
	})
}

// SetSort changes the ordering and refreshes immediately.
func (v *View) SetSort(column string, ascending bool) error {
	v.mu.Lock()
	v.params.SortBy = column
	v.params.Ascending = ascending
	v.mu.Unlock()
	return v.Refresh(v.ctx)
}

// SetLocation switches the view to another location and its columns.
func (v *View) SetLocation(id string, columns schema.ColumnSet) error {
	v.debounce.Stop()
	v.mu.Lock()
	v.params = Params{LocationID: id}
	v.columns = columns.Clone()
	v.result = nil
	v.err = nil
	v.mu.Unlock()
	return v.Refresh(v.ctx)
}

// Refresh re-runs the current query. Superseded answers are dropped.
func (v *View) Refresh(ctx context.Context) error {
	v.mu.Lock()
	params := v.params
	columns := v.columns.Clone()
	v.mu.Unlock()

	res, err := v.ctrl.Load(ctx, params, columns)
	if err != nil {
		v.mu.Lock()
		stale := v.params != params
		if !stale {
			v.err = err
		}
		v.mu.Unlock()
		if stale {
			return nil
		}
		events.Publish(v.bus, events.LoadFailed{LocationID: params.LocationID, Err: err})
		return err
	}
	if res == nil {
		return nil
	}

	v.mu.Lock()
	if v.params != res.Params {
		v.mu.Unlock()
		return nil
	}
	v.result = res
	v.err = nil
	v.mu.Unlock()

	events.Publish(v.bus, events.RecordsLoaded{
		LocationID: res.Params.LocationID,
		Search:     res.Params.Search,
		Records:    res.Records,
		Total:      res.Total,
	})
	if v.OnResult != nil {
		v.OnResult(ctx, *res)
	}
	return nil
}

// Select marks record as the active row.
func (v *View) Select(record schema.Record) {
	v.mu.Lock()
	id := v.params.LocationID
	v.mu.Unlock()
	events.Publish(v.bus, events.ItemSelected{LocationID: id, Record: record})
}

// Close drops pending searches and aborts the in-flight request.
func (v *View) Close() {
	v.debounce.Stop()
	v.ctrl.Cancel()
}
