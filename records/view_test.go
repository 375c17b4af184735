package records

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ridoystarlord/invctl/api"
	"github.com/ridoystarlord/invctl/events"
	"github.com/ridoystarlord/invctl/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestView(t *testing.T, f Fetcher, bus *events.Bus) (*View, chan Result) {
	t.Helper()
	view := NewView(context.Background(), ViewConfig{
		Controller: NewController(f, nil),
		Bus:        bus,
		Debounce:   10 * time.Millisecond,
	}, Params{LocationID: "D"}, testColumns)
	t.Cleanup(view.Close)

	results := make(chan Result, 10)
	view.OnResult = func(_ context.Context, res Result) { results <- res }
	return view, results
}

func TestViewDebouncesSearch(t *testing.T) {
	f := &fakeFetcher{}
	bus := events.NewBus()
	loaded := make(chan events.RecordsLoaded, 10)
	events.Subscribe(bus, func(ev events.RecordsLoaded) { loaded <- ev })
	view, results := newTestView(t, f, bus)

	view.SetSearch("1")
	view.SetSearch("12")
	view.SetSearch("123")

	select {
	case res := <-results:
		assert.Equal(t, "123", res.Params.Search)
	case <-time.After(time.Second):
		t.Fatal("no result")
	}
	ev := <-loaded
	assert.Equal(t, "123", ev.Search)
	assert.Len(t, ev.Records, 1)

	queries := f.Queries()
	require.Len(t, queries, 1)
	assert.Equal(t, "123", queries[0].Values().Get("query"))
	assert.Equal(t, "upc", queries[0].Values().Get("query_columns"))

	params, res, err := view.Snapshot()
	assert.NoError(t, err)
	assert.Equal(t, "123", params.Search)
	assert.Equal(t, "123", res.Params.Search)
}

func TestViewSortRefreshesImmediately(t *testing.T) {
	f := &fakeFetcher{}
	view, results := newTestView(t, f, nil)

	require.NoError(t, view.SetSort("price", false))
	res := <-results
	assert.Equal(t, "price", res.Params.SortBy)
	assert.Equal(t, "DESC", f.Queries()[0].Values().Get("sort_order"))
}

func TestViewPublishesFailures(t *testing.T) {
	boom := errors.New("boom")
	f := &fakeFetcher{respond: func(context.Context, api.Query) (*api.Page, error) { return nil, boom }}
	bus := events.NewBus()
	var failed []events.LoadFailed
	events.Subscribe(bus, func(ev events.LoadFailed) { failed = append(failed, ev) })
	view, _ := newTestView(t, f, bus)

	err := view.Refresh(context.Background())
	assert.ErrorIs(t, err, boom)
	require.Len(t, failed, 1)
	assert.Equal(t, "D", failed[0].LocationID)

	_, _, snapErr := view.Snapshot()
	assert.ErrorIs(t, snapErr, boom)
}

func TestViewSetLocationResetsParams(t *testing.T) {
	f := &fakeFetcher{}
	view, results := newTestView(t, f, nil)
	require.NoError(t, view.SetSort("price", true))
	<-results

	cols := schema.ColumnSet{{Name: "sku", Attributes: []schema.Attribute{schema.Primary}}}
	require.NoError(t, view.SetLocation("E", cols))
	res := <-results
	assert.Equal(t, Params{LocationID: "E"}, res.Params)
	assert.Equal(t, "sku", f.Queries()[1].SortBy)
}

func TestViewSelectPublishes(t *testing.T) {
	bus := events.NewBus()
	var got events.ItemSelected
	events.Subscribe(bus, func(ev events.ItemSelected) { got = ev })
	view, _ := newTestView(t, &fakeFetcher{}, bus)

	view.Select(schema.Record{ID: "5"})
	assert.Equal(t, "D", got.LocationID)
	assert.Equal(t, schema.ID("5"), got.Record.ID)
}
