package records

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ridoystarlord/invctl/api"
	"github.com/ridoystarlord/invctl/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	mu      sync.Mutex
	queries []api.Query
	respond func(ctx context.Context, q api.Query) (*api.Page, error)
}

func (f *fakeFetcher) ListRecords(ctx context.Context, id string, q api.Query) (*api.Page, error) {
	f.mu.Lock()
	f.queries = append(f.queries, q)
	respond := f.respond
	f.mu.Unlock()
	if respond == nil {
		return pageOf(q.Search), nil
	}
	return respond(ctx, q)
}

func (f *fakeFetcher) Queries() []api.Query {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]api.Query(nil), f.queries...)
}

func pageOf(upcs ...string) *api.Page {
	page := &api.Page{}
	for _, u := range upcs {
		page.Data = append(page.Data, schema.Record{Values: map[string]string{"upc": u}})
	}
	return page
}

var testColumns = schema.ColumnSet{
	{Name: "upc", Visible: true, Attributes: []schema.Attribute{schema.Primary, schema.Search}},
	{Name: "qty", Visible: true, Attributes: []schema.Attribute{schema.Quantity}},
	{Name: "price", Visible: true, Attributes: []schema.Attribute{schema.Price}},
}

func TestBuildQuery(t *testing.T) {
	q := BuildQuery(Params{LocationID: "D"}, testColumns)
	assert.Equal(t, api.Query{Limit: PageSize, SortBy: "upc"}, q)

	q = BuildQuery(Params{LocationID: "D", Search: "123", SortBy: "price", Ascending: true}, testColumns)
	assert.Equal(t, "price", q.SortBy)
	assert.True(t, q.Ascending)
	assert.Equal(t, []string{"upc"}, q.Columns)
	assert.Equal(t, "123", q.Search)
}

func TestBuildQueryWithoutSearchColumns(t *testing.T) {
	q := BuildQuery(Params{Search: "x"}, schema.ColumnSet{{Name: "a"}})
	assert.Equal(t, "id", q.SortBy)
	assert.NotNil(t, q.Columns)
	assert.Empty(t, q.Columns)
	assert.Equal(t, "", q.Values().Get("query_columns"))
}

func TestLoadCancelsSupersededRequest(t *testing.T) {
	started := make(chan struct{})
	f := &fakeFetcher{respond: func(ctx context.Context, q api.Query) (*api.Page, error) {
		if q.Search == "a" {
			close(started)
			<-ctx.Done()
			return nil, ctx.Err()
		}
		return pageOf(q.Search), nil
	}}
	ctrl := NewController(f, nil)

	type outcome struct {
		res *Result
		err error
	}
	first := make(chan outcome, 1)
	go func() {
		res, err := ctrl.Load(context.Background(), Params{LocationID: "D", Search: "a"}, testColumns)
		first <- outcome{res, err}
	}()
	<-started

	res, err := ctrl.Load(context.Background(), Params{LocationID: "D", Search: "b"}, testColumns)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, "b", res.Records[0].Get("upc"))

	stale := <-first
	assert.NoError(t, stale.err)
	assert.Nil(t, stale.res)
}

func TestLoadDropsLateAnswer(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	f := &fakeFetcher{respond: func(ctx context.Context, q api.Query) (*api.Page, error) {
		if q.Search == "a" {
			close(started)
			<-release
			return pageOf("a"), nil
		}
		return pageOf(q.Search), nil
	}}
	ctrl := NewController(f, nil)

	first := make(chan *Result, 1)
	go func() {
		res, _ := ctrl.Load(context.Background(), Params{Search: "a"}, testColumns)
		first <- res
	}()
	<-started

	res, err := ctrl.Load(context.Background(), Params{Search: "b"}, testColumns)
	require.NoError(t, err)
	require.NotNil(t, res)
	close(release)

	assert.Nil(t, <-first)
}

func TestLoadReturnsErrors(t *testing.T) {
	boom := errors.New("boom")
	f := &fakeFetcher{respond: func(context.Context, api.Query) (*api.Page, error) { return nil, boom }}

	res, err := NewController(f, nil).Load(context.Background(), Params{}, testColumns)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, boom)
}

func TestLoadSequenceIncreases(t *testing.T) {
	ctrl := NewController(&fakeFetcher{}, nil)
	a, err := ctrl.Load(context.Background(), Params{}, testColumns)
	require.NoError(t, err)
	b, err := ctrl.Load(context.Background(), Params{}, testColumns)
	require.NoError(t, err)
	assert.Greater(t, b.Seq, a.Seq)
}

func TestDebouncerRunsLastTrigger(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	got := make(chan string, 3)
	for _, s := range []string{"1", "12", "123"} {
		s := s
		d.Trigger(func() { got <- s })
	}

	select {
	case s := <-got:
		assert.Equal(t, "123", s)
	case <-time.After(time.Second):
		t.Fatal("debounced call never ran")
	}
	select {
	case s := <-got:
		t.Fatalf("unexpected extra call %q", s)
	case <-time.After(60 * time.Millisecond):
	}
}

func TestDebouncerStop(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)
	ran := make(chan struct{}, 1)
	d.Trigger(func() { ran <- struct{}{} })
	d.Stop()

	select {
	case <-ran:
		t.Fatal("stopped call ran")
	case <-time.After(50 * time.Millisecond):
	}
}
