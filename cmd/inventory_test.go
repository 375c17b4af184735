package cmd

import (
	"context"
	"errors"
	"testing"

	"github.com/ridoystarlord/invctl/api"
	"github.com/ridoystarlord/invctl/records"
	"github.com/ridoystarlord/invctl/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type listFetcher struct {
	queries []api.Query
	err     error
}

func (f *listFetcher) ListRecords(_ context.Context, _ string, q api.Query) (*api.Page, error) {
	f.queries = append(f.queries, q)
	if f.err != nil {
		return nil, f.err
	}
	return &api.Page{Data: []schema.Record{{ID: "1", Values: map[string]string{"upc": q.Search, "qty": "15"}}}}, nil
}

var inventoryColumns = schema.ColumnSet{
	{Name: "upc", Visible: true, Attributes: []schema.Attribute{schema.Primary, schema.Search}},
	{Name: "qty", Visible: true, Attributes: []schema.Attribute{schema.Quantity}},
}

func TestRelisterSearchesLastKey(t *testing.T) {
	f := &listFetcher{}
	key := "123"
	var shown []records.Result
	refresh := relister(records.NewController(f, nil), "D", inventoryColumns,
		func() string { return key },
		func(res records.Result) { shown = append(shown, res) })

	require.NoError(t, refresh(context.Background()))
	key = "456"
	require.NoError(t, refresh(context.Background()))

	require.Len(t, f.queries, 2)
	assert.Equal(t, "123", f.queries[0].Search)
	assert.Equal(t, "456", f.queries[1].Search)
	assert.Equal(t, []string{"upc"}, f.queries[1].Columns)
	require.Len(t, shown, 2)
	assert.Equal(t, "456", shown[1].Records[0].Get("upc"))
}

func TestRelisterReturnsErrors(t *testing.T) {
	f := &listFetcher{err: errors.New("offline")}
	called := false
	refresh := relister(records.NewController(f, nil), "D", inventoryColumns,
		func() string { return "123" },
		func(records.Result) { called = true })

	assert.EqualError(t, refresh(context.Background()), "offline")
	assert.False(t, called)
}
