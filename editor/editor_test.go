package editor

import (
	"context"
	"errors"
	"testing"

	"github.com/ridoystarlord/invctl/diff"
	"github.com/ridoystarlord/invctl/events"
	"github.com/ridoystarlord/invctl/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSaver struct {
	saved []schema.Options
	err   error
}

func (f *fakeSaver) SaveOptions(_ context.Context, _ string, opts schema.Options) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, opts)
	return nil
}

func testOptions() schema.Options {
	return schema.Options{
		Columns: schema.ColumnSet{
			{Name: "upc", Visible: true, Attributes: []schema.Attribute{schema.Primary, schema.Search}},
			{Name: "qty", Visible: true, Attributes: []schema.Attribute{schema.Quantity}},
			{Name: "desc", Visible: true},
		},
		PrintForms:   []schema.PrintForm{{ID: "a"}},
		Inventorying: schema.InventoryingOptions{RemoveIfZero: true},
	}
}

func TestToggleAttributePublishes(t *testing.T) {
	bus := events.NewBus()
	var toggles []events.ColumnAttributeChanged
	var changes []events.ColumnsChanged
	events.Subscribe(bus, func(ev events.ColumnAttributeChanged) { toggles = append(toggles, ev) })
	events.Subscribe(bus, func(ev events.ColumnsChanged) { changes = append(changes, ev) })
	ed := New("D", testOptions(), bus, &fakeSaver{})

	require.NoError(t, ed.ToggleAttribute("desc", "primary", true))

	cols := ed.Columns()
	assert.Equal(t, []string{"desc"}, cols.Holders(schema.Primary))
	assert.Equal(t, []schema.Attribute{schema.Search}, cols[0].Attributes)
	require.Len(t, toggles, 1)
	assert.Equal(t, events.ColumnAttributeChanged{LocationID: "D", Column: "desc", Attribute: schema.Primary, On: true}, toggles[0])
	require.Len(t, changes, 1)
	assert.Equal(t, cols, changes[0].Columns)
}

func TestToggleUnknownAttributeIsIgnored(t *testing.T) {
	ed := New("D", testOptions(), nil, &fakeSaver{})
	require.NoError(t, ed.ToggleAttribute("desc", "weight", true))
	assert.Empty(t, ed.Changes())

	assert.Error(t, ed.ToggleAttribute("missing", "primary", true))
}

func TestMutations(t *testing.T) {
	ed := New("D", testOptions(), nil, &fakeSaver{})

	require.NoError(t, ed.Rename("desc", " Description "))
	require.NoError(t, ed.SetVisible("qty", false))
	require.NoError(t, ed.Move("desc", 0))
	require.NoError(t, ed.Add(schema.Column{Name: "sku", Visible: true, Attributes: []schema.Attribute{schema.Primary}}))
	require.NoError(t, ed.Remove("upc"))

	cols := ed.Columns()
	assert.Equal(t, []string{"desc", "qty", "sku"}, cols.Names())
	assert.Equal(t, "Description", cols[0].DisplayName)
	assert.False(t, cols[1].Visible)
	assert.Equal(t, []string{"sku"}, cols.Holders(schema.Primary))

	assert.Error(t, ed.Add(schema.Column{Name: "sku"}))
	assert.Error(t, ed.Add(schema.Column{Name: " "}))
	assert.Error(t, ed.Remove("upc"))
	assert.Error(t, ed.Move("nope", 1))
}

func TestAddTakesAttributeFromHolder(t *testing.T) {
	ed := New("D", testOptions(), nil, &fakeSaver{})
	require.NoError(t, ed.Add(schema.Column{Name: "count", Attributes: []schema.Attribute{schema.Quantity}}))

	cols := ed.Columns()
	assert.Equal(t, []string{"count"}, cols.Holders(schema.Quantity))
	assert.Empty(t, cols[1].Attributes)
}

func TestMoveClamps(t *testing.T) {
	ed := New("D", testOptions(), nil, &fakeSaver{})
	require.NoError(t, ed.Move("upc", 99))
	assert.Equal(t, []string{"qty", "desc", "upc"}, ed.Columns().Names())
}

func TestReplaceEnforcesRules(t *testing.T) {
	ed := New("D", testOptions(), nil, &fakeSaver{})
	require.NoError(t, ed.Replace(schema.ColumnSet{
		{Name: "a", Attributes: []schema.Attribute{schema.Primary}},
		{Name: "b", Attributes: []schema.Attribute{schema.Primary}},
	}))
	assert.Equal(t, []string{"a"}, ed.Columns().Holders(schema.Primary))
}

func TestSaveKeepsOtherOptions(t *testing.T) {
	saver := &fakeSaver{}
	ed := New("D", testOptions(), nil, saver)
	require.NoError(t, ed.SetVisible("desc", false))

	changes := ed.Changes()
	require.Len(t, changes, 1)
	assert.Equal(t, diff.HideColumn, changes[0].Type)

	require.NoError(t, ed.Save(context.Background()))
	require.Len(t, saver.saved, 1)
	assert.False(t, saver.saved[0].Columns[2].Visible)
	assert.Equal(t, []schema.PrintForm{{ID: "a"}}, saver.saved[0].PrintForms)
	assert.True(t, saver.saved[0].Inventorying.RemoveIfZero)
	assert.Empty(t, ed.Changes(), "saved state becomes the new baseline")
}

func TestSaveRejectsInvalidSet(t *testing.T) {
	saver := &fakeSaver{}
	ed := New("D", testOptions(), nil, saver)
	require.NoError(t, ed.Replace(schema.ColumnSet{{Name: "a"}, {Name: "a"}}))

	assert.ErrorContains(t, ed.Save(context.Background()), "invalid")
	assert.Empty(t, saver.saved)
}

func TestSaveError(t *testing.T) {
	boom := errors.New("boom")
	ed := New("D", testOptions(), nil, &fakeSaver{err: boom})
	require.NoError(t, ed.Rename("desc", "Description"))

	assert.ErrorIs(t, ed.Save(context.Background()), boom)
	assert.NotEmpty(t, ed.Changes())
}
