package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSet() ColumnSet {
	return ColumnSet{
		{Name: "upc", Visible: true, Attributes: []Attribute{Primary, Search}},
		{Name: "qty", Visible: true, Attributes: []Attribute{Quantity}},
		{Name: "price", Visible: true, Attributes: []Attribute{Price}},
		{Name: "desc", Visible: true, Attributes: []Attribute{Search, Description}},
	}
}

func TestEnforceSingleSelectionKeepsFirstHolder(t *testing.T) {
	set := ColumnSet{
		{Name: "a", Attributes: []Attribute{Primary, Price}},
		{Name: "b", Attributes: []Attribute{Primary, Price, Search}},
		{Name: "c", Attributes: []Attribute{Department}},
		{Name: "d", Attributes: []Attribute{Department, Readonly}},
	}

	out := EnforceSingleSelection(set)

	assert.Equal(t, []Attribute{Primary, Price}, out[0].Attributes)
	assert.Equal(t, []Attribute{Price, Search}, out[1].Attributes)
	assert.Equal(t, []Attribute{Department}, out[2].Attributes)
	assert.Equal(t, []Attribute{Readonly}, out[3].Attributes)

	// input untouched
	assert.Equal(t, []Attribute{Primary, Price, Search}, set[1].Attributes)
}

func TestEnforceSingleSelectionInvariant(t *testing.T) {
	set := ColumnSet{
		{Name: "a", Attributes: []Attribute{Primary, Quantity, Description, Department, MardensPrice, Category}},
		{Name: "b", Attributes: []Attribute{Primary, Quantity, Description, Department, MardensPrice, Category}},
		{Name: "c", Attributes: []Attribute{Category, Search, Price, Readonly}},
	}

	out := EnforceSingleSelection(set)
	for _, a := range Attributes {
		if IsSingleSelection(a) {
			assert.LessOrEqual(t, len(out.Holders(a)), 1, "attribute %s", a)
		}
	}
	assert.Len(t, out.Holders(Search), 1)
	assert.Len(t, out.Holders(Price), 1)
}

func TestEnforceSingleSelectionIdempotent(t *testing.T) {
	set := ColumnSet{
		{Name: "a", Attributes: []Attribute{Readonly, Primary, Primary}},
		{Name: "b", Attributes: []Attribute{Primary, MardensPrice}},
		{Name: "c", Attributes: []Attribute{MardensPrice, Search}},
	}
	once := EnforceSingleSelection(set)
	assert.Equal(t, once, EnforceSingleSelection(once))
}

func TestToggleOnEvictsPreviousHolder(t *testing.T) {
	set := sampleSet()

	out := ToggleAttribute(set, "desc", "primary", true)

	assert.Equal(t, []Attribute{Search}, out[0].Attributes, "previous holder keeps its other tags")
	assert.True(t, out[3].Has(Primary))
	assert.True(t, out[3].Has(Description))
	assert.Equal(t, []string{"desc"}, out.Holders(Primary))
}

func TestToggleOffOnlyTouchesNamedColumn(t *testing.T) {
	set := sampleSet()

	out := ToggleAttribute(set, "upc", "primary", false)

	assert.False(t, out[0].Has(Primary))
	assert.Empty(t, out.Holders(Primary))
	assert.Equal(t, set[1:], out[1:])
}

func TestToggleMultiSelectionDoesNotEvict(t *testing.T) {
	out := ToggleAttribute(sampleSet(), "price", "search", true)
	assert.Equal(t, []string{"upc", "price", "desc"}, out.SearchColumns())
}

func TestToggleIgnoresUnknownInput(t *testing.T) {
	set := sampleSet()
	assert.Equal(t, set, ToggleAttribute(set, "upc", "weight", true))
	assert.Equal(t, set, ToggleAttribute(set, "nope", "primary", true))
}

func TestParseAttribute(t *testing.T) {
	a, ok := ParseAttribute(" MardensPrice ")
	require.True(t, ok)
	assert.Equal(t, MardensPrice, a)

	_, ok = ParseAttribute("weight")
	assert.False(t, ok)

	assert.Equal(t, []Attribute{Primary, Search, Readonly}, ParseAttributes([]string{"readonly", "search", "primary", "bogus", "search"}))
}

func TestColumnSetHelpers(t *testing.T) {
	set := sampleSet()
	set[2].Visible = false

	assert.Equal(t, "upc", set.PrimaryKey())
	assert.Equal(t, "id", ColumnSet{{Name: "x"}}.PrimaryKey())
	assert.Equal(t, []string{"upc", "qty", "desc"}, set.Visible().Names())
	assert.Equal(t, 3, set.Index("desc"))
	assert.Equal(t, -1, set.Index("missing"))

	clone := set.Clone()
	clone[0].Attributes[0] = Category
	assert.Equal(t, Primary, set[0].Attributes[0])
}
