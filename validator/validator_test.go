package validator

import (
	"testing"

	"github.com/ridoystarlord/invctl/schema"
	"github.com/stretchr/testify/assert"
)

func types(findings []ValidationError) []string {
	out := make([]string, len(findings))
	for i, f := range findings {
		out[i] = f.Type
	}
	return out
}

func TestValidateColumnsValid(t *testing.T) {
	result := ValidateColumns(schema.ColumnSet{
		{Name: "upc", Visible: true, Attributes: []schema.Attribute{schema.Primary, schema.Search}},
		{Name: "qty", Visible: true, Attributes: []schema.Attribute{schema.Quantity}},
	})

	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)
	assert.Equal(t, []string{"column_count"}, types(result.Info))
}

func TestValidateColumnsErrors(t *testing.T) {
	result := ValidateColumns(schema.ColumnSet{
		{Name: "upc", Attributes: []schema.Attribute{schema.Primary}},
		{Name: "upc", Attributes: []schema.Attribute{schema.Primary}},
		{Name: " "},
	})

	assert.False(t, result.Valid)
	assert.ElementsMatch(t, []string{"duplicate_column", "column_name", "single_selection"}, types(result.Errors))
	assert.Equal(t, "upc,upc", result.Errors[2].Column)
}

func TestValidateColumnsWarnings(t *testing.T) {
	result := ValidateColumns(schema.ColumnSet{
		{Name: "date"},
		{Name: "sku", Attributes: []schema.Attribute{schema.Primary, schema.Readonly}},
	})

	assert.True(t, result.Valid)
	assert.ElementsMatch(t, []string{"bookkeeping_column", "no_quantity", "no_search"}, types(result.Warnings))
	assert.Contains(t, types(result.Info), "readonly_primary")
}
