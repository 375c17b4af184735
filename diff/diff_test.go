package diff

import (
	"testing"

	"github.com/ridoystarlord/invctl/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiffColumnsNoChanges(t *testing.T) {
	set := schema.ColumnSet{{Name: "a", Visible: true}, {Name: "b"}}
	assert.Empty(t, DiffColumns(set, set.Clone()))
}

func TestDiffColumns(t *testing.T) {
	old := schema.ColumnSet{
		{Name: "upc", Visible: true, Attributes: []schema.Attribute{schema.Primary}},
		{Name: "qty", Visible: true, Attributes: []schema.Attribute{schema.Quantity}},
		{Name: "gone", Visible: true},
	}
	updated := schema.ColumnSet{
		{Name: "upc", DisplayName: "UPC", Visible: true, Attributes: []schema.Attribute{schema.Search}},
		{Name: "qty", Visible: false, Attributes: []schema.Attribute{schema.Quantity}},
		{Name: "new", Visible: true},
	}

	ops := DiffColumns(old, updated)

	require.Len(t, ops, 6)
	assert.Equal(t, Operation{Type: RenameColumn, ColumnName: "upc", OldName: "upc", NewName: "UPC"}, ops[0])
	assert.Equal(t, Operation{Type: AddAttribute, ColumnName: "upc", Attribute: schema.Search}, ops[1])
	assert.Equal(t, Operation{Type: RemoveAttribute, ColumnName: "upc", Attribute: schema.Primary}, ops[2])
	assert.Equal(t, Operation{Type: HideColumn, ColumnName: "qty"}, ops[3])
	assert.Equal(t, AddColumn, ops[4].Type)
	assert.Equal(t, "new", ops[4].Column.Name)
	assert.Equal(t, Operation{Type: DropColumn, ColumnName: "gone"}, ops[5])
}

func TestDiffColumnsMove(t *testing.T) {
	old := schema.ColumnSet{{Name: "a"}, {Name: "b"}, {Name: "c"}}
	updated := schema.ColumnSet{{Name: "c"}, {Name: "a"}, {Name: "b"}}

	ops := DiffColumns(old, updated)

	require.Len(t, ops, 3)
	assert.Equal(t, Operation{Type: MoveColumn, ColumnName: "c", From: 2, To: 0}, ops[0])
	for _, op := range ops {
		assert.Equal(t, MoveColumn, op.Type)
	}
}
