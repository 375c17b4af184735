package diff

import (
	"github.com/ridoystarlord/invctl/schema"
)

type OperationType string

const (
	AddColumn       OperationType = "ADD_COLUMN"
	DropColumn      OperationType = "DROP_COLUMN"
	RenameColumn    OperationType = "RENAME_COLUMN"
	ShowColumn      OperationType = "SHOW_COLUMN"
	HideColumn      OperationType = "HIDE_COLUMN"
	AddAttribute    OperationType = "ADD_ATTRIBUTE"
	RemoveAttribute OperationType = "REMOVE_ATTRIBUTE"
	MoveColumn      OperationType = "MOVE_COLUMN"
)

type Operation struct {
	Type       OperationType
	ColumnName string
	Column     *schema.Column   // for ADD_COLUMN
	OldName    string           // for RENAME_COLUMN (display names)
	NewName    string           // for RENAME_COLUMN
	Attribute  schema.Attribute // for ADD_ATTRIBUTE, REMOVE_ATTRIBUTE
	From       int              // for MOVE_COLUMN
	To         int              // for MOVE_COLUMN
}

// DiffColumns lists the operations turning old into updated.
func DiffColumns(old, updated schema.ColumnSet) []Operation {
	var ops []Operation

	oldMap := map[string]schema.Column{}
	for _, c := range old {
		oldMap[c.Name] = c
	}
	newMap := map[string]schema.Column{}
	for _, c := range updated {
		newMap[c.Name] = c
	}

	for _, col := range updated {
		before, exists := oldMap[col.Name]
		if !exists {
			c := col
			ops = append(ops, Operation{
				Type:       AddColumn,
				ColumnName: col.Name,
				Column:     &c,
			})
			continue
		}

		if before.Label() != col.Label() {
			ops = append(ops, Operation{
				Type:       RenameColumn,
				ColumnName: col.Name,
				OldName:    before.Label(),
				NewName:    col.Label(),
			})
		}

		if before.Visible != col.Visible {
			t := HideColumn
			if col.Visible {
				t = ShowColumn
			}
			ops = append(ops, Operation{Type: t, ColumnName: col.Name})
		}

		for _, a := range col.Attributes {
			if !before.Has(a) {
				ops = append(ops, Operation{Type: AddAttribute, ColumnName: col.Name, Attribute: a})
			}
		}
		for _, a := range before.Attributes {
			if !col.Has(a) {
				ops = append(ops, Operation{Type: RemoveAttribute, ColumnName: col.Name, Attribute: a})
			}
		}
	}

	for _, col := range old {
		if _, exists := newMap[col.Name]; !exists {
			ops = append(ops, Operation{Type: DropColumn, ColumnName: col.Name})
		}
	}

	// Relative order of the columns present on both sides.
	var oldOrder, newOrder []string
	for _, c := range old {
		if _, ok := newMap[c.Name]; ok {
			oldOrder = append(oldOrder, c.Name)
		}
	}
	for _, c := range updated {
		if _, ok := oldMap[c.Name]; ok {
			newOrder = append(newOrder, c.Name)
		}
	}
	for i, name := range newOrder {
		if oldOrder[i] != name {
			ops = append(ops, Operation{
				Type:       MoveColumn,
				ColumnName: name,
				From:       indexOf(oldOrder, name),
				To:         i,
			})
		}
	}

	return ops
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}
