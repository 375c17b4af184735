// Package editor owns the column set of one location while it is being
// edited. All changes go through Editor so the attribute rules are enforced
// in one place.
package editor

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/ridoystarlord/invctl/diff"
	"github.com/ridoystarlord/invctl/events"
	"github.com/ridoystarlord/invctl/schema"
	"github.com/ridoystarlord/invctl/validator"
)

// Saver persists the options document of a location.
type Saver interface {
	SaveOptions(ctx context.Context, id string, opts schema.Options) error
}

type Editor struct {
	locationID string
	bus        *events.Bus
	saver      Saver

	mu       sync.Mutex
	options  schema.Options
	original schema.ColumnSet
	columns  schema.ColumnSet
}

// New starts an edit session from the options loaded for locationID.
func New(locationID string, opts schema.Options, bus *events.Bus, saver Saver) *Editor {
	columns := schema.EnforceSingleSelection(opts.Columns)
	return &Editor{
		locationID: locationID,
		bus:        bus,
		saver:      saver,
		options:    opts,
		original:   opts.Columns.Clone(),
		columns:    columns,
	}
}

func (e *Editor) Columns() schema.ColumnSet {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.columns.Clone()
}

// apply runs fn on a private copy, enforces the attribute rules and publishes
// the new set.
func (e *Editor) apply(fn func(schema.ColumnSet) (schema.ColumnSet, error)) error {
	e.mu.Lock()
	next, err := fn(e.columns.Clone())
	if err != nil {
		e.mu.Unlock()
		return err
	}
	e.columns = schema.EnforceSingleSelection(next)
	snapshot := e.columns.Clone()
	e.mu.Unlock()

	events.Publish(e.bus, events.ColumnsChanged{LocationID: e.locationID, Columns: snapshot})
	return nil
}

// ToggleAttribute sets or clears tag on column. Unknown tags are ignored.
func (e *Editor) ToggleAttribute(column, tag string, on bool) error {
	a, known := schema.ParseAttribute(tag)
	err := e.apply(func(cols schema.ColumnSet) (schema.ColumnSet, error) {
		if cols.Index(column) < 0 {
			return nil, fmt.Errorf("column %q not found", column)
		}
		return schema.ToggleAttribute(cols, column, tag, on), nil
	})
	if err != nil || !known {
		return err
	}
	events.Publish(e.bus, events.ColumnAttributeChanged{
		LocationID: e.locationID,
		Column:     column,
		Attribute:  a,
		On:         on,
	})
	return nil
}

// Rename changes the display name; the real name never changes.
func (e *Editor) Rename(column, displayName string) error {
	return e.apply(func(cols schema.ColumnSet) (schema.ColumnSet, error) {
		idx := cols.Index(column)
		if idx < 0 {
			return nil, fmt.Errorf("column %q not found", column)
		}
		cols[idx].DisplayName = strings.TrimSpace(displayName)
		return cols, nil
	})
}

func (e *Editor) SetVisible(column string, visible bool) error {
	return e.apply(func(cols schema.ColumnSet) (schema.ColumnSet, error) {
		idx := cols.Index(column)
		if idx < 0 {
			return nil, fmt.Errorf("column %q not found", column)
		}
		cols[idx].Visible = visible
		return cols, nil
	})
}

// Move places column at position to, clamped to the set bounds.
func (e *Editor) Move(column string, to int) error {
	return e.apply(func(cols schema.ColumnSet) (schema.ColumnSet, error) {
		from := cols.Index(column)
		if from < 0 {
			return nil, fmt.Errorf("column %q not found", column)
		}
		if to < 0 {
			to = 0
		}
		if to >= len(cols) {
			to = len(cols) - 1
		}
		col := cols[from]
		cols = append(cols[:from], cols[from+1:]...)
		cols = append(cols[:to], append(schema.ColumnSet{col}, cols[to:]...)...)
		return cols, nil
	})
}

// Add appends a new column. Attributes it brings in win over older holders.
func (e *Editor) Add(col schema.Column) error {
	return e.apply(func(cols schema.ColumnSet) (schema.ColumnSet, error) {
		col.Name = strings.TrimSpace(col.Name)
		if col.Name == "" {
			return nil, fmt.Errorf("column name cannot be empty")
		}
		if cols.Index(col.Name) >= 0 {
			return nil, fmt.Errorf("column %q already exists", col.Name)
		}
		cols = append(cols, schema.Column{Name: col.Name, DisplayName: col.DisplayName, Visible: col.Visible})
		for _, a := range col.Attributes {
			cols = schema.ToggleAttribute(cols, col.Name, string(a), true)
		}
		return cols, nil
	})
}

func (e *Editor) Remove(column string) error {
	return e.apply(func(cols schema.ColumnSet) (schema.ColumnSet, error) {
		idx := cols.Index(column)
		if idx < 0 {
			return nil, fmt.Errorf("column %q not found", column)
		}
		return append(cols[:idx], cols[idx+1:]...), nil
	})
}

// Replace swaps in a whole column set, e.g. one edited offline.
func (e *Editor) Replace(columns schema.ColumnSet) error {
	return e.apply(func(schema.ColumnSet) (schema.ColumnSet, error) {
		return columns.Clone(), nil
	})
}

// Changes lists what Save would change on the server.
func (e *Editor) Changes() []diff.Operation {
	e.mu.Lock()
	defer e.mu.Unlock()
	return diff.DiffColumns(e.original, e.columns)
}

func (e *Editor) Validate() *validator.ValidationResult {
	return validator.ValidateColumns(e.Columns())
}

// Save validates and persists the column set as part of the options document.
func (e *Editor) Save(ctx context.Context) error {
	result := e.Validate()
	if !result.Valid {
		return fmt.Errorf("column set is invalid: %s", result.Errors[0].Message)
	}

	e.mu.Lock()
	opts := e.options
	opts.Columns = e.columns.Clone()
	e.mu.Unlock()

	if err := e.saver.SaveOptions(ctx, e.locationID, opts); err != nil {
		return err
	}

	e.mu.Lock()
	e.options = opts
	e.original = opts.Columns.Clone()
	e.mu.Unlock()
	return nil
}
