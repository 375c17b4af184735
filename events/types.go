package events

import (
	"time"

	"github.com/ridoystarlord/invctl/schema"
)

// ItemSelected is published when a record becomes the active row.
type ItemSelected struct {
	LocationID string
	Record     schema.Record
}

// ColumnAttributeChanged is published for every attribute toggle.
type ColumnAttributeChanged struct {
	LocationID string
	Column     string
	Attribute  schema.Attribute
	On         bool
}

// ColumnsChanged carries the column set after any editor mutation.
type ColumnsChanged struct {
	LocationID string
	Columns    schema.ColumnSet
}

type RecordsLoaded struct {
	LocationID string
	Search     string
	Records    []schema.Record
	Total      *int
}

type LoadFailed struct {
	LocationID string
	Err        error
}

// ImportProgress reports one finished chunk of a bulk import.
type ImportProgress struct {
	LocationID string
	Chunk      int
	Chunks     int
	Rows       int
	Failed     bool
	Elapsed    time.Duration
	ETA        time.Duration
}
