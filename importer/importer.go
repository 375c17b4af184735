// Package importer uploads CSV files into a location in fixed-size chunks.
package importer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ridoystarlord/invctl/events"
	"github.com/ridoystarlord/invctl/loader"
	"github.com/ridoystarlord/invctl/schema"
	"go.uber.org/zap"
)

// ChunkSize is the number of records sent per request.
const ChunkSize = 100

// Backend is the part of the API an import needs.
type Backend interface {
	GetOptions(ctx context.Context, id string) (*schema.Options, error)
	SaveOptions(ctx context.Context, id string, opts schema.Options) error
	SaveRecords(ctx context.Context, id string, records []schema.Record) error
}

type Config struct {
	LocationID string
	// Mappings binds headers to columns. Headers without a mapping map onto
	// a column of the same name.
	Mappings  []loader.Mapping
	ChunkSize int
	Backend   Backend
	Bus       *events.Bus
	Logger    *zap.Logger
	Now       func() time.Time
}

// Summary reports a finished import.
type Summary struct {
	Rows         int
	Chunks       int
	FailedChunks int
	Uploaded     int
	NewColumns   []string
	Elapsed      time.Duration
}

// Resolve pairs every header with its mapping.
func Resolve(headers []string, mappings []loader.Mapping) ([]loader.Mapping, error) {
	byHeader := make(map[string]loader.Mapping, len(mappings))
	for _, m := range mappings {
		byHeader[m.Header] = m
	}

	out := make([]loader.Mapping, len(headers))
	used := map[string]string{}
	for i, h := range headers {
		if h == "" {
			return nil, fmt.Errorf("column %d has an empty header", i+1)
		}
		m, ok := byHeader[h]
		if !ok {
			m = loader.Mapping{Header: h, Column: h}
		}
		if prev, dup := used[m.Column]; dup {
			return nil, fmt.Errorf("headers %q and %q both map to column %q", prev, h, m.Column)
		}
		used[m.Column] = h
		out[i] = m
	}

	for _, m := range mappings {
		if _, ok := used[m.Column]; !ok {
			return nil, fmt.Errorf("header %q is not in the file", m.Header)
		}
	}
	return out, nil
}

// MergeColumns appends the columns the mappings introduce and enforces the
// single-selection rules on the result. Existing columns keep their tags.
func MergeColumns(existing schema.ColumnSet, mappings []loader.Mapping) (schema.ColumnSet, []string) {
	out := existing.Clone()
	var added []string
	for _, m := range mappings {
		if schema.IsBookkeeping(m.Column) || out.Index(m.Column) >= 0 {
			continue
		}
		out = append(out, m.Definition())
		added = append(added, m.Column)
	}
	return schema.EnforceSingleSelection(out), added
}

// BuildRecords turns table rows into new records. Bookkeeping columns are
// never sent.
func BuildRecords(table *Table, mappings []loader.Mapping) []schema.Record {
	out := make([]schema.Record, 0, len(table.Rows))
	for _, row := range table.Rows {
		rec := schema.Record{Values: make(map[string]string, len(mappings))}
		for i, m := range mappings {
			if schema.IsBookkeeping(m.Column) || i >= len(row) {
				continue
			}
			rec.Values[m.Column] = strings.TrimSpace(row[i])
		}
		out = append(out, rec)
	}
	return out
}

// Chunk splits records into consecutive batches of at most size.
func Chunk(records []schema.Record, size int) [][]schema.Record {
	if size <= 0 {
		size = ChunkSize
	}
	var out [][]schema.Record
	for start := 0; start < len(records); start += size {
		end := min(start+size, len(records))
		out = append(out, records[start:end])
	}
	return out
}

// ETA extrapolates the remaining time from the average chunk duration so far.
func ETA(elapsed time.Duration, done, total int) time.Duration {
	if done <= 0 || total <= done {
		return 0
	}
	return elapsed / time.Duration(done) * time.Duration(total-done)
}

// Run imports table into cfg.LocationID. New columns are saved first, then
// the records are uploaded one chunk at a time. A failed chunk is logged and
// the run continues; only cancellation stops it early.
func Run(ctx context.Context, cfg Config, table *Table) (*Summary, error) {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	logger := cfg.Logger.With(zap.String("location", cfg.LocationID))

	mappings, err := Resolve(table.Headers, cfg.Mappings)
	if err != nil {
		return nil, err
	}

	opts, err := cfg.Backend.GetOptions(ctx, cfg.LocationID)
	if err != nil {
		return nil, err
	}
	columns, added := MergeColumns(opts.Columns, mappings)
	if len(added) > 0 {
		next := *opts
		next.Columns = columns
		if err := cfg.Backend.SaveOptions(ctx, cfg.LocationID, next); err != nil {
			return nil, fmt.Errorf("add columns: %w", err)
		}
		logger.Info("columns added", zap.Strings("columns", added))
	}

	chunks := Chunk(BuildRecords(table, mappings), cfg.ChunkSize)
	summary := &Summary{Rows: len(table.Rows), Chunks: len(chunks), NewColumns: added}

	start := cfg.Now()
	for i, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			summary.Elapsed = cfg.Now().Sub(start)
			return summary, err
		}

		chunkStart := cfg.Now()
		err := cfg.Backend.SaveRecords(ctx, cfg.LocationID, chunk)
		failed := err != nil
		if failed {
			if errors.Is(err, context.Canceled) {
				summary.Elapsed = cfg.Now().Sub(start)
				return summary, err
			}
			summary.FailedChunks++
			logger.Error("chunk upload failed",
				zap.Int("chunk", i+1),
				zap.Int("records", len(chunk)),
				zap.Error(err))
		} else {
			summary.Uploaded += len(chunk)
		}

		elapsed := cfg.Now().Sub(start)
		logger.Debug("chunk uploaded",
			zap.Int("chunk", i+1),
			zap.Duration("took", cfg.Now().Sub(chunkStart)))
		events.Publish(cfg.Bus, events.ImportProgress{
			LocationID: cfg.LocationID,
			Chunk:      i + 1,
			Chunks:     len(chunks),
			Rows:       min((i+1)*len(chunks[0]), summary.Rows),
			Failed:     failed,
			Elapsed:    elapsed,
			ETA:        ETA(elapsed, i+1, len(chunks)),
		})
	}

	summary.Elapsed = cfg.Now().Sub(start)
	logger.Info("import finished",
		zap.Int("rows", summary.Rows),
		zap.Int("uploaded", summary.Uploaded),
		zap.Int("failed_chunks", summary.FailedChunks))
	return summary, nil
}
