package records

import (
	"context"
	"errors"
	"sync"

	"github.com/ridoystarlord/invctl/api"
	"github.com/ridoystarlord/invctl/schema"
	"go.uber.org/zap"
)

// PageSize is the fixed number of rows fetched per view.
const PageSize = 20

// Fetcher is the part of the API the controller needs.
type Fetcher interface {
	ListRecords(ctx context.Context, id string, q api.Query) (*api.Page, error)
}

// Params identify one live query of a table view.
type Params struct {
	LocationID string
	SortBy     string
	Ascending  bool
	Search     string
}

// Result is one applied answer; Seq is unique per load.
type Result struct {
	Seq     uint64
	Params  Params
	Records []schema.Record
	Total   *int
}

// Controller issues record queries, keeping at most one in flight.
type Controller struct {
	fetcher Fetcher
	logger  *zap.Logger

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

func NewController(fetcher Fetcher, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{fetcher: fetcher, logger: logger}
}

// BuildQuery derives the API query for p from the column set.
func BuildQuery(p Params, columns schema.ColumnSet) api.Query {
	q := api.Query{
		Limit:     PageSize,
		Offset:    0,
		SortBy:    p.SortBy,
		Ascending: p.Ascending,
	}
	if q.SortBy == "" {
		q.SortBy = columns.PrimaryKey()
	}
	if p.Search != "" {
		q.Search = p.Search
		q.Columns = columns.SearchColumns()
		if q.Columns == nil {
			q.Columns = []string{}
		}
	}
	return q
}

// Load cancels any previous request and fetches the page for p. A request
// that gets cancelled or superseded returns (nil, nil).
func (c *Controller) Load(ctx context.Context, p Params, columns schema.ColumnSet) (*Result, error) {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	c.seq++
	seq := c.seq
	reqCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.mu.Unlock()
	defer cancel()

	page, err := c.fetcher.ListRecords(reqCtx, p.LocationID, BuildQuery(p, columns))

	c.mu.Lock()
	current := seq == c.seq
	if current {
		c.cancel = nil
	}
	c.mu.Unlock()

	if !current || reqCtx.Err() != nil {
		c.logger.Debug("discarding superseded record load",
			zap.String("location", p.LocationID),
			zap.String("search", p.Search))
		return nil, nil
	}
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, nil
		}
		return nil, err
	}

	return &Result{Seq: seq, Params: p, Records: page.Data, Total: page.Total}, nil
}

// Cancel aborts the in-flight request, if any.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.seq++
}
