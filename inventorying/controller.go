package inventorying

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/ridoystarlord/invctl/api"
	"github.com/ridoystarlord/invctl/schema"
	"go.uber.org/zap"
)

// State is where the controller stands in the submit workflow.
type State string

const (
	StateIdle          State = "idle"
	StateLookingUp     State = "looking-up"
	StateFound         State = "found"
	StateNotFound      State = "not-found"
	StateCreatePending State = "create-pending"
)

// Outcome is what a submission ended with.
type Outcome string

const (
	OutcomeUpdated  Outcome = "updated"
	OutcomeCreated  Outcome = "created"
	OutcomeDeleted  Outcome = "deleted"
	OutcomeNotFound Outcome = "not-found"
	OutcomeDeclined Outcome = "declined"
)

// ConfigError means the column set cannot support inventorying.
type ConfigError struct {
	Missing schema.Attribute
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("no column is tagged %q", e.Missing)
}

// ValidationError rejects form input before any request is sent.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// LookupLimit bounds the search used to find a record by primary key. The
// search matches loosely, so the exact key may not be the first hit.
const LookupLimit = 20

// Backend is the part of the API the controller uses.
type Backend interface {
	ListRecords(ctx context.Context, id string, q api.Query) (*api.Page, error)
	SaveRecords(ctx context.Context, id string, records []schema.Record) error
	DeleteRecord(ctx context.Context, id string, recordID schema.ID) error
}

// Confirmer asks the operator a yes/no question.
type Confirmer interface {
	Confirm(message string) bool
}

// Submission is one filled-in inventorying form.
type Submission struct {
	PrimaryKey string
	Quantity   string
	// Fields holds raw text for the other editable columns.
	Fields map[string]string
	// DepartmentID is used for department-tagged columns when set.
	DepartmentID string
}

// Result describes a finished submission.
type Result struct {
	Outcome  Outcome
	Record   schema.Record
	Quantity int
}

type Config struct {
	LocationID string
	Columns    schema.ColumnSet
	Options    schema.InventoryingOptions
	Backend    Backend
	Confirmer  Confirmer
	// Refresh re-runs the current search once a submission completes.
	Refresh func(ctx context.Context) error
	Logger  *zap.Logger
}

// Controller runs the scan-and-adjust workflow for one location.
type Controller struct {
	cfg Config

	mu        sync.Mutex
	state     State
	addMode   bool
	forcedAdd bool
	selected  *schema.Record
}

func NewController(cfg Config) *Controller {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Controller{cfg: cfg, state: StateIdle}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) AddMode() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.addMode
}

// SetAddMode toggles absolute-quantity add/edit mode.
func (c *Controller) SetAddMode(on bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.addMode = on
	c.forcedAdd = false
	if on {
		c.state = StateCreatePending
	} else if c.state == StateCreatePending {
		c.state = StateIdle
	}
}

// Select makes record the active one so the next submit skips the lookup.
func (c *Controller) Select(record *schema.Record) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if record == nil {
		c.selected = nil
		return
	}
	r := *record
	c.selected = &r
}

func (c *Controller) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

// Check verifies the column set has a primary and a quantity column.
func (c *Controller) Check() (primary, quantity schema.Column, err error) {
	primary, ok := c.cfg.Columns.Holder(schema.Primary)
	if !ok {
		return primary, quantity, &ConfigError{Missing: schema.Primary}
	}
	quantity, ok = c.cfg.Columns.Holder(schema.Quantity)
	if !ok {
		return primary, quantity, &ConfigError{Missing: schema.Quantity}
	}
	return primary, quantity, nil
}

// ParseQuantity keeps digits and a leading minus sign, then parses.
func ParseQuantity(raw string) (int, error) {
	var b strings.Builder
	for _, r := range strings.TrimSpace(raw) {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' && b.Len() == 0:
			b.WriteRune(r)
		}
	}
	n, err := strconv.Atoi(b.String())
	if err != nil {
		return 0, &ValidationError{Field: "quantity", Message: fmt.Sprintf("%q is not a number", raw)}
	}
	return n, nil
}

// storedQuantity reads a stored value leniently; anything unreadable counts as 0.
func storedQuantity(raw string) int {
	n, err := ParseQuantity(raw)
	if err != nil {
		return 0
	}
	return n
}

// Submit runs one pass of the workflow.
func (c *Controller) Submit(ctx context.Context, sub Submission) (*Result, error) {
	primary, quantity, err := c.Check()
	if err != nil {
		return nil, err
	}

	pk := strings.TrimSpace(sub.PrimaryKey)
	if pk == "" {
		return nil, &ValidationError{Field: primary.Name, Message: "value is required"}
	}
	input, err := ParseQuantity(sub.Quantity)
	if err != nil {
		return nil, err
	}

	c.setState(StateLookingUp)
	record, err := c.lookup(ctx, primary.Name, pk)
	if err != nil {
		c.setState(StateIdle)
		return nil, err
	}

	c.mu.Lock()
	addMode := c.addMode
	c.mu.Unlock()

	if record == nil {
		c.setState(StateNotFound)
		if !c.cfg.Options.AddIfMissing && !addMode {
			return c.notFound(ctx, pk)
		}
	} else {
		c.setState(StateFound)
	}

	creating := record == nil
	qty := input
	if !addMode && !creating {
		qty = storedQuantity(record.Get(quantity.Name)) + input
	}

	if !creating && qty <= 0 && c.cfg.Options.RemoveIfZero {
		return c.remove(ctx, *record, qty)
	}

	out := c.buildRecord(record, primary, quantity, pk, qty, sub)
	if err := c.cfg.Backend.SaveRecords(ctx, c.cfg.LocationID, []schema.Record{out}); err != nil {
		c.setState(StateIdle)
		return nil, err
	}

	res := &Result{Outcome: OutcomeUpdated, Record: out, Quantity: qty}
	if creating {
		res.Outcome = OutcomeCreated
	}
	c.cfg.Logger.Info("inventory saved",
		zap.String("location", c.cfg.LocationID),
		zap.String("key", pk),
		zap.String("outcome", string(res.Outcome)),
		zap.Int("quantity", qty))
	return res, c.finish(ctx)
}

func (c *Controller) lookup(ctx context.Context, column, pk string) (*schema.Record, error) {
	c.mu.Lock()
	selected := c.selected
	c.mu.Unlock()
	if selected != nil {
		r := *selected
		return &r, nil
	}

	page, err := c.cfg.Backend.ListRecords(ctx, c.cfg.LocationID, api.Query{
		Limit:   LookupLimit,
		Search:  pk,
		Columns: []string{column},
	})
	if err != nil {
		return nil, fmt.Errorf("look up %s: %w", pk, err)
	}
	for _, r := range page.Data {
		if strings.TrimSpace(r.Get(column)) == pk {
			found := r
			return &found, nil
		}
	}
	return nil, nil
}

func (c *Controller) notFound(ctx context.Context, pk string) (*Result, error) {
	c.cfg.Logger.Info("item not found", zap.String("location", c.cfg.LocationID), zap.String("key", pk))
	c.mu.Lock()
	c.addMode = true
	c.forcedAdd = true
	c.mu.Unlock()

	res := &Result{Outcome: OutcomeNotFound}
	c.setState(StateCreatePending)
	if err := c.refresh(ctx); err != nil {
		return res, err
	}
	return res, nil
}

func (c *Controller) remove(ctx context.Context, record schema.Record, qty int) (*Result, error) {
	msg := fmt.Sprintf("Quantity would be %d. Delete this item?", qty)
	if c.cfg.Confirmer == nil || !c.cfg.Confirmer.Confirm(msg) {
		c.setState(StateIdle)
		return &Result{Outcome: OutcomeDeclined, Record: record, Quantity: qty}, nil
	}
	if err := c.cfg.Backend.DeleteRecord(ctx, c.cfg.LocationID, record.ID); err != nil {
		c.setState(StateIdle)
		return nil, err
	}
	return &Result{Outcome: OutcomeDeleted, Record: record, Quantity: qty}, c.finish(ctx)
}

func (c *Controller) buildRecord(existing *schema.Record, primary, quantity schema.Column, pk string, qty int, sub Submission) schema.Record {
	out := schema.Record{Values: map[string]string{}}
	if existing != nil {
		out.ID = existing.ID
		for k, v := range existing.Values {
			out.Values[k] = v
		}
	}
	out.Values[primary.Name] = pk
	out.Values[quantity.Name] = strconv.Itoa(qty)

	for _, col := range c.cfg.Columns {
		if col.Has(schema.Primary) || col.Has(schema.Quantity) || col.Has(schema.Readonly) || schema.IsBookkeeping(col.Name) {
			continue
		}
		if col.Has(schema.Department) && sub.DepartmentID != "" {
			out.Values[col.Name] = sub.DepartmentID
			continue
		}
		if v, ok := sub.Fields[col.Name]; ok {
			out.Values[col.Name] = v
		} else if existing == nil {
			out.Values[col.Name] = ""
		}
	}
	return out
}

// finish clears the selection, returns to Idle and refreshes the table. Add
// mode forced by a miss only lasts for one submission.
func (c *Controller) finish(ctx context.Context) error {
	c.mu.Lock()
	c.selected = nil
	if c.forcedAdd {
		c.addMode = false
		c.forcedAdd = false
	}
	c.state = StateIdle
	c.mu.Unlock()
	return c.refresh(ctx)
}

func (c *Controller) refresh(ctx context.Context) error {
	if c.cfg.Refresh == nil {
		return nil
	}
	if err := c.cfg.Refresh(ctx); err != nil {
		return fmt.Errorf("refresh after submit: %w", err)
	}
	return nil
}
