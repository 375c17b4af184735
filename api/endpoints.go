package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/ridoystarlord/invctl/schema"
)

// Query selects one page of records. A non-empty Search turns the listing
// into a search restricted to Columns.
type Query struct {
	Limit     int
	Offset    int
	SortBy    string
	Ascending bool
	Search    string
	Columns   []string
}

// Values encodes the query string understood by /api/inventory/{id}/.
func (q Query) Values() url.Values {
	v := url.Values{}
	v.Set("query_columns", strings.Join(q.Columns, ","))
	v.Set("limit", strconv.Itoa(q.Limit))
	v.Set("offset", strconv.Itoa(q.Offset))
	if q.SortBy != "" {
		v.Set("sort_by", q.SortBy)
		if q.Ascending {
			v.Set("sort_order", "ASC")
		} else {
			v.Set("sort_order", "DESC")
		}
	}
	if q.Search != "" {
		v.Set("query", q.Search)
	}
	return v
}

// Page is one batch of records; Total is nil when the server omits it.
type Page struct {
	Data  []schema.Record `json:"data"`
	Total *int            `json:"total"`
}

type wireColumn struct {
	RealName    string   `json:"real_name,omitempty"`
	Name        string   `json:"name"`
	DisplayName string   `json:"display_name,omitempty"`
	Visible     *bool    `json:"visible,omitempty"`
	Attributes  []string `json:"attributes"`
}

func (w wireColumn) column() schema.Column {
	col := schema.Column{
		Name:        w.RealName,
		DisplayName: w.DisplayName,
		Visible:     w.Visible == nil || *w.Visible,
		Attributes:  schema.ParseAttributes(w.Attributes),
	}
	if col.Name == "" {
		col.Name = w.Name
	} else if col.DisplayName == "" && w.Name != col.Name {
		col.DisplayName = w.Name
	}
	return col
}

func toWireColumn(c schema.Column) wireColumn {
	visible := c.Visible
	attrs := make([]string, len(c.Attributes))
	for i, a := range c.Attributes {
		attrs[i] = string(a)
	}
	return wireColumn{
		RealName:    c.Name,
		Name:        c.Name,
		DisplayName: c.Label(),
		Visible:     &visible,
		Attributes:  attrs,
	}
}

func columnsFromWire(in []wireColumn) schema.ColumnSet {
	out := make(schema.ColumnSet, 0, len(in))
	for _, w := range in {
		out = append(out, w.column())
	}
	return out
}

type wireOptions struct {
	Columns      []wireColumn               `json:"columns"`
	PrintForms   []schema.PrintForm         `json:"print_forms"`
	Inventorying schema.InventoryingOptions `json:"inventorying"`
}

func (c *Client) ListLocations(ctx context.Context) ([]schema.Location, error) {
	var out []schema.Location
	if err := c.getJSON(ctx, "/api/list/", &out); err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	return out, nil
}

func (c *Client) GetLocation(ctx context.Context, id string) (*schema.Location, error) {
	var out schema.Location
	if err := c.getJSON(ctx, "/api/list/"+url.PathEscape(id), &out); err != nil {
		return nil, fmt.Errorf("get location %s: %w", id, err)
	}
	return &out, nil
}

// ListRecords fetches one page of records, listing or searching depending on
// q.Search.
func (c *Client) ListRecords(ctx context.Context, id string, q Query) (*Page, error) {
	endpoint := fmt.Sprintf("/api/inventory/%s/?%s", url.PathEscape(id), q.Values().Encode())
	body, err := c.call(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var data []schema.Record
		if err := unmarshalBody(trimmed, &data); err != nil {
			return nil, err
		}
		return &Page{Data: data}, nil
	}

	var page Page
	if err := unmarshalBody(trimmed, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) GetColumns(ctx context.Context, id string) (schema.ColumnSet, error) {
	var wire []wireColumn
	if err := c.getJSON(ctx, fmt.Sprintf("/api/inventory/%s/columns/", url.PathEscape(id)), &wire); err != nil {
		return nil, fmt.Errorf("get columns for %s: %w", id, err)
	}
	return columnsFromWire(wire), nil
}

func (c *Client) GetOptions(ctx context.Context, id string) (*schema.Options, error) {
	var wire wireOptions
	if err := c.getJSON(ctx, fmt.Sprintf("/api/inventory/%s/options/", url.PathEscape(id)), &wire); err != nil {
		return nil, fmt.Errorf("get options for %s: %w", id, err)
	}
	return &schema.Options{
		Columns:      columnsFromWire(wire.Columns),
		PrintForms:   wire.PrintForms,
		Inventorying: wire.Inventorying,
	}, nil
}

// SaveOptions persists the options document, column set included.
func (c *Client) SaveOptions(ctx context.Context, id string, opts schema.Options) error {
	wire := wireOptions{
		Columns:      make([]wireColumn, 0, len(opts.Columns)),
		PrintForms:   opts.PrintForms,
		Inventorying: opts.Inventorying,
	}
	for _, col := range opts.Columns {
		wire.Columns = append(wire.Columns, toWireColumn(col))
	}
	if _, err := c.call(ctx, http.MethodPost, fmt.Sprintf("/api/inventory/%s/options/", url.PathEscape(id)), wire); err != nil {
		return fmt.Errorf("save options for %s: %w", id, err)
	}
	return nil
}

// SaveRecords creates records without an id and updates the others.
func (c *Client) SaveRecords(ctx context.Context, id string, records []schema.Record) error {
	if _, err := c.call(ctx, http.MethodPost, fmt.Sprintf("/api/location/%s/", url.PathEscape(id)), records); err != nil {
		return fmt.Errorf("save %d records: %w", len(records), err)
	}
	return nil
}

func (c *Client) DeleteRecord(ctx context.Context, id string, recordID schema.ID) error {
	endpoint := fmt.Sprintf("/api/location/%s/%s/", url.PathEscape(id), url.PathEscape(recordID.String()))
	if _, err := c.call(ctx, http.MethodDelete, endpoint, nil); err != nil {
		return fmt.Errorf("delete record %s: %w", recordID, err)
	}
	return nil
}

func (c *Client) Icons(ctx context.Context) ([]schema.Icon, error) {
	var out []schema.Icon
	if err := c.getJSON(ctx, "/api/icons", &out); err != nil {
		return nil, fmt.Errorf("list icons: %w", err)
	}
	return out, nil
}

// Version returns the server version string.
func (c *Client) Version(ctx context.Context) (string, error) {
	body, err := c.call(ctx, http.MethodGet, "/api/version", nil)
	if err != nil {
		return "", err
	}
	v := strings.TrimSpace(string(body))
	var quoted string
	if err := json.Unmarshal([]byte(v), &quoted); err == nil {
		v = quoted
	}
	return v, nil
}
