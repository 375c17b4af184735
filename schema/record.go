package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID is a server assigned identifier. The API emits both numbers and strings.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	s, err := scalarString(data)
	if err != nil {
		return fmt.Errorf("decode id: %w", err)
	}
	*id = ID(s)
	return nil
}

func (id ID) String() string { return string(id) }

// Bookkeeping fields the client never edits.
const (
	FieldID           = "id"
	FieldDate         = "date"
	FieldLastModified = "last_modified_date"
	FieldHistory      = "history"
)

// IsBookkeeping reports whether name is a server managed field.
func IsBookkeeping(name string) bool {
	switch name {
	case FieldID, FieldDate, FieldLastModified, FieldHistory:
		return true
	}
	return false
}

// Record is one inventory row keyed by column real name.
type Record struct {
	ID           ID
	Date         string
	LastModified string
	History      json.RawMessage
	Values       map[string]string
}

// Get returns the value stored for column, "" when absent.
func (r Record) Get(column string) string {
	if r.Values == nil {
		return ""
	}
	return r.Values[column]
}

// Tagged returns the value of the first column in set carrying a.
func (r Record) Tagged(set ColumnSet, a Attribute) (string, bool) {
	c, ok := set.Holder(a)
	if !ok {
		return "", false
	}
	v, ok := r.Values[c.Name]
	return v, ok
}

func (r *Record) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := Record{Values: make(map[string]string, len(raw))}
	for key, value := range raw {
		switch key {
		case FieldHistory:
			out.History = append(json.RawMessage{}, value...)
			continue
		}
		s, err := scalarString(value)
		if err != nil {
			return fmt.Errorf("decode field %q: %w", key, err)
		}
		switch key {
		case FieldID:
			out.ID = ID(s)
		case FieldDate:
			out.Date = s
		case FieldLastModified:
			out.LastModified = s
		default:
			out.Values[key] = s
		}
	}
	*r = out
	return nil
}

// MarshalJSON emits the editable values plus the id when one is assigned.
func (r Record) MarshalJSON() ([]byte, error) {
	m := make(map[string]string, len(r.Values)+1)
	for k, v := range r.Values {
		if IsBookkeeping(k) {
			continue
		}
		m[k] = v
	}
	if r.ID != "" {
		m[FieldID] = string(r.ID)
	}
	return json.Marshal(m)
}

func scalarString(data []byte) (string, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return "", nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return "", err
		}
		return s, nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return "", err
		}
		return strconv.FormatBool(b), nil
	case '{', '[':
		return string(data), nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return "", err
	}
	return n.String(), nil
}
