package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordUnmarshalScalars(t *testing.T) {
	var r Record
	err := json.Unmarshal([]byte(`{
		"id": 42,
		"upc": "123",
		"qty": 4,
		"price": 9.99,
		"active": true,
		"notes": null,
		"date": "2024-01-02",
		"last_modified_date": "2024-02-03",
		"history": [{"qty": 3}]
	}`), &r)
	require.NoError(t, err)

	assert.Equal(t, ID("42"), r.ID)
	assert.Equal(t, "123", r.Get("upc"))
	assert.Equal(t, "4", r.Get("qty"))
	assert.Equal(t, "9.99", r.Get("price"))
	assert.Equal(t, "true", r.Get("active"))
	assert.Equal(t, "", r.Get("notes"))
	assert.Equal(t, "2024-01-02", r.Date)
	assert.Equal(t, "2024-02-03", r.LastModified)
	assert.JSONEq(t, `[{"qty": 3}]`, string(r.History))
	assert.NotContains(t, r.Values, "id")
}

func TestRecordMarshalSkipsBookkeeping(t *testing.T) {
	r := Record{
		ID:     "7",
		Date:   "2024-01-02",
		Values: map[string]string{"upc": "123", "history": "x"},
	}
	out, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id": "7", "upc": "123"}`, string(out))

	r.ID = ""
	out, err = json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"upc": "123"}`, string(out))
}

func TestRecordTagged(t *testing.T) {
	set := ColumnSet{{Name: "dept", Attributes: []Attribute{Department}}}
	r := Record{Values: map[string]string{"dept": "7"}}

	v, ok := r.Tagged(set, Department)
	assert.True(t, ok)
	assert.Equal(t, "7", v)

	_, ok = r.Tagged(set, Price)
	assert.False(t, ok)
}
