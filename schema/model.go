package schema

// Column describes one field of an inventory record.
type Column struct {
	Name        string      `json:"name" yaml:"name"`
	DisplayName string      `json:"displayName" yaml:"display_name,omitempty"`
	Visible     bool        `json:"visible" yaml:"visible"`
	Attributes  []Attribute `json:"attributes" yaml:"attributes,omitempty,flow"`
}

// ColumnSet is the ordered column schema of one location.
type ColumnSet []Column

// Location is one inventory database as listed by the API.
type Location struct {
	ID       ID     `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
	PO       string `json:"po"`
	Image    string `json:"image"`
	PostDate string `json:"post_date"`
}

// Options is the per-location configuration document.
type Options struct {
	Columns      ColumnSet           `json:"columns"`
	PrintForms   []PrintForm         `json:"print_forms"`
	Inventorying InventoryingOptions `json:"inventorying"`
}

// PrintForm is a named label configuration.
type PrintForm struct {
	ID             string    `json:"id"`
	Label          string    `json:"label"`
	Year           string    `json:"year"`
	Color          string    `json:"color"`
	Department     int       `json:"department"`
	Size           string    `json:"size"`
	Percentages    []float64 `json:"percentages"`
	ShowPriceLabel bool      `json:"show_price_label"`
}

type InventoryingOptions struct {
	AllowAdditions bool `json:"allow_additions"`
	AddIfMissing   bool `json:"add_if_missing"`
	RemoveIfZero   bool `json:"remove_if_zero"`
}

// Icon is an entry of the icon catalogue.
type Icon struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	File string `json:"file"`
}

// Label returns the display name, or the real name when none is set.
func (c Column) Label() string {
	if c.DisplayName != "" {
		return c.DisplayName
	}
	return c.Name
}

// Has reports whether the column carries the attribute.
func (c Column) Has(a Attribute) bool {
	for _, have := range c.Attributes {
		if have == a {
			return true
		}
	}
	return false
}

// With returns a copy of the column carrying a.
func (c Column) With(a Attribute) Column {
	if c.Has(a) {
		return c
	}
	c.Attributes = canonical(append(append([]Attribute{}, c.Attributes...), a))
	return c
}

// Without returns a copy of the column with a removed.
func (c Column) Without(a Attribute) Column {
	if !c.Has(a) {
		return c
	}
	kept := make([]Attribute, 0, len(c.Attributes))
	for _, have := range c.Attributes {
		if have != a {
			kept = append(kept, have)
		}
	}
	c.Attributes = kept
	return c
}

// Clone returns a deep copy of the set.
func (s ColumnSet) Clone() ColumnSet {
	if s == nil {
		return nil
	}
	out := make(ColumnSet, len(s))
	for i, c := range s {
		c.Attributes = append([]Attribute{}, c.Attributes...)
		out[i] = c
	}
	return out
}

// Index returns the position of the named column or -1.
func (s ColumnSet) Index(name string) int {
	for i, c := range s {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Holder returns the first column carrying a.
func (s ColumnSet) Holder(a Attribute) (Column, bool) {
	for _, c := range s {
		if c.Has(a) {
			return c, true
		}
	}
	return Column{}, false
}

// Holders returns the names of every column carrying a.
func (s ColumnSet) Holders(a Attribute) []string {
	var names []string
	for _, c := range s {
		if c.Has(a) {
			names = append(names, c.Name)
		}
	}
	return names
}

// PrimaryKey is the real name of the primary column, "id" when none is tagged.
func (s ColumnSet) PrimaryKey() string {
	if c, ok := s.Holder(Primary); ok {
		return c.Name
	}
	return "id"
}

// SearchColumns lists the real names of the columns tagged search.
func (s ColumnSet) SearchColumns() []string {
	return s.Holders(Search)
}

// Visible returns the visible columns in set order.
func (s ColumnSet) Visible() ColumnSet {
	var out ColumnSet
	for _, c := range s {
		if c.Visible {
			out = append(out, c)
		}
	}
	return out
}

func (s ColumnSet) Names() []string {
	names := make([]string, len(s))
	for i, c := range s {
		names[i] = c.Name
	}
	return names
}
