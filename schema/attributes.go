package schema

import (
	"sort"
	"strings"
)

// Attribute selects the role a column plays.
type Attribute string

const (
	Primary      Attribute = "primary"
	Price        Attribute = "price"
	Search       Attribute = "search"
	Quantity     Attribute = "quantity"
	Description  Attribute = "description"
	Department   Attribute = "department"
	MardensPrice Attribute = "mp"
	Category     Attribute = "category"
	Readonly     Attribute = "readonly"
)

// Attributes lists every known attribute in canonical order.
var Attributes = []Attribute{
	Primary,
	Price,
	Search,
	Quantity,
	Description,
	Department,
	MardensPrice,
	Category,
	Readonly,
}

var aliases = map[string]Attribute{
	"mardensprice":  MardensPrice,
	"mardens_price": MardensPrice,
}

// ParseAttribute resolves a wire or user supplied name.
func ParseAttribute(name string) (Attribute, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, a := range Attributes {
		if string(a) == name {
			return a, true
		}
	}
	a, ok := aliases[name]
	return a, ok
}

// IsSingleSelection reports whether at most one column of a set may hold a.
func IsSingleSelection(a Attribute) bool {
	switch a {
	case Primary, Quantity, Description, Department, MardensPrice, Category:
		return true
	}
	return false
}

func rank(a Attribute) int {
	for i, known := range Attributes {
		if known == a {
			return i
		}
	}
	return len(Attributes)
}

// canonical drops unknown and duplicate attributes and sorts the rest.
func canonical(attrs []Attribute) []Attribute {
	seen := make(map[Attribute]bool, len(attrs))
	out := make([]Attribute, 0, len(attrs))
	for _, a := range attrs {
		if rank(a) == len(Attributes) || seen[a] {
			continue
		}
		seen[a] = true
		out = append(out, a)
	}
	sort.SliceStable(out, func(i, j int) bool { return rank(out[i]) < rank(out[j]) })
	return out
}

// ParseAttributes converts names, silently skipping unknown ones.
func ParseAttributes(names []string) []Attribute {
	var out []Attribute
	for _, n := range names {
		if a, ok := ParseAttribute(n); ok {
			out = append(out, a)
		}
	}
	return canonical(out)
}
