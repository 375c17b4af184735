package loader

import (
	"fmt"
	"strings"

	"github.com/ridoystarlord/invctl/schema"
)

// Mapping binds one CSV header to a column. Attributes and DisplayName are
// only used when the column does not exist yet.
type Mapping struct {
	Header      string
	Column      string
	DisplayName string
	Attributes  []schema.Attribute
	Hidden      bool
}

// ParseMapping parses "header=column;option;option". Options are attribute
// names, "display:Label" and "hidden". A bare "header" maps onto a column of
// the same name.
func ParseMapping(spec string) (Mapping, error) {
	header, rest, _ := strings.Cut(spec, "=")
	header = strings.TrimSpace(header)
	if header == "" {
		return Mapping{}, fmt.Errorf("mapping %q has no header", spec)
	}

	m := Mapping{Header: header, Column: header}
	if rest == "" {
		return m, nil
	}

	parts := strings.Split(rest, ";")
	if col := strings.TrimSpace(parts[0]); col != "" {
		m.Column = col
	}
	for _, part := range parts[1:] {
		part = strings.TrimSpace(part)
		switch {
		case part == "":
			continue
		case part == "hidden":
			m.Hidden = true
		case strings.HasPrefix(part, "display:"):
			m.DisplayName = strings.TrimPrefix(part, "display:")
		default:
			a, ok := schema.ParseAttribute(part)
			if !ok {
				return Mapping{}, fmt.Errorf("mapping %q: unknown option %q", spec, part)
			}
			m.Attributes = append(m.Attributes, a)
		}
	}
	return m, nil
}

// ParseMappings parses every spec, rejecting two headers mapped to one column.
func ParseMappings(specs []string) ([]Mapping, error) {
	var out []Mapping
	used := map[string]string{}
	for _, spec := range specs {
		m, err := ParseMapping(spec)
		if err != nil {
			return nil, err
		}
		if prev, ok := used[m.Column]; ok {
			return nil, fmt.Errorf("headers %q and %q both map to column %q", prev, m.Header, m.Column)
		}
		used[m.Column] = m.Header
		out = append(out, m)
	}
	return out, nil
}

// Definition returns the column a mapping would create.
func (m Mapping) Definition() schema.Column {
	return schema.Column{
		Name:        m.Column,
		DisplayName: m.DisplayName,
		Visible:     !m.Hidden,
		Attributes:  schema.ParseAttributes(attrNames(m.Attributes)),
	}
}

func attrNames(attrs []schema.Attribute) []string {
	names := make([]string, len(attrs))
	for i, a := range attrs {
		names[i] = string(a)
	}
	return names
}
