package loader

import (
	"fmt"
	"os"

	"github.com/ridoystarlord/invctl/schema"
	"gopkg.in/yaml.v3"
)

type yamlFile struct {
	Location string       `yaml:"location,omitempty"`
	Columns  []yamlColumn `yaml:"columns"`
}

type yamlColumn struct {
	Name        string   `yaml:"name"`
	DisplayName string   `yaml:"display_name,omitempty"`
	Visible     *bool    `yaml:"visible,omitempty"`
	Attributes  []string `yaml:"attributes,omitempty,flow"`
}

// LoadColumnsFromYAML reads a column file. Unknown attributes are dropped and
// columns default to visible.
func LoadColumnsFromYAML(filename string) (string, schema.ColumnSet, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", nil, fmt.Errorf("reading column file: %w", err)
	}

	var yf yamlFile
	if err := yaml.Unmarshal(data, &yf); err != nil {
		return "", nil, fmt.Errorf("unmarshalling YAML: %w", err)
	}

	columns := make(schema.ColumnSet, 0, len(yf.Columns))
	for _, c := range yf.Columns {
		columns = append(columns, schema.Column{
			Name:        c.Name,
			DisplayName: c.DisplayName,
			Visible:     c.Visible == nil || *c.Visible,
			Attributes:  schema.ParseAttributes(c.Attributes),
		})
	}

	return yf.Location, columns, nil
}

// SaveColumnsToYAML writes columns in the format LoadColumnsFromYAML reads.
func SaveColumnsToYAML(filename, location string, columns schema.ColumnSet) error {
	yf := yamlFile{Location: location}
	for _, c := range columns {
		visible := c.Visible
		attrs := make([]string, len(c.Attributes))
		for i, a := range c.Attributes {
			attrs[i] = string(a)
		}
		yf.Columns = append(yf.Columns, yamlColumn{
			Name:        c.Name,
			DisplayName: c.DisplayName,
			Visible:     &visible,
			Attributes:  attrs,
		})
	}

	data, err := yaml.Marshal(yf)
	if err != nil {
		return fmt.Errorf("marshalling YAML: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("writing column file: %w", err)
	}
	return nil
}
