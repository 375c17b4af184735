package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ridoystarlord/invctl/schema"
)

var (
	docsFormat string
	docsOutput string
)

var columnsDocsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Generate documentation for the column set",
	Long: `Generate documentation for the selected database's columns.

Supported formats:
  - markdown: column reference table
  - json: example record as the API returns it

Examples:
  invctl columns docs --format markdown --output columns.md
  invctl columns docs --format json
`,
	Run: func(cmd *cobra.Command, args []string) {
		ed, id := openEditor(cmd.Context())
		columns := ed.Columns()
		if len(columns) == 0 {
			fail("No columns defined")
		}

		var content string
		switch docsFormat {
		case "markdown":
			content = generateMarkdownContent(id, columns)
		case "json":
			content = generateJSONExample(columns)
		default:
			fmt.Printf("❌ Unsupported format: %s\n", docsFormat)
			fmt.Println("Supported formats: markdown, json")
			os.Exit(1)
		}

		if docsOutput == "" {
			fmt.Print(content)
			return
		}
		if err := os.WriteFile(docsOutput, []byte(content), 0644); err != nil {
			fail("Error writing %s: %v", docsOutput, err)
		}
		fmt.Printf("✅ Documentation saved to: %s\n", docsOutput)
	},
}

func init() {
	columnsDocsCmd.Flags().StringVar(&docsFormat, "format", "markdown", "Output format (markdown, json)")
	columnsDocsCmd.Flags().StringVarP(&docsOutput, "output", "o", "", "Output file (default stdout)")
}

func generateMarkdownContent(id string, columns schema.ColumnSet) string {
	var content strings.Builder

	content.WriteString(fmt.Sprintf("# Columns of database %s\n\n", id))
	content.WriteString("| # | Column | Display name | Visible | Attributes |\n")
	content.WriteString("|---|--------|--------------|---------|------------|\n")
	for i, col := range columns {
		attrs := make([]string, len(col.Attributes))
		for j, a := range col.Attributes {
			attrs[j] = "`" + string(a) + "`"
		}
		visible := "yes"
		if !col.Visible {
			visible = "no"
		}
		content.WriteString(fmt.Sprintf("| %d | `%s` | %s | %s | %s |\n",
			i+1, col.Name, col.Label(), visible, strings.Join(attrs, " ")))
	}

	content.WriteString("\n## Roles\n\n")
	for _, a := range schema.Attributes {
		if !schema.IsSingleSelection(a) {
			continue
		}
		holder := "_none_"
		if col, ok := columns.Holder(a); ok {
			holder = "`" + col.Name + "`"
		}
		content.WriteString(fmt.Sprintf("- **%s**: %s\n", a, holder))
	}
	if search := columns.SearchColumns(); len(search) > 0 {
		content.WriteString(fmt.Sprintf("- **search**: `%s`\n", strings.Join(search, "`, `")))
	}
	return content.String()
}

func generateJSONExample(columns schema.ColumnSet) string {
	example := map[string]any{"id": 1}
	for _, col := range columns {
		example[col.Name] = exampleValue(col)
	}
	out, _ := json.MarshalIndent(example, "", "  ")
	return string(out) + "\n"
}

func exampleValue(col schema.Column) any {
	switch {
	case col.Has(schema.Price), col.Has(schema.MardensPrice):
		return "12.50"
	case col.Has(schema.Quantity):
		return 1
	case col.Has(schema.Department):
		return "3"
	case col.Has(schema.Primary):
		return "012345678905"
	}
	return "string"
}
