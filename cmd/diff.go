package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ridoystarlord/invctl/diff"
	"github.com/ridoystarlord/invctl/loader"
)

var columnsDiffVisual bool

var columnsDiffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Show differences between a column file and the server",
	Long: `Show what 'invctl columns apply' would change.

Examples:
  invctl columns diff                    # Compare columns.yaml
  invctl columns diff --visual           # Grouped, colored output
  invctl columns diff -f other.yaml      # Use another file
`,
	Run: func(cmd *cobra.Command, args []string) {
		location, columns, err := loader.LoadColumnsFromYAML(columnsFile)
		if err != nil {
			fail("Error loading %s: %v", columnsFile, err)
		}
		if location != "" && dbFlag == "" {
			dbFlag = location
		}

		ed, _ := openEditor(cmd.Context())
		if err := ed.Replace(columns); err != nil {
			fail("%v", err)
		}
		operations := ed.Changes()

		if len(operations) == 0 {
			fmt.Println("✅ No differences found between file and server")
			return
		}
		if columnsDiffVisual {
			showVisualDiff(operations)
		} else {
			showTextDiff(operations)
		}
	},
}

func init() {
	columnsDiffCmd.Flags().BoolVar(&columnsDiffVisual, "visual", false, "Group changes by column")
}

func showTextDiff(operations []diff.Operation) {
	fmt.Printf("📝 %d change(s):\n", len(operations))
	for _, op := range operations {
		fmt.Printf("  %s\n", describeOperation(op))
	}
}

func describeOperation(op diff.Operation) string {
	switch op.Type {
	case diff.AddColumn:
		return fmt.Sprintf("➕ ADD %s", op.ColumnName)
	case diff.DropColumn:
		return fmt.Sprintf("❌ DROP %s", op.ColumnName)
	case diff.RenameColumn:
		return fmt.Sprintf("✏️  RENAME %s: %q → %q", op.ColumnName, op.OldName, op.NewName)
	case diff.ShowColumn:
		return fmt.Sprintf("👁️  SHOW %s", op.ColumnName)
	case diff.HideColumn:
		return fmt.Sprintf("🙈 HIDE %s", op.ColumnName)
	case diff.AddAttribute:
		return fmt.Sprintf("🏷️  TAG %s +%s", op.ColumnName, op.Attribute)
	case diff.RemoveAttribute:
		return fmt.Sprintf("🏷️  UNTAG %s -%s", op.ColumnName, op.Attribute)
	case diff.MoveColumn:
		return fmt.Sprintf("🔀 MOVE %s %d → %d", op.ColumnName, op.From+1, op.To+1)
	}
	return string(op.Type)
}

func showVisualDiff(operations []diff.Operation) {
	green := color.New(color.FgGreen, color.Bold)
	red := color.New(color.FgRed, color.Bold)
	yellow := color.New(color.FgYellow, color.Bold)
	blue := color.New(color.FgBlue)

	fmt.Println("🌳 Column Changes (Visual Diff)")
	fmt.Println(strings.Repeat("=", 50))

	var order []string
	byColumn := map[string][]diff.Operation{}
	for _, op := range operations {
		if _, seen := byColumn[op.ColumnName]; !seen {
			order = append(order, op.ColumnName)
		}
		byColumn[op.ColumnName] = append(byColumn[op.ColumnName], op)
	}

	for _, name := range order {
		ops := byColumn[name]
		switch ops[0].Type {
		case diff.AddColumn:
			green.Printf("  ➕ %s\n", name)
			if c := ops[0].Column; c != nil && len(c.Attributes) > 0 {
				green.Printf("      🏷️  %v\n", c.Attributes)
			}
			continue
		case diff.DropColumn:
			red.Printf("  ❌ %s\n", name)
			continue
		}

		yellow.Printf("  ⚡ %s\n", name)
		for _, op := range ops {
			blue.Printf("      %s\n", describeOperation(op))
		}
	}
}
