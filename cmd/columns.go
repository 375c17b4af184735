package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/ridoystarlord/invctl/editor"
	"github.com/ridoystarlord/invctl/events"
	"github.com/ridoystarlord/invctl/loader"
	"github.com/ridoystarlord/invctl/schema"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	columnsDryRun  bool
	columnsOff     bool
	columnsFile    string
	columnsDisplay string
	columnsAttrs   []string
	columnsHidden  bool
)

var columnsCmd = &cobra.Command{
	Use:   "columns",
	Short: "Show and edit the column set of the selected database",
	Long: `Show and edit the column set of the selected database.

Attributes: primary, price, mp, search, quantity, description, department,
category, readonly. Every attribute except search and readonly is held by at
most one column; tagging a column takes the attribute away from its previous
holder.

Examples:
  invctl columns list
  invctl columns tag upc primary
  invctl columns tag notes search --off
  invctl columns export -f columns.yaml
  invctl columns apply -f columns.yaml --dry-run
`,
}

var columnsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List columns with their attributes",
	Run: func(cmd *cobra.Command, args []string) {
		ed, _ := openEditor(cmd.Context())
		printColumns(ed.Columns())
	},
}

var columnsTagCmd = &cobra.Command{
	Use:   "tag <column> <attribute>",
	Short: "Set an attribute on a column (--off clears it)",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		if _, ok := schema.ParseAttribute(args[1]); !ok {
			fail("Unknown attribute %q", args[1])
		}
		editColumns(cmd.Context(), func(ed *editor.Editor) error {
			return ed.ToggleAttribute(args[0], args[1], !columnsOff)
		})
	},
}

var columnsRenameCmd = &cobra.Command{
	Use:   "rename <column> <display-name>",
	Short: "Change the display name of a column",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		editColumns(cmd.Context(), func(ed *editor.Editor) error {
			return ed.Rename(args[0], args[1])
		})
	},
}

var columnsHideCmd = &cobra.Command{
	Use:   "hide <column>",
	Short: "Hide a column from the table",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		editColumns(cmd.Context(), func(ed *editor.Editor) error {
			return ed.SetVisible(args[0], false)
		})
	},
}

var columnsUnhideCmd = &cobra.Command{
	Use:   "unhide <column>",
	Short: "Show a hidden column again",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		editColumns(cmd.Context(), func(ed *editor.Editor) error {
			return ed.SetVisible(args[0], true)
		})
	},
}

var columnsMoveCmd = &cobra.Command{
	Use:   "move <column> <position>",
	Short: "Move a column to a 1-based position",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		pos, err := strconv.Atoi(args[1])
		if err != nil || pos < 1 {
			fail("Position must be a number from 1, got %q", args[1])
		}
		editColumns(cmd.Context(), func(ed *editor.Editor) error {
			return ed.Move(args[0], pos-1)
		})
	},
}

var columnsAddCmd = &cobra.Command{
	Use:   "add <column>",
	Short: "Add a column",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		col := schema.Column{
			Name:        args[0],
			DisplayName: columnsDisplay,
			Visible:     !columnsHidden,
			Attributes:  schema.ParseAttributes(columnsAttrs),
		}
		editColumns(cmd.Context(), func(ed *editor.Editor) error {
			return ed.Add(col)
		})
	},
}

var columnsRemoveCmd = &cobra.Command{
	Use:   "remove <column>",
	Short: "Remove a column",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		editColumns(cmd.Context(), func(ed *editor.Editor) error {
			return ed.Remove(args[0])
		})
	},
}

var columnsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the column set to a YAML file",
	Run: func(cmd *cobra.Command, args []string) {
		ed, id := openEditor(cmd.Context())
		if err := loader.SaveColumnsToYAML(columnsFile, id, ed.Columns()); err != nil {
			fail("Error writing %s: %v", columnsFile, err)
		}
		fmt.Printf("✅ Columns saved to: %s\n", columnsFile)
	},
}

var columnsApplyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Replace the column set with the one in a YAML file",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		location, columns, err := loader.LoadColumnsFromYAML(columnsFile)
		if err != nil {
			fail("Error loading %s: %v", columnsFile, err)
		}
		if location != "" && dbFlag == "" {
			dbFlag = location
		}
		editColumns(ctx, func(ed *editor.Editor) error {
			return ed.Replace(columns)
		})
	},
}

func init() {
	columnsTagCmd.Flags().BoolVar(&columnsOff, "off", false, "Clear the attribute instead")
	columnsAddCmd.Flags().StringVar(&columnsDisplay, "display", "", "Display name")
	columnsAddCmd.Flags().StringSliceVar(&columnsAttrs, "attr", nil, "Attributes (comma separated)")
	columnsAddCmd.Flags().BoolVar(&columnsHidden, "hidden", false, "Add the column hidden")

	for _, c := range []*cobra.Command{columnsExportCmd, columnsApplyCmd, columnsDiffCmd, columnsValidateCmd} {
		c.Flags().StringVarP(&columnsFile, "file", "f", "columns.yaml", "Column file")
	}
	for _, c := range []*cobra.Command{
		columnsTagCmd, columnsRenameCmd, columnsHideCmd, columnsUnhideCmd,
		columnsMoveCmd, columnsAddCmd, columnsRemoveCmd, columnsApplyCmd,
	} {
		c.Flags().BoolVar(&columnsDryRun, "dry-run", false, "Show the changes without saving")
	}

	columnsCmd.AddCommand(columnsListCmd)
	columnsCmd.AddCommand(columnsTagCmd)
	columnsCmd.AddCommand(columnsRenameCmd)
	columnsCmd.AddCommand(columnsHideCmd)
	columnsCmd.AddCommand(columnsUnhideCmd)
	columnsCmd.AddCommand(columnsMoveCmd)
	columnsCmd.AddCommand(columnsAddCmd)
	columnsCmd.AddCommand(columnsRemoveCmd)
	columnsCmd.AddCommand(columnsExportCmd)
	columnsCmd.AddCommand(columnsApplyCmd)
	columnsCmd.AddCommand(columnsDiffCmd)
	columnsCmd.AddCommand(columnsValidateCmd)
	columnsCmd.AddCommand(columnsDocsCmd)
}

func openEditor(ctx context.Context) (*editor.Editor, string) {
	id, err := locationID(ctx)
	if err != nil {
		fail("%v", err)
	}
	opts, err := app.API.GetOptions(ctx, id)
	if err != nil {
		fail("Error loading options: %v", err)
	}
	return editor.New(id, *opts, app.Bus, app.API), id
}

// editColumns applies one mutation, shows what changed and saves unless
// --dry-run is set.
func editColumns(ctx context.Context, mutate func(*editor.Editor) error) {
	ed, _ := openEditor(ctx)

	unsubscribe := events.Subscribe(app.Bus, func(ev events.ColumnAttributeChanged) {
		app.Logger.Debug("attribute toggled",
			zap.String("column", ev.Column),
			zap.String("attribute", string(ev.Attribute)),
			zap.Bool("on", ev.On))
	})
	defer unsubscribe()

	if err := mutate(ed); err != nil {
		fail("%v", err)
	}

	changes := ed.Changes()
	if len(changes) == 0 {
		fmt.Println("✅ No changes")
		return
	}
	showTextDiff(changes)

	if columnsDryRun {
		color.Yellow("\n🔍 Dry run, nothing saved")
		return
	}
	if err := ed.Save(ctx); err != nil {
		fail("Error saving columns: %v", err)
	}
	color.Green("\n✅ Saved %d change(s)", len(changes))
}

func printColumns(columns schema.ColumnSet) {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)
	bold.Printf("📋 %d columns:\n", len(columns))
	for i, c := range columns {
		attrs := make([]string, len(c.Attributes))
		for j, a := range c.Attributes {
			attrs[j] = string(a)
		}
		line := fmt.Sprintf("  %2d. %-24s %-24s [%s]", i+1, c.Name, c.Label(), strings.Join(attrs, ", "))
		if !c.Visible {
			faint.Println(line + " (hidden)")
			continue
		}
		fmt.Println(line)
	}
}
