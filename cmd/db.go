package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "List and select inventory databases",
}

var dbListCmd = &cobra.Command{
	Use:   "list",
	Short: "List inventory databases",
	Run: func(cmd *cobra.Command, args []string) {
		locations, err := app.API.ListLocations(cmd.Context())
		if err != nil {
			fail("Error listing databases: %v", err)
		}
		if len(locations) == 0 {
			fmt.Println("📭 No databases found")
			return
		}

		current, _ := app.Prefs.LoadedLocation(cmd.Context())
		green := color.New(color.FgGreen, color.Bold)
		fmt.Printf("📋 %d databases:\n", len(locations))
		for _, l := range locations {
			line := fmt.Sprintf("  %-6s %-30s %-20s PO %s", l.ID, l.Name, l.Location, l.PO)
			if l.ID.String() == current {
				green.Println(line + "  ◀ selected")
				continue
			}
			fmt.Println(line)
		}
	},
}

var dbShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show one database and its options",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		if len(args) == 1 {
			dbFlag = args[0]
		}
		id, err := locationID(ctx)
		if err != nil {
			fail("%v", err)
		}

		loc, err := app.API.GetLocation(ctx, id)
		if err != nil {
			fail("Error loading database: %v", err)
		}
		opts, err := app.API.GetOptions(ctx, id)
		if err != nil {
			fail("Error loading options: %v", err)
		}

		fmt.Printf("🗄️  %s (%s)\n", loc.Name, loc.ID)
		fmt.Printf("  • Location: %s\n", loc.Location)
		fmt.Printf("  • PO: %s\n", loc.PO)
		fmt.Printf("  • Posted: %s\n", loc.PostDate)
		fmt.Printf("  • Columns: %d (%d visible)\n", len(opts.Columns), len(opts.Columns.Visible()))
		fmt.Printf("  • Inventorying: additions=%t add-if-missing=%t remove-if-zero=%t\n",
			opts.Inventorying.AllowAdditions, opts.Inventorying.AddIfMissing, opts.Inventorying.RemoveIfZero)
		if len(opts.PrintForms) > 0 {
			fmt.Println("  • Print forms:")
			for _, f := range opts.PrintForms {
				fmt.Printf("      %-10s %s %v\n", f.ID, f.Label, f.Percentages)
			}
		}
	},
}

var dbUseCmd = &cobra.Command{
	Use:   "use <id>",
	Short: "Select the database later commands work on",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		loc, err := app.API.GetLocation(ctx, args[0])
		if err != nil {
			fail("Error loading database %s: %v", args[0], err)
		}
		if err := app.Prefs.SetLoadedLocation(ctx, args[0]); err != nil {
			fail("Error saving selection: %v", err)
		}
		fmt.Printf("✅ Using %s (%s)\n", loc.Name, args[0])
	},
}

func init() {
	dbCmd.AddCommand(dbListCmd)
	dbCmd.AddCommand(dbShowCmd)
	dbCmd.AddCommand(dbUseCmd)
}
