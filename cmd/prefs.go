package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Show or change the print preferences of this device",
}

var prefsGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the preferences of the selected database",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		id, err := locationID(ctx)
		if err != nil {
			fail("%v", err)
		}
		o, err := app.Prefs.PrintOverrides(ctx, id)
		if err != nil {
			fail("Error reading preferences: %v", err)
		}
		auto, err := app.Prefs.AutoPrint(ctx, id)
		if err != nil {
			fail("Error reading preferences: %v", err)
		}

		fmt.Printf("⚙️  Preferences for database %s:\n", id)
		fmt.Printf("  • year: %s\n", orUnset(o.Year))
		fmt.Printf("  • color: %s\n", orUnset(o.Color))
		fmt.Printf("  • department: %s\n", orUnset(o.Department))
		fmt.Printf("  • auto-print: %t\n", auto)
	},
}

var prefsSetCmd = &cobra.Command{
	Use:   "set <year|color|department|auto-print> [value]",
	Short: "Change a preference; an omitted value clears it",
	Args:  cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		id, err := locationID(ctx)
		if err != nil {
			fail("%v", err)
		}
		value := ""
		if len(args) == 2 {
			value = args[1]
		}

		switch args[0] {
		case "year":
			err = app.Prefs.SetPrintYear(ctx, id, value)
		case "color":
			err = app.Prefs.SetPrintColor(ctx, id, value)
		case "department":
			err = app.Prefs.SetPrintDepartment(ctx, id, value)
		case "auto-print":
			on := false
			if value != "" {
				if on, err = strconv.ParseBool(value); err != nil {
					fail("auto-print takes true or false, got %q", value)
				}
			}
			err = app.Prefs.SetAutoPrint(ctx, id, on)
		default:
			fail("Unknown preference %q", args[0])
		}
		if err != nil {
			fail("Error saving preference: %v", err)
		}
		fmt.Printf("✅ %s = %s\n", args[0], orUnset(value))
	},
}

func orUnset(v string) string {
	if v == "" {
		return "(unset)"
	}
	return v
}

func init() {
	prefsCmd.AddCommand(prefsGetCmd)
	prefsCmd.AddCommand(prefsSetCmd)
}
