package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/ridoystarlord/invctl/api"
	"github.com/ridoystarlord/invctl/records"
	"github.com/ridoystarlord/invctl/schema"
	"github.com/spf13/cobra"
)

var (
	printForm    string
	printPercent float64
	printNoOpen  bool
)

var printCmd = &cobra.Command{
	Use:   "print <primary-key>",
	Short: "Print the label of one record",
	Long: `Build the label URL for a record and open it in the browser.

Year, color and department saved with 'invctl prefs set' win over the print
form's values.

Examples:
  invctl print 012345678905                  # Plain price
  invctl print 012345678905 --percent 20     # 20% off variant
  invctl print 012345678905 --no-open        # Only show the URL
`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		id, err := locationID(ctx)
		if err != nil {
			fail("%v", err)
		}
		opts, err := app.API.GetOptions(ctx, id)
		if err != nil {
			fail("Error loading options: %v", err)
		}
		columns := schema.EnforceSingleSelection(opts.Columns)
		form := findPrintForm(opts, printForm)

		record, err := findRecord(ctx, id, columns, args[0])
		if err != nil {
			fail("%v", err)
		}

		d := newDispatcher()
		if printNoOpen {
			d.Opener = nil
		}
		u, err := d.Print(ctx, id, *record, columns, form, printPercent)
		if err != nil {
			fail("Error building label: %v", err)
		}
		fmt.Printf("🖨️  %s\n", u)
	},
}

func init() {
	printCmd.Flags().StringVar(&printForm, "form", "", "Print form ID (default: the first one)")
	printCmd.Flags().Float64VarP(&printPercent, "percent", "p", 0, "Percentage off")
	printCmd.Flags().BoolVar(&printNoOpen, "no-open", false, "Print the URL without opening it")
}

// findRecord looks up the record whose primary column equals key. Search
// matches loosely, so a whole page is scanned for the exact key.
func findRecord(ctx context.Context, id string, columns schema.ColumnSet, key string) (*schema.Record, error) {
	pk := columns.PrimaryKey()
	page, err := app.API.ListRecords(ctx, id, api.Query{Limit: records.PageSize, Search: key, Columns: []string{pk}})
	if err != nil {
		return nil, fmt.Errorf("look up %s: %w", key, err)
	}
	for _, r := range page.Data {
		if strings.TrimSpace(r.Get(pk)) == key {
			found := r
			return &found, nil
		}
	}
	return nil, fmt.Errorf("no record with %s = %s", pk, key)
}
