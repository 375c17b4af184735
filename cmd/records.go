package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/ridoystarlord/invctl/events"
	"github.com/ridoystarlord/invctl/printing"
	"github.com/ridoystarlord/invctl/records"
	"github.com/ridoystarlord/invctl/render"
	"github.com/ridoystarlord/invctl/schema"
	"github.com/spf13/cobra"
)

var (
	recordsSort        string
	recordsDesc        bool
	recordsSearch      string
	recordsInteractive bool
	recordsForm        string
)

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "List or search the records of a database",
	Long: `List the first page of records, or search the search-tagged columns.

In interactive mode every line typed on stdin becomes the new search text;
the query is sent once typing pauses. When auto-print is on for the
database, a search with exactly one hit prints its label.

Examples:
  invctl records                         # First page sorted by the primary column
  invctl records --sort price --desc     # Sort by another column
  invctl records --search "blue vase"    # Search once
  invctl records -i                      # Type searches interactively
`,
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
		form := findPrintForm(opts, recordsForm)
		params := records.Params{
			LocationID: id,
			SortBy:     recordsSort,
			Ascending:  !recordsDesc,
			Search:     recordsSearch,
		}

		if recordsInteractive {
			if err := runInteractive(ctx, params, columns, form); err != nil {
				fail("%v", err)
			}
			return
		}

		ctrl := records.NewController(app.API, app.Logger.Named("records"))
		res, err := ctrl.Load(ctx, params, columns)
		if err != nil {
			fail("Error loading records: %v", err)
		}
		if res == nil {
			return
		}
		printResult(*res, columns, form)
	},
}

func init() {
	recordsCmd.Flags().StringVarP(&recordsSort, "sort", "s", "", "Column to sort by (default: the primary column)")
	recordsCmd.Flags().BoolVar(&recordsDesc, "desc", false, "Sort descending")
	recordsCmd.Flags().StringVarP(&recordsSearch, "search", "q", "", "Search text")
	recordsCmd.Flags().BoolVarP(&recordsInteractive, "interactive", "i", false, "Read searches from stdin")
	recordsCmd.Flags().StringVar(&recordsForm, "form", "", "Print form for the row actions (default: the first one)")
}

// findPrintForm returns the form with id, or the first form when id is empty.
func findPrintForm(opts *schema.Options, id string) *schema.PrintForm {
	for i := range opts.PrintForms {
		if id == "" || opts.PrintForms[i].ID == id {
			return &opts.PrintForms[i]
		}
	}
	if id != "" {
		fail("Print form %q not found", id)
	}
	return nil
}

func newDispatcher() *printing.Dispatcher {
	return &printing.Dispatcher{
		BaseURL:   app.Config.PrintURL,
		Opener:    printing.BrowserOpener{},
		Overrides: app.Prefs,
		Logger:    app.Logger.Named("print"),
	}
}

func printResult(res records.Result, columns schema.ColumnSet, form *schema.PrintForm) {
	if len(res.Records) == 0 {
		fmt.Println("📭 No records found")
		return
	}
	rows := make([]render.Row, 0, len(res.Records))
	for _, r := range res.Records {
		rows = append(rows, render.RenderRow(r, columns, form))
	}
	render.Table(os.Stdout, columns, rows)

	if res.Total != nil {
		fmt.Printf("\n📊 %d of %d records\n", len(res.Records), *res.Total)
	} else {
		fmt.Printf("\n📊 %d records\n", len(res.Records))
	}
}

func runInteractive(ctx context.Context, params records.Params, columns schema.ColumnSet, form *schema.PrintForm) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	view := records.NewView(ctx, records.ViewConfig{
		Controller: records.NewController(app.API, app.Logger.Named("records")),
		Bus:        app.Bus,
		Logger:     app.Logger.Named("view"),
		Debounce:   app.Config.SearchDebounce,
	}, params, columns)
	defer view.Close()

	auto := &printing.AutoPrinter{
		Dispatcher: newDispatcher(),
		Prefs:      app.Prefs,
		Columns:    view.Columns,
		Form:       form,
		Logger:     app.Logger.Named("autoprint"),
	}
	view.OnResult = func(ctx context.Context, res records.Result) {
		printResult(res, view.Columns(), form)
		if u := auto.Handle(ctx, res); u != "" {
			color.Green("🖨️  Auto-printed %s", u)
		}
		fmt.Print("🔎 ")
	}

	unsubscribe := events.Subscribe(app.Bus, func(ev events.LoadFailed) {
		color.Red("❌ %v", ev.Err)
		fmt.Print("🔎 ")
	})
	defer unsubscribe()

	if err := view.Refresh(ctx); err != nil {
		return err
	}

	fmt.Println("Type to search, an empty line clears it, Ctrl-D quits.")
	fmt.Print("🔎 ")
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		view.SetSearch(strings.TrimSpace(scanner.Text()))
	}
	return scanner.Err()
}
