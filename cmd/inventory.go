package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/ridoystarlord/invctl/inventorying"
	"github.com/ridoystarlord/invctl/records"
	"github.com/ridoystarlord/invctl/schema"
	"github.com/spf13/cobra"
)

var (
	inventoryAdd        bool
	inventoryFields     []string
	inventoryDepartment string
	inventoryYes        bool
	inventoryLoop       bool
)

var inventoryCmd = &cobra.Command{
	Use:   "inventory [primary-key quantity]",
	Short: "Count items into the selected database",
	Long: `Adjust the quantity of an item found by its primary key.

By default the quantity is added to the stored one. With --add it replaces
it, and missing items are created. A scan that finds nothing switches the
next submission to add mode. After each submission the matching records are
listed again. With --loop, each stdin line holds
"<primary-key> <quantity>".

Examples:
  invctl inventory 012345678905 3            # stored + 3
  invctl inventory 012345678905 -1           # stored - 1
  invctl inventory 999 5 --add --field description="Blue vase"
  invctl inventory --loop < scans.txt
`,
	Args: func(cmd *cobra.Command, args []string) error {
		if inventoryLoop {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.ExactArgs(2)(cmd, args)
	},
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
		fields, err := parseFields(inventoryFields)
		if err != nil {
			fail("%v", err)
		}

		if inventoryAdd && !opts.Inventorying.AllowAdditions {
			fail("Additions are disabled for database %s", id)
		}

		columns := schema.EnforceSingleSelection(opts.Columns)
		form := findPrintForm(opts, "")
		lister := records.NewController(app.API, app.Logger.Named("records"))
		current := ""

		stdin := bufio.NewReader(os.Stdin)
		ctrl := inventorying.NewController(inventorying.Config{
			LocationID: id,
			Columns:    columns,
			Options:    opts.Inventorying,
			Backend:    app.API,
			Confirmer:  promptConfirmer{in: stdin, yes: inventoryYes},
			Refresh: relister(lister, id, columns, func() string { return current }, func(res records.Result) {
				printResult(res, columns, form)
			}),
			Logger: app.Logger.Named("inventory"),
		})
		if _, _, err := ctrl.Check(); err != nil {
			fail("Inventorying is not available: %v", err)
		}
		ctrl.SetAddMode(inventoryAdd)

		if !inventoryLoop {
			current = args[0]
			if !submit(ctx, ctrl, args[0], args[1], fields) {
				os.Exit(1)
			}
			return
		}

		fmt.Println("Scan '<key> <quantity>' per line, Ctrl-D quits.")
		for {
			fmt.Print("📦 ")
			line, err := stdin.ReadString('\n')
			if f := strings.Fields(line); len(f) == 2 {
				current = f[0]
				submit(ctx, ctrl, f[0], f[1], fields)
			} else if strings.TrimSpace(line) != "" {
				color.Yellow("⚠️  expected '<key> <quantity>'")
			}
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				fail("%v", err)
			}
		}
	},
}

func init() {
	inventoryCmd.Flags().BoolVarP(&inventoryAdd, "add", "a", false, "Set absolute quantities and create missing items")
	inventoryCmd.Flags().StringArrayVarP(&inventoryFields, "field", "f", nil, "Extra column value as column=value (repeatable)")
	inventoryCmd.Flags().StringVar(&inventoryDepartment, "department", "", "Department ID for department-tagged columns")
	inventoryCmd.Flags().BoolVarP(&inventoryYes, "yes", "y", false, "Delete items reaching zero without asking")
	inventoryCmd.Flags().BoolVar(&inventoryLoop, "loop", false, "Read submissions from stdin")
}

func submit(ctx context.Context, ctrl *inventorying.Controller, key, qty string, fields map[string]string) bool {
	res, err := ctrl.Submit(ctx, inventorying.Submission{
		PrimaryKey:   key,
		Quantity:     qty,
		Fields:       fields,
		DepartmentID: inventoryDepartment,
	})
	if err != nil {
		var verr *inventorying.ValidationError
		if errors.As(err, &verr) {
			color.Yellow("⚠️  %v", verr)
		} else {
			color.Red("❌ %v", err)
		}
		return false
	}

	switch res.Outcome {
	case inventorying.OutcomeUpdated:
		color.Green("✅ %s now %d", key, res.Quantity)
	case inventorying.OutcomeCreated:
		color.Green("➕ %s created with %d", key, res.Quantity)
	case inventorying.OutcomeDeleted:
		color.Red("🗑️  %s deleted", key)
	case inventorying.OutcomeDeclined:
		fmt.Printf("↩️  %s kept\n", key)
	case inventorying.OutcomeNotFound:
		color.Yellow("🔍 %s not found", key)
		if ctrl.AddMode() {
			fmt.Println("   Add mode is on for the next scan; submit again to create it")
		}
		return false
	}
	return true
}

// relister re-runs the listing for the last scanned key so the operator sees
// the change.
func relister(lister *records.Controller, id string, columns schema.ColumnSet, key func() string, show func(records.Result)) func(context.Context) error {
	return func(ctx context.Context) error {
		res, err := lister.Load(ctx, records.Params{LocationID: id, Ascending: true, Search: key()}, columns)
		if err != nil || res == nil {
			return err
		}
		show(*res)
		return nil
	}
}

func parseFields(raw []string) (map[string]string, error) {
	out := make(map[string]string, len(raw))
	for _, f := range raw {
		k, v, ok := strings.Cut(f, "=")
		if !ok || strings.TrimSpace(k) == "" {
			return nil, fmt.Errorf("invalid --field %q, want column=value", f)
		}
		out[strings.TrimSpace(k)] = v
	}
	return out, nil
}

type promptConfirmer struct {
	in  *bufio.Reader
	yes bool
}

func (p promptConfirmer) Confirm(message string) bool {
	if p.yes {
		return true
	}
	fmt.Printf("⚠️  %s [y/N] ", message)
	answer, _ := p.in.ReadString('\n')
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
