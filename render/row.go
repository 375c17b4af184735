package render

import (
	"fmt"
	"strings"

	"github.com/ridoystarlord/invctl/schema"
	"github.com/shopspring/decimal"
)

type ActionKind string

const (
	ActionEdit  ActionKind = "edit"
	ActionPrint ActionKind = "print"
)

// Action is one button of a row's actions cell.
type Action struct {
	Kind    ActionKind
	Percent float64
	Label   string
}

type Cell struct {
	Column string
	Label  string
	Value  string
}

// Row is the rendered form of one record.
type Row struct {
	Record  schema.Record
	Cells   []Cell
	Actions []Action
}

// RenderRow renders one cell per visible column in set order followed by the
// row actions. form may be nil.
func RenderRow(record schema.Record, columns schema.ColumnSet, form *schema.PrintForm) Row {
	row := Row{Record: record}
	for _, col := range columns.Visible() {
		row.Cells = append(row.Cells, Cell{
			Column: col.Name,
			Label:  col.Label(),
			Value:  FormatValue(col, record.Get(col.Name)),
		})
	}
	row.Actions = Actions(form)
	return row
}

// FormatValue applies the column's display rules to raw.
func FormatValue(col schema.Column, raw string) string {
	if col.Has(schema.Price) || col.Has(schema.MardensPrice) {
		return FormatCurrency(raw)
	}
	if strings.TrimSpace(raw) == "" {
		return Placeholder
	}
	return raw
}

// Actions lists the row actions offered for form.
func Actions(form *schema.PrintForm) []Action {
	actions := []Action{{Kind: ActionEdit, Label: "edit"}}
	if form == nil || len(form.Percentages) == 0 {
		return append(actions, Action{Kind: ActionPrint, Label: "print"})
	}
	for _, p := range form.Percentages {
		actions = append(actions, Action{
			Kind:    ActionPrint,
			Percent: p,
			Label:   fmt.Sprintf("print -%s%%", decimal.NewFromFloat(p).String()),
		})
	}
	return actions
}

// ActionLabels joins the labels of a row's actions.
func (r Row) ActionLabels() string {
	labels := make([]string, len(r.Actions))
	for i, a := range r.Actions {
		labels[i] = a.Label
	}
	return strings.Join(labels, " | ")
}
