package render

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/ridoystarlord/invctl/schema"
)

// Table writes rows as an aligned text table with a highlighted header.
func Table(w io.Writer, columns schema.ColumnSet, rows []Row) {
	visible := columns.Visible()
	header := make([]string, 0, len(visible)+1)
	for _, col := range visible {
		header = append(header, col.Label())
	}
	header = append(header, "actions")

	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = utf8.RuneCountInString(h)
	}
	lines := make([][]string, 0, len(rows))
	for _, row := range rows {
		line := make([]string, 0, len(header))
		for _, cell := range row.Cells {
			line = append(line, cell.Value)
		}
		line = append(line, row.ActionLabels())
		for i, v := range line {
			if n := utf8.RuneCountInString(v); i < len(widths) && n > widths[i] {
				widths[i] = n
			}
		}
		lines = append(lines, line)
	}

	bold := color.New(color.FgCyan, color.Bold)
	for i, h := range header {
		bold.Fprint(w, pad(h, widths[i]))
		if i < len(header)-1 {
			fmt.Fprint(w, "  ")
		}
	}
	fmt.Fprintln(w)

	total := 0
	for _, width := range widths {
		total += width + 2
	}
	fmt.Fprintln(w, strings.Repeat("-", total))

	for _, line := range lines {
		for i, v := range line {
			fmt.Fprint(w, pad(v, widths[i]))
			if i < len(line)-1 {
				fmt.Fprint(w, "  ")
			}
		}
		fmt.Fprintln(w)
	}
}

func pad(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}
