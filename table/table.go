// Package table lays out rows of text in aligned columns that fit the terminal.
package table

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/padding"
	"github.com/muesli/reflow/truncate"
	"github.com/pagelinks/pagelinks/style"
	"github.com/samber/lo"
)

const (
	gap      = "  "
	minWidth = 8
	ellipsis = "…"
)

// Table collects rows before rendering them.
type Table struct {
	headers []string
	rows    [][]string
	// Highlight, when set, styles the cells of a row; it gets the raw row.
	Highlight func(row []string, cell string) string
}

// New returns a table with the given column headers.
func New(headers ...string) *Table {
	return &Table{headers: headers}
}

// Append adds a row. Missing cells render empty and extra cells are dropped.
func (t *Table) Append(cells ...string) {
	row := make([]string, len(t.headers))
	copy(row, cells)
	t.rows = append(t.rows, row)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Widths returns the column widths used to fit the table in width cells.
// A width of 0 or less disables fitting.
func (t *Table) Widths(width int) []int {
	widths := lo.Map(t.headers, func(h string, _ int) int { return lipgloss.Width(h) })
	for _, row := range t.rows {
		for i, cell := range row {
			widths[i] = lo.Max([]int{widths[i], lipgloss.Width(cell)})
		}
	}

	if width <= 0 || len(widths) == 0 {
		return widths
	}

	available := width - len(gap)*(len(widths)-1)
	for lo.Sum(widths) > available {
		widest := lo.MaxBy(lo.Range(len(widths)), func(a, b int) bool { return widths[a] > widths[b] })
		if widths[widest] <= minWidth {
			break
		}
		widths[widest]--
	}

	return widths
}

// Render lays the table out within width terminal cells.
func (t *Table) Render(width int) string {
	widths := t.Widths(width)

	var b strings.Builder
	b.WriteString(t.line(widths, t.headers, func(_ []string, cell string) string { return style.Bold(cell) }))

	for _, row := range t.rows {
		b.WriteString("\n")
		b.WriteString(t.line(widths, row, t.Highlight))
	}

	return b.String()
}

func (t *Table) line(widths []int, row []string, highlight func([]string, string) string) string {
	cells := make([]string, len(row))
	for i, cell := range row {
		w := uint(widths[i])
		cell = truncate.StringWithTail(cell, w, ellipsis)
		if highlight != nil {
			cell = highlight(row, cell)
		}
		if i < len(row)-1 {
			cell = padding.String(cell, w)
		}
		cells[i] = cell
	}
	return strings.Join(cells, gap)
}
