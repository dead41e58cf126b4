// Package table provides the tabular structure the simulation pipeline
// populates and reads back: ordered headers, string cells, and a styled
// terminal rendering.
package table

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().
			Padding(0, 1)

	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#874BFD"))
)

// Table is an ordered grid of string cells under fixed headers.
type Table struct {
	headers []string
	rows    [][]string
}

// New creates an empty table with the given column headers.
func New(headers ...string) *Table {
	return &Table{headers: headers}
}

// Append adds one row. Short rows are padded with empty cells so every row
// matches the header width.
func (t *Table) Append(cells ...string) {
	row := make([]string, len(t.headers))
	copy(row, cells)
	t.rows = append(t.rows, row)
}

// Headers returns the column headers.
func (t *Table) Headers() []string {
	return append([]string(nil), t.headers...)
}

// Rows returns a copy of all rows in insertion order.
func (t *Table) Rows() [][]string {
	rows := make([][]string, len(t.rows))
	for i, r := range t.rows {
		rows[i] = append([]string(nil), r...)
	}
	return rows
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Cell returns the value at (row, col).
func (t *Table) Cell(row, col int) string {
	return t.rows[row][col]
}

// Render draws the table with lipgloss styling for terminal display.
func (t *Table) Render() string {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.rows {
		for i, c := range row {
			if w := lipgloss.Width(c); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var lines []string

	headerCells := make([]string, len(t.headers))
	for i, h := range t.headers {
		headerCells[i] = headerStyle.Width(widths[i] + 2).Render(h)
	}
	lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, headerCells...))

	for _, row := range t.rows {
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = cellStyle.Width(widths[i] + 2).Render(c)
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	return frameStyle.Render(strings.Join(lines, "\n"))
}
