package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gonum.org/v1/gonum/mat"

	"q.log/tableau/model"
)

var (
	headerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true).Padding(0, 1)
	cellStyle      = lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Right)
	objectiveStyle = cellStyle.Foreground(lipgloss.Color("226"))
	markerStyle    = cellStyle.Foreground(lipgloss.Color("245"))
	labelStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("45")).Padding(0, 1)
	borderStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

// Table renders t as a bordered table with one labelled column per tableau
// column and one labelled row per tableau row.
func Table(t *model.Tableau) string {
	headers := []string{""}
	for j := range t.Cols() {
		headers = append(headers, t.Label(j))
	}

	rows := make([][]string, t.Rows())
	for i := range rows {
		row := []string{t.RowLabel(i)}
		for j := range t.Cols() {
			row = append(row, cell(t, i, j))
		}
		rows[i] = row
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return labelStyle
			case col-1 >= t.ZColumn():
				return markerStyle
			case row >= t.NumConstraints():
				return objectiveStyle
			}
			return cellStyle
		}).
		String()
}

// Plain renders t with gonum's matrix formatter: the numeric cells first,
// then the column labels and the basis of every row.
func Plain(t *model.Tableau) string {
	var b strings.Builder

	labels := make([]string, 0, t.Cols())
	for j := range t.Cols() {
		labels = append(labels, t.Label(j))
	}
	fmt.Fprintf(&b, "columns: %s\n", strings.Join(labels, " "))
	fmt.Fprintf(&b, "T = %v\n", mat.Formatted(t.Dense(), mat.Prefix("    "), mat.Squeeze()))

	basis := make([]string, 0, t.Rows())
	for i := range t.Rows() {
		basis = append(basis, cell(t, i, t.BasisColumn()))
	}
	fmt.Fprintf(&b, "basis: %s\n", strings.Join(basis, " "))
	return b.String()
}
