// Package report renders tableau snapshots and final solutions for people
// (lipgloss tables, plain matrices) and for programs (JSON, YAML).
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"q.log/tableau/model"
	"q.log/tableau/simplex"
)

var ErrUnknownFormat = errors.New("report: unknown output format")

// Output formats.
const (
	FormatTable = "table"
	FormatPlain = "plain"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// Variable is one entry of a solution listing.
type Variable struct {
	Name  string  `json:"name" yaml:"name"`
	Kind  string  `json:"kind" yaml:"kind"`
	Value float64 `json:"value" yaml:"value"`
	Basic bool    `json:"basic" yaml:"basic"`
}

// Result is the machine readable outcome of a solve.
type Result struct {
	Status     string     `json:"status" yaml:"status"`
	Code       int        `json:"code" yaml:"code"`
	Iterations int        `json:"iterations" yaml:"iterations"`
	Objective  *float64   `json:"objective,omitempty" yaml:"objective,omitempty"`
	Reference  *float64   `json:"reference,omitempty" yaml:"reference,omitempty"`
	Variables  []Variable `json:"variables,omitempty" yaml:"variables,omitempty"`
}

// NewResult summarizes t after a solve that ended with status. The
// objective and variable values are only reported for OK.
func NewResult(t *model.Tableau, status simplex.Status, iterations int) *Result {
	r := &Result{
		Status:     status.String(),
		Code:       int(status),
		Iterations: iterations,
	}
	if status != simplex.OK {
		return r
	}

	z := t.ObjectiveValue()
	r.Objective = &z

	basic := make(map[int]bool)
	for i := range t.NumConstraints() {
		if b, ok := t.Basic(i); ok {
			basic[b] = true
		}
	}
	for j, v := range t.Solution() {
		r.Variables = append(r.Variables, Variable{
			Name:  t.Label(j),
			Kind:  t.Kind(j).String(),
			Value: v,
			Basic: basic[j],
		})
	}
	return r
}

// Encode writes r as JSON or YAML.
func Encode(w io.Writer, format string, r *Result) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// Snapshot renders t in a human readable format.
func Snapshot(format string, t *model.Tableau) (string, error) {
	switch format {
	case FormatTable:
		return Table(t), nil
	case FormatPlain:
		return Plain(t), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// Solution lists the basic variables with their values followed by the
// objective value.
func Solution(t *model.Tableau) string {
	var b strings.Builder
	for i := range t.NumConstraints() {
		col, ok := t.Basic(i)
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "%s: %s\n", t.Label(col), number(t.At(i, t.RHSColumn())))
	}
	fmt.Fprintf(&b, "z: %s\n", number(t.ObjectiveValue()))
	return b.String()
}

func number(v float64) string {
	if v == 0 {
		v = 0 // no -0.0000
	}
	return fmt.Sprintf("%.4f", v)
}

// cell formats (row, col) for display; basis cells are shown as the
// variable's label.
func cell(t *model.Tableau, row, col int) string {
	if col != t.BasisColumn() {
		return number(t.At(row, col))
	}
	if b, ok := t.Basic(row); ok {
		return t.Label(b)
	}
	return "-"
}
