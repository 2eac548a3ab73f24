package model

import "fmt"

// VariableKind is the role of a tableau column.
type VariableKind int

const (
	Real VariableKind = iota
	Slack
	Artificial
	ObjectiveMarker
	Constant
	BasisIndex
)

func (k VariableKind) String() string {
	switch k {
	case Real:
		return "real"
	case Slack:
		return "slack"
	case Artificial:
		return "artificial"
	case ObjectiveMarker:
		return "z"
	case Constant:
		return "const"
	case BasisIndex:
		return "basic"
	}
	return fmt.Sprintf("VariableKind(%d)", int(k))
}

// Kind returns the role of column col.
func (t *Tableau) Kind(col int) VariableKind {
	switch {
	case col < 0 || col >= t.Cols():
		panic(indexErrorf("Kind", 0, col))
	case col < t.numReal:
		return Real
	case col < t.numReal+t.numSlack:
		return Slack
	case col < t.NumVars():
		return Artificial
	case col == t.ZColumn():
		return ObjectiveMarker
	case col == t.RHSColumn():
		return Constant
	}
	return BasisIndex
}

// Label returns the display name of column col: x0.., s0.., a0.. for
// variables, then z, const and basic for the marker columns.
func (t *Tableau) Label(col int) string {
	switch k := t.Kind(col); k {
	case Real:
		return fmt.Sprintf("x%d", col)
	case Slack:
		return fmt.Sprintf("s%d", col-t.numReal)
	case Artificial:
		return fmt.Sprintf("a%d", col-t.numReal-t.numSlack)
	default:
		return k.String()
	}
}

// RowLabel returns c0.. for constraint rows and obj0.. for objective rows.
func (t *Tableau) RowLabel(row int) string {
	if row < t.numConstraints {
		return fmt.Sprintf("c%d", row)
	}
	return fmt.Sprintf("obj%d", row-t.numConstraints)
}
