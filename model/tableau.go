package model

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/mat"
)

// NoBasis marks a constraint row that has no basic variable assigned yet.
// Such rows receive an artificial variable in phase 1.
const NoBasis = -1

var (
	ErrInvalidDimensions = errors.New("model: invalid dimensions")
	ErrIndexOutOfBounds  = errors.New("model: index out of bounds")
	ErrNotArtificial     = errors.New("model: column is not an artificial variable")
	ErrInvalidBasis      = errors.New("model: invalid basis index")
	ErrLastRow           = errors.New("model: cannot delete the only row")
)

func indexErrorf(method string, row, col int) error {
	return fmt.Errorf("Tableau.%s(%d,%d): %w", method, row, col, ErrIndexOutOfBounds)
}

// Tableau is the dense working matrix of the two-phase simplex method.
//
// Columns are laid out as real variables, slack variables, artificial
// variables, then three marker columns: the objective marker (z), the
// right-hand side (const) and the basis index. The first two markers live in
// the numeric store; the basis index is kept per row as an int so that the
// NoBasis sentinel never round-trips through a float.
//
// Rows are the constraint rows followed by one objective row, or two during
// phase 1 where the last row is the auxiliary objective.
type Tableau struct {
	numReal        int
	numSlack       int
	numArtificial  int
	numConstraints int

	// minimize is set when the objective was negated to fit the
	// maximization form.
	minimize bool

	// data is rows × (NumVars()+2): variables, z, rhs.
	data  *mat.Dense
	basis []int
}

// NewTableau returns a zeroed tableau with numConstraints constraint rows
// and one objective row whose z cell is 1. Every row starts with NoBasis.
func NewTableau(numReal, numSlack, numConstraints int) (*Tableau, error) {
	if numReal < 0 || numSlack < 0 || numConstraints < 0 || numReal+numSlack == 0 {
		return nil, fmt.Errorf("%w: %d real, %d slack, %d constraints",
			ErrInvalidDimensions, numReal, numSlack, numConstraints)
	}

	t := &Tableau{
		numReal:        numReal,
		numSlack:       numSlack,
		numConstraints: numConstraints,
		data:           mat.NewDense(numConstraints+1, numReal+numSlack+2, nil),
		basis:          make([]int, numConstraints+1),
	}
	for i := range t.basis {
		t.basis[i] = NoBasis
	}
	t.data.Set(numConstraints, t.ZColumn(), 1)

	return t, nil
}

// Clone returns a deep copy of t.
func (t *Tableau) Clone() *Tableau {
	c := *t
	c.data = mat.DenseCopyOf(t.data)
	c.basis = slices.Clone(t.basis)
	return &c
}

func (t *Tableau) Rows() int {
	r, _ := t.data.Dims()
	return r
}

// Cols counts the variables plus the three marker columns.
func (t *Tableau) Cols() int { return t.NumVars() + 3 }

func (t *Tableau) NumVars() int        { return t.numReal + t.numSlack + t.numArtificial }
func (t *Tableau) NumReal() int        { return t.numReal }
func (t *Tableau) NumSlack() int       { return t.numSlack }
func (t *Tableau) NumArtificial() int  { return t.numArtificial }
func (t *Tableau) NumConstraints() int { return t.numConstraints }

func (t *Tableau) ZColumn() int     { return t.NumVars() }
func (t *Tableau) RHSColumn() int   { return t.NumVars() + 1 }
func (t *Tableau) BasisColumn() int { return t.NumVars() + 2 }

// ObjectiveRow is the row currently being optimized: the auxiliary
// objective during phase 1, the real objective otherwise.
func (t *Tableau) ObjectiveRow() int { return t.Rows() - 1 }

// FirstArtificial is the index of the first artificial column.
func (t *Tableau) FirstArtificial() int { return t.numReal + t.numSlack }

// At returns the cell at (row, col). Reading the basis column yields the
// row's basis index as a float, or NoBasis.
func (t *Tableau) At(row, col int) float64 {
	if col == t.BasisColumn() {
		t.checkRow("At", row, col)
		return float64(t.basis[row])
	}
	return t.data.At(row, col)
}

// Set writes v into (row, col). Writing the basis column assigns the row's
// basis: negative values clear it, anything else must be the index of a
// variable column. Set panics on an invalid basis value.
func (t *Tableau) Set(row, col int, v float64) {
	if col == t.BasisColumn() {
		t.checkRow("Set", row, col)
		if v < 0 {
			t.basis[row] = NoBasis
			return
		}
		if v != math.Trunc(v) || v >= float64(t.NumVars()) {
			panic(fmt.Errorf("model: Set(%d, %d): %w %g", row, col, ErrInvalidBasis, v))
		}
		if err := t.SetBasic(row, int(v)); err != nil {
			panic(err)
		}
		return
	}
	t.data.Set(row, col, v)
}

// Basic returns the variable that is basic in row, if any.
func (t *Tableau) Basic(row int) (int, bool) {
	t.checkRow("Basic", row, t.BasisColumn())
	b := t.basis[row]
	return b, b != NoBasis
}

// SetBasic records col as the basic variable of row. NoBasis clears it.
func (t *Tableau) SetBasic(row, col int) error {
	if row < 0 || row >= t.Rows() {
		return indexErrorf("SetBasic", row, col)
	}
	if col != NoBasis && (col < 0 || col >= t.NumVars()) {
		return fmt.Errorf("row %d: %w %d", row, ErrInvalidBasis, col)
	}
	t.basis[row] = col
	return nil
}

func (t *Tableau) checkRow(method string, row, col int) {
	if row < 0 || row >= t.Rows() {
		panic(indexErrorf(method, row, col))
	}
}

// Minimize reports whether the objective row holds a negated minimization
// objective.
func (t *Tableau) Minimize() bool { return t.minimize }

func (t *Tableau) SetMinimize(minimize bool) { t.minimize = minimize }

// ObjectiveValue returns the current objective value in the sense the
// problem was stated in.
func (t *Tableau) ObjectiveValue() float64 {
	v := t.data.At(t.ObjectiveRow(), t.RHSColumn())
	if t.minimize {
		return -v
	}
	return v
}

// Solution returns the value of every variable: basic variables take
// their row's RHS, everything else is zero.
func (t *Tableau) Solution() []float64 {
	x := make([]float64, t.NumVars())
	for i := range t.numConstraints {
		if b, ok := t.Basic(i); ok {
			x[b] = t.data.At(i, t.RHSColumn())
		}
	}
	return x
}

// Dense returns a copy of the numeric store: variable columns, z and rhs.
func (t *Tableau) Dense() *mat.Dense {
	return mat.DenseCopyOf(t.data)
}
