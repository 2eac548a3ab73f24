package instance

import (
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"q.log/tableau/model"
	"q.log/tableau/simplex"
)

func TestConstructTableauFromFile(t *testing.T) {
	tab, err := NewReader(filepath.Join("testdata", "canonical.txt")).ConstructTableauFromFile()
	require.NoError(t, err)

	assert.Equal(t, 2, tab.NumReal())
	assert.Equal(t, 3, tab.NumSlack())
	assert.Equal(t, 3, tab.NumConstraints())
	assert.Equal(t, 4, tab.Rows())
	assert.Equal(t, 8, tab.Cols())
	assert.Equal(t, 18.0, tab.At(2, tab.RHSColumn()))
	assert.Equal(t, -5.0, tab.At(3, 1))
	assert.Equal(t, 1.0, tab.At(3, tab.ZColumn()))
	for i, want := range []int{2, 3, 4} {
		b, ok := tab.Basic(i)
		require.True(t, ok)
		assert.Equal(t, want, b)
	}
}

func TestConstructTableauFromFile_Unassigned(t *testing.T) {
	tab, err := NewReader(filepath.Join("testdata", "phase1.txt")).ConstructTableauFromFile()
	require.NoError(t, err)
	_, ok := tab.Basic(1)
	assert.False(t, ok)
}

func TestConstructTableauFromFile_Missing(t *testing.T) {
	_, err := NewReader(filepath.Join("testdata", "nope.txt")).ConstructTableauFromFile()
	assert.Error(t, err)
}

func TestParse_Malformed(t *testing.T) {
	for _, tc := range []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"short header", "1 1"},
		{"non integer count", "1 x 1"},
		{"negative count", "1 1 -1\n1 1 0 1 0\n-1 0 1 0 -1"},
		{"no variables", "0 0 1\n0 1 0\n1 0 -1"},
		{"truncated row", "1 1 1\n1 1 0 1"},
		{"non numeric cell", "1 1 1\n1 one 0 1 1\n-1 0 1 0 -1"},
		{"fractional basis", "1 1 1\n1 1 0 1 0.5\n-1 0 1 0 -1"},
		{"basis out of range", "1 1 1\n1 1 0 1 2\n-1 0 1 0 -1"},
		{"basis below sentinel", "1 1 1\n1 1 0 1 -2\n-1 0 1 0 -1"},
		{"duplicate basis", "1 2 2\n1 1 0 0 1 1\n1 0 1 0 1 1\n-1 0 0 1 0 -1"},
		{"trailing data", "1 1 1\n1 1 0 1 1\n-1 0 1 0 -1\n7"},
		{"infinite cell", "1 1 1\n1 1 0 Inf 1\n-1 0 1 0 -1"},
		{"basic variable starts negative", "1 1 1\n1 1 0 -1 1\n-1 0 1 0 -1"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tc.input))
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestParse_NegativeRHSWithoutBasis(t *testing.T) {
	// maximize -x1 s.t. x1 - x2 = -1; the optimum is 0 at x = (0, 1).
	tab, err := Parse(strings.NewReader("2 0 1\n1 -1 0 -1 -1\n1 0 1 0 -1\n"))
	require.NoError(t, err)

	assert.Equal(t, -1.0, tab.At(0, 0))
	assert.Equal(t, 1.0, tab.At(0, 1))
	assert.Equal(t, 0.0, tab.At(0, tab.ZColumn()))
	assert.Equal(t, 1.0, tab.At(0, tab.RHSColumn()))

	status, err := simplex.Solve(tab)
	require.NoError(t, err)
	require.Equal(t, simplex.OK, status)
	assert.InDelta(t, 0, tab.ObjectiveValue(), model.Epsilon)
	x := tab.Solution()
	assert.InDelta(t, 0, x[0], model.Epsilon)
	assert.InDelta(t, 1, x[1], model.Epsilon)
}

func TestParse_ObjectiveBasisIgnored(t *testing.T) {
	tab, err := Parse(strings.NewReader("1 1 1\n1 1 0 1 1\n-1 0 1 0 17"))
	require.NoError(t, err)
	_, ok := tab.Basic(tab.ObjectiveRow())
	assert.False(t, ok)
}

func TestLoad(t *testing.T) {
	tab, err := Load(filepath.Join("testdata", "unbounded.txt"), FormatAuto)
	require.NoError(t, err)
	assert.Equal(t, 1, tab.NumConstraints())

	_, err = Load(filepath.Join("testdata", "unbounded.txt"), "xml")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestProblemTableau(t *testing.T) {
	// maximize x1 + 2x2 s.t. x1 + x2 <= 4, x1 >= 1, -x1 + x2 = -1 (negated
	// to x1 - x2 = 1).
	p := NewProblem([]float64{1, 2}, false)
	require.NoError(t, p.AddConstraint([]float64{1, 1}, LessEqual, 4))
	require.NoError(t, p.AddConstraint([]float64{1, 0}, GreaterEqual, 1))
	require.NoError(t, p.AddConstraint([]float64{-1, 1}, Equal, -1))

	tab, err := p.Tableau()
	require.NoError(t, err)

	assert.Equal(t, 2, tab.NumReal())
	assert.Equal(t, 2, tab.NumSlack())
	assert.Equal(t, 3, tab.NumConstraints())
	assert.False(t, tab.Minimize())

	row := func(i int) []float64 {
		var out []float64
		for j := range tab.RHSColumn() + 1 {
			out = append(out, tab.At(i, j))
		}
		return out
	}
	assert.Equal(t, []float64{1, 1, 1, 0, 0, 4}, row(0))
	assert.Equal(t, []float64{1, 0, 0, -1, 0, 1}, row(1))
	assert.Equal(t, []float64{1, -1, 0, 0, 0, 1}, row(2))
	assert.Equal(t, []float64{-1, -2, 0, 0, 1, 0}, row(3))

	b, ok := tab.Basic(0)
	require.True(t, ok)
	assert.Equal(t, 2, b)
	for _, i := range []int{1, 2} {
		_, ok := tab.Basic(i)
		assert.False(t, ok, "row %d", i)
	}
}

func TestProblemTableau_Minimize(t *testing.T) {
	p := NewProblem([]float64{2, 3}, true)
	require.NoError(t, p.AddConstraint([]float64{1, 1}, GreaterEqual, 2))

	tab, err := p.Tableau()
	require.NoError(t, err)
	assert.True(t, tab.Minimize())
	assert.Equal(t, 2.0, tab.At(tab.ObjectiveRow(), 0))
	assert.Equal(t, 3.0, tab.At(tab.ObjectiveRow(), 1))

	tab.Set(tab.ObjectiveRow(), tab.RHSColumn(), -4)
	assert.Equal(t, 4.0, tab.ObjectiveValue())
}

func TestProblem_Bounds(t *testing.T) {
	p := NewProblem([]float64{1, 1}, false)
	require.NoError(t, p.AddBounds(0, 0, 3))
	require.NoError(t, p.AddBounds(1, 2, math.Inf(1)))
	require.Len(t, p.Constraints, 2)
	assert.Equal(t, Constraint{Coefficients: []float64{1, 0}, Sense: LessEqual, RHS: 3}, p.Constraints[0])
	assert.Equal(t, Constraint{Coefficients: []float64{0, 1}, Sense: GreaterEqual, RHS: 2}, p.Constraints[1])

	assert.ErrorIs(t, p.AddBounds(0, -1, 3), ErrNegativeBound)
	assert.ErrorIs(t, p.AddConstraint([]float64{1}, Equal, 1), ErrCoefficientSize)
}

func TestProblem_AddRange(t *testing.T) {
	p := NewProblem([]float64{1}, false)
	require.NoError(t, p.AddRange([]float64{1}, 2, 2))
	require.NoError(t, p.AddRange([]float64{1}, 1, 5))
	require.NoError(t, p.AddRange([]float64{1}, -math.MaxFloat64, 7))
	require.Len(t, p.Constraints, 4)

	var senses []Sense
	for _, c := range p.Constraints {
		senses = append(senses, c.Sense)
	}
	assert.Equal(t, []Sense{Equal, GreaterEqual, LessEqual, LessEqual}, senses)
}
