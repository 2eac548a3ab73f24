package simplex

import (
	"testing"

	"github.com/stretchr/testify/require"

	"q.log/tableau/model"
)

// build lays rows out like the text input: variable cells, z, rhs, basis.
// The last row is the objective.
func build(t *testing.T, numReal, numSlack int, rows [][]float64) *model.Tableau {
	t.Helper()
	tab, err := model.NewTableau(numReal, numSlack, len(rows)-1)
	require.NoError(t, err)
	for i, row := range rows {
		require.Len(t, row, tab.Cols(), "row %d", i)
		for j, v := range row {
			tab.Set(i, j, v)
		}
	}
	return tab
}

// canonical is: maximize 3x1+5x2 s.t. x1<=4, 2x2<=12, 3x1+2x2<=18 with
// the slack variables basic. Optimum 36 at x1=2, x2=6.
func canonical(t *testing.T) *model.Tableau {
	return build(t, 2, 3, [][]float64{
		{1, 0, 1, 0, 0, 0, 4, 2},
		{0, 2, 0, 1, 0, 0, 12, 3},
		{3, 2, 0, 0, 1, 0, 18, 4},
		{-3, -5, 0, 0, 0, 1, 0, -1},
	})
}

// needsPhaseOne is: maximize x1+2x2 s.t. x1+x2<=4, x1>=1. The second row
// has a surplus variable and no basis. Optimum 7 at x1=1, x2=3.
func needsPhaseOne(t *testing.T) *model.Tableau {
	return build(t, 2, 2, [][]float64{
		{1, 1, 1, 0, 0, 4, 2},
		{1, 0, 0, -1, 0, 1, -1},
		{-1, -2, 0, 0, 1, 0, -1},
	})
}

// infeasible is: maximize x1 s.t. x1+x2<=4, x1+x2>=10.
func infeasible(t *testing.T) *model.Tableau {
	return build(t, 2, 2, [][]float64{
		{1, 1, 1, 0, 0, 4, 2},
		{1, 1, 0, -1, 0, 10, -1},
		{-1, 0, 0, 0, 1, 0, -1},
	})
}

// unbounded is: maximize x1 s.t. x1-x2<=1.
func unbounded(t *testing.T) *model.Tableau {
	return build(t, 2, 1, [][]float64{
		{1, -1, 1, 0, 1, 2},
		{-1, 0, 0, 1, 0, -1},
	})
}

// redundant is: maximize x1 s.t. x1+x2=2 stated twice.
func redundant(t *testing.T) *model.Tableau {
	return build(t, 2, 0, [][]float64{
		{1, 1, 0, 2, -1},
		{1, 1, 0, 2, -1},
		{-1, 0, 1, 0, -1},
	})
}
