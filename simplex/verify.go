package simplex

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"q.log/tableau/model"
)

// ErrCrossCheck is returned when the reference solver cannot handle the
// tableau, as opposed to reporting an outcome for it.
var ErrCrossCheck = errors.New("simplex: cross-check unavailable")

// CrossCheck solves the problem held by an unsolved tableau with gonum's
// revised simplex and returns the optimal objective in tableau convention,
// i.e. the value the objective row's RHS cell holds at optimality. t is not
// modified.
//
// The objective row z + o·x = r is maximized, which is r - min o·x subject
// to the constraint rows and x >= 0.
func CrossCheck(t *model.Tableau) (float64, error) {
	if t.NumArtificial() != 0 || t.Rows() != t.NumConstraints()+1 {
		return 0, fmt.Errorf("%w: tableau is mid-solve", ErrCrossCheck)
	}

	m, obj, rhs := t.NumConstraints(), t.ObjectiveRow(), t.RHSColumn()

	// gonum rejects all-zero columns. With a non-negative cost they never
	// improve the objective and can be dropped; a negative cost is unbounded.
	var cols []int
	for j := range t.NumVars() {
		zero := true
		for i := range m {
			if t.At(i, j) != 0 {
				zero = false
				break
			}
		}
		switch {
		case !zero:
			cols = append(cols, j)
		case t.At(obj, j) < 0:
			return 0, ErrUnbounded
		}
	}
	if m == 0 {
		return t.At(obj, rhs), nil
	}
	if len(cols) < m {
		return 0, fmt.Errorf("%w: %d constraints but %d usable columns", ErrCrossCheck, m, len(cols))
	}

	a := mat.NewDense(m, len(cols), nil)
	b := make([]float64, m)
	c := make([]float64, len(cols))
	for i := range m {
		for k, j := range cols {
			a.Set(i, k, t.At(i, j))
		}
		b[i] = t.At(i, rhs)
	}
	for k, j := range cols {
		c[k] = t.At(obj, j)
	}

	optF, _, err := lp.Simplex(c, a, b, model.Epsilon, nil)
	switch {
	case errors.Is(err, lp.ErrInfeasible):
		return 0, ErrInfeasible
	case errors.Is(err, lp.ErrUnbounded):
		return 0, ErrUnbounded
	case err != nil:
		return 0, fmt.Errorf("%w: %w", ErrCrossCheck, err)
	}
	return t.At(obj, rhs) - optF, nil
}
