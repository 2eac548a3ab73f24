package simplex

import (
	"fmt"
	"math"

	"q.log/tableau/model"
)

// AddArtificialVariables builds the phase 1 problem. It appends an
// auxiliary objective row, gives every constraint row without a basis an
// artificial variable, and rewrites the auxiliary row so that maximizing it
// minimizes the sum of the artificial variables with reduced costs already
// expressed in the current basis. It returns the number of artificial
// variables added.
func AddArtificialVariables(t *model.Tableau) (int, error) {
	t.AppendObjectiveRow()
	aux := t.ObjectiveRow()

	added := 0
	for i := range t.NumConstraints() {
		if _, ok := t.Basic(i); ok {
			continue
		}
		col, err := t.InsertArtificialColumn(i)
		if err != nil {
			return added, fmt.Errorf("artificial variable for row %d: %w", i, err)
		}
		t.Set(aux, col, -1)
		added++
	}

	first := t.FirstArtificial()
	for i := range t.NumConstraints() {
		if b, ok := t.Basic(i); ok && b >= first {
			t.AddRows(i, aux, aux)
		}
	}
	t.ScaleRow(-1, aux)

	return added, nil
}

// DriveOutArtificialVars pivots artificial variables that are still basic
// (at zero level) out of the basis, on the real or slack column with the
// largest non-zero entry in their row; ties keep the lowest index. A row
// with no such entry is a linear combination of the others and is deleted.
// It returns the number of deleted rows.
func DriveOutArtificialVars(t *model.Tableau) (int, error) {
	first := t.FirstArtificial()
	deleted := 0
	for i := t.NumConstraints() - 1; i >= 0; i-- {
		b, ok := t.Basic(i)
		if !ok || b < first {
			continue
		}

		col, best := -1, 0.0
		for j := range first {
			v := math.Abs(t.At(i, j))
			if !model.Equals(v, 0) && v > best {
				col, best = j, v
			}
		}
		if col >= 0 {
			if err := Pivot(t, i, col); err != nil {
				return deleted, err
			}
			continue
		}

		if err := t.DeleteRow(i); err != nil {
			return deleted, fmt.Errorf("redundant row %d: %w", i, err)
		}
		deleted++
	}
	return deleted, nil
}

// RemoveArtificialVariables tears the phase 1 problem down: the auxiliary
// objective row goes first, then the artificial columns from the highest
// index down so that pending indices stay valid.
func RemoveArtificialVariables(t *model.Tableau) error {
	if err := t.DeleteRow(t.ObjectiveRow()); err != nil {
		return fmt.Errorf("auxiliary objective: %w", err)
	}
	for col := t.NumVars() - 1; col >= t.FirstArtificial(); col-- {
		if err := t.DeleteColumn(col); err != nil {
			return err
		}
	}
	return nil
}
