package simplex

import (
	"fmt"

	"q.log/tableau/model"
)

// Pivot performs one Gauss-Jordan elimination step on (row, col): col
// becomes basic in row, the pivot cell becomes 1 and every other cell of col
// becomes 0. Every row takes part, objective rows included.
func Pivot(t *model.Tableau, row, col int) error {
	v := t.At(row, col)
	if model.Equals(v, 0) {
		return fmt.Errorf("%w: cell (%d,%d) is %g", ErrZeroPivot, row, col, v)
	}
	if err := t.SetBasic(row, col); err != nil {
		return err
	}

	t.ScaleRow(1/v, row)
	for i := range t.Rows() {
		if i == row {
			continue
		}
		t.AddScaledRowInto(-t.At(i, col), row, i, i)
	}
	return nil
}
