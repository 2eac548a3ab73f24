package model

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/mat"
)

// Structural operations allocate a correctly sized store and copy into
// it, so the previous store is never aliased. They cost O(rows·cols) and run
// only while setting up and tearing down phase 1.

// copyBlock copies src[r0:r1, c0:c1] into dst at (dr, dc). Empty blocks are
// skipped since mat.Dense cannot represent them.
func copyBlock(dst, src *mat.Dense, dr, dc, r0, r1, c0, c1 int) {
	if r1 <= r0 || c1 <= c0 {
		return
	}
	dst.Slice(dr, dr+r1-r0, dc, dc+c1-c0).(*mat.Dense).Copy(src.Slice(r0, r1, c0, c1))
}

// AppendObjectiveRow adds a zero row at the bottom whose z cell is 1.
func (t *Tableau) AppendObjectiveRow() {
	r, c := t.data.Dims()
	grown := mat.NewDense(r+1, c, nil)
	copyBlock(grown, t.data, 0, 0, 0, r, 0, c)
	t.data = grown
	t.basis = append(slices.Clone(t.basis), NoBasis)
	t.data.Set(r, t.ZColumn(), 1)
}

// DeleteRow removes target, keeping the order of the remaining rows.
// Removing a constraint row decrements the constraint count.
func (t *Tableau) DeleteRow(target int) error {
	r, c := t.data.Dims()
	if target < 0 || target >= r {
		return indexErrorf("DeleteRow", target, 0)
	}
	if r == 1 {
		return ErrLastRow
	}

	shrunk := mat.NewDense(r-1, c, nil)
	copyBlock(shrunk, t.data, 0, 0, 0, target, 0, c)
	copyBlock(shrunk, t.data, target, 0, target+1, r, 0, c)
	t.data = shrunk
	t.basis = slices.Delete(slices.Clone(t.basis), target, target+1)

	if target < t.numConstraints {
		t.numConstraints--
	}
	return nil
}

// InsertArtificialColumn adds an artificial variable column just before the
// marker columns. The new column is 1 in targetRow and 0 elsewhere, and
// becomes targetRow's basic variable. It returns the new column's index.
func (t *Tableau) InsertArtificialColumn(targetRow int) (int, error) {
	r, c := t.data.Dims()
	if targetRow < 0 || targetRow >= r {
		return 0, indexErrorf("InsertArtificialColumn", targetRow, t.NumVars())
	}

	at := t.NumVars()
	grown := mat.NewDense(r, c+1, nil)
	copyBlock(grown, t.data, 0, 0, 0, r, 0, at)
	copyBlock(grown, t.data, 0, at+1, 0, r, at, c)
	grown.Set(targetRow, at, 1)

	t.data = grown
	t.basis = slices.Clone(t.basis)
	t.numArtificial++
	t.basis[targetRow] = at

	return at, nil
}

// DeleteColumn removes an artificial variable column and shifts the later
// columns left. Rows whose basic variable was the deleted column lose their
// basis; basis indices past it are shifted down.
func (t *Tableau) DeleteColumn(target int) error {
	if target < t.FirstArtificial() || target >= t.NumVars() {
		return fmt.Errorf("Tableau.DeleteColumn(%d): %w", target, ErrNotArtificial)
	}

	r, c := t.data.Dims()
	shrunk := mat.NewDense(r, c-1, nil)
	copyBlock(shrunk, t.data, 0, 0, 0, r, 0, target)
	copyBlock(shrunk, t.data, 0, target, 0, r, target+1, c)
	t.data = shrunk
	t.numArtificial--

	t.basis = slices.Clone(t.basis)
	for i, b := range t.basis {
		switch {
		case b == target:
			t.basis[i] = NoBasis
		case b > target:
			t.basis[i] = b - 1
		}
	}
	return nil
}
