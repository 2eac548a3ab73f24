//go:build glpk

package instance

import (
	"fmt"
	"runtime"

	"github.com/lukpank/go-glpk/glpk"
)

// ConstructProblemFromFile reads the reader's MPS file with GLPK and
// returns it in general form. Column bounds become additional rows.
func (r *MPSReader) ConstructProblemFromFile() (*Problem, error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	lp := glpk.New()
	defer lp.Delete()

	format := glpk.MPS_FILE
	if r.Fixed {
		format = glpk.MPS_DECK
	}
	if err := lp.ReadMPS(format, nil, r.filename); err != nil {
		return nil, fmt.Errorf("instance: read MPS %s: %w", r.filename, err)
	}

	// GLPK indices are 1-based.
	numCols := lp.NumCols()
	objective := make([]float64, numCols)
	for c := range numCols {
		objective[c] = lp.ObjCoef(c + 1)
	}
	p := NewProblem(objective, lp.ObjDir() == glpk.MIN)

	for row := 1; row <= lp.NumRows(); row++ {
		rowVec := make([]float64, numCols)
		idxs, vals := lp.MatRow(row)
		for i, v := range idxs {
			if v == 0 {
				continue
			}
			rowVec[v-1] = vals[i]
		}
		if err := p.AddRange(rowVec, lp.RowLB(row), lp.RowUB(row)); err != nil {
			return nil, fmt.Errorf("instance: MPS row %s: %w", lp.RowName(row), err)
		}
	}

	for c := range numCols {
		if err := p.AddBounds(c, lp.ColLB(c+1), lp.ColUB(c+1)); err != nil {
			return nil, fmt.Errorf("instance: MPS column %s: %w", lp.ColName(c+1), err)
		}
	}

	return p, nil
}
