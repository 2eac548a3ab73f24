package simplex

import "q.log/tableau/model"

// ChooseColumn returns the variable column with the most negative reduced
// cost in the current objective row. Ties go to the lowest index. It returns
// false when no reduced cost is below -Epsilon, i.e. the row is optimal.
//
// This is Dantzig's rule without any anti-cycling safeguard: degenerate
// problems can cycle.
func ChooseColumn(t *model.Tableau) (int, bool) {
	obj := t.ObjectiveRow()
	best, bestValue := -1, 0.0
	for j := range t.NumVars() {
		v := t.At(obj, j)
		if !model.LessThan(v, 0) {
			continue
		}
		if best < 0 || v < bestValue {
			best, bestValue = j, v
		}
	}
	return best, best >= 0
}

// ChooseRow runs the minimum ratio test on col over the constraint rows
// with a positive entry in col. Ties go to the lowest row. It returns false
// when no row qualifies, meaning the objective is unbounded along col.
func ChooseRow(t *model.Tableau, col int) (int, bool) {
	rhs := t.RHSColumn()
	best, bestRatio := -1, 0.0
	for i := range t.NumConstraints() {
		a := t.At(i, col)
		if !model.LessThan(0, a) {
			continue
		}
		ratio := t.At(i, rhs) / a
		if best < 0 || model.LessThan(ratio, bestRatio) {
			best, bestRatio = i, ratio
		}
	}
	return best, best >= 0
}
