package simplex

import "q.log/tableau/model"

// IsInsideFeasibleRegion reports whether every constraint row already has a
// basic variable, so phase 1 can be skipped.
func IsInsideFeasibleRegion(t *model.Tableau) bool {
	for i := range t.NumConstraints() {
		if _, ok := t.Basic(i); !ok {
			return false
		}
	}
	return true
}
