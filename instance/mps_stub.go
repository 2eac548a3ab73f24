//go:build !glpk

package instance

// ConstructProblemFromFile needs GLPK; build with -tags glpk to enable it.
func (r *MPSReader) ConstructProblemFromFile() (*Problem, error) {
	return nil, ErrMPSUnsupported
}
