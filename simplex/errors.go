package simplex

import (
	"errors"
	"fmt"
)

var (
	ErrInfeasible = errors.New("simplex: problem is infeasible")
	ErrUnbounded  = errors.New("simplex: problem is unbounded")
	ErrZeroPivot  = errors.New("simplex: pivot element is zero")
)

// Status is the closed set of outcomes of a solve.
type Status int

const (
	OK         Status = 0
	Infeasible Status = -1
	Unbounded  Status = -2
)

func (s Status) String() string {
	switch s {
	case OK:
		return "OK"
	case Infeasible:
		return "INFEASIBLE"
	case Unbounded:
		return "UNBOUNDED"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Err returns the sentinel error for s, or nil for OK.
func (s Status) Err() error {
	switch s {
	case Infeasible:
		return ErrInfeasible
	case Unbounded:
		return ErrUnbounded
	}
	return nil
}

// StatusOf maps the result of a solve onto a Status. The second result is
// false when err is neither nil nor one of the solver outcomes.
func StatusOf(err error) (Status, bool) {
	switch {
	case err == nil:
		return OK, true
	case errors.Is(err, ErrInfeasible):
		return Infeasible, true
	case errors.Is(err, ErrUnbounded):
		return Unbounded, true
	}
	return OK, false
}
