package instance

import (
	"fmt"
	"math"

	"q.log/tableau/model"
)

// Sense is the relation of a constraint row.
type Sense int

const (
	LessEqual Sense = iota
	GreaterEqual
	Equal
)

func (s Sense) String() string {
	switch s {
	case LessEqual:
		return "<="
	case GreaterEqual:
		return ">="
	case Equal:
		return "="
	}
	return fmt.Sprintf("Sense(%d)", int(s))
}

func (s Sense) flip() Sense {
	switch s {
	case LessEqual:
		return GreaterEqual
	case GreaterEqual:
		return LessEqual
	}
	return s
}

type Constraint struct {
	Coefficients []float64
	Sense        Sense
	RHS          float64
}

// Problem is a linear program in general form over non-negative variables.
type Problem struct {
	Objective   []float64
	Minimize    bool
	Constraints []Constraint
}

func NewProblem(objective []float64, minimize bool) *Problem {
	return &Problem{Objective: objective, Minimize: minimize}
}

func (p *Problem) NumVars() int { return len(p.Objective) }

func (p *Problem) AddConstraint(coefficients []float64, sense Sense, rhs float64) error {
	if len(coefficients) != p.NumVars() {
		return fmt.Errorf("%w: got %d, want %d", ErrCoefficientSize, len(coefficients), p.NumVars())
	}
	p.Constraints = append(p.Constraints, Constraint{Coefficients: coefficients, Sense: sense, RHS: rhs})
	return nil
}

// AddBounds adds the rows that bound variable col to [lb, ub]. Infinite
// bounds add nothing, and neither does the implicit lower bound of zero.
func (p *Problem) AddBounds(col int, lb, ub float64) error {
	if lb < 0 {
		return fmt.Errorf("%w: variable %d has lower bound %g", ErrNegativeBound, col, lb)
	}
	unit := func() []float64 {
		row := make([]float64, p.NumVars())
		row[col] = 1
		return row
	}
	if lb > 0 && !math.IsInf(lb, 1) {
		if err := p.AddConstraint(unit(), GreaterEqual, lb); err != nil {
			return err
		}
	}
	if ub < math.MaxFloat64 && !math.IsInf(ub, 1) {
		if err := p.AddConstraint(unit(), LessEqual, ub); err != nil {
			return err
		}
	}
	return nil
}

// AddRange adds the rows for lb <= a·x <= ub. Equal bounds give an
// equality; an unbounded side is omitted.
func (p *Problem) AddRange(coefficients []float64, lb, ub float64) error {
	lower := lb > -math.MaxFloat64 && !math.IsInf(lb, -1)
	upper := ub < math.MaxFloat64 && !math.IsInf(ub, 1)
	switch {
	case lower && upper && lb == ub:
		return p.AddConstraint(coefficients, Equal, lb)
	case lower && upper:
		if err := p.AddConstraint(coefficients, GreaterEqual, lb); err != nil {
			return err
		}
		return p.AddConstraint(coefficients, LessEqual, ub)
	case lower:
		return p.AddConstraint(coefficients, GreaterEqual, lb)
	case upper:
		return p.AddConstraint(coefficients, LessEqual, ub)
	}
	return nil
}

// Tableau converts p to equality form. Rows with a negative right-hand side
// are negated first. A <= row gains a slack variable that starts basic; a >=
// row gains a surplus variable and, like an = row, starts without a basis.
// A minimization objective is negated and the tableau is marked so that
// ObjectiveValue reports it in the original sense.
func (p *Problem) Tableau() (*model.Tableau, error) {
	n := p.NumVars()
	rows := make([]Constraint, len(p.Constraints))
	slacks := 0
	for i, c := range p.Constraints {
		if len(c.Coefficients) != n {
			return nil, fmt.Errorf("row %d: %w", i, ErrCoefficientSize)
		}
		if c.RHS < 0 {
			neg := make([]float64, n)
			for j, v := range c.Coefficients {
				neg[j] = -v
			}
			c = Constraint{Coefficients: neg, Sense: c.Sense.flip(), RHS: -c.RHS}
		}
		if c.Sense != Equal {
			slacks++
		}
		rows[i] = c
	}

	t, err := model.NewTableau(n, slacks, len(rows))
	if err != nil {
		return nil, err
	}

	slack := n
	for i, c := range rows {
		for j, v := range c.Coefficients {
			t.Set(i, j, v)
		}
		t.Set(i, t.RHSColumn(), c.RHS)

		switch c.Sense {
		case LessEqual:
			t.Set(i, slack, 1)
			if err := t.SetBasic(i, slack); err != nil {
				return nil, err
			}
			slack++
		case GreaterEqual:
			t.Set(i, slack, -1)
			slack++
		}
	}

	obj := t.ObjectiveRow()
	for j, c := range p.Objective {
		if p.Minimize {
			t.Set(obj, j, c)
		} else {
			t.Set(obj, j, -c)
		}
	}
	t.SetMinimize(p.Minimize)

	return t, nil
}
