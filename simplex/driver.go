package simplex

import (
	"fmt"

	"go.uber.org/zap"

	"q.log/tableau/model"
)

// Driver runs the two-phase tableau simplex method on a single tableau it
// mutates in place. It exposes the run at three granularities: Step for one
// state transition, PerformOneIteration for one pivot and Advance for one
// unit of the whole two-phase run, so batch, interactive and test drivers
// share the same core. A Driver is not safe for concurrent use.
type Driver struct {
	t        *model.Tableau
	log      *zap.Logger
	observer func(Event)

	phase      Phase
	state      State
	row        int
	column     int
	iterations int
}

// Option configures a Driver.
type Option func(*Driver)

// WithLogger sets the logger used for per-iteration debug output.
func WithLogger(l *zap.Logger) Option {
	return func(d *Driver) {
		if l != nil {
			d.log = l
		}
	}
}

// WithObserver registers fn to receive progress events. fn runs
// synchronously and must not modify the tableau.
func WithObserver(fn func(Event)) Option {
	return func(d *Driver) { d.observer = fn }
}

func NewDriver(t *model.Tableau, opts ...Option) *Driver {
	d := &Driver{
		t:      t,
		log:    zap.NewNop(),
		phase:  PhaseSetup,
		state:  Checking,
		row:    -1,
		column: -1,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Driver) Tableau() *model.Tableau { return d.t }
func (d *Driver) Phase() Phase            { return d.phase }
func (d *Driver) State() State            { return d.state }

// Iterations counts the pivots performed so far across both phases.
func (d *Driver) Iterations() int { return d.iterations }

// IsOptimal reports whether no variable in the current objective row has a
// reduced cost below -Epsilon.
func (d *Driver) IsOptimal() bool {
	obj := d.t.ObjectiveRow()
	for j := range d.t.NumVars() {
		if model.LessThan(d.t.At(obj, j), 0) {
			return false
		}
	}
	return true
}

// IsUnbounded reports whether the last pivot selection found no leaving row.
func (d *Driver) IsUnbounded() bool { return d.state == UnboundedState }

// Done reports whether the run has reached a terminal outcome.
func (d *Driver) Done() bool {
	return d.phase == PhaseDone || d.state == UnboundedState || d.state == InfeasibleState
}

// Err returns the outcome of a finished run as an error, nil for OK.
func (d *Driver) Err() error {
	switch d.state {
	case UnboundedState:
		return ErrUnbounded
	case InfeasibleState:
		return ErrInfeasible
	}
	return nil
}

// Status returns the outcome so far; OK until a failure is detected.
func (d *Driver) Status() Status {
	s, _ := StatusOf(d.Err())
	return s
}

func (d *Driver) emit(e Event) {
	e.Phase = d.phase
	if d.observer != nil {
		d.observer(e)
	}
}

// Step performs a single state transition against the current objective
// row. Reaching the unbounded state returns ErrUnbounded.
func (d *Driver) Step() error {
	switch d.state {
	case Checking:
		if d.IsOptimal() {
			d.log.Debug("objective row is optimal", zap.Stringer("phase", d.phase))
			d.state = Optimal
			return nil
		}
		d.state = SelectingPivot

	case SelectingPivot:
		col, ok := ChooseColumn(d.t)
		if !ok {
			d.state = Optimal
			return nil
		}
		row, ok := ChooseRow(d.t, col)
		if !ok {
			d.log.Debug("no leaving row", zap.String("entering", d.t.Label(col)))
			d.state = UnboundedState
			d.finish()
			return ErrUnbounded
		}
		d.column, d.row = col, row
		d.state = Pivoting
		d.log.Debug("pivot selected",
			zap.Int("row", row),
			zap.Int("column", col),
			zap.String("entering", d.t.Label(col)),
			zap.Float64("reduced_cost", d.t.At(d.t.ObjectiveRow(), col)),
			zap.Float64("ratio", d.t.At(row, d.t.RHSColumn())/d.t.At(row, col)))

	case Pivoting:
		leaving, _ := d.t.Basic(d.row)
		if err := Pivot(d.t, d.row, d.column); err != nil {
			return err
		}
		d.iterations++
		d.emit(Event{Kind: EventPivot, Row: d.row, Column: d.column, Leaving: leaving})
		d.state = Checking

	case UnboundedState:
		return ErrUnbounded
	case InfeasibleState:
		return ErrInfeasible
	}
	return nil
}

// PerformOneIteration steps until one pivot has been made or the current
// phase reaches a terminal state. It is a no-op once the phase is optimal.
func (d *Driver) PerformOneIteration() error {
	for {
		if err := d.Step(); err != nil {
			return err
		}
		if d.state == Checking || d.state == Optimal {
			return nil
		}
	}
}

// Advance performs the next unit of work of the two-phase run: the
// feasibility probe and phase 1 setup, one iteration, or the transition
// between phases. It returns true once the run is finished, together with
// ErrInfeasible or ErrUnbounded if that is the outcome.
func (d *Driver) Advance() (bool, error) {
	switch {
	case d.Done():
		return true, d.Err()
	case d.phase == PhaseSetup:
		return false, d.start()
	}

	if d.state != Optimal {
		if err := d.PerformOneIteration(); err != nil {
			return d.Done(), err
		}
		if d.state != Optimal {
			return false, nil
		}
	}

	if d.phase == PhaseOne {
		if err := d.endPhaseOne(); err != nil {
			return d.Done(), err
		}
		return false, nil
	}

	d.phase = PhaseDone
	d.finish()
	return true, nil
}

// start runs the feasibility probe and either builds the phase 1 problem or
// moves straight to phase 2.
func (d *Driver) start() error {
	d.state = Checking
	if IsInsideFeasibleRegion(d.t) {
		d.phase = PhaseTwo
		d.log.Debug("initial basis is feasible, skipping phase 1")
		d.emit(Event{Kind: EventPhaseStarted})
		return nil
	}

	d.phase = PhaseOne
	d.emit(Event{Kind: EventPhaseStarted})
	n, err := AddArtificialVariables(d.t)
	if err != nil {
		return fmt.Errorf("build phase 1 problem: %w", err)
	}
	d.log.Debug("added artificial variables", zap.Int("count", n))
	d.emit(Event{Kind: EventArtificialAdded, Count: n})
	return nil
}

// endPhaseOne checks the optimal auxiliary objective and, if the original
// problem is feasible, removes the phase 1 scaffolding.
func (d *Driver) endPhaseOne() error {
	aux := d.t.At(d.t.ObjectiveRow(), d.t.RHSColumn())
	if model.LessThan(aux, 0) {
		d.log.Debug("auxiliary objective did not reach zero", zap.Float64("value", aux))
		d.state = InfeasibleState
		d.finish()
		return ErrInfeasible
	}

	deleted, err := DriveOutArtificialVars(d.t)
	if err != nil {
		return fmt.Errorf("drive out artificial variables: %w", err)
	}
	if err := RemoveArtificialVariables(d.t); err != nil {
		return fmt.Errorf("remove artificial variables: %w", err)
	}
	d.log.Debug("removed artificial variables", zap.Int("redundant_rows", deleted))
	d.emit(Event{Kind: EventArtificialRemoved, Count: deleted})

	d.phase = PhaseTwo
	d.state = Checking
	d.emit(Event{Kind: EventPhaseStarted})
	return nil
}

func (d *Driver) finish() {
	d.emit(Event{Kind: EventFinished, Status: d.Status()})
}

// RunPhase1 runs phase 1 to completion. It does nothing if the initial
// basis is already feasible or phase 1 has already finished.
func (d *Driver) RunPhase1() error {
	if d.phase == PhaseSetup {
		if err := d.start(); err != nil {
			return err
		}
	}
	for d.phase == PhaseOne && !d.Done() {
		if _, err := d.Advance(); err != nil {
			return err
		}
	}
	return d.Err()
}

// RunPhase2 iterates the real objective row to optimality, running phase 1
// first if it has not completed.
func (d *Driver) RunPhase2() error {
	if err := d.RunPhase1(); err != nil {
		return err
	}
	for !d.Done() {
		if _, err := d.Advance(); err != nil {
			return err
		}
	}
	return d.Err()
}

// Solve runs both phases. The result is nil, ErrInfeasible, ErrUnbounded,
// or an error describing an internal failure.
func (d *Driver) Solve() error {
	if err := d.RunPhase1(); err != nil {
		return err
	}
	return d.RunPhase2()
}

// Solve runs the two-phase method on t.
func Solve(t *model.Tableau, opts ...Option) (Status, error) {
	err := NewDriver(t, opts...).Solve()
	if s, ok := StatusOf(err); ok {
		return s, nil
	}
	return OK, err
}
