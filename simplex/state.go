package simplex

import "fmt"

// State is a node of the iteration state machine:
//
//	Checking       -> Optimal | SelectingPivot
//	SelectingPivot -> Unbounded | Pivoting
//	Pivoting       -> Checking
//
// Optimal, Unbounded and Infeasible are terminal for the current phase.
type State int

const (
	Checking State = iota
	SelectingPivot
	Pivoting
	Optimal
	UnboundedState
	InfeasibleState
)

func (s State) String() string {
	switch s {
	case Checking:
		return "checking"
	case SelectingPivot:
		return "selecting-pivot"
	case Pivoting:
		return "pivoting"
	case Optimal:
		return "optimal"
	case UnboundedState:
		return "unbounded"
	case InfeasibleState:
		return "infeasible"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Phase tracks progress through the two-phase method.
type Phase int

const (
	// PhaseSetup is before the feasibility probe has run.
	PhaseSetup Phase = iota
	PhaseOne
	PhaseTwo
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "setup"
	case PhaseOne:
		return "phase 1"
	case PhaseTwo:
		return "phase 2"
	case PhaseDone:
		return "done"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// EventKind identifies what an Event reports.
type EventKind int

const (
	EventPhaseStarted EventKind = iota
	EventArtificialAdded
	EventPivot
	EventArtificialRemoved
	EventFinished
)

func (k EventKind) String() string {
	switch k {
	case EventPhaseStarted:
		return "phase-started"
	case EventArtificialAdded:
		return "artificial-added"
	case EventPivot:
		return "pivot"
	case EventArtificialRemoved:
		return "artificial-removed"
	case EventFinished:
		return "finished"
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Event is delivered to observers as the driver makes progress. Row and
// Column are set for pivots; Leaving is the variable that left the basis,
// or -1. Count is the number of artificial variables added, or rows deleted
// on removal. Status is set on EventFinished.
type Event struct {
	Kind    EventKind
	Phase   Phase
	Row     int
	Column  int
	Leaving int
	Count   int
	Status  Status
}
