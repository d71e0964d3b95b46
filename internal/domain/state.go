package domain

// State is the lifecycle state of an owner's current session, as seen by a controller
type State string

const (
	StateActive    State = "active"
	StateCompleted State = "completed"
	StateNone      State = "none"
	StatePaused    State = "paused"
)

// Event is a user-initiated lifecycle action
type Event string

const (
	EventEnd    Event = "end"
	EventPause  Event = "pause"
	EventResume Event = "resume"
	EventStart  Event = "start"
)

// Status labels shown to the user
const (
	LabelCompleted = "Completed"
	LabelIdle      = "Idle"
	LabelOnBreak   = "On break"
	LabelWorking   = "Working"
)

// transitions lists the legal events per state and the state each one leads to.
// Completed is terminal: it has no entry.
var transitions = map[State]map[Event]State{
	StateNone: {
		EventStart: StateActive,
	},
	StateActive: {
		EventPause: StatePaused,
		EventEnd:   StateCompleted,
	},
	StatePaused: {
		EventResume: StateActive,
		EventEnd:    StateCompleted,
	},
}

// CanTransition reports whether event is legal in state
func CanTransition(from State, event Event) bool {
	_, ok := transitions[from][event]
	return ok
}

// NextState returns the state reached by applying event in from.
// It returns a *TransitionError when the event is not legal.
func NextState(from State, event Event) (State, error) {
	next, ok := transitions[from][event]
	if !ok {
		return from, &TransitionError{Event: event, From: from}
	}
	return next, nil
}

// Label returns the human readable status label for the state
func (s State) Label() string {
	switch s {
	case StateActive:
		return LabelWorking
	case StatePaused:
		return LabelOnBreak
	case StateCompleted:
		return LabelCompleted
	default:
		return LabelIdle
	}
}
