package domain

import "time"

// Snapshot is what a display observes: the state of an owner's session at one instant
type Snapshot struct {
	At        time.Time
	Clock     string
	Label     string
	OwnerID   string
	Seq       uint64
	SessionID string
	StartedAt *time.Time
	State     State
	Worked    time.Duration
}

// NewSnapshot builds a snapshot for the given state and session (nil when state is none)
func NewSnapshot(ownerID string, state State, session *Session, worked time.Duration, at time.Time) Snapshot {
	snap := Snapshot{
		At:      at,
		Clock:   FormatClock(worked),
		Label:   state.Label(),
		OwnerID: ownerID,
		State:   state,
		Worked:  worked,
	}
	if session != nil {
		startedAt := session.StartedAt
		snap.SessionID = session.ID
		snap.StartedAt = &startedAt
	}
	return snap
}
