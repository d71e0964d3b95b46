package domain

import (
	"errors"
	"fmt"
	"time"
)

// SessionStatus is the persisted status of a work session
type SessionStatus string

const (
	StatusActive    SessionStatus = "active"
	StatusCompleted SessionStatus = "completed"
	StatusPaused    SessionStatus = "paused"
)

// Session represents one tracked work shift (domain entity)
type Session struct {
	EndedAt   *time.Time
	ID        string
	OwnerID   string
	Pauses    []Pause
	StartedAt time.Time
	Status    SessionStatus
}

// Pause is one interval of a session during which worked time does not accrue
type Pause struct {
	EndedAt   *time.Time
	ID        string
	SessionID string
	StartedAt time.Time
}

// IsOpen reports whether the pause has not ended yet
func (p Pause) IsOpen() bool {
	return p.EndedAt == nil
}

// IsCompleted reports whether the session has ended
func (s Session) IsCompleted() bool {
	return s.EndedAt != nil
}

// OpenPause returns the session's open pause, if any.
// When the data is corrupt and several pauses are open, the latest one wins.
func (s Session) OpenPause() (Pause, bool) {
	for i := len(s.Pauses) - 1; i >= 0; i-- {
		if s.Pauses[i].IsOpen() {
			return s.Pauses[i], true
		}
	}
	return Pause{}, false
}

// DeriveStatus computes the status from EndedAt and the presence of an open pause.
// The persisted Status field is informational; this is the source of truth.
func (s Session) DeriveStatus() SessionStatus {
	if s.IsCompleted() {
		return StatusCompleted
	}
	if _, ok := s.OpenPause(); ok {
		return StatusPaused
	}
	return StatusActive
}

// State maps the session onto the lifecycle state machine
func (s Session) State() State {
	switch s.DeriveStatus() {
	case StatusCompleted:
		return StateCompleted
	case StatusPaused:
		return StatePaused
	default:
		return StateActive
	}
}

// Validate checks the session and pause invariants as of now.
// Every violation found is joined into a single ErrDataIntegrity error.
func (s Session) Validate(now time.Time) error {
	var errs []error
	violation := func(format string, args ...any) {
		errs = append(errs, newIntegrityError(s.ID, fmt.Sprintf(format, args...)))
	}

	upper := now
	if s.EndedAt != nil {
		upper = *s.EndedAt
		if s.EndedAt.Before(s.StartedAt) {
			violation("session ends at %s before it starts at %s",
				s.EndedAt.Format(time.RFC3339), s.StartedAt.Format(time.RFC3339))
		}
	}

	if s.Status != "" && s.Status != s.DeriveStatus() {
		violation("stored status %q does not match derived status %q", s.Status, s.DeriveStatus())
	}

	open := 0
	var prevEnd time.Time
	for i, p := range s.Pauses {
		end := upper
		if p.EndedAt != nil {
			end = *p.EndedAt
		} else {
			open++
			if s.IsCompleted() {
				violation("pause %s is still open on a completed session", p.ID)
			}
		}

		if p.StartedAt.Before(s.StartedAt) {
			violation("pause %s starts before the session", p.ID)
		}
		if end.Before(p.StartedAt) {
			violation("pause %s ends before it starts", p.ID)
		}
		if end.After(upper) {
			violation("pause %s ends after the session", p.ID)
		}
		if i > 0 && p.StartedAt.Before(prevEnd) {
			violation("pause %s overlaps the previous pause", p.ID)
		}
		prevEnd = end
	}
	if open > 1 {
		violation("%d pauses are open, at most one is allowed", open)
	}

	return errors.Join(errs...)
}
