package domain

import (
	"errors"
	"fmt"
)

var (
	ErrConflict          = errors.New("conflict")
	ErrDataIntegrity     = errors.New("data integrity violation")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrNotFound          = errors.New("not found")
	ErrStoreUnavailable  = errors.New("store unavailable")
)

// TransitionError describes an event that is not legal in the current state
type TransitionError struct {
	Event Event
	From  State
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: cannot %s while %s", ErrInvalidTransition, e.Event, e.From)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// IntegrityError describes a single invariant violation found in stored data
type IntegrityError struct {
	Reason    string
	SessionID string
}

func newIntegrityError(sessionID, reason string) *IntegrityError {
	return &IntegrityError{Reason: reason, SessionID: sessionID}
}

func (e *IntegrityError) Error() string {
	if e.SessionID == "" {
		return fmt.Sprintf("%s: %s", ErrDataIntegrity, e.Reason)
	}
	return fmt.Sprintf("%s: session %s: %s", ErrDataIntegrity, e.SessionID, e.Reason)
}

func (e *IntegrityError) Unwrap() error {
	return ErrDataIntegrity
}
