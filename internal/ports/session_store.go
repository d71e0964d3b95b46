package ports

import (
	"context"
	"time"

	"github.com/renato0307/shiftclock/internal/domain"
)

// SessionUpdate holds the session fields a write may change. Nil fields are left untouched.
type SessionUpdate struct {
	EndedAt *time.Time
	Status  *domain.SessionStatus
}

// SessionReader reads sessions together with their pauses
type SessionReader interface {
	// GetOpenSession returns the owner's session without an end time, or nil when there is none
	GetOpenSession(ctx context.Context, ownerID string) (*domain.Session, error)
	GetSession(ctx context.Context, id string) (domain.Session, error)
	// ListSessions returns every session of the owner, most recent start first
	ListSessions(ctx context.Context, ownerID string) ([]domain.Session, error)
}

// SessionWriter creates and updates sessions.
// Implementations enforce at most one open session per owner and fail with domain.ErrConflict otherwise.
type SessionWriter interface {
	CreateSession(ctx context.Context, ownerID string, startedAt time.Time) (domain.Session, error)
	// UpdateSession applies update atomically. Setting EndedAt also closes the open pause at EndedAt.
	UpdateSession(ctx context.Context, id string, update SessionUpdate) (domain.Session, error)
}

// PauseWriter creates and closes pauses.
// Implementations enforce at most one open pause per session and fail with domain.ErrConflict otherwise.
type PauseWriter interface {
	CreatePause(ctx context.Context, sessionID string, startedAt time.Time) (domain.Pause, error)
	UpdatePause(ctx context.Context, id string, endedAt time.Time) (domain.Pause, error)
}

// SessionStore is the composite interface
type SessionStore interface {
	SessionReader
	SessionWriter
	PauseWriter
	Close() error
}
