package storage

import (
	"time"

	"github.com/renato0307/shiftclock/internal/domain"
)

// sessionModelToDomain converts a SessionModel (GORM) to domain.Session
func sessionModelToDomain(m SessionModel) domain.Session {
	pauses := make([]domain.Pause, 0, len(m.Pauses))
	for _, p := range m.Pauses {
		pauses = append(pauses, pauseModelToDomain(p))
	}

	return domain.Session{
		EndedAt:   utcPtr(m.EndedAt),
		ID:        m.ID,
		OwnerID:   m.OwnerID,
		Pauses:    pauses,
		StartedAt: m.StartedAt.UTC(),
		Status:    domain.SessionStatus(m.Status),
	}
}

// pauseModelToDomain converts a PauseModel (GORM) to domain.Pause
func pauseModelToDomain(m PauseModel) domain.Pause {
	return domain.Pause{
		EndedAt:   utcPtr(m.EndedAt),
		ID:        m.ID,
		SessionID: m.SessionID,
		StartedAt: m.StartedAt.UTC(),
	}
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
