package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/shiftclock/internal/domain"
	portsmocks "github.com/renato0307/shiftclock/internal/ports/mocks"
)

var utcFormats = HistoryFormats{DateFormat: "2006-01-02", Location: time.UTC, TimeFormat: "15:04"}

func completedSession(id string, start time.Time, worked time.Duration) domain.Session {
	end := start.Add(worked)
	return domain.Session{
		EndedAt:   &end,
		ID:        id,
		OwnerID:   "alice",
		StartedAt: start,
		Status:    domain.StatusCompleted,
	}
}

func pauseBetween(id string, from, to time.Time) domain.Pause {
	return domain.Pause{EndedAt: &to, ID: id, SessionID: "s", StartedAt: from}
}

func TestAggregateHistory_MostRecentFirst(t *testing.T) {
	sessions := []domain.Session{
		completedSession("mon", t0, 8*time.Hour),
		completedSession("wed", t0.AddDate(0, 0, 2), 6*time.Hour),
		completedSession("tue", t0.AddDate(0, 0, 1), 7*time.Hour),
	}

	rows := AggregateHistory(sessions, t0.AddDate(0, 0, 3), utcFormats)

	require.Len(t, rows, 3)
	assert.Equal(t, "wed", rows[0].SessionID)
	assert.Equal(t, "tue", rows[1].SessionID)
	assert.Equal(t, "mon", rows[2].SessionID)
	assert.Equal(t, "2026-02-10", rows[0].Date)
	assert.Equal(t, "6h 0m", rows[0].Worked)
	assert.Equal(t, "mon", sessions[0].ID, "input must not be reordered")
}

func TestAggregateHistory_RowFormatting(t *testing.T) {
	p1 := pauseBetween("p1", t0.Add(2*time.Hour), t0.Add(2*time.Hour+30*time.Minute))
	p2 := pauseBetween("p2", t0.Add(4*time.Hour), t0.Add(4*time.Hour+15*time.Minute))
	end := t0.Add(8*time.Hour + 45*time.Minute)
	session := domain.Session{
		EndedAt:   &end,
		ID:        "s1",
		OwnerID:   "alice",
		Pauses:    []domain.Pause{p1, p2},
		StartedAt: t0,
		Status:    domain.StatusCompleted,
	}

	rows := AggregateHistory([]domain.Session{session}, end.Add(time.Hour), utcFormats)

	require.Len(t, rows, 1)
	row := rows[0]
	assert.Equal(t, "2026-02-08", row.Date)
	assert.Equal(t, "09:00", row.Start)
	assert.Equal(t, "11:00-11:30, 13:00-13:15", row.Pauses)
	assert.Equal(t, "17:45", row.End)
	assert.Equal(t, "8h 0m", row.Worked)
	assert.Equal(t, 8*time.Hour, row.WorkedFor)
	assert.Equal(t, "0h 45m", row.Paused)
	assert.Equal(t, int64(2700), row.PausedSeconds)
	assert.Equal(t, int64(28800), row.Seconds)
	assert.Equal(t, "Completed", row.Status)
	assert.Empty(t, row.Integrity)
}

func TestAggregateHistory_OpenSession(t *testing.T) {
	session := domain.Session{
		ID:        "s1",
		OwnerID:   "alice",
		Pauses:    []domain.Pause{{ID: "p1", SessionID: "s1", StartedAt: t0.Add(time.Hour)}},
		StartedAt: t0,
		Status:    domain.StatusPaused,
	}

	rows := AggregateHistory([]domain.Session{session}, t0.Add(3*time.Hour), utcFormats)

	require.Len(t, rows, 1)
	assert.Equal(t, InProgressLabel, rows[0].End)
	assert.Equal(t, "10:00-", rows[0].Pauses)
	assert.Equal(t, time.Hour, rows[0].WorkedFor)
	assert.Equal(t, 2*time.Hour, rows[0].PausedFor, "an open break counts up to now")
	assert.Equal(t, "On break", rows[0].Status)
	assert.Nil(t, rows[0].EndedAt)
}

func TestAggregateHistory_NoPauses(t *testing.T) {
	rows := AggregateHistory([]domain.Session{completedSession("s1", t0, 90*time.Minute)}, t0, utcFormats)

	require.Len(t, rows, 1)
	assert.Empty(t, rows[0].Pauses)
	assert.Equal(t, "0h 0m", rows[0].Paused)
	assert.Equal(t, "1h 30m", rows[0].Worked)
}

func TestAggregateHistory_CorruptRowStillRenders(t *testing.T) {
	end := t0.Add(time.Hour)
	session := domain.Session{
		EndedAt:   &end,
		ID:        "s1",
		OwnerID:   "alice",
		Pauses:    []domain.Pause{pauseBetween("p1", t0.Add(-2*time.Hour), t0.Add(30*time.Minute))},
		StartedAt: t0,
		Status:    domain.StatusCompleted,
	}

	rows := AggregateHistory([]domain.Session{session}, end, utcFormats)

	require.Len(t, rows, 1)
	assert.Equal(t, time.Duration(0), rows[0].WorkedFor)
	assert.Equal(t, "0h 0m", rows[0].Worked)
	assert.NotEmpty(t, rows[0].Integrity)
}

func TestAggregateHistory_Empty(t *testing.T) {
	rows := AggregateHistory(nil, t0, HistoryFormats{})

	assert.Empty(t, rows)
	assert.Equal(t, HistoryTotals{}, SumHistory(rows))
}

func TestSumHistory(t *testing.T) {
	rows := AggregateHistory([]domain.Session{
		completedSession("a", t0, 8*time.Hour),
		completedSession("b", t0.AddDate(0, 0, 1), 7*time.Hour+30*time.Minute),
	}, t0.AddDate(0, 0, 2), utcFormats)

	totals := SumHistory(rows)

	assert.Equal(t, 2, totals.Sessions)
	assert.Equal(t, 15*time.Hour+30*time.Minute, totals.Worked)
	assert.Equal(t, int64(55800), totals.Seconds)
	assert.Equal(t, "2 sessions, 15h 30m worked", totals.String())
	assert.Equal(t, "1 session, 0h 0m worked", HistoryTotals{Sessions: 1}.String())
	assert.Equal(t, "1 session, 7h 0m worked, 1h 0m on break",
		HistoryTotals{Paused: time.Hour, Sessions: 1, Worked: 7 * time.Hour}.String())
}

func TestSumHistory_IncludesBreaks(t *testing.T) {
	end := t0.Add(5 * time.Hour)
	withBreak := domain.Session{
		EndedAt:   &end,
		ID:        "a",
		OwnerID:   "alice",
		Pauses:    []domain.Pause{pauseBetween("p1", t0.Add(time.Hour), t0.Add(90*time.Minute))},
		StartedAt: t0,
		Status:    domain.StatusCompleted,
	}
	rows := AggregateHistory([]domain.Session{withBreak, completedSession("b", t0.AddDate(0, 0, 1), time.Hour)},
		t0.AddDate(0, 0, 2), utcFormats)

	totals := SumHistory(rows)

	assert.Equal(t, 30*time.Minute, totals.Paused)
	assert.Equal(t, int64(1800), totals.PausedSeconds)
	assert.Equal(t, 5*time.Hour+30*time.Minute, totals.Worked)
	assert.Equal(t, "2 sessions, 5h 30m worked, 0h 30m on break", totals.String())
}

func TestHistoryService_History(t *testing.T) {
	store := portsmocks.NewMockSessionStore(t)
	store.EXPECT().ListSessions(mock.Anything, "alice").Return([]domain.Session{
		completedSession("a", t0, 8*time.Hour),
		completedSession("b", t0.AddDate(0, 0, 1), 6*time.Hour),
		completedSession("c", t0.AddDate(0, 0, 2), 4*time.Hour),
	}, nil).Times(2)

	service := NewHistoryService(store, newFakeClock(t0.AddDate(0, 0, 3)), utcFormats)

	rows, totals, err := service.History(context.Background(), "alice", 0)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
	assert.Equal(t, 18*time.Hour, totals.Worked)

	rows, totals, err = service.History(context.Background(), "alice", 2)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "c", rows[0].SessionID)
	assert.Equal(t, 2, totals.Sessions)
	assert.Equal(t, 10*time.Hour, totals.Worked)
}

func TestHistoryService_StoreError(t *testing.T) {
	store := portsmocks.NewMockSessionStore(t)
	store.EXPECT().ListSessions(mock.Anything, "alice").Return(nil, domain.ErrStoreUnavailable).Once()

	service := NewHistoryService(store, newFakeClock(t0), utcFormats)

	_, _, err := service.History(context.Background(), "alice", 0)

	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}
