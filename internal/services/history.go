package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/renato0307/shiftclock/internal/domain"
	"github.com/renato0307/shiftclock/internal/logging"
	"github.com/renato0307/shiftclock/internal/ports"
)

// InProgressLabel is shown in the end column of a session that is still open
const InProgressLabel = "in progress"

// HistoryFormats controls how history timestamps are rendered
type HistoryFormats struct {
	DateFormat string
	Location   *time.Location
	TimeFormat string
}

// DefaultHistoryFormats renders dates as 2006-01-02 and times as 15:04 in local time
func DefaultHistoryFormats() HistoryFormats {
	return HistoryFormats{
		DateFormat: "2006-01-02",
		Location:   time.Local,
		TimeFormat: "15:04",
	}
}

// HistoryRow is one rendered session. The raw fields back JSON output.
type HistoryRow struct {
	Date          string        `json:"date"`
	Start         string        `json:"start"`
	Pauses        string        `json:"pauses"`
	Paused        string        `json:"paused"`
	End           string        `json:"end"`
	Worked        string        `json:"worked"`
	SessionID     string        `json:"session_id"`
	Status        string        `json:"status"`
	StartedAt     time.Time     `json:"started_at"`
	EndedAt       *time.Time    `json:"ended_at,omitempty"`
	PausedFor     time.Duration `json:"-"`
	PausedSeconds int64         `json:"paused_seconds"`
	WorkedFor     time.Duration `json:"-"`
	Seconds       int64         `json:"worked_seconds"`
	Integrity     string        `json:"integrity_error,omitempty"`
}

// HistoryTotals summarizes a set of rows
type HistoryTotals struct {
	Paused        time.Duration `json:"-"`
	PausedSeconds int64         `json:"paused_seconds"`
	Seconds       int64         `json:"worked_seconds"`
	Sessions      int           `json:"sessions"`
	Worked        time.Duration `json:"-"`
}

// String renders the totals line shown under the history table
func (t HistoryTotals) String() string {
	noun := "sessions"
	if t.Sessions == 1 {
		noun = "session"
	}
	line := fmt.Sprintf("%d %s, %s worked", t.Sessions, noun, domain.FormatHoursMinutes(t.Worked))
	if t.Paused > 0 {
		line += fmt.Sprintf(", %s on break", domain.FormatHoursMinutes(t.Paused))
	}
	return line
}

// AggregateHistory renders one row per session, most recent start first.
// Completed sessions are measured at their end, open ones at now. Integrity
// problems are logged and the row keeps the clamped value.
func AggregateHistory(sessions []domain.Session, now time.Time, formats HistoryFormats) []HistoryRow {
	formats = withDefaults(formats)

	sorted := make([]domain.Session, len(sessions))
	copy(sorted, sessions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartedAt.After(sorted[j].StartedAt)
	})

	rows := make([]HistoryRow, 0, len(sorted))
	for _, s := range sorted {
		rows = append(rows, historyRow(s, now, formats))
	}
	return rows
}

// SumHistory totals worked and break time across rows
func SumHistory(rows []HistoryRow) HistoryTotals {
	totals := HistoryTotals{Sessions: len(rows)}
	for _, row := range rows {
		totals.Paused += row.PausedFor
		totals.Worked += row.WorkedFor
	}
	totals.PausedSeconds = int64(totals.Paused / time.Second)
	totals.Seconds = int64(totals.Worked / time.Second)
	return totals
}

func historyRow(s domain.Session, now time.Time, formats HistoryFormats) HistoryRow {
	worked, err := domain.WorkedAt(s, now)
	asOf := now
	if s.EndedAt != nil {
		asOf = *s.EndedAt
	}
	paused := domain.TotalPaused(s, asOf)

	row := HistoryRow{
		Date:          s.StartedAt.In(formats.Location).Format(formats.DateFormat),
		End:           InProgressLabel,
		EndedAt:       s.EndedAt,
		Paused:        domain.FormatHoursMinutes(paused),
		PausedFor:     paused,
		PausedSeconds: int64(paused / time.Second),
		Pauses:        formatPauses(s.Pauses, formats),
		Seconds:       int64(worked / time.Second),
		SessionID:     s.ID,
		Start:         s.StartedAt.In(formats.Location).Format(formats.TimeFormat),
		StartedAt:     s.StartedAt,
		Status:        s.State().Label(),
		Worked:        domain.FormatHoursMinutes(worked),
		WorkedFor:     worked,
	}
	if s.EndedAt != nil {
		row.End = s.EndedAt.In(formats.Location).Format(formats.TimeFormat)
	}
	if err != nil {
		row.Integrity = err.Error()
		logging.Logger.Warn("Session data integrity problem in history",
			"session_id", s.ID, "owner_id", s.OwnerID, "error", err)
	}
	return row
}

// formatPauses renders pauses as "HH:MM-HH:MM", an open one as "HH:MM-"
func formatPauses(pauses []domain.Pause, formats HistoryFormats) string {
	parts := make([]string, 0, len(pauses))
	for _, p := range pauses {
		part := p.StartedAt.In(formats.Location).Format(formats.TimeFormat) + "-"
		if p.EndedAt != nil {
			part += p.EndedAt.In(formats.Location).Format(formats.TimeFormat)
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, ", ")
}

func withDefaults(f HistoryFormats) HistoryFormats {
	defaults := DefaultHistoryFormats()
	if f.DateFormat == "" {
		f.DateFormat = defaults.DateFormat
	}
	if f.TimeFormat == "" {
		f.TimeFormat = defaults.TimeFormat
	}
	if f.Location == nil {
		f.Location = defaults.Location
	}
	return f
}

// HistoryService loads an owner's sessions and aggregates them
type HistoryService struct {
	clock   ports.Clock
	formats HistoryFormats
	reader  ports.SessionReader
}

// NewHistoryService creates a new HistoryService
func NewHistoryService(reader ports.SessionReader, clock ports.Clock, formats HistoryFormats) *HistoryService {
	return &HistoryService{
		clock:   clock,
		formats: formats,
		reader:  reader,
	}
}

// History returns the owner's rows, most recent first. limit <= 0 returns all rows.
func (s *HistoryService) History(ctx context.Context, ownerID string, limit int) ([]HistoryRow, HistoryTotals, error) {
	sessions, err := s.reader.ListSessions(ctx, ownerID)
	if err != nil {
		return nil, HistoryTotals{}, fmt.Errorf("failed to list sessions: %w", err)
	}

	rows := AggregateHistory(sessions, s.clock.Now(), s.formats)
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	logging.Logger.Debug("History aggregated", "owner_id", ownerID, "rows", len(rows))
	return rows, SumHistory(rows), nil
}
