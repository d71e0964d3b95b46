package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/renato0307/shiftclock/internal/domain"
	"github.com/renato0307/shiftclock/internal/theme"
)

// snapshotJSON is the JSON shape of the status command
type snapshotJSON struct {
	Clock         string     `json:"clock"`
	Label         string     `json:"label"`
	Owner         string     `json:"owner"`
	SessionID     string     `json:"session_id,omitempty"`
	StartedAt     *time.Time `json:"started_at,omitempty"`
	State         string     `json:"state"`
	WorkedSeconds int64      `json:"worked_seconds"`
}

// printStatus writes the one-line status, e.g. "alice: Working 01:45:00 (since 09:00)"
func printStatus(w io.Writer, snap domain.Snapshot, timeFormat string) {
	line := fmt.Sprintf("%s: %s %s",
		snap.OwnerID,
		theme.StateStyle(snap.State).Render(snap.Label),
		snap.Clock)
	if snap.StartedAt != nil {
		line += theme.MutedStyle.Render(fmt.Sprintf(" (since %s)", snap.StartedAt.Local().Format(timeFormat)))
	}
	fmt.Fprintln(w, line)
}

func printStatusJSON(w io.Writer, snap domain.Snapshot) error {
	out := snapshotJSON{
		Clock:         snap.Clock,
		Label:         snap.Label,
		Owner:         snap.OwnerID,
		SessionID:     snap.SessionID,
		StartedAt:     snap.StartedAt,
		State:         string(snap.State),
		WorkedSeconds: int64(snap.Worked / time.Second),
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}
