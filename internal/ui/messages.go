package ui

import (
	"github.com/renato0307/shiftclock/internal/domain"
	"github.com/renato0307/shiftclock/internal/services"
)

// snapshotMsg carries a snapshot published by the controller
type snapshotMsg domain.Snapshot

// syncTickMsg triggers a reload from the store
type syncTickMsg struct{}

// actionDoneMsg reports the outcome of a transition, load or dismiss
type actionDoneMsg struct {
	action string
	err    error
}

// historyLoadedMsg carries aggregated history rows
type historyLoadedMsg struct {
	err    error
	rows   []services.HistoryRow
	totals services.HistoryTotals
}
