package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/renato0307/shiftclock/internal/domain"
	"github.com/renato0307/shiftclock/internal/logging"
	"github.com/renato0307/shiftclock/internal/services"
	"github.com/renato0307/shiftclock/internal/theme"
)

// SessionController is the part of services.Controller the watch view drives
type SessionController interface {
	Dismiss() error
	End(ctx context.Context) error
	Load(ctx context.Context) error
	OwnerID() string
	Pause(ctx context.Context) error
	Resume(ctx context.Context) error
	Snapshot() domain.Snapshot
	Start(ctx context.Context) error
	Subscribe(observer services.Observer) (unsubscribe func())
}

// HistoryProvider returns aggregated history rows for an owner
type HistoryProvider interface {
	History(ctx context.Context, ownerID string, limit int) ([]services.HistoryRow, services.HistoryTotals, error)
}

// Options configures the watch view
type Options struct {
	HistoryLimit int
	SyncInterval time.Duration
	TimeFormat   string
}

// Model is the bubbletea model of the live clock
type Model struct {
	controller    SessionController
	ctx           context.Context
	err           error
	help          help.Model
	history       HistoryProvider
	historyTable  table.Model
	historyTotals services.HistoryTotals
	keys          KeyMap
	options       Options
	showHistory   bool
	snap          domain.Snapshot
	snapshots     chan domain.Snapshot
	unsubscribe   func()
}

// NewModel subscribes to controller and returns the watch model.
// The caller keeps ownership of controller and closes it after the program exits.
func NewModel(ctx context.Context, controller SessionController, history HistoryProvider, options Options) *Model {
	if options.TimeFormat == "" {
		options.TimeFormat = "15:04"
	}

	m := &Model{
		controller: controller,
		ctx:        ctx,
		help:       help.New(),
		history:    history,
		keys:       DefaultKeyMap(),
		options:    options,
		snap:       controller.Snapshot(),
		snapshots:  make(chan domain.Snapshot, 16),
	}
	m.historyTable = newHistoryTable()
	m.unsubscribe = controller.Subscribe(m.observe)
	m.syncKeys()
	return m
}

// observe runs on the controller's publishing goroutine. When the buffer is
// full the oldest snapshot is dropped so the newest always gets through.
func (m *Model) observe(s domain.Snapshot) {
	for {
		select {
		case m.snapshots <- s:
			return
		default:
			select {
			case <-m.snapshots:
			default:
			}
		}
	}
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		waitForSnapshot(m.snapshots),
		m.action("load", m.controller.Load),
		m.syncTick(),
	)
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case snapshotMsg:
		m.adopt(domain.Snapshot(msg))
		return m, waitForSnapshot(m.snapshots)

	case syncTickMsg:
		return m, tea.Batch(m.action("load", m.controller.Load), m.syncTick())

	case actionDoneMsg:
		m.err = msg.err
		if msg.err != nil {
			logging.Logger.Warn("Watch action failed", "action", msg.action, "error", msg.err)
		}
		m.adopt(m.controller.Snapshot())
		if m.showHistory && msg.action != "load" {
			return m, m.loadHistory()
		}
		return m, nil

	case historyLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.historyTable.SetRows(historyTableRows(msg.rows))
		m.historyTotals = msg.totals
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.unsubscribe()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Start):
		return m, m.action("start", m.controller.Start)
	case key.Matches(msg, m.keys.Pause):
		return m, m.action("pause", m.controller.Pause)
	case key.Matches(msg, m.keys.Resume):
		return m, m.action("resume", m.controller.Resume)
	case key.Matches(msg, m.keys.End):
		return m, m.action("end", m.controller.End)
	case key.Matches(msg, m.keys.Dismiss):
		return m, m.action("dismiss", func(context.Context) error { return m.controller.Dismiss() })
	case key.Matches(msg, m.keys.History):
		m.showHistory = !m.showHistory
		if m.showHistory {
			return m, m.loadHistory()
		}
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if m.showHistory {
		var cmd tea.Cmd
		m.historyTable, cmd = m.historyTable.Update(msg)
		return m, cmd
	}
	return m, nil
}

// adopt keeps the newest snapshot; older ones arriving late are ignored
func (m *Model) adopt(s domain.Snapshot) {
	if s.Seq < m.snap.Seq {
		return
	}
	m.snap = s
	m.syncKeys()
}

func (m *Model) syncKeys() {
	state := m.snap.State
	m.keys.syncEnabled(
		domain.CanTransition(state, domain.EventStart),
		domain.CanTransition(state, domain.EventPause),
		domain.CanTransition(state, domain.EventResume),
		domain.CanTransition(state, domain.EventEnd),
		state == domain.StateCompleted,
	)
}

// action runs fn off the update loop and reports its outcome
func (m *Model) action(name string, fn func(ctx context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return actionDoneMsg{action: name, err: fn(ctx)}
	}
}

func (m *Model) loadHistory() tea.Cmd {
	ctx, owner, limit := m.ctx, m.controller.OwnerID(), m.options.HistoryLimit
	return func() tea.Msg {
		rows, totals, err := m.history.History(ctx, owner, limit)
		return historyLoadedMsg{err: err, rows: rows, totals: totals}
	}
}

func (m *Model) syncTick() tea.Cmd {
	if m.options.SyncInterval <= 0 {
		return nil
	}
	return tea.Tick(m.options.SyncInterval, func(time.Time) tea.Msg {
		return syncTickMsg{}
	})
}

func waitForSnapshot(ch <-chan domain.Snapshot) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return nil
		}
		return snapshotMsg(s)
	}
}

// View implements tea.Model
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(theme.TitleStyle.Render("shiftclock") + " " + theme.MutedStyle.Render(m.snap.OwnerID) + "\n")
	b.WriteString(theme.ClockStyle.Render(m.snap.Clock) + "\n")
	b.WriteString(theme.StateStyle(m.snap.State).Render(m.snap.Label))
	if m.snap.StartedAt != nil {
		b.WriteString(theme.MutedStyle.Render(fmt.Sprintf("  since %s", m.snap.StartedAt.Local().Format(m.options.TimeFormat))))
	}
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString("\n" + theme.ErrorStyle.Render("Error: "+m.err.Error()) + "\n")
	}

	if m.showHistory {
		b.WriteString("\n" + m.historyTable.View() + "\n")
		b.WriteString(theme.TotalsStyle.Render("Total: "+m.historyTotals.String()) + "\n")
	}

	b.WriteString(theme.HelpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func newHistoryTable() table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Date", Width: 10},
			{Title: "Start", Width: 5},
			{Title: "Breaks", Width: 24},
			{Title: "Paused", Width: 8},
			{Title: "End", Width: 11},
			{Title: "Worked", Width: 8},
		}),
		table.WithFocused(true),
		table.WithHeight(8),
	)
	styles := table.DefaultStyles()
	styles.Header = theme.TableHeaderStyle
	styles.Cell = theme.TableCellStyle
	t.SetStyles(styles)
	return t
}

func historyTableRows(rows []services.HistoryRow) []table.Row {
	out := make([]table.Row, 0, len(rows))
	for _, r := range rows {
		out = append(out, table.Row{r.Date, r.Start, r.Pauses, r.Paused, r.End, r.Worked})
	}
	return out
}
