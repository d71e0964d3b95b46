package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/renato0307/shiftclock/internal/domain"
	"github.com/renato0307/shiftclock/internal/logging"
	"github.com/renato0307/shiftclock/internal/ports"
)

// ErrControllerClosed is returned by every Controller operation after Close
var ErrControllerClosed = errors.New("controller closed")

// Observer receives a snapshot on every transition and every refresh tick
type Observer func(domain.Snapshot)

// Controller owns one owner's current work session: it validates lifecycle
// events, persists them through the store, adopts the store's record after
// every write, and publishes snapshots to observers.
//
// Transitions and refresh ticks are serialized by mu. Observers are called
// without mu held and may call back into the Controller.
type Controller struct {
	clock   ports.Clock
	ownerID string
	store   ports.SessionStore

	mu       sync.Mutex
	closed   bool
	current  *domain.Session
	refresh  *refresher
	reported map[string]struct{}
	seq      uint64
	state    domain.State

	pubMu      sync.Mutex
	lastSeq    uint64
	nextObsID  uint64
	observers  map[uint64]Observer
	pending    []domain.Snapshot
	publishing bool
}

// NewController creates a Controller for ownerID in state none. Call Load to
// restore an open session from the store.
func NewController(ownerID string, store ports.SessionStore, clock ports.Clock, refreshInterval time.Duration) *Controller {
	if refreshInterval <= 0 {
		refreshInterval = time.Second
	}
	return &Controller{
		clock:     clock,
		observers: make(map[uint64]Observer),
		ownerID:   ownerID,
		refresh:   newRefresher(refreshInterval),
		reported:  make(map[string]struct{}),
		state:     domain.StateNone,
		store:     store,
	}
}

// OwnerID returns the owner this controller tracks
func (c *Controller) OwnerID() string {
	return c.ownerID
}

// State returns the current lifecycle state
func (c *Controller) State() domain.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Session returns a copy of the session in scope, if any
func (c *Controller) Session() (domain.Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return domain.Session{}, false
	}
	return cloneSession(*c.current), true
}

// Refreshing reports whether the periodic refresh is running
func (c *Controller) Refreshing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.refresh.running()
}

// Snapshot computes the current snapshot without publishing it
func (c *Controller) Snapshot() domain.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	snap := c.buildSnapshotLocked(c.clock.Now())
	snap.Seq = c.seq
	return snap
}

// Subscribe registers an observer and returns a function that removes it
func (c *Controller) Subscribe(observer Observer) (unsubscribe func()) {
	c.pubMu.Lock()
	defer c.pubMu.Unlock()

	if c.observers == nil {
		return func() {}
	}
	c.nextObsID++
	id := c.nextObsID
	c.observers[id] = observer

	return func() {
		c.pubMu.Lock()
		defer c.pubMu.Unlock()
		delete(c.observers, id)
	}
}

// Load restores the owner's open session from the store and derives its state.
// It is legal in any state and is the way to re-sync after a failed transition
// or a change made by another client. A completed session stays in scope until
// Dismiss when the store has no newer open session.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrControllerClosed
	}

	open, err := c.store.GetOpenSession(ctx, c.ownerID)
	if err != nil {
		c.mu.Unlock()
		logging.Logger.Warn("Failed to load open session", "owner_id", c.ownerID, "error", err)
		return fmt.Errorf("failed to load open session: %w", err)
	}

	now := c.clock.Now()
	switch {
	case open != nil:
		c.adoptLocked(*open, now)
	case c.state == domain.StateCompleted:
		// Nothing newer in the store; keep showing the finished session
	default:
		c.resetLocked()
	}

	logging.Logger.Info("Session state loaded", "owner_id", c.ownerID, "state", c.state)
	snap := c.nextSnapshotLocked(now)
	c.mu.Unlock()

	c.publish(snap)
	return nil
}

// Start opens a new session. Legal only in state none.
func (c *Controller) Start(ctx context.Context) error {
	return c.transition(ctx, domain.EventStart, func(ctx context.Context, now time.Time) (string, error) {
		session, err := c.store.CreateSession(ctx, c.ownerID, now)
		if err != nil {
			return "", err
		}
		return session.ID, nil
	})
}

// Pause opens a pause on the active session
func (c *Controller) Pause(ctx context.Context) error {
	return c.transition(ctx, domain.EventPause, func(ctx context.Context, now time.Time) (string, error) {
		if _, err := c.store.CreatePause(ctx, c.current.ID, now); err != nil {
			return "", err
		}
		return c.current.ID, nil
	})
}

// Resume closes the open pause of the paused session
func (c *Controller) Resume(ctx context.Context) error {
	return c.transition(ctx, domain.EventResume, func(ctx context.Context, now time.Time) (string, error) {
		pause, ok := c.current.OpenPause()
		if !ok {
			return "", fmt.Errorf("session %s has no open pause: %w", c.current.ID, domain.ErrDataIntegrity)
		}
		if _, err := c.store.UpdatePause(ctx, pause.ID, now); err != nil {
			return "", err
		}
		return c.current.ID, nil
	})
}

// End completes the session. The store closes an open pause at the same
// instant in the same write, so a failed End leaves the break open.
func (c *Controller) End(ctx context.Context) error {
	return c.transition(ctx, domain.EventEnd, func(ctx context.Context, now time.Time) (string, error) {
		completed := domain.StatusCompleted
		if _, err := c.store.UpdateSession(ctx, c.current.ID, ports.SessionUpdate{
			EndedAt: &now,
			Status:  &completed,
		}); err != nil {
			return "", err
		}
		return c.current.ID, nil
	})
}

// Dismiss takes a completed session out of scope so the next Start is legal
func (c *Controller) Dismiss() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrControllerClosed
	}

	switch c.state {
	case domain.StateNone:
		c.mu.Unlock()
		return nil
	case domain.StateCompleted:
	default:
		state := c.state
		c.mu.Unlock()
		return fmt.Errorf("%w: cannot dismiss while %s", domain.ErrInvalidTransition, state)
	}

	c.resetLocked()
	snap := c.nextSnapshotLocked(c.clock.Now())
	c.mu.Unlock()

	c.publish(snap)
	return nil
}

// Logout stops the refresh and forgets the session in scope. Observers stay subscribed.
func (c *Controller) Logout() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}

	c.resetLocked()
	snap := c.nextSnapshotLocked(c.clock.Now())
	c.mu.Unlock()

	logging.Logger.Info("Controller logged out", "owner_id", c.ownerID)
	c.publish(snap)
}

// Close stops the refresh, drops every observer, and rejects further calls.
// It waits for the refresh goroutine to exit unless called from an observer.
func (c *Controller) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	done := c.refresh.stop()
	c.current = nil
	c.state = domain.StateNone
	c.mu.Unlock()

	c.pubMu.Lock()
	delivering := c.publishing
	c.observers = nil
	c.pending = nil
	c.pubMu.Unlock()

	if !delivering {
		<-done
	}
	logging.Logger.Debug("Controller closed", "owner_id", c.ownerID)
	return nil
}

// transition runs one lifecycle event: guard, store writes, then adoption of the
// store's record. On any failure local state is left untouched and nothing is published.
func (c *Controller) transition(ctx context.Context, event domain.Event, write func(ctx context.Context, now time.Time) (string, error)) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrControllerClosed
	}

	from := c.state
	expected, err := domain.NextState(from, event)
	if err != nil {
		c.mu.Unlock()
		logging.Logger.Warn("Rejected transition", "owner_id", c.ownerID, "event", event, "state", from)
		return err
	}

	now := c.clock.Now()
	sessionID, err := write(ctx, now)
	if err != nil {
		c.mu.Unlock()
		logging.Logger.Warn("Transition failed", "owner_id", c.ownerID, "event", event, "state", from, "error", err)
		return fmt.Errorf("failed to %s session: %w", event, err)
	}

	session, err := c.store.GetSession(ctx, sessionID)
	if err != nil {
		c.mu.Unlock()
		logging.Logger.Warn("Failed to reload session after write",
			"owner_id", c.ownerID, "event", event, "session_id", sessionID, "error", err)
		return fmt.Errorf("failed to reload session after %s: %w", event, err)
	}

	c.adoptLocked(session, now)
	if c.state != expected {
		logging.Logger.Warn("Store state differs from expected transition result",
			"owner_id", c.ownerID, "event", event, "expected", expected, "actual", c.state)
	}
	logging.Logger.Info("Session transition",
		"owner_id", c.ownerID, "session_id", session.ID, "event", event, "from", from, "to", c.state)

	snap := c.nextSnapshotLocked(now)
	c.mu.Unlock()

	c.publish(snap)
	return nil
}

// adoptLocked replaces the session in scope with the store's record and
// starts or stops the refresh to match the derived state
func (c *Controller) adoptLocked(session domain.Session, now time.Time) {
	if c.current == nil || c.current.ID != session.ID {
		c.reported = make(map[string]struct{})
	}
	if err := session.Validate(now); err != nil {
		c.reportIntegrityLocked(err)
	}

	c.current = &session
	c.state = session.State()
	c.syncRefreshLocked()
}

func (c *Controller) resetLocked() {
	c.current = nil
	c.reported = make(map[string]struct{})
	c.state = domain.StateNone
	c.syncRefreshLocked()
}

// syncRefreshLocked runs the refresh exactly while the state is active.
// It does not wait for a stopped loop to exit; a pending tick sees its
// context canceled and returns.
func (c *Controller) syncRefreshLocked() {
	if c.state == domain.StateActive {
		c.refresh.start(c.tick)
		return
	}
	c.refresh.stop()
}

func (c *Controller) tick(ctx context.Context) {
	c.mu.Lock()
	if ctx.Err() != nil || c.closed || c.state != domain.StateActive {
		c.mu.Unlock()
		return
	}
	snap := c.nextSnapshotLocked(c.clock.Now())
	c.mu.Unlock()

	c.publish(snap)
}

func (c *Controller) nextSnapshotLocked(now time.Time) domain.Snapshot {
	c.seq++
	snap := c.buildSnapshotLocked(now)
	snap.Seq = c.seq
	return snap
}

func (c *Controller) buildSnapshotLocked(now time.Time) domain.Snapshot {
	var worked time.Duration
	if c.current != nil {
		w, err := domain.WorkedAt(*c.current, now)
		if err != nil {
			c.reportIntegrityLocked(err)
		}
		worked = w
	}
	return domain.NewSnapshot(c.ownerID, c.state, c.current, worked, now)
}

// reportIntegrityLocked logs each distinct data-integrity problem once per session
func (c *Controller) reportIntegrityLocked(err error) {
	key := err.Error()
	if _, seen := c.reported[key]; seen {
		return
	}
	c.reported[key] = struct{}{}
	logging.Logger.Warn("Session data integrity problem", "owner_id", c.ownerID, "error", err)
}

// publish delivers snap to every observer. Calls made while a delivery is in
// progress (from an observer or another goroutine) are queued and delivered in
// order by the goroutine already delivering. Snapshots older than the last one
// delivered are dropped.
func (c *Controller) publish(snap domain.Snapshot) {
	c.pubMu.Lock()
	if c.observers == nil {
		c.pubMu.Unlock()
		return
	}
	c.pending = append(c.pending, snap)
	if c.publishing {
		c.pubMu.Unlock()
		return
	}
	c.publishing = true

	for len(c.pending) > 0 {
		batch := c.pending
		c.pending = nil
		sort.SliceStable(batch, func(i, j int) bool { return batch[i].Seq < batch[j].Seq })
		observers := c.observerListLocked()
		c.pubMu.Unlock()

		for _, s := range batch {
			if s.Seq <= c.lastSeq {
				continue
			}
			c.lastSeq = s.Seq
			for _, observe := range observers {
				observe(s)
			}
		}

		c.pubMu.Lock()
	}

	c.publishing = false
	c.pubMu.Unlock()
}

func (c *Controller) observerListLocked() []Observer {
	ids := make([]uint64, 0, len(c.observers))
	for id := range c.observers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	list := make([]Observer, 0, len(ids))
	for _, id := range ids {
		list = append(list, c.observers[id])
	}
	return list
}

func cloneSession(s domain.Session) domain.Session {
	pauses := make([]domain.Pause, len(s.Pauses))
	copy(pauses, s.Pauses)
	s.Pauses = pauses
	return s
}
