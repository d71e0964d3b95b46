package services

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/shiftclock/internal/adapters/storage"
	"github.com/renato0307/shiftclock/internal/domain"
	"github.com/renato0307/shiftclock/internal/ports"
	portsmocks "github.com/renato0307/shiftclock/internal/ports/mocks"
)

var t0 = time.Date(2026, 2, 8, 9, 0, 0, 0, time.UTC)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(now time.Time) *fakeClock {
	return &fakeClock{now: now}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// recorder collects published snapshots
type recorder struct {
	mu    sync.Mutex
	snaps []domain.Snapshot
}

func (r *recorder) observe(s domain.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snaps = append(r.snaps, s)
}

func (r *recorder) all() []domain.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Snapshot, len(r.snaps))
	copy(out, r.snaps)
	return out
}

func (r *recorder) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.snaps)
}

func newSQLiteStore(t *testing.T) *storage.SQLiteStore {
	t.Helper()
	store, err := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func newTestController(t *testing.T, store ports.SessionStore, clock ports.Clock, interval time.Duration) *Controller {
	t.Helper()
	c := NewController("alice", store, clock, interval)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestController_FullShiftWorkedTime(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock(t0)
	c := newTestController(t, newSQLiteStore(t), clock, time.Hour)

	require.NoError(t, c.Start(ctx))
	assert.Equal(t, domain.StateActive, c.State())

	clock.Advance(30 * time.Minute)
	require.NoError(t, c.Pause(ctx))
	assert.Equal(t, domain.StatePaused, c.State())

	clock.Advance(15 * time.Minute)
	require.NoError(t, c.Resume(ctx))
	assert.Equal(t, domain.StateActive, c.State())

	clock.Advance(75 * time.Minute)
	require.NoError(t, c.End(ctx))
	assert.Equal(t, domain.StateCompleted, c.State())

	snap := c.Snapshot()
	assert.Equal(t, 105*time.Minute, snap.Worked)
	assert.Equal(t, "01:45:00", snap.Clock)
	assert.Equal(t, "Completed", snap.Label)

	// Completed sessions are measured at their end
	clock.Advance(time.Hour)
	assert.Equal(t, 105*time.Minute, c.Snapshot().Worked)
}

func TestController_WorkedTimeFrozenWhilePaused(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock(t0)
	c := newTestController(t, newSQLiteStore(t), clock, time.Hour)

	require.NoError(t, c.Start(ctx))
	clock.Advance(10 * time.Minute)
	require.NoError(t, c.Pause(ctx))

	clock.Advance(30 * time.Minute)
	assert.Equal(t, 10*time.Minute, c.Snapshot().Worked)

	clock.Advance(2 * time.Hour)
	assert.Equal(t, 10*time.Minute, c.Snapshot().Worked)
	assert.Equal(t, "On break", c.Snapshot().Label)
}

func TestController_EndWhilePausedClosesPause(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock(t0)
	c := newTestController(t, newSQLiteStore(t), clock, time.Hour)

	require.NoError(t, c.Start(ctx))
	clock.Advance(time.Hour)
	require.NoError(t, c.Pause(ctx))
	clock.Advance(20 * time.Minute)
	require.NoError(t, c.End(ctx))

	session, ok := c.Session()
	require.True(t, ok)
	require.Len(t, session.Pauses, 1)
	require.NotNil(t, session.Pauses[0].EndedAt)
	require.NotNil(t, session.EndedAt)
	assert.Equal(t, *session.EndedAt, *session.Pauses[0].EndedAt)
	assert.Equal(t, domain.StatusCompleted, session.Status)
	assert.Equal(t, time.Hour, c.Snapshot().Worked)
}

// failingUpdateStore fails the next UpdateSession call and delegates everything else
type failingUpdateStore struct {
	ports.SessionStore
	failures int
}

func (s *failingUpdateStore) UpdateSession(ctx context.Context, id string, update ports.SessionUpdate) (domain.Session, error) {
	if s.failures > 0 {
		s.failures--
		return domain.Session{}, domain.ErrStoreUnavailable
	}
	return s.SessionStore.UpdateSession(ctx, id, update)
}

func TestController_FailedEndWhilePausedKeepsBreakOpen(t *testing.T) {
	ctx := context.Background()
	sqlite := newSQLiteStore(t)
	store := &failingUpdateStore{SessionStore: sqlite, failures: 1}
	clock := newFakeClock(t0)
	c := newTestController(t, store, clock, time.Hour)

	require.NoError(t, c.Start(ctx))
	clock.Advance(10 * time.Minute)
	require.NoError(t, c.Pause(ctx))
	clock.Advance(10 * time.Minute)

	err := c.End(ctx)

	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.Equal(t, domain.StatePaused, c.State())

	stored, err := sqlite.GetOpenSession(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, domain.StatusPaused, stored.DeriveStatus())
	_, open := stored.OpenPause()
	assert.True(t, open, "the break must still be open in the store")

	clock.Advance(30 * time.Minute)
	assert.Equal(t, 10*time.Minute, c.Snapshot().Worked)

	require.NoError(t, c.End(ctx), "retrying end succeeds")
	assert.Equal(t, domain.StateCompleted, c.State())
	assert.Equal(t, 10*time.Minute, c.Snapshot().Worked)
}

func TestController_AdoptsStoreRecord(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock(t0)
	c := newTestController(t, newSQLiteStore(t), clock, time.Hour)

	require.NoError(t, c.Start(ctx))
	clock.Advance(5 * time.Minute)
	require.NoError(t, c.Pause(ctx))

	session, ok := c.Session()
	require.True(t, ok)
	assert.NotEmpty(t, session.ID)
	assert.Equal(t, domain.StatusPaused, session.Status)
	require.Len(t, session.Pauses, 1)
	assert.NotEmpty(t, session.Pauses[0].ID)
	assert.Equal(t, session.ID, session.Pauses[0].SessionID)
}

func TestController_InvalidTransitionsNeverTouchStore(t *testing.T) {
	ctx := context.Background()
	active := domain.Session{ID: "s1", OwnerID: "alice", StartedAt: t0, Status: domain.StatusActive}
	paused := domain.Session{
		ID: "s1", OwnerID: "alice", StartedAt: t0, Status: domain.StatusPaused,
		Pauses: []domain.Pause{{ID: "p1", SessionID: "s1", StartedAt: t0.Add(time.Minute)}},
	}

	tests := []struct {
		name    string
		open    *domain.Session
		attempt func(c *Controller) error
		state   domain.State
	}{
		{"pause while none", nil, func(c *Controller) error { return c.Pause(ctx) }, domain.StateNone},
		{"resume while none", nil, func(c *Controller) error { return c.Resume(ctx) }, domain.StateNone},
		{"end while none", nil, func(c *Controller) error { return c.End(ctx) }, domain.StateNone},
		{"start while active", &active, func(c *Controller) error { return c.Start(ctx) }, domain.StateActive},
		{"resume while active", &active, func(c *Controller) error { return c.Resume(ctx) }, domain.StateActive},
		{"start while paused", &paused, func(c *Controller) error { return c.Start(ctx) }, domain.StatePaused},
		{"pause while paused", &paused, func(c *Controller) error { return c.Pause(ctx) }, domain.StatePaused},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := portsmocks.NewMockSessionStore(t)
			store.EXPECT().GetOpenSession(mock.Anything, "alice").Return(tt.open, nil).Once()

			c := newTestController(t, store, newFakeClock(t0.Add(time.Hour)), time.Hour)
			require.NoError(t, c.Load(ctx))
			rec := &recorder{}
			c.Subscribe(rec.observe)

			err := tt.attempt(c)

			assert.ErrorIs(t, err, domain.ErrInvalidTransition)
			var transitionErr *domain.TransitionError
			assert.True(t, errors.As(err, &transitionErr))
			assert.Equal(t, tt.state, c.State())
			assert.Zero(t, rec.len(), "failed transitions must not publish")
		})
	}
}

func TestController_CompletedIsTerminal(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock(t0)
	c := newTestController(t, newSQLiteStore(t), clock, time.Hour)

	require.NoError(t, c.Start(ctx))
	clock.Advance(time.Hour)
	require.NoError(t, c.End(ctx))

	for _, attempt := range []func(context.Context) error{c.Start, c.Pause, c.Resume, c.End} {
		assert.ErrorIs(t, attempt(ctx), domain.ErrInvalidTransition)
	}
	assert.Equal(t, domain.StateCompleted, c.State())

	require.NoError(t, c.Dismiss())
	assert.Equal(t, domain.StateNone, c.State())
	require.NoError(t, c.Start(ctx))
	assert.Equal(t, domain.StateActive, c.State())
}

func TestController_Dismiss(t *testing.T) {
	ctx := context.Background()
	c := newTestController(t, newSQLiteStore(t), newFakeClock(t0), time.Hour)

	assert.NoError(t, c.Dismiss(), "dismiss from none is a no-op")

	require.NoError(t, c.Start(ctx))
	assert.ErrorIs(t, c.Dismiss(), domain.ErrInvalidTransition)
	assert.Equal(t, domain.StateActive, c.State())
}

func TestController_StoreFailureLeavesStateUnchanged(t *testing.T) {
	ctx := context.Background()
	active := domain.Session{ID: "s1", OwnerID: "alice", StartedAt: t0, Status: domain.StatusActive}

	store := portsmocks.NewMockSessionStore(t)
	store.EXPECT().GetOpenSession(mock.Anything, "alice").Return(&active, nil).Once()
	store.EXPECT().CreatePause(mock.Anything, "s1", mock.Anything).
		Return(domain.Pause{}, domain.ErrStoreUnavailable).Once()

	clock := newFakeClock(t0.Add(time.Hour))
	c := newTestController(t, store, clock, time.Hour)
	require.NoError(t, c.Load(ctx))
	before := c.Snapshot()
	rec := &recorder{}
	c.Subscribe(rec.observe)

	err := c.Pause(ctx)

	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.Equal(t, domain.StateActive, c.State())
	assert.True(t, c.Refreshing())
	assert.Zero(t, rec.len())
	after := c.Snapshot()
	assert.Equal(t, before.SessionID, after.SessionID)
	assert.Equal(t, before.Label, after.Label)
}

func TestController_ReloadFailureLeavesStateUnchanged(t *testing.T) {
	ctx := context.Background()
	created := domain.Session{ID: "s1", OwnerID: "alice", StartedAt: t0, Status: domain.StatusActive}

	store := portsmocks.NewMockSessionStore(t)
	store.EXPECT().CreateSession(mock.Anything, "alice", t0).Return(created, nil).Once()
	store.EXPECT().GetSession(mock.Anything, "s1").Return(domain.Session{}, domain.ErrStoreUnavailable).Once()

	c := newTestController(t, store, newFakeClock(t0), time.Hour)

	err := c.Start(ctx)

	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.Equal(t, domain.StateNone, c.State())
	assert.False(t, c.Refreshing())
	_, ok := c.Session()
	assert.False(t, ok)
}

func TestController_ConcurrentStartOneConflict(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t)
	clock := newFakeClock(t0)
	first := newTestController(t, store, clock, time.Hour)
	second := newTestController(t, store, clock, time.Hour)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, c := range []*Controller{first, second} {
		wg.Add(1)
		go func(i int, c *Controller) {
			defer wg.Done()
			errs[i] = c.Start(ctx)
		}(i, c)
	}
	wg.Wait()

	winners := 0
	for i, err := range errs {
		c := []*Controller{first, second}[i]
		if err == nil {
			winners++
			assert.Equal(t, domain.StateActive, c.State())
			continue
		}
		assert.ErrorIs(t, err, domain.ErrConflict)
		assert.Equal(t, domain.StateNone, c.State())
	}
	assert.Equal(t, 1, winners)

	// The loser re-syncs to the winner's session
	for _, c := range []*Controller{first, second} {
		require.NoError(t, c.Load(ctx))
		assert.Equal(t, domain.StateActive, c.State())
	}
	s1, _ := first.Session()
	s2, _ := second.Session()
	assert.Equal(t, s1.ID, s2.ID)
}

func TestController_LoadRestoresOpenSession(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t)
	clock := newFakeClock(t0)

	writer := newTestController(t, store, clock, time.Hour)
	require.NoError(t, writer.Start(ctx))
	clock.Advance(20 * time.Minute)
	require.NoError(t, writer.Pause(ctx))
	require.NoError(t, writer.Close())

	clock.Advance(10 * time.Minute)
	reader := newTestController(t, store, clock, time.Hour)
	require.NoError(t, reader.Load(ctx))

	assert.Equal(t, domain.StatePaused, reader.State())
	assert.False(t, reader.Refreshing())
	assert.Equal(t, 20*time.Minute, reader.Snapshot().Worked)
}

func TestController_LoadKeepsCompletedUntilDismissed(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock(t0)
	c := newTestController(t, newSQLiteStore(t), clock, time.Hour)

	require.NoError(t, c.Start(ctx))
	clock.Advance(time.Hour)
	require.NoError(t, c.End(ctx))

	require.NoError(t, c.Load(ctx))
	assert.Equal(t, domain.StateCompleted, c.State())
}

func TestController_LoadClampsCorruptData(t *testing.T) {
	ctx := context.Background()
	// The pause starts before the session: worked time would be negative
	corrupt := domain.Session{
		ID: "s1", OwnerID: "alice", StartedAt: t0, Status: domain.StatusActive,
		Pauses: []domain.Pause{{ID: "p1", SessionID: "s1", StartedAt: t0.Add(-3 * time.Hour), EndedAt: ptrTime(t0.Add(time.Minute))}},
	}
	store := portsmocks.NewMockSessionStore(t)
	store.EXPECT().GetOpenSession(mock.Anything, "alice").Return(&corrupt, nil).Once()

	c := newTestController(t, store, newFakeClock(t0.Add(time.Hour)), time.Hour)

	require.NoError(t, c.Load(ctx))

	assert.Equal(t, domain.StateActive, c.State())
	assert.Equal(t, time.Duration(0), c.Snapshot().Worked)
}

func TestController_LoadStoreUnavailable(t *testing.T) {
	store := portsmocks.NewMockSessionStore(t)
	store.EXPECT().GetOpenSession(mock.Anything, "alice").Return(nil, domain.ErrStoreUnavailable).Once()

	c := newTestController(t, store, newFakeClock(t0), time.Hour)

	err := c.Load(context.Background())

	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.Equal(t, domain.StateNone, c.State())
}

func TestController_RefreshRunsOnlyWhileActive(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock(t0)
	c := newTestController(t, newSQLiteStore(t), clock, 5*time.Millisecond)
	rec := &recorder{}
	c.Subscribe(rec.observe)

	assert.False(t, c.Refreshing())
	require.NoError(t, c.Start(ctx))
	assert.True(t, c.Refreshing())

	assert.Eventually(t, func() bool { return rec.len() >= 4 }, 2*time.Second, 5*time.Millisecond)

	require.NoError(t, c.Pause(ctx))
	assert.False(t, c.Refreshing())

	time.Sleep(30 * time.Millisecond)
	snaps := rec.all()
	pausedAt := -1
	for i, s := range snaps {
		if s.State == domain.StatePaused {
			pausedAt = i
			break
		}
	}
	require.NotEqual(t, -1, pausedAt)
	for _, s := range snaps[pausedAt:] {
		assert.Equal(t, domain.StatePaused, s.State, "no active snapshot after the pause")
	}

	require.NoError(t, c.Resume(ctx))
	assert.True(t, c.Refreshing())
	require.NoError(t, c.End(ctx))
	assert.False(t, c.Refreshing())
}

func TestController_SnapshotsInSequence(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock(t0)
	c := newTestController(t, newSQLiteStore(t), clock, time.Millisecond)
	rec := &recorder{}
	c.Subscribe(rec.observe)

	require.NoError(t, c.Start(ctx))
	for i := 0; i < 5; i++ {
		clock.Advance(time.Minute)
		require.NoError(t, c.Pause(ctx))
		require.NoError(t, c.Resume(ctx))
	}
	require.NoError(t, c.End(ctx))

	snaps := rec.all()
	require.NotEmpty(t, snaps)
	for i := 1; i < len(snaps); i++ {
		assert.Greater(t, snaps[i].Seq, snaps[i-1].Seq)
	}
	assert.Equal(t, domain.StateCompleted, snaps[len(snaps)-1].State)
}

func TestController_ObserverMayReenter(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock(t0)
	c := newTestController(t, newSQLiteStore(t), clock, time.Hour)

	var (
		mu     sync.Mutex
		states []domain.State
		inner  error
	)
	c.Subscribe(func(s domain.Snapshot) {
		mu.Lock()
		states = append(states, s.State)
		first := len(states) == 1
		mu.Unlock()

		if first {
			inner = c.Pause(ctx)
		}
	})

	require.NoError(t, c.Start(ctx))

	require.NoError(t, inner)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []domain.State{domain.StateActive, domain.StatePaused}, states)
	assert.Equal(t, domain.StatePaused, c.State())
}

func TestController_Unsubscribe(t *testing.T) {
	ctx := context.Background()
	c := newTestController(t, newSQLiteStore(t), newFakeClock(t0), time.Hour)
	rec := &recorder{}
	unsubscribe := c.Subscribe(rec.observe)

	require.NoError(t, c.Start(ctx))
	unsubscribe()
	require.NoError(t, c.Pause(ctx))

	assert.Equal(t, 1, rec.len())
}

func TestController_Logout(t *testing.T) {
	ctx := context.Background()
	c := newTestController(t, newSQLiteStore(t), newFakeClock(t0), 5*time.Millisecond)
	rec := &recorder{}
	c.Subscribe(rec.observe)

	require.NoError(t, c.Start(ctx))
	c.Logout()

	assert.Equal(t, domain.StateNone, c.State())
	assert.False(t, c.Refreshing())
	_, ok := c.Session()
	assert.False(t, ok)

	snaps := rec.all()
	require.NotEmpty(t, snaps)
	assert.Equal(t, domain.StateNone, snaps[len(snaps)-1].State)
	assert.Equal(t, "Idle", snaps[len(snaps)-1].Label)

	// The session is still open in the store
	require.NoError(t, c.Load(ctx))
	assert.Equal(t, domain.StateActive, c.State())
}

func TestController_CloseRejectsFurtherCalls(t *testing.T) {
	ctx := context.Background()
	c := NewController("alice", newSQLiteStore(t), newFakeClock(t0), 5*time.Millisecond)
	rec := &recorder{}
	c.Subscribe(rec.observe)

	require.NoError(t, c.Start(ctx))
	require.NoError(t, c.Close())
	time.Sleep(10 * time.Millisecond)
	published := rec.len()

	assert.False(t, c.Refreshing())
	assert.ErrorIs(t, c.Pause(ctx), ErrControllerClosed)
	assert.ErrorIs(t, c.Load(ctx), ErrControllerClosed)
	assert.ErrorIs(t, c.Dismiss(), ErrControllerClosed)
	assert.NoError(t, c.Close(), "closing twice is a no-op")

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, published, rec.len(), "nothing is published after close")
}

func ptrTime(t time.Time) *time.Time {
	return &t
}
