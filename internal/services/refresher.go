package services

import (
	"context"
	"time"
)

// refresher runs a function on a fixed cadence until stopped.
// It is not safe for concurrent use; the Controller guards it with its mutex.
type refresher struct {
	cancel   context.CancelFunc
	done     chan struct{}
	interval time.Duration
}

func newRefresher(interval time.Duration) *refresher {
	return &refresher{interval: interval}
}

// running reports whether a refresh loop is active
func (r *refresher) running() bool {
	return r.cancel != nil
}

// start launches the loop. tick receives the loop's context so it can detect
// that it was stopped while waiting for a lock. Starting a running refresher is a no-op.
func (r *refresher) start(tick func(ctx context.Context)) {
	if r.running() {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	r.cancel = cancel
	r.done = done

	go func() {
		defer close(done)
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				tick(ctx)
			}
		}
	}()
}

// stop cancels the loop and returns a channel closed once the goroutine has exited.
// It does not wait, so it can be called while holding a lock the tick function needs.
func (r *refresher) stop() <-chan struct{} {
	if !r.running() {
		closed := make(chan struct{})
		close(closed)
		return closed
	}

	r.cancel()
	done := r.done
	r.cancel = nil
	r.done = nil
	return done
}
