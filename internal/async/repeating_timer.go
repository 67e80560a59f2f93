package async

import (
	"context"
	"sync"
	"time"

	"github.com/evgetd/evgetd/internal/core"
)

// RepeatingTimer repeatedly waits an interval then invokes a callback, until
// Stop is called. Cancellation via Stop surfaces as success; any other wait
// error terminates the loop with Err(AsyncError). Callback errors are not
// caught here; they propagate to the caller of AwaitWith.
type RepeatingTimer struct {
	interval time.Duration
	stopOnce sync.Once
	stopC    chan struct{}
}

// NewRepeatingTimer constructs a RepeatingTimer with the given interval.
func NewRepeatingTimer(interval time.Duration) *RepeatingTimer {
	return &RepeatingTimer{
		interval: interval,
		stopC:    make(chan struct{}),
	}
}

// AwaitWith waits interval, invokes callback, and loops, until Stop is
// called or ctx is cancelled or callback returns an error.
func (rt *RepeatingTimer) AwaitWith(ctx context.Context, callback func(context.Context) error) error {
	timer := time.NewTimer(rt.interval)
	defer timer.Stop()

	for {
		select {
		case <-timer.C:
			if err := callback(ctx); err != nil {
				return err
			}
			timer.Reset(rt.interval)
		case <-rt.stopC:
			return nil
		case <-ctx.Done():
			return core.Wrap(core.AsyncError, "repeating_timer.await_with", "context cancelled", ctx.Err())
		}
	}
}

// Stop cancels the wait; AwaitWith returns nil. Safe to call from multiple
// goroutines and more than once.
func (rt *RepeatingTimer) Stop() {
	rt.stopOnce.Do(func() { close(rt.stopC) })
}
