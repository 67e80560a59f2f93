// Package async implements the periodic-wake and task-scheduling primitives
// that drive the event pipeline's time-triggered work: Interval and
// RepeatingTimer for periodic wakeups, and Scheduler for the worker pool that
// owns every spawned task and the process-wide stop flag.
package async

import (
	"context"
	"time"

	"github.com/evgetd/evgetd/internal/core"
)

// Interval is a periodic timer. Tick completes once per period; Reset
// wakes a Tick early and is never an error, even if a Tick is in flight.
// Concurrent Tick calls on the same instance are not supported; Reset may
// be called from another goroutine to interrupt a pending Tick.
type Interval struct {
	period time.Duration
	timer  *time.Timer
	resetC chan struct{}
}

// NewInterval constructs an Interval with period p. The first Tick completes
// p after construction.
func NewInterval(p time.Duration) *Interval {
	return &Interval{
		period: p,
		timer:  time.NewTimer(p),
		resetC: make(chan struct{}, 1),
	}
}

// Period returns the configured period.
func (iv *Interval) Period() time.Duration {
	return iv.period
}

// Tick blocks until the next period boundary, or until Reset is called,
// whichever comes first. Either way it returns successfully and rearms
// itself for the next period before returning: cancellation via Reset is
// never surfaced as an error.
func (iv *Interval) Tick(ctx context.Context) error {
	select {
	case <-iv.timer.C:
		iv.timer.Reset(iv.period)
		return nil
	case <-iv.resetC:
		iv.stopAndDrain()
		iv.timer.Reset(iv.period)
		return nil
	case <-ctx.Done():
		return core.Wrap(core.AsyncError, "interval.tick", "context cancelled", ctx.Err())
	}
}

// Reset makes the in-flight Tick return successfully at once; when no Tick
// is pending, the next Tick returns successfully at once instead. Reset does
// not move the next expiry to a full period from the call: the timer is
// rearmed for a full period when that woken Tick returns. Several Resets
// made before a Tick consumes the wake-up count as one.
func (iv *Interval) Reset() {
	select {
	case iv.resetC <- struct{}{}:
	default:
	}
}

func (iv *Interval) stopAndDrain() {
	if !iv.timer.Stop() {
		select {
		case <-iv.timer.C:
		default:
		}
	}
}
