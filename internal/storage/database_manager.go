package storage

import (
	"context"
	"errors"
	"sync"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/evgetd/evgetd/internal/async"
	"github.com/evgetd/evgetd/internal/container"
	"github.com/evgetd/evgetd/internal/core"
	"github.com/evgetd/evgetd/internal/logging"
	"github.com/evgetd/evgetd/pkg/event"
)

// DatabaseManager owns the shared LockingVector buffer, enforces the two
// flush triggers (size threshold, time threshold), and fans each flush out
// to every configured sink in order.
type DatabaseManager struct {
	scheduler     *async.Scheduler
	sinksMu       sync.RWMutex
	sinks         []Sink
	sizeThreshold int
	timeThreshold time.Duration
	buffer        *container.LockingVector[event.Data]
	interval      *async.Interval
	log           logging.Logger
	breaker       *gobreaker.CircuitBreaker[any]
}

// NewDatabaseManager constructs a DatabaseManager and immediately spawns
// its time-flush task. Init is called on every sink before the task is
// spawned; an Init failure is returned without spawning anything.
func NewDatabaseManager(ctx context.Context, scheduler *async.Scheduler, sinks []Sink, sizeThreshold int, timeThreshold time.Duration, log logging.Logger) (*DatabaseManager, error) {
	for _, s := range sinks {
		if err := s.Init(ctx); err != nil {
			return nil, core.Wrap(core.StorageError, "database_manager.init", "sink init failed", err)
		}
	}

	dm := &DatabaseManager{
		scheduler:     scheduler,
		sinks:         sinks,
		sizeThreshold: sizeThreshold,
		timeThreshold: timeThreshold,
		buffer:        container.NewLockingVector[event.Data](),
		interval:      async.NewInterval(timeThreshold),
		log:           log,
		breaker: gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
			Name:        "database_manager_sink_fanout",
			MaxRequests: 1,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 1
			},
		}),
	}

	async.Spawn(scheduler, ctx, dm.timeFlushLoop, func(r core.Result[struct{}]) {
		if !r.IsOk() && dm.log != nil {
			dm.log.Error("time-flush loop exited", "error", r.Err.Error())
		}
	})

	return dm, nil
}

// timeFlushLoop is the time-triggered flush task spawned at construction:
// wait one period, drain whatever is buffered, spawn a flush if non-empty,
// repeat until the scheduler is stopped.
func (dm *DatabaseManager) timeFlushLoop(ctx context.Context) (struct{}, error) {
	for {
		if dm.scheduler.IsStopped() {
			return struct{}{}, nil
		}
		if err := dm.interval.Tick(ctx); err != nil {
			// Context cancellation is a shutdown signal, not a timer fault.
			if ctx.Err() != nil {
				return struct{}{}, nil
			}
			return struct{}{}, err
		}
		if dm.scheduler.IsStopped() {
			return struct{}{}, nil
		}
		if batch, ok := dm.buffer.DrainAll(); ok {
			dm.spawnFlush(ctx, batch)
		}
	}
}

// Store is the synchronous fast path: push, then flush if the size
// threshold was just met.
func (dm *DatabaseManager) Store(ctx context.Context, d event.Data) error {
	dm.buffer.PushBack(d)
	if batch, ok := dm.buffer.DrainIfAt(dm.sizeThreshold); ok {
		dm.spawnFlush(ctx, batch)
	}
	return nil
}

// spawnFlush spawns a scheduler task that stores aggregate at every sink in
// order; the first sink error aborts the fan-out. The completion handler
// logs and stops the scheduler on failure (the fail-closed retention
// policy). The fan-out runs through a circuit breaker whose ReadyToTrip
// opens it on the first consecutive failure; that same failure still
// reaches the completion handler, so the very first failure after a healthy
// run stops the pipeline. Once the breaker is open, Execute itself short-circuits
// with gobreaker.ErrOpenState without calling storeAt — the completion
// handler recognizes that case and skips the redundant log/Stop call, since
// the scheduler is already stopped and every prior failure in the burst
// already logged the underlying cause.
func (dm *DatabaseManager) spawnFlush(ctx context.Context, aggregate []event.Data) {
	async.Spawn(dm.scheduler, ctx, func(ctx context.Context) (struct{}, error) {
		_, err := dm.breaker.Execute(func() (any, error) {
			return nil, dm.storeAt(ctx, aggregate)
		})
		return struct{}{}, err
	}, func(r core.Result[struct{}]) {
		if r.IsOk() || errors.Is(r.Err, gobreaker.ErrOpenState) {
			return
		}
		if dm.log != nil {
			dm.log.Error("sink flush failed, stopping scheduler", "error", r.Err.Error())
		}
		dm.scheduler.Stop()
	})
}

func (dm *DatabaseManager) storeAt(ctx context.Context, aggregate []event.Data) error {
	dm.sinksMu.RLock()
	sinks := dm.sinks
	dm.sinksMu.RUnlock()

	for _, sink := range sinks {
		if err := sink.Store(ctx, aggregate); err != nil {
			return core.Wrap(core.DatabaseManagerError, "flush", "sink store failed", err)
		}
	}
	return nil
}

// Interrupt wakes the time-flush loop out of its timer wait so its next
// stop-flag check runs immediately instead of after a full period. The
// interrupted wait completes as success (see async.Interval.Reset), so
// shutdown never produces a spurious timer error.
func (dm *DatabaseManager) Interrupt() {
	dm.interval.Reset()
}

// DrainRemaining synchronously flushes whatever is still buffered to every
// sink, bypassing the scheduler. Called on clean shutdown, after the
// scheduler has stopped and joined, so buffered events are not dropped.
func (dm *DatabaseManager) DrainRemaining(ctx context.Context) error {
	batch, ok := dm.buffer.DrainAll()
	if !ok {
		return nil
	}
	return dm.storeAt(ctx, batch)
}

// AddSink registers an additional sink after construction, appended after
// every existing sink in fan-out order; useful for attaching a spy sink
// mid-test. Init is not called on sink — callers must initialize it
// themselves before registering if it needs one.
func (dm *DatabaseManager) AddSink(sink Sink) {
	dm.sinksMu.Lock()
	defer dm.sinksMu.Unlock()
	next := make([]Sink, len(dm.sinks)+1)
	copy(next, dm.sinks)
	next[len(dm.sinks)] = sink
	dm.sinks = next
}
