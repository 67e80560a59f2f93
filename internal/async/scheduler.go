package async

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/evgetd/evgetd/internal/core"
	"github.com/evgetd/evgetd/internal/logging"
)

// Scheduler is the process-wide owner of every spawned task and the single
// stop authority. Its pool size bounds concurrency; Join
// blocks until every task spawned so far has completed; Stop sets the
// cooperative stop flag that tasks (and other components, like the
// time-flush loop) poll via IsStopped.
//
// Tracking uses an errgroup.Group rather than a bare sync.WaitGroup: every
// tracked goroutine already reports its outcome through the task's own
// onComplete callback (panics are recovered in runTask), so the group's
// Go func always returns nil — we only want its Wait() semantics, not its
// error aggregation.
type Scheduler struct {
	log  logging.Logger
	sem  chan struct{}
	eg   errgroup.Group
	mu   sync.RWMutex
	stop bool
}

// DefaultPoolSize returns max(2, 2*runtime.NumCPU()), used absent an
// explicit pool size override.
func DefaultPoolSize() int {
	n := 2 * runtime.NumCPU()
	if n < 2 {
		return 2
	}
	return n
}

// NewScheduler constructs a Scheduler with the given pool size (use
// DefaultPoolSize() when the caller has no explicit preference).
func NewScheduler(poolSize int, log logging.Logger) *Scheduler {
	if poolSize < 1 {
		poolSize = DefaultPoolSize()
	}
	// The storage manager's time-flush loop permanently occupies one slot;
	// a single-slot pool would deadlock the size-triggered flush path.
	if poolSize < 2 {
		poolSize = 2
	}
	return &Scheduler{
		log: log,
		sem: make(chan struct{}, poolSize),
	}
}

// Spawn queues task for execution on the pool. task's panics are logged and
// swallowed at the scheduler boundary, so one misbehaving device source
// never takes down the whole pipeline; onComplete always runs, receiving a
// successful Result carrying T's zero value in the panic case.
//
// Spawn is a free function (not a Scheduler method) because Go methods
// cannot be parameterized independently of their receiver's type parameters.
func Spawn[T any](s *Scheduler, ctx context.Context, task func(context.Context) (T, error), onComplete func(core.Result[T])) {
	s.sem <- struct{}{}

	s.eg.Go(func() error {
		defer func() { <-s.sem }()

		result := runTask(s, ctx, task)
		if onComplete != nil {
			onComplete(result)
		}
		return nil
	})
}

func runTask[T any](s *Scheduler, ctx context.Context, task func(context.Context) (T, error)) (result core.Result[T]) {
	defer func() {
		if r := recover(); r != nil {
			if s.log != nil {
				s.log.Error("scheduled task panicked", "panic", fmt.Sprintf("%v", r))
			}
			var zero T
			result = core.Ok(zero)
		}
	}()
	v, err := task(ctx)
	if err != nil {
		return core.Failed[T](err)
	}
	return core.Ok(v)
}

// Join blocks until every task spawned so far has completed.
func (s *Scheduler) Join() {
	s.eg.Wait()
}

// Stop sets the process-wide stop flag.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stop = true
}

// IsStopped reports the current value of the stop flag. It is safe to poll
// concurrently from inside running tasks.
func (s *Scheduler) IsStopped() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stop
}
