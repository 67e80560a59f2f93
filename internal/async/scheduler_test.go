package async

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evgetd/evgetd/internal/core"
)

func TestSchedulerSpawnAndJoin(t *testing.T) {
	s := NewScheduler(4, nil)
	var completed int32

	for i := 0; i < 10; i++ {
		Spawn(s, context.Background(), func(ctx context.Context) (int, error) {
			return 1, nil
		}, func(r core.Result[int]) {
			require.True(t, r.IsOk())
			atomic.AddInt32(&completed, 1)
		})
	}

	s.Join()
	assert.EqualValues(t, 10, completed)
}

func TestSchedulerSpawnPropagatesError(t *testing.T) {
	s := NewScheduler(2, nil)
	done := make(chan core.Result[string], 1)

	Spawn(s, context.Background(), func(ctx context.Context) (string, error) {
		return "", errors.New("sink write failed")
	}, func(r core.Result[string]) {
		done <- r
	})

	s.Join()
	result := <-done
	assert.False(t, result.IsOk())
	assert.ErrorContains(t, result.Err, "sink write failed")
}

func TestSchedulerPanicIsSwallowed(t *testing.T) {
	s := NewScheduler(2, nil)
	done := make(chan core.Result[int], 1)

	Spawn(s, context.Background(), func(ctx context.Context) (int, error) {
		panic("device source exploded")
	}, func(r core.Result[int]) {
		done <- r
	})

	s.Join()
	result := <-done
	assert.True(t, result.IsOk(), "a panic must surface as a default completion, not a crash")
}

func TestSchedulerPoolFloorAllowsConcurrentTasks(t *testing.T) {
	// A pool of 1 is raised to 2: one slot is permanently held by the
	// storage manager's time-flush loop, so two tasks must be able to run
	// concurrently. Without the floor this test deadlocks.
	s := NewScheduler(1, nil)
	release := make(chan struct{})

	Spawn(s, context.Background(), func(ctx context.Context) (struct{}, error) {
		<-release
		return struct{}{}, nil
	}, nil)
	Spawn(s, context.Background(), func(ctx context.Context) (struct{}, error) {
		close(release)
		return struct{}{}, nil
	}, nil)

	s.Join()
}

func TestSchedulerStopFlag(t *testing.T) {
	s := NewScheduler(2, nil)
	assert.False(t, s.IsStopped())
	s.Stop()
	assert.True(t, s.IsStopped())
}

func TestIntervalTickCompletesAfterPeriod(t *testing.T) {
	iv := NewInterval(10 * time.Millisecond)
	start := time.Now()
	require.NoError(t, iv.Tick(context.Background()))
	assert.GreaterOrEqual(t, time.Since(start), 8*time.Millisecond)
}

func TestIntervalResetIsNotAnError(t *testing.T) {
	iv := NewInterval(time.Second)
	done := make(chan error, 1)
	go func() {
		done <- iv.Tick(context.Background())
	}()

	time.Sleep(5 * time.Millisecond)
	iv.Reset()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(100 * time.Millisecond):
		t.Fatal("tick did not return after reset")
	}
}

func TestIntervalTickRespectsContextCancellation(t *testing.T) {
	iv := NewInterval(time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := iv.Tick(ctx)
	assert.Error(t, err)
}

func TestRepeatingTimerInvokesCallbackUntilStop(t *testing.T) {
	rt := NewRepeatingTimer(5 * time.Millisecond)
	var calls int32
	go func() {
		_ = rt.AwaitWith(context.Background(), func(ctx context.Context) error {
			atomic.AddInt32(&calls, 1)
			return nil
		})
	}()

	time.Sleep(30 * time.Millisecond)
	rt.Stop()
	time.Sleep(10 * time.Millisecond)

	assert.Greater(t, atomic.LoadInt32(&calls), int32(0))
}

func TestRepeatingTimerCallbackErrorPropagates(t *testing.T) {
	rt := NewRepeatingTimer(5 * time.Millisecond)
	boom := errors.New("boom")

	err := rt.AwaitWith(context.Background(), func(ctx context.Context) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
}
