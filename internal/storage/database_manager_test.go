package storage

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evgetd/evgetd/internal/async"
	"github.com/evgetd/evgetd/pkg/event"
)

type recordingSink struct {
	mu      sync.Mutex
	batches [][]event.Data
	failAt  int32 // fail on this call number (1-indexed); 0 = never fail
	calls   int32
}

func (s *recordingSink) Init(ctx context.Context) error { return nil }

func (s *recordingSink) Store(ctx context.Context, batch []event.Data) error {
	n := atomic.AddInt32(&s.calls, 1)
	if s.failAt > 0 && n == s.failAt {
		return errors.New("sink unavailable")
	}
	s.mu.Lock()
	s.batches = append(s.batches, batch)
	s.mu.Unlock()
	return nil
}

func (s *recordingSink) batchCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.batches)
}

func mouseMove() event.Data {
	return event.NewMouseMoveBuilder().Build()
}

func TestDatabaseManagerSizeThresholdFlush(t *testing.T) {
	sched := async.NewScheduler(4, nil)
	sink := &recordingSink{}
	dm, err := NewDatabaseManager(context.Background(), sched, []Sink{sink}, 3, time.Hour, nil)
	require.NoError(t, err)

	require.NoError(t, dm.Store(context.Background(), mouseMove()))
	require.NoError(t, dm.Store(context.Background(), mouseMove()))
	require.NoError(t, dm.Store(context.Background(), mouseMove()))

	assert.Eventually(t, func() bool { return sink.batchCount() == 1 }, time.Second, time.Millisecond)
	sched.Stop()
}

func TestDatabaseManagerTimeThresholdEmptyBufferNoFlush(t *testing.T) {
	sched := async.NewScheduler(4, nil)
	sink := &recordingSink{}
	dm, err := NewDatabaseManager(context.Background(), sched, []Sink{sink}, 1000, 10*time.Millisecond, nil)
	require.NoError(t, err)

	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, 0, sink.batchCount())

	_ = dm
	sched.Stop()
}

func TestDatabaseManagerSinkFailureStopsScheduler(t *testing.T) {
	sched := async.NewScheduler(4, nil)
	sink := &recordingSink{failAt: 1}
	dm, err := NewDatabaseManager(context.Background(), sched, []Sink{sink}, 1, time.Hour, nil)
	require.NoError(t, err)

	require.NoError(t, dm.Store(context.Background(), mouseMove()))

	assert.Eventually(t, func() bool { return sched.IsStopped() }, time.Second, time.Millisecond)
}

func TestDatabaseManagerFanOutOrderAndAbortOnFirstError(t *testing.T) {
	sched := async.NewScheduler(4, nil)
	okSink := &recordingSink{}
	failingSink := &recordingSink{failAt: 1}
	dm, err := NewDatabaseManager(context.Background(), sched, []Sink{okSink, failingSink}, 1, time.Hour, nil)
	require.NoError(t, err)

	require.NoError(t, dm.Store(context.Background(), mouseMove()))

	assert.Eventually(t, func() bool { return sched.IsStopped() }, time.Second, time.Millisecond)
	assert.Equal(t, 1, okSink.batchCount(), "sinks before the failing one in order must still receive the batch")
}

func TestDrainRemainingFlushesBufferedEventsSynchronously(t *testing.T) {
	sched := async.NewScheduler(4, nil)
	sink := &recordingSink{}
	dm, err := NewDatabaseManager(context.Background(), sched, []Sink{sink}, 1000, time.Hour, nil)
	require.NoError(t, err)

	require.NoError(t, dm.Store(context.Background(), mouseMove()))
	require.NoError(t, dm.Store(context.Background(), mouseMove()))

	sched.Stop()
	dm.Interrupt()

	require.NoError(t, dm.DrainRemaining(context.Background()))
	require.Equal(t, 1, sink.batchCount())
	assert.Len(t, sink.batches[0], 2)

	require.NoError(t, dm.DrainRemaining(context.Background()), "an empty buffer drains to nothing")
	assert.Equal(t, 1, sink.batchCount())
}

func TestDatabaseManagerAddSinkReceivesSubsequentFlushes(t *testing.T) {
	sched := async.NewScheduler(4, nil)
	original := &recordingSink{}
	dm, err := NewDatabaseManager(context.Background(), sched, []Sink{original}, 1, time.Hour, nil)
	require.NoError(t, err)

	spy := &recordingSink{}
	dm.AddSink(spy)

	require.NoError(t, dm.Store(context.Background(), mouseMove()))

	assert.Eventually(t, func() bool { return spy.batchCount() == 1 }, time.Second, time.Millisecond)
	assert.Equal(t, 1, original.batchCount(), "pre-existing sink must still receive the flush after AddSink")
	sched.Stop()
}
