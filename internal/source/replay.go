package source

import (
	"context"
	"sync"

	"github.com/evgetd/evgetd/internal/core"
)

// Replay is a fixed-sequence Source used by tests and by any offline
// replay tooling. Once the sequence is exhausted, NextEvent blocks until ctx
// is cancelled, honoring the "never returns a sentinel" contract by instead
// surfacing ctx.Err() wrapped as an AsyncError.
type Replay struct {
	mu     sync.Mutex
	events []RawEvent
	idx    int
}

// NewReplay returns a Source that yields events in order, then blocks.
func NewReplay(events []RawEvent) *Replay {
	return &Replay{events: events}
}

func (r *Replay) NextEvent(ctx context.Context) (RawEvent, error) {
	r.mu.Lock()
	if r.idx < len(r.events) {
		ev := r.events[r.idx]
		r.idx++
		r.mu.Unlock()
		return ev, nil
	}
	r.mu.Unlock()

	<-ctx.Done()
	return RawEvent{}, core.Wrap(core.AsyncError, "replay.next_event", "context cancelled", ctx.Err())
}
