// Package storage owns the shared event buffer and fans flushed batches out
// to every configured Sink.
package storage

import (
	"context"

	"github.com/evgetd/evgetd/pkg/event"
)

// Sink is a storage backend. Store must be safe for concurrent calls: two
// flush tasks may invoke the same sink in parallel. Init is invoked once at
// startup, before any Store call, and may be a no-op.
type Sink interface {
	Init(ctx context.Context) error
	Store(ctx context.Context, batch []event.Data) error
}
