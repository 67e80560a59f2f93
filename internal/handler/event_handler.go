// Package handler glues the EventLoop to the transformer and storage
// layer: on every raw event, transform it, then store each produced Data.
package handler

import (
	"context"

	"github.com/evgetd/evgetd/internal/eventloop"
	"github.com/evgetd/evgetd/internal/source"
	"github.com/evgetd/evgetd/internal/transform"
	"github.com/evgetd/evgetd/pkg/event"
)

// Storage is the downstream the handler forwards produced Data to.
// DatabaseManager implements this.
type Storage interface {
	Store(ctx context.Context, d event.Data) error
}

// EventHandler registers itself with an EventLoop for the raw event stream.
// A storage error terminates the handler chain, surfacing back through the
// EventLoop's listener contract.
type EventHandler struct {
	transformer *transform.EventTransformer
	storage     Storage
}

// New constructs an EventHandler and registers it with loop.
func New(loop *eventloop.EventLoop, transformer *transform.EventTransformer, storage Storage) *EventHandler {
	h := &EventHandler{transformer: transformer, storage: storage}
	loop.SetListener(h)
	return h
}

// Notify implements eventloop.Listener.
func (h *EventHandler) Notify(ctx context.Context, raw source.RawEvent) error {
	for _, d := range h.transformer.Transform(ctx, raw) {
		if err := h.storage.Store(ctx, d); err != nil {
			return err
		}
	}
	return nil
}
