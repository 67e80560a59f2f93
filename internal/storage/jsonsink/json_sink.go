// Package jsonsink implements the JSON document sink: one document per
// flush.
package jsonsink

import (
	"context"
	"io"
	"sync"

	json "github.com/goccy/go-json"

	"github.com/evgetd/evgetd/internal/core"
	"github.com/evgetd/evgetd/pkg/event"
)

// entryField is one row of the persisted document: one field position of
// one entry, alongside the modifiers active on that entry.
type entryField struct {
	Type      string   `json:"type"`
	Name      string   `json:"name"`
	Data      string   `json:"data"`
	Modifiers []string `json:"modifiers"`
}

type document struct {
	Entries []entryField `json:"entries"`
}

// Sink writes one JSON document per flush to w. Safe for concurrent Store
// calls; writes are serialized under a mutex.
type Sink struct {
	mu sync.Mutex
	w  io.Writer
}

// New constructs a Sink writing documents to w.
func New(w io.Writer) *Sink {
	return &Sink{w: w}
}

func (s *Sink) Init(ctx context.Context) error { return nil }

// Store writes one document for batch. An empty batch writes nothing.
func (s *Sink) Store(ctx context.Context, batch []event.Data) error {
	if len(batch) == 0 {
		return nil
	}

	doc := document{}
	for _, d := range batch {
		if d.IsZero() {
			continue
		}
		mods := modifierNames(d.Modifiers)
		schema := d.Primary.Schema()
		values := d.Primary.Fields()
		kind := d.Kind().String()
		for i, f := range schema {
			doc.Entries = append(doc.Entries, entryField{
				Type:      kind,
				Name:      f.Name,
				Data:      values[i],
				Modifiers: mods,
			})
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	enc := json.NewEncoder(s.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return core.Wrap(core.StorageError, "jsonsink.store", "encode failed", err)
	}
	return nil
}

func modifierNames(mods []event.Modifier) []string {
	if len(mods) == 0 {
		return nil
	}
	out := make([]string, len(mods))
	for i, m := range mods {
		out[i] = m.Value.String()
	}
	return out
}
