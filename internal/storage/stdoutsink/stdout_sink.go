// Package stdoutsink renders each flushed batch as a colored table, the
// human-readable counterpart to the JSON and relational sinks.
package stdoutsink

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/evgetd/evgetd/pkg/event"
)

var headerColor = tablewriter.Colors{tablewriter.FgMagentaColor, tablewriter.Bold}

// Sink prints each batch as a table to w. Concurrent Store calls are
// serialized under a mutex so rows from different flushes never interleave.
type Sink struct {
	mu sync.Mutex
	w  io.Writer
}

// New constructs a Sink writing to w.
func New(w io.Writer) *Sink {
	return &Sink{w: w}
}

func (s *Sink) Init(ctx context.Context) error { return nil }

// Store renders batch as one table; an empty batch renders nothing.
func (s *Sink) Store(ctx context.Context, batch []event.Data) error {
	if len(batch) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	table := tablewriter.NewWriter(s.w)
	table.SetHeader([]string{"Kind", "Device", "Interval", "Timestamp", "Fields", "Modifiers"})
	table.SetHeaderColor(headerColor, headerColor, headerColor, headerColor, headerColor, headerColor)
	table.SetColumnColor(
		tablewriter.Colors{tablewriter.FgCyanColor, tablewriter.Bold},
		tablewriter.Colors{},
		tablewriter.Colors{},
		tablewriter.Colors{},
		tablewriter.Colors{},
		tablewriter.Colors{},
	)

	for _, d := range batch {
		if d.IsZero() {
			continue
		}
		common := d.Primary.Common()
		table.Append([]string{
			d.Kind().String(),
			common.DeviceName,
			common.Interval.String(),
			common.Timestamp.Format("15:04:05.000000000"),
			joinFields(d.Primary.Fields()),
			joinModifiers(d.Modifiers),
		})
	}

	table.Render()
	return nil
}

func joinFields(fields []string) string {
	return color.New(color.FgWhite).Sprint(strings.Join(fields, ", "))
}

func joinModifiers(mods []event.Modifier) string {
	names := make([]string, len(mods))
	for i, m := range mods {
		names[i] = m.Value.String()
	}
	return color.New(color.FgYellow).Sprint(strings.Join(names, ", "))
}
