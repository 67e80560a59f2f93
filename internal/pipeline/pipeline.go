// Package pipeline wires the event-capture components together from a
// config.Settings value: Scheduler, DeviceRegistry, EventTransformer,
// EventLoop, EventHandler, and DatabaseManager with its configured sinks.
// It is the one place that knows how every component fits together;
// cmd/evgetd only calls Build, Run and Shutdown.
package pipeline

import (
	"context"
	"os"

	"github.com/evgetd/evgetd/internal/async"
	"github.com/evgetd/evgetd/internal/config"
	"github.com/evgetd/evgetd/internal/core"
	"github.com/evgetd/evgetd/internal/eventloop"
	"github.com/evgetd/evgetd/internal/handler"
	"github.com/evgetd/evgetd/internal/logging"
	"github.com/evgetd/evgetd/internal/registry"
	"github.com/evgetd/evgetd/internal/source"
	"github.com/evgetd/evgetd/internal/storage"
	"github.com/evgetd/evgetd/internal/storage/graphsink"
	"github.com/evgetd/evgetd/internal/storage/jsonsink"
	"github.com/evgetd/evgetd/internal/storage/sqlsink"
	"github.com/evgetd/evgetd/internal/storage/stdoutsink"
	"github.com/evgetd/evgetd/internal/transform"
)

// noopSnapshotProvider stands in for the platform-specific device enumerator,
// which lives outside this module. It reports no devices; a real embedding
// application supplies its own transform.SnapshotProvider wired to the
// platform's device listing call.
type noopSnapshotProvider struct{}

func (noopSnapshotProvider) ListDevices(ctx context.Context) (registry.Snapshot, error) {
	return registry.Snapshot{}, nil
}

// Pipeline owns every long-lived component built from a Settings value.
type Pipeline struct {
	Scheduler *async.Scheduler
	Loop      *eventloop.EventLoop
	Manager   *storage.DatabaseManager
	Log       logging.Logger
}

// Build assembles a Pipeline reading raw events from src and reporting
// device topology via snapshot (pass nil to use the noop stand-in). It does
// not start the loop; call Run for that.
func Build(ctx context.Context, cfg config.Settings, src source.Source, snapshot transform.SnapshotProvider) (*Pipeline, error) {
	if snapshot == nil {
		snapshot = noopSnapshotProvider{}
	}

	log := logging.New(os.Stdout, cfg.Logging.Level, cfg.Logging.Component)

	sched := async.NewScheduler(cfg.Scheduler.PoolSize, log.With("scheduler"))

	sinks, err := buildSinks(cfg.Storage)
	if err != nil {
		return nil, err
	}

	dm, err := storage.NewDatabaseManager(ctx, sched, sinks, cfg.Storage.SizeThreshold, cfg.Storage.TimeThreshold, log.With("storage"))
	if err != nil {
		return nil, err
	}

	reg := registry.NewDeviceRegistry()
	xform := transform.New(reg, snapshot, log.With("transform"))

	loop := eventloop.New(src)
	handler.New(loop, xform, dm)

	return &Pipeline{Scheduler: sched, Loop: loop, Manager: dm, Log: log}, nil
}

// Run drives the event loop until its source or listener returns an error,
// or Loop.Stop is called from elsewhere.
func (p *Pipeline) Run(ctx context.Context) error {
	return p.Loop.Run(ctx)
}

// Shutdown stops the pipeline cooperatively: set the stop flags, interrupt
// the time-flush wait so the loop observes them immediately, join every
// spawned task, then synchronously flush whatever is still buffered so a
// clean stop drops no events.
func (p *Pipeline) Shutdown(ctx context.Context) error {
	p.Loop.Stop()
	p.Scheduler.Stop()
	p.Manager.Interrupt()
	p.Scheduler.Join()
	return p.Manager.DrainRemaining(ctx)
}

func buildSinks(cfg config.StorageSettings) ([]storage.Sink, error) {
	sinks := make([]storage.Sink, 0, len(cfg.Sinks))
	for _, kind := range cfg.Sinks {
		switch kind {
		case config.SinkJSON:
			f, err := os.Create(cfg.JSONPath)
			if err != nil {
				return nil, core.Wrap(core.StorageError, "pipeline.build_sinks", "open json sink file failed", err)
			}
			sinks = append(sinks, jsonsink.New(f))
		case config.SinkStdout:
			sinks = append(sinks, stdoutsink.New(os.Stdout))
		case config.SinkSQL:
			sinks = append(sinks, sqlsink.New(cfg.SQLitePath))
		case config.SinkGraph:
			sinks = append(sinks, graphsink.New(cfg.KuzuPath))
		default:
			return nil, core.NewError(core.StorageError, "pipeline.build_sinks", "unknown sink kind: "+string(kind))
		}
	}
	return sinks, nil
}
