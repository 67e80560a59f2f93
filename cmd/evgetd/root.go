package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/evgetd/evgetd/internal/config"
	"github.com/evgetd/evgetd/internal/pipeline"
	"github.com/evgetd/evgetd/internal/source"
)

// rootCmd demonstrates wiring a config.Settings into a running pipeline.
// It deliberately stops short of full flag validation, env var binding, or
// structured help text — a real deployment would front this with a proper
// CLI/config parser.
var rootCmd = &cobra.Command{
	Use:   "evgetd",
	Short: "Input event capture pipeline",
	Long: `evgetd drives the event-capture pipeline: an async event source feeds
an EventLoop, which hands raw events to a transformer, which emits typed
Data records into a DatabaseManager that fans them out to one or more
configured sinks (JSON, stdout table, SQLite, or a Kuzu graph).`,
	RunE: runRoot,
}

var (
	sizeThreshold int
	timeThreshold time.Duration
	sinkFlags     []string
	logLevel      string
	jsonPath      string
	sqlitePath    string
	kuzuPath      string
)

func init() {
	rootCmd.Flags().IntVar(&sizeThreshold, "size-threshold", 100, "flush after this many buffered events")
	rootCmd.Flags().DurationVar(&timeThreshold, "time-threshold", time.Second, "flush after this much time has elapsed")
	rootCmd.Flags().StringSliceVar(&sinkFlags, "sink", []string{"stdout"}, "sinks to enable: json, stdout, sql, graph")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	rootCmd.Flags().StringVar(&jsonPath, "json-path", "events.json", "output path for the json sink")
	rootCmd.Flags().StringVar(&sqlitePath, "sqlite-path", "events.db", "database path for the sql sink")
	rootCmd.Flags().StringVar(&kuzuPath, "kuzu-path", "events.kuzu", "database directory for the graph sink")
}

func runRoot(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.DefaultSettings()
	cfg.Storage.SizeThreshold = sizeThreshold
	cfg.Storage.TimeThreshold = timeThreshold
	cfg.Storage.JSONPath = jsonPath
	cfg.Storage.SQLitePath = sqlitePath
	cfg.Storage.KuzuPath = kuzuPath
	cfg.Logging.Level = logLevel
	cfg.Storage.Sinks = parseSinks(sinkFlags)

	// The real platform event producer lives outside this module; this wiring
	// demonstration drives the pipeline from an empty replay source so the
	// command is runnable standalone.
	p, err := pipeline.Build(ctx, cfg, source.NewReplay(nil), nil)
	if err != nil {
		return err
	}

	runErr := p.Run(ctx)
	if err := p.Shutdown(context.Background()); err != nil {
		return err
	}
	if ctx.Err() != nil {
		return nil
	}
	return runErr
}

func parseSinks(flags []string) []config.SinkKind {
	out := make([]config.SinkKind, 0, len(flags))
	for _, f := range flags {
		out = append(out, config.SinkKind(f))
	}
	return out
}
