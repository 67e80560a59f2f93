// Package config holds the plain settings struct the caller assembles and
// passes into the pipeline. It deliberately contains no flag parsing, env
// var binding, or file loading: that collaborator lives outside this
// module's scope (see cmd/evgetd for the thin wiring that does own it).
package config

import "time"

// SinkKind selects which Sink variants a Settings wires into the pipeline.
type SinkKind string

const (
	SinkJSON   SinkKind = "json"
	SinkStdout SinkKind = "stdout"
	SinkSQL    SinkKind = "sql"
	SinkGraph  SinkKind = "graph"
)

// StorageSettings configures the DatabaseManager and its sinks.
type StorageSettings struct {
	SizeThreshold int           `json:"size_threshold"`
	TimeThreshold time.Duration `json:"time_threshold"`
	Sinks         []SinkKind    `json:"sinks"`

	JSONPath   string `json:"json_path"`
	SQLitePath string `json:"sqlite_path"`
	KuzuPath   string `json:"kuzu_path"`
}

// LoggingSettings configures the zerolog-backed logger.
type LoggingSettings struct {
	Level     string `json:"level"`
	Component string `json:"component"`
}

// SchedulerSettings configures the worker pool.
type SchedulerSettings struct {
	PoolSize int `json:"pool_size"`
}

// Settings is the complete set of values the caller must supply to build a
// running pipeline. There is no default-loading or file-reading behavior
// here; callers (a CLI, a test, an embedding application) construct this
// directly or via DefaultSettings and override what they need.
type Settings struct {
	Storage   StorageSettings   `json:"storage"`
	Logging   LoggingSettings   `json:"logging"`
	Scheduler SchedulerSettings `json:"scheduler"`
}

// DefaultSettings returns sane defaults: a size threshold of 100 events, a
// one-second time threshold, the stdout sink only, and info-level logging.
// Callers override fields as needed.
func DefaultSettings() Settings {
	return Settings{
		Storage: StorageSettings{
			SizeThreshold: 100,
			TimeThreshold: time.Second,
			Sinks:         []SinkKind{SinkStdout},
		},
		Logging: LoggingSettings{
			Level:     "info",
			Component: "evgetd",
		},
		Scheduler: SchedulerSettings{
			PoolSize: 0, // 0 means async.DefaultPoolSize()
		},
	}
}
