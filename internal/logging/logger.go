// Package logging provides the structured logging seam used throughout the
// pipeline. The Logger interface keeps call sites free of any particular
// backend; Zerolog is the only implementation (see internal/logging/zerolog.go).
package logging

// Logger is a component-scoped structured logger. fields is a flat
// key/value list, kept independent of the backing library so call sites
// never import zerolog directly.
type Logger interface {
	Debug(msg string, fields ...interface{})
	Info(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
	Error(msg string, fields ...interface{})

	// With returns a derived Logger scoped to component, inheriting the
	// parent's level and backend.
	With(component string) Logger
}
