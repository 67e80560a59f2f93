package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// zerologLogger implements Logger over a single zerolog.Logger instance,
// tagged with a component field.
type zerologLogger struct {
	logger    zerolog.Logger
	component string
}

// New builds a Logger writing to w (os.Stdout when w is nil) at the given
// level ("debug", "info", "warn", "error"; anything else defaults to info).
func New(w io.Writer, levelStr, component string) Logger {
	if w == nil {
		w = os.Stdout
	}
	zerolog.TimeFieldFormat = time.RFC3339Nano
	base := zerolog.New(w).Level(parseLevel(levelStr)).With().Timestamp().Logger()
	return &zerologLogger{logger: base, component: component}
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func (l *zerologLogger) event(e *zerolog.Event, msg string, fields []interface{}) {
	if l.component != "" {
		e = e.Str("component", l.component)
	}
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			continue
		}
		e = e.Interface(key, fields[i+1])
	}
	e.Msg(msg)
}

func (l *zerologLogger) Debug(msg string, fields ...interface{}) {
	l.event(l.logger.Debug(), msg, fields)
}

func (l *zerologLogger) Info(msg string, fields ...interface{}) {
	l.event(l.logger.Info(), msg, fields)
}

func (l *zerologLogger) Warn(msg string, fields ...interface{}) {
	l.event(l.logger.Warn(), msg, fields)
}

func (l *zerologLogger) Error(msg string, fields ...interface{}) {
	l.event(l.logger.Error(), msg, fields)
}

func (l *zerologLogger) With(component string) Logger {
	return &zerologLogger{logger: l.logger, component: component}
}
