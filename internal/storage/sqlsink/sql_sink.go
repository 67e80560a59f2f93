// Package sqlsink implements the relational Sink variant: one table per
// entry kind plus a shared modifiers join table, written inside a single
// transaction per flushed batch.
package sqlsink

import (
	"context"
	"database/sql"
	"embed"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/evgetd/evgetd/internal/core"
	"github.com/evgetd/evgetd/pkg/event"
)

//go:embed schema.sql
var schemaFS embed.FS

// Sink persists batches to a SQLite database at path. Safe for concurrent
// Store calls: database/sql pools its own connections, and every batch is
// written inside its own transaction.
type Sink struct {
	path string
	db   *sql.DB
}

// New constructs a Sink backed by the SQLite database at path. The
// connection is opened lazily by Init.
func New(path string) *Sink {
	return &Sink{path: path}
}

// Init opens the database and applies the schema, matching the
// connection-then-migrate idiom of a WAL-mode SQLite store: foreign keys on,
// WAL journaling for concurrent readers, a busy timeout instead of failing
// fast on lock contention.
func (s *Sink) Init(ctx context.Context) error {
	dsn := s.path +
		"?_foreign_keys=on" +
		"&_journal_mode=WAL" +
		"&_synchronous=NORMAL" +
		"&_busy_timeout=5000"

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return core.Wrap(core.StorageError, "sqlsink.init", "open failed", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return core.Wrap(core.StorageError, "sqlsink.init", "ping failed", err)
	}

	schema, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		db.Close()
		return core.Wrap(core.StorageError, "sqlsink.init", "read embedded schema failed", err)
	}
	if _, err := db.ExecContext(ctx, string(schema)); err != nil {
		db.Close()
		return core.Wrap(core.StorageError, "sqlsink.init", "apply schema failed", err)
	}

	s.db = db
	return nil
}

// Store writes batch inside one transaction: every row from every entry
// commits together, or none do.
func (s *Sink) Store(ctx context.Context, batch []event.Data) error {
	if len(batch) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return core.Wrap(core.StorageError, "sqlsink.store", "begin tx failed", err)
	}

	for _, d := range batch {
		if d.IsZero() {
			continue
		}
		id := uuid.NewString()
		if err := insertEntry(ctx, tx, id, d.Primary); err != nil {
			tx.Rollback()
			return core.Wrap(core.StorageError, "sqlsink.store", "insert entry failed", err)
		}
		for _, m := range d.Modifiers {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO modifier (entry_kind, entry_id, value) VALUES (?, ?, ?)`,
				d.Kind().String(), id, m.Value.String(),
			); err != nil {
				tx.Rollback()
				return core.Wrap(core.StorageError, "sqlsink.store", "insert modifier failed", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return core.Wrap(core.StorageError, "sqlsink.store", "commit failed", err)
	}
	return nil
}

func insertEntry(ctx context.Context, tx *sql.Tx, id string, e event.Entry) error {
	c := e.Common()
	switch v := e.(type) {
	case event.MouseMove:
		_, err := tx.ExecContext(ctx,
			`INSERT INTO mouse_move (id, interval_ns, timestamp, device_kind, device_name, position_x, position_y, focus_window_name, focus_window_x, focus_window_y, focus_window_width, focus_window_height)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, int64(c.Interval), c.Timestamp.Format(timeLayout), c.DeviceKind.String(), c.DeviceName, c.PositionX, c.PositionY,
			c.FocusWindowName, c.FocusWindowPositionX, c.FocusWindowPositionY, c.FocusWindowWidth, c.FocusWindowHeight,
		)
		return err
	case event.MouseClick:
		_, err := tx.ExecContext(ctx,
			`INSERT INTO mouse_click (id, interval_ns, timestamp, device_kind, device_name, position_x, position_y, focus_window_name, focus_window_x, focus_window_y, focus_window_width, focus_window_height, action, button_id, button_name)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, int64(c.Interval), c.Timestamp.Format(timeLayout), c.DeviceKind.String(), c.DeviceName, c.PositionX, c.PositionY,
			c.FocusWindowName, c.FocusWindowPositionX, c.FocusWindowPositionY, c.FocusWindowWidth, c.FocusWindowHeight,
			v.Action.String(), v.ButtonID, v.ButtonName,
		)
		return err
	case event.MouseScroll:
		_, err := tx.ExecContext(ctx,
			`INSERT INTO mouse_scroll (id, interval_ns, timestamp, device_kind, device_name, position_x, position_y, focus_window_name, focus_window_x, focus_window_y, focus_window_width, focus_window_height, vertical_delta, horizontal_delta)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, int64(c.Interval), c.Timestamp.Format(timeLayout), c.DeviceKind.String(), c.DeviceName, c.PositionX, c.PositionY,
			c.FocusWindowName, c.FocusWindowPositionX, c.FocusWindowPositionY, c.FocusWindowWidth, c.FocusWindowHeight,
			v.VerticalDelta, v.HorizontalDelta,
		)
		return err
	case event.Key:
		_, err := tx.ExecContext(ctx,
			`INSERT INTO key_event (id, interval_ns, timestamp, device_kind, device_name, position_x, position_y, focus_window_name, focus_window_x, focus_window_y, focus_window_width, focus_window_height, action, key_code, character, key_name)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, int64(c.Interval), c.Timestamp.Format(timeLayout), c.DeviceKind.String(), c.DeviceName, c.PositionX, c.PositionY,
			c.FocusWindowName, c.FocusWindowPositionX, c.FocusWindowPositionY, c.FocusWindowWidth, c.FocusWindowHeight,
			v.Action.String(), v.KeyCode, v.Character, v.KeyName,
		)
		return err
	default:
		return core.NewError(core.StorageError, "sqlsink.insertEntry", "unsupported entry type")
	}
}

const timeLayout = "2006-01-02T15:04:05.999999999Z07:00"
