// Package graphsink implements a supplemental Sink variant that stores
// devices, entries, and modifiers as nodes and edges in a Kuzu graph
// database, rather than relational rows.
package graphsink

import (
	"context"
	"strconv"
	"strings"
	"sync"

	kuzu "github.com/kuzudb/go-kuzu"

	"github.com/evgetd/evgetd/internal/core"
	"github.com/evgetd/evgetd/pkg/event"
)

const schemaDDL = `
CREATE NODE TABLE IF NOT EXISTS Device(id STRING, kind STRING, name STRING, PRIMARY KEY(id));
CREATE NODE TABLE IF NOT EXISTS Entry(id STRING, kind STRING, timestamp STRING, interval_ns INT64, position_x DOUBLE, position_y DOUBLE, details STRING, PRIMARY KEY(id));
CREATE NODE TABLE IF NOT EXISTS ModifierValue(value STRING, PRIMARY KEY(value));
CREATE REL TABLE IF NOT EXISTS PRODUCED(FROM Device TO Entry);
CREATE REL TABLE IF NOT EXISTS HAS_MODIFIER(FROM Entry TO ModifierValue);
`

// Sink persists batches as a device/entry/modifier graph at path. Kuzu
// connections are not safe for concurrent writes, so Store is serialized
// under a mutex (same contract as the other sinks: "thread-safe Store").
type Sink struct {
	path string
	mu   sync.Mutex
	db   *kuzu.Database
	conn *kuzu.Connection

	// devicesSeen avoids re-inserting a Device node already created by an
	// earlier Store call in this process.
	devicesSeen map[string]bool
}

// New constructs a Sink backed by the Kuzu database directory at path.
func New(path string) *Sink {
	return &Sink{path: path, devicesSeen: make(map[string]bool)}
}

func (s *Sink) Init(ctx context.Context) error {
	db, err := kuzu.OpenDatabase(s.path, kuzu.DefaultSystemConfig())
	if err != nil {
		return core.Wrap(core.StorageError, "graphsink.init", "open database failed", err)
	}
	conn, err := kuzu.OpenConnection(db)
	if err != nil {
		db.Close()
		return core.Wrap(core.StorageError, "graphsink.init", "open connection failed", err)
	}

	for _, stmt := range strings.Split(schemaDDL, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if result, err := conn.Query(stmt); err != nil {
			conn.Close()
			db.Close()
			return core.Wrap(core.StorageError, "graphsink.init", "apply schema failed", err)
		} else {
			result.Close()
		}
	}

	s.db, s.conn = db, conn
	return nil
}

// Store inserts one Entry node per entry, a Device node per distinct device
// (once), a PRODUCED edge linking them, and one ModifierValue node plus
// HAS_MODIFIER edge per attached modifier.
func (s *Sink) Store(ctx context.Context, batch []event.Data) error {
	if len(batch) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, d := range batch {
		if d.IsZero() {
			continue
		}
		entryID := entryNodeID(d, i)
		c := d.Primary.Common()
		deviceID := c.DeviceKind.String() + ":" + c.DeviceName

		if err := s.ensureDevice(deviceID, c.DeviceKind.String(), c.DeviceName); err != nil {
			return err
		}

		details := strings.Join(d.Primary.Fields(), "|")
		if err := s.exec(
			`CREATE (:Entry {id: $id, kind: $kind, timestamp: $ts, interval_ns: $interval, position_x: $px, position_y: $py, details: $details});`,
			map[string]any{
				"id":       entryID,
				"kind":     d.Kind().String(),
				"ts":       c.Timestamp.Format(timeLayout),
				"interval": int64(c.Interval),
				"px":       c.PositionX,
				"py":       c.PositionY,
				"details":  details,
			},
		); err != nil {
			return core.Wrap(core.StorageError, "graphsink.store", "create entry node failed", err)
		}

		if err := s.exec(
			`MATCH (dv:Device {id: $did}), (e:Entry {id: $eid}) CREATE (dv)-[:PRODUCED]->(e);`,
			map[string]any{"eid": entryID, "did": deviceID},
		); err != nil {
			return core.Wrap(core.StorageError, "graphsink.store", "create produced edge failed", err)
		}

		for _, m := range d.Modifiers {
			value := m.Value.String()
			if err := s.exec(`MERGE (:ModifierValue {value: $value});`, map[string]any{"value": value}); err != nil {
				return core.Wrap(core.StorageError, "graphsink.store", "merge modifier node failed", err)
			}
			if err := s.exec(
				`MATCH (e:Entry {id: $eid}), (m:ModifierValue {value: $value}) CREATE (e)-[:HAS_MODIFIER]->(m);`,
				map[string]any{"eid": entryID, "value": value},
			); err != nil {
				return core.Wrap(core.StorageError, "graphsink.store", "create has-modifier edge failed", err)
			}
		}
	}

	return nil
}

func (s *Sink) ensureDevice(id, kind, name string) error {
	if s.devicesSeen[id] {
		return nil
	}
	if err := s.exec(
		`MERGE (:Device {id: $id, kind: $kind, name: $name});`,
		map[string]any{"id": id, "kind": kind, "name": name},
	); err != nil {
		return core.Wrap(core.StorageError, "graphsink.ensureDevice", "merge device node failed", err)
	}
	s.devicesSeen[id] = true
	return nil
}

func (s *Sink) exec(query string, params map[string]any) error {
	prepared, err := s.conn.Prepare(query)
	if err != nil {
		return err
	}
	result, err := s.conn.Execute(prepared, params)
	if err != nil {
		return err
	}
	result.Close()
	return nil
}

func entryNodeID(d event.Data, index int) string {
	c := d.Primary.Common()
	return d.Kind().String() + ":" + c.Timestamp.Format(timeLayout) + ":" + strconv.Itoa(index)
}

const timeLayout = "2006-01-02T15:04:05.999999999Z07:00"
