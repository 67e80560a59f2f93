// Package source defines the raw platform event interface the pipeline
// consumes: the unbounded next_event() stream of RawEvent values. The
// device-snapshot enumeration the registry refreshes from is modelled
// separately, by transform.SnapshotProvider and registry.Snapshot.
package source

import (
	"context"
	"time"
)

// RawEventType enumerates the platform event kinds the transformer
// dispatches on.
type RawEventType int

const (
	EventMotion RawEventType = iota
	EventButtonPress
	EventButtonRelease
	EventKeyPress
	EventKeyRelease
	EventTouchBegin
	EventTouchUpdate
	EventTouchEnd
	EventDeviceChanged
	EventHierarchyChanged
)

func (t RawEventType) String() string {
	switch t {
	case EventMotion:
		return "Motion"
	case EventButtonPress:
		return "ButtonPress"
	case EventButtonRelease:
		return "ButtonRelease"
	case EventKeyPress:
		return "KeyPress"
	case EventKeyRelease:
		return "KeyRelease"
	case EventTouchBegin:
		return "TouchBegin"
	case EventTouchUpdate:
		return "TouchUpdate"
	case EventTouchEnd:
		return "TouchEnd"
	case EventDeviceChanged:
		return "DeviceChanged"
	case EventHierarchyChanged:
		return "HierarchyChanged"
	default:
		return "Unknown"
	}
}

// FocusWindow describes the active (or, failing that, focused) window at
// the time an event was produced.
type FocusWindow struct {
	Name   string
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// RawEvent is one platform-reported input event, as produced by a Source.
// RootX/RootY are the pointer's root-window position at event time, present
// on every event kind. Valuators carries only the axes that changed in this
// event, keyed by valuator index; HasPayload is false for a source heartbeat
// with nothing for the transformer to act on.
type RawEvent struct {
	HasPayload      bool
	Type            RawEventType
	Timestamp       time.Time
	DeviceID        int
	SourceDeviceID  int
	PointerEmulated bool
	AutoRepeat      bool
	RootX           float64
	RootY           float64
	ModifierMask    uint32
	DetailCode      int
	Valuators       map[int]float64
	Focus           *FocusWindow
}

// Source is the raw event stream the EventLoop drives. NextEvent never
// returns a "no more events" sentinel; the stream is unbounded.
type Source interface {
	NextEvent(ctx context.Context) (RawEvent, error)
}
