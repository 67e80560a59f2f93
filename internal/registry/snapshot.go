// Package registry maintains the device mapping the transformer consults on
// every raw event: device kind/name, button label map, scroll axis state,
// and X/Y valuator indices.
package registry

import (
	"strings"

	"github.com/evgetd/evgetd/pkg/event"
)

// Orientation is a scroll axis's reported direction.
type Orientation int

const (
	Vertical Orientation = iota
	Horizontal
)

// ScrollAxis describes one scroll-capable valuator as reported by a device
// snapshot: its valuator number, orientation, increment sign, and current
// absolute value (used to seed last_absolute_value on refresh).
type ScrollAxis struct {
	Number       int
	Orientation  Orientation
	Increment    float64
	CurrentValue float64
}

// ValuatorAxis describes one position valuator labeled "Abs X"/"Rel X" or
// "Abs Y"/"Rel Y" in the platform snapshot.
type ValuatorAxis struct {
	Number int
	Label  string // e.g. "Abs X", "Rel X", "Abs Y", "Rel Y"
}

// DeviceSnapshotEntry is one device as enumerated by the platform's
// list_devices() call.
type DeviceSnapshotEntry struct {
	ID         int
	Name       string
	TypeAtom   string // resolved platform atom name, e.g. "MOUSE"
	Enabled    bool
	Buttons    map[int]string // physical_button_code[i] -> label
	ScrollAxes []ScrollAxis
	Valuators  []ValuatorAxis
}

// Snapshot is the full device enumeration consumed by RefreshAll.
type Snapshot struct {
	Devices []DeviceSnapshotEntry
}

// classify maps a platform type atom to a DeviceKind. Unrecognized atoms
// are unsupported and the caller should skip the device.
func classify(atom string) (event.DeviceKind, bool) {
	switch strings.ToUpper(atom) {
	case "MOUSE":
		return event.DeviceMouse, true
	case "KEYBOARD":
		return event.DeviceKeyboard, true
	case "TOUCHPAD":
		return event.DeviceTouchpad, true
	case "TOUCHSCREEN":
		return event.DeviceTouchscreen, true
	default:
		return 0, false
	}
}
