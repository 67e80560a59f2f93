package registry

import (
	"sync"

	"github.com/evgetd/evgetd/internal/core"
	"github.com/evgetd/evgetd/pkg/event"
)

// deviceEntry is the registry's per-device record: kind, name, button
// labels, scroll axes, and X/Y valuator indices.
type deviceEntry struct {
	kind         event.DeviceKind
	name         string
	buttons      map[int]string
	scrollAxes   map[int]*scrollState
	valuatorX    *int
	valuatorY    *int
}

type scrollState struct {
	orientation  Orientation
	increment    float64
	lastAbsolute float64
}

// DeviceRegistry is owned exclusively by the EventTransformer and accessed
// only from its single driving task; it requires no internal locking for
// that access pattern, but RefreshAll takes a write lock so a concurrent
// read from a test or diagnostic caller observes a consistent snapshot
// rather than a half-rebuilt map.
type DeviceRegistry struct {
	mu      sync.RWMutex
	devices map[int]*deviceEntry
}

// NewDeviceRegistry returns an empty registry.
func NewDeviceRegistry() *DeviceRegistry {
	return &DeviceRegistry{devices: make(map[int]*deviceEntry)}
}

// RefreshAll rebuilds the entire mapping from a platform device snapshot:
// enumerate, classify, record button labels and scroll axes, then resolve
// X/Y valuators. Re-refresh is idempotent in the resulting kind/name/button
// mapping, but intentionally resets every scroll axis's last absolute value
// to the snapshot's current value.
func (r *DeviceRegistry) RefreshAll(snap Snapshot) {
	next := make(map[int]*deviceEntry, len(snap.Devices))

	for _, d := range snap.Devices {
		kind, ok := classify(d.TypeAtom)
		if !ok {
			continue // unsupported device kind, skip (step 1)
		}

		entry := &deviceEntry{
			kind:       kind,
			name:       d.Name,
			buttons:    make(map[int]string, len(d.Buttons)),
			scrollAxes: make(map[int]*scrollState, len(d.ScrollAxes)),
		}

		for code, label := range d.Buttons {
			entry.buttons[code] = label
		}

		for _, axis := range d.ScrollAxes {
			entry.scrollAxes[axis.Number] = &scrollState{
				orientation:  axis.Orientation,
				increment:    axis.Increment,
				lastAbsolute: axis.CurrentValue,
			}
		}

		// Tie-break: first Abs X/Rel X labeled valuator wins; same for Y.
		for _, v := range d.Valuators {
			switch {
			case isXLabel(v.Label) && entry.valuatorX == nil:
				n := v.Number
				entry.valuatorX = &n
			case isYLabel(v.Label) && entry.valuatorY == nil:
				n := v.Number
				entry.valuatorY = &n
			}
		}

		next[d.ID] = entry
	}

	r.mu.Lock()
	r.devices = next
	r.mu.Unlock()
}

func isXLabel(label string) bool {
	return label == "Abs X" || label == "Rel X"
}

func isYLabel(label string) bool {
	return label == "Abs Y" || label == "Rel Y"
}

// Contains reports whether id is a currently-registered device.
func (r *DeviceRegistry) Contains(id int) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.devices[id]
	return ok
}

// Kind returns the device's kind. Querying an id not in the registry is a
// usage error; callers must check Contains first.
func (r *DeviceRegistry) Kind(id int) event.DeviceKind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.devices[id].kind
}

// NameOf returns the device's human-readable name.
func (r *DeviceRegistry) NameOf(id int) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.devices[id].name
}

// ButtonName resolves a physical button code to its label for device id.
// Returns "" if the code has no recorded label.
func (r *DeviceRegistry) ButtonName(id, code int) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.devices[id].buttons[code]
}

// ValuatorXY reports the device's X/Y valuator indices, if recorded.
func (r *DeviceRegistry) ValuatorXY(id int) (x, y int, hasX, hasY bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e := r.devices[id]
	if e.valuatorX != nil {
		x, hasX = *e.valuatorX, true
	}
	if e.valuatorY != nil {
		y, hasY = *e.valuatorY, true
	}
	return
}

// ScrollDelta applies a new absolute valuator value to the scroll axis
// identified by valuatorNumber on device id, returning the signed delta
// relative to the previous reading, the axis orientation, and whether the
// axis exists at all. The registry's last absolute value is updated
// unconditionally whenever the axis exists, regardless of whether the
// resulting scroll event ends up suppressed for being zero.
func (r *DeviceRegistry) ScrollDelta(id, valuatorNumber int, newValue float64) (delta float64, orientation Orientation, increment float64, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, exists := r.devices[id]
	if !exists {
		return 0, 0, 0, false
	}
	axis, exists := e.scrollAxes[valuatorNumber]
	if !exists {
		return 0, 0, 0, false
	}

	delta = newValue - axis.lastAbsolute
	orientation = axis.orientation
	increment = axis.increment
	axis.lastAbsolute = newValue
	return delta, orientation, increment, true
}

// ScrollAxisNumbers returns the set of scroll-valuator indices registered
// for device id, used by the transformer to find which valuators in a
// motion event are scroll axes.
func (r *DeviceRegistry) ScrollAxisNumbers(id int) []int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.devices[id]
	if !ok {
		return nil
	}
	out := make([]int, 0, len(e.scrollAxes))
	for n := range e.scrollAxes {
		out = append(out, n)
	}
	return out
}

// Lookup returns the full recorded device/kind/name triple, or a
// DeviceRegistryError if id is unknown.
func (r *DeviceRegistry) Lookup(id int) (event.DeviceKind, string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.devices[id]
	if !ok {
		return 0, "", core.NewError(core.DeviceRegistryError, "lookup", "unknown device id")
	}
	return e.kind, e.name, nil
}
