// Package transform turns raw platform events into the typed event.Data
// stream, using a DeviceRegistry to resolve device/button/axis metadata.
package transform

import (
	"context"
	"strconv"
	"time"

	"github.com/evgetd/evgetd/internal/logging"
	"github.com/evgetd/evgetd/internal/registry"
	"github.com/evgetd/evgetd/internal/source"
	"github.com/evgetd/evgetd/pkg/event"
)

// SnapshotProvider fetches the current device enumeration, used to rebuild
// the registry when the platform reports a topology change (DeviceChanged,
// HierarchyChanged).
type SnapshotProvider interface {
	ListDevices(ctx context.Context) (registry.Snapshot, error)
}

// EventTransformer is a stateful classifier: one DeviceRegistry and a
// start instant from which every output interval is measured.
type EventTransformer struct {
	registry *registry.DeviceRegistry
	snapshot SnapshotProvider
	log      logging.Logger

	start    time.Time
	hasStart bool
}

// New constructs an EventTransformer over reg, refreshing it via snapshot
// whenever the platform reports a topology change.
func New(reg *registry.DeviceRegistry, snapshot SnapshotProvider, log logging.Logger) *EventTransformer {
	return &EventTransformer{registry: reg, snapshot: snapshot, log: log}
}

// Transform classifies one raw event into zero or more typed Data records.
// Malformed or unrecognized inputs are logged and skipped rather than
// surfaced as errors: a broken event must not kill the pipeline.
func (t *EventTransformer) Transform(ctx context.Context, raw source.RawEvent) []event.Data {
	if !raw.HasPayload {
		return nil
	}

	if raw.Type == source.EventDeviceChanged || raw.Type == source.EventHierarchyChanged {
		t.refresh(ctx)
		return nil
	}

	interval := t.intervalFor(raw.Timestamp)

	switch raw.Type {
	case source.EventMotion:
		return t.transformMotion(raw, interval)
	case source.EventButtonPress, source.EventButtonRelease:
		return t.transformButton(raw, interval)
	case source.EventKeyPress, source.EventKeyRelease:
		return t.transformKey(raw, interval)
	case source.EventTouchBegin, source.EventTouchUpdate, source.EventTouchEnd:
		return t.transformTouch(raw, interval)
	default:
		if t.log != nil {
			t.log.Warn("unrecognized raw event type, skipping", "type", raw.Type.String())
		}
		return nil
	}
}

func (t *EventTransformer) refresh(ctx context.Context) {
	if t.snapshot == nil {
		return
	}
	snap, err := t.snapshot.ListDevices(ctx)
	if err != nil {
		if t.log != nil {
			t.log.Error("failed to refresh device snapshot", "error", err.Error())
		}
		return
	}
	t.registry.RefreshAll(snap)
}

func (t *EventTransformer) intervalFor(ts time.Time) time.Duration {
	if !t.hasStart {
		t.start = ts
		t.hasStart = true
		return 0
	}
	return ts.Sub(t.start)
}

// decodeModifiers returns the set modifier bits, in the fixed ordering
// Shift, CapsLock, Control, Alt, NumLock, Mod3, Super, Mod5.
func decodeModifiers(mask uint32) []event.ModifierValue {
	all := []event.ModifierValue{
		event.ModShift, event.ModCapsLock, event.ModControl, event.ModAlt,
		event.ModNumLock, event.ModMod3, event.ModSuper, event.ModMod5,
	}
	var out []event.ModifierValue
	for bit, mv := range all {
		if mask&(1<<uint(bit)) != 0 {
			out = append(out, mv)
		}
	}
	return out
}

func (t *EventTransformer) transformMotion(raw source.RawEvent, interval time.Duration) []event.Data {
	if raw.PointerEmulated || !t.registry.Contains(raw.DeviceID) {
		return nil
	}

	var out []event.Data
	kind := t.registry.Kind(raw.DeviceID)
	name := t.registry.NameOf(raw.DeviceID)
	mods := decodeModifiers(raw.ModifierMask)

	// The pointer position is the root position, refined by the device's
	// X/Y valuators when this event carries them.
	posX, posY := raw.RootX, raw.RootY
	x, y, hasX, hasY := t.registry.ValuatorXY(raw.DeviceID)
	vx, movedX := raw.Valuators[x]
	vy, movedY := raw.Valuators[y]
	movedX, movedY = hasX && movedX, hasY && movedY
	if movedX {
		posX = vx
	}
	if movedY {
		posY = vy
	}
	if movedX || movedY {
		b := event.NewMouseMoveBuilder().
			Interval(interval).
			Timestamp(raw.Timestamp).
			DeviceKind(kind).
			DeviceName(name).
			PositionX(posX).
			PositionY(posY)
		applyFocus(b, raw.Focus)
		for _, m := range mods {
			b.Modifier(m)
		}
		out = append(out, b.Build())
	}

	scroll := event.NewMouseScrollBuilder().
		Interval(interval).
		Timestamp(raw.Timestamp).
		DeviceKind(kind).
		DeviceName(name).
		PositionX(posX).
		PositionY(posY)
	applyFocus(scroll, raw.Focus)
	for _, m := range mods {
		scroll.Modifier(m)
	}

	for _, axisNum := range t.registry.ScrollAxisNumbers(raw.DeviceID) {
		newValue, present := raw.Valuators[axisNum]
		if !present {
			continue
		}
		delta, orientation, increment, ok := t.registry.ScrollDelta(raw.DeviceID, axisNum, newValue)
		if !ok {
			continue
		}
		// Direction comes from the sign of increment*delta (a negative
		// increment flags an axis whose natural direction is up/left); the
		// magnitude is the raw valuator delta.
		signed := delta
		if increment < 0 {
			signed = -signed
		}
		if orientation == registry.Vertical {
			scroll.AddVertical(signed)
		} else {
			scroll.AddHorizontal(signed)
		}
	}
	if scroll.Contributed() {
		out = append(out, scroll.Build())
	}

	return out
}

func (t *EventTransformer) transformButton(raw source.RawEvent, interval time.Duration) []event.Data {
	if raw.PointerEmulated || !t.registry.Contains(raw.DeviceID) {
		return nil
	}

	label := t.registry.ButtonName(raw.DeviceID, raw.DetailCode)
	if isWheelPseudoButton(label) {
		return nil
	}

	action := event.ActionPress
	if raw.Type == source.EventButtonRelease {
		action = event.ActionRelease
	}

	b := event.NewMouseClickBuilder().
		Interval(interval).
		Timestamp(raw.Timestamp).
		DeviceKind(t.registry.Kind(raw.DeviceID)).
		DeviceName(t.registry.NameOf(raw.DeviceID)).
		PositionX(raw.RootX).
		PositionY(raw.RootY).
		Action(action).
		Button(raw.DetailCode, label)
	applyFocus(b, raw.Focus)
	for _, m := range decodeModifiers(raw.ModifierMask) {
		b.Modifier(m)
	}

	return []event.Data{b.Build()}
}

func isWheelPseudoButton(label string) bool {
	switch label {
	case "WheelUp", "WheelDown", "WheelLeft", "WheelRight":
		return true
	default:
		return false
	}
}

func (t *EventTransformer) transformKey(raw source.RawEvent, interval time.Duration) []event.Data {
	if !t.registry.Contains(raw.DeviceID) {
		return nil
	}

	action := event.ActionRelease
	if raw.Type == source.EventKeyPress {
		action = event.ActionPress
		if raw.AutoRepeat {
			action = event.ActionRepeat
		}
	}

	character, keyName := translateKeyCode(raw.DetailCode)

	b := event.NewKeyBuilder().
		Interval(interval).
		Timestamp(raw.Timestamp).
		DeviceKind(t.registry.Kind(raw.DeviceID)).
		DeviceName(t.registry.NameOf(raw.DeviceID)).
		PositionX(raw.RootX).
		PositionY(raw.RootY).
		Action(action).
		KeyCode(raw.DetailCode).
		Character(character).
		KeyName(keyName)
	applyFocus(b, raw.Focus)
	for _, m := range decodeModifiers(raw.ModifierMask) {
		b.Modifier(m)
	}

	return []event.Data{b.Build()}
}

func (t *EventTransformer) transformTouch(raw source.RawEvent, interval time.Duration) []event.Data {
	kind, name := event.DeviceTouchscreen, ""
	if t.registry.Contains(raw.DeviceID) {
		kind = t.registry.Kind(raw.DeviceID)
		name = t.registry.NameOf(raw.DeviceID)
	}
	mods := decodeModifiers(raw.ModifierMask)

	moveB := event.NewMouseMoveBuilder().
		Interval(interval).
		Timestamp(raw.Timestamp).
		DeviceKind(kind).
		DeviceName(name).
		PositionX(raw.RootX).
		PositionY(raw.RootY)
	applyFocus(moveB, raw.Focus)
	for _, m := range mods {
		moveB.Modifier(m)
	}
	out := []event.Data{moveB.Build()}

	var clickAction *event.ButtonAction
	switch raw.Type {
	case source.EventTouchBegin:
		a := event.ActionPress
		clickAction = &a
	case source.EventTouchEnd:
		a := event.ActionRelease
		clickAction = &a
	}
	if clickAction != nil {
		clickB := event.NewMouseClickBuilder().
			Interval(interval).Timestamp(raw.Timestamp).
			DeviceKind(kind).DeviceName(name).
			PositionX(raw.RootX).PositionY(raw.RootY).
			Action(*clickAction)
		applyFocus(clickB, raw.Focus)
		for _, m := range mods {
			clickB.Modifier(m)
		}
		out = append(out, clickB.Build())
	}

	return out
}

func applyFocus[B interface {
	FocusWindow(name string, x, y, w, h float64) B
}](b B, f *source.FocusWindow) {
	if f == nil {
		return
	}
	b.FocusWindow(f.Name, f.X, f.Y, f.Width, f.Height)
}

func translateKeyCode(code int) (character, keyName string) {
	if code >= 32 && code <= 126 {
		r := string(rune(code))
		return r, r
	}
	return "", "Key" + strconv.Itoa(code)
}
