package event

import "time"

// DeviceKind is one of the four device kinds. It is immutable per device
// id for the device's lifetime in the registry.
type DeviceKind int

const (
	DeviceMouse DeviceKind = iota
	DeviceKeyboard
	DeviceTouchpad
	DeviceTouchscreen
)

func (k DeviceKind) String() string {
	switch k {
	case DeviceMouse:
		return "Mouse"
	case DeviceKeyboard:
		return "Keyboard"
	case DeviceTouchpad:
		return "Touchpad"
	case DeviceTouchscreen:
		return "Touchscreen"
	default:
		return "Unknown"
	}
}

// ButtonAction is one of Press/Release/Repeat.
type ButtonAction int

const (
	ActionPress ButtonAction = iota
	ActionRelease
	ActionRepeat
)

func (a ButtonAction) String() string {
	switch a {
	case ActionPress:
		return "Press"
	case ActionRelease:
		return "Release"
	case ActionRepeat:
		return "Repeat"
	default:
		return "Unknown"
	}
}

// ModifierValue is one bit of the platform modifier mask.
type ModifierValue int

const (
	ModShift ModifierValue = iota
	ModCapsLock
	ModControl
	ModAlt
	ModNumLock
	ModMod3
	ModSuper
	ModMod5
)

func (m ModifierValue) String() string {
	switch m {
	case ModShift:
		return "Shift"
	case ModCapsLock:
		return "CapsLock"
	case ModControl:
		return "Control"
	case ModAlt:
		return "Alt"
	case ModNumLock:
		return "NumLock"
	case ModMod3:
		return "Mod3"
	case ModSuper:
		return "Super"
	case ModMod5:
		return "Mod5"
	default:
		return "Unknown"
	}
}

// EntryKind tags a Data so sinks can dispatch on it.
type EntryKind int

const (
	KindMouseMove EntryKind = iota
	KindMouseClick
	KindMouseScroll
	KindKey
	KindModifier
)

func (k EntryKind) String() string {
	switch k {
	case KindMouseMove:
		return "MouseMove"
	case KindMouseClick:
		return "MouseClick"
	case KindMouseScroll:
		return "MouseScroll"
	case KindKey:
		return "Key"
	case KindModifier:
		return "Modifier"
	default:
		return "Unknown"
	}
}

// Common holds the fields shared by every entry kind. Interval and
// Timestamp are shared by construction: every entry in a Data
// (primary and modifiers) carries the same values as the primary.
type Common struct {
	Interval   time.Duration
	Timestamp  time.Time
	DeviceKind DeviceKind
	DeviceName string
	PositionX  float64
	PositionY  float64

	// Focus window metadata is optional: nil when no focused/active window
	// could be resolved at transform time.
	FocusWindowName      *string
	FocusWindowPositionX *float64
	FocusWindowPositionY *float64
	FocusWindowWidth     *float64
	FocusWindowHeight    *float64
}

// Entry is one typed event occurrence: a primary MouseMove/MouseClick/
// MouseScroll/Key, or a Modifier attached to one of those.
type Entry interface {
	Kind() EntryKind
	Schema() Schema
	Common() Common
	// Fields returns the canonical string for every schema field, in schema
	// order; len(Fields()) == len(Schema()) always holds.
	Fields() []string
}
