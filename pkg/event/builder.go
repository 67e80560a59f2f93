package event

import "time"

// commonBuilder accumulates the fields shared by every entry kind, plus any
// attached modifiers. Unset string fields default to "" at Build time
// (the sink-visible empty string); unset numeric fields default to their
// zero value.
type commonBuilder struct {
	interval             time.Duration
	timestamp            time.Time
	deviceKind           DeviceKind
	deviceName           string
	positionX            float64
	positionY            float64
	focusWindowName      *string
	focusWindowPositionX *float64
	focusWindowPositionY *float64
	focusWindowWidth     *float64
	focusWindowHeight    *float64
	modifiers            []ModifierValue
}

func (b *commonBuilder) common() Common {
	return Common{
		Interval:             b.interval,
		Timestamp:            b.timestamp,
		DeviceKind:           b.deviceKind,
		DeviceName:           b.deviceName,
		PositionX:            b.positionX,
		PositionY:            b.positionY,
		FocusWindowName:      b.focusWindowName,
		FocusWindowPositionX: b.focusWindowPositionX,
		FocusWindowPositionY: b.focusWindowPositionY,
		FocusWindowWidth:     b.focusWindowWidth,
		FocusWindowHeight:    b.focusWindowHeight,
	}
}

func (b *commonBuilder) buildModifiers(common Common) []Modifier {
	if len(b.modifiers) == 0 {
		return nil
	}
	out := make([]Modifier, len(b.modifiers))
	for i, v := range b.modifiers {
		out[i] = Modifier{common: common, Value: v}
	}
	return out
}

// MouseMoveBuilder builds a MouseMove Data.
type MouseMoveBuilder struct{ commonBuilder }

func NewMouseMoveBuilder() *MouseMoveBuilder { return &MouseMoveBuilder{} }

func (b *MouseMoveBuilder) Interval(d time.Duration) *MouseMoveBuilder { b.interval = d; return b }
func (b *MouseMoveBuilder) Timestamp(t time.Time) *MouseMoveBuilder    { b.timestamp = t; return b }
func (b *MouseMoveBuilder) DeviceKind(k DeviceKind) *MouseMoveBuilder  { b.deviceKind = k; return b }
func (b *MouseMoveBuilder) DeviceName(s string) *MouseMoveBuilder     { b.deviceName = s; return b }
func (b *MouseMoveBuilder) PositionX(x float64) *MouseMoveBuilder     { b.positionX = x; return b }
func (b *MouseMoveBuilder) PositionY(y float64) *MouseMoveBuilder     { b.positionY = y; return b }
func (b *MouseMoveBuilder) FocusWindow(name string, x, y, w, h float64) *MouseMoveBuilder {
	b.focusWindowName, b.focusWindowPositionX, b.focusWindowPositionY, b.focusWindowWidth, b.focusWindowHeight =
		&name, &x, &y, &w, &h
	return b
}
func (b *MouseMoveBuilder) Modifier(m ModifierValue) *MouseMoveBuilder {
	b.modifiers = append(b.modifiers, m)
	return b
}

func (b *MouseMoveBuilder) Build() Data {
	c := b.common()
	return Data{Primary: MouseMove{common: c}, Modifiers: b.buildModifiers(c)}
}

// MouseClickBuilder builds a MouseClick Data.
type MouseClickBuilder struct {
	commonBuilder
	action     ButtonAction
	buttonID   int
	buttonName string
}

func NewMouseClickBuilder() *MouseClickBuilder { return &MouseClickBuilder{} }

func (b *MouseClickBuilder) Interval(d time.Duration) *MouseClickBuilder { b.interval = d; return b }
func (b *MouseClickBuilder) Timestamp(t time.Time) *MouseClickBuilder    { b.timestamp = t; return b }
func (b *MouseClickBuilder) DeviceKind(k DeviceKind) *MouseClickBuilder  { b.deviceKind = k; return b }
func (b *MouseClickBuilder) DeviceName(s string) *MouseClickBuilder     { b.deviceName = s; return b }
func (b *MouseClickBuilder) PositionX(x float64) *MouseClickBuilder     { b.positionX = x; return b }
func (b *MouseClickBuilder) PositionY(y float64) *MouseClickBuilder     { b.positionY = y; return b }
func (b *MouseClickBuilder) Action(a ButtonAction) *MouseClickBuilder   { b.action = a; return b }
func (b *MouseClickBuilder) Button(id int, name string) *MouseClickBuilder {
	b.buttonID, b.buttonName = id, name
	return b
}
func (b *MouseClickBuilder) FocusWindow(name string, x, y, w, h float64) *MouseClickBuilder {
	b.focusWindowName, b.focusWindowPositionX, b.focusWindowPositionY, b.focusWindowWidth, b.focusWindowHeight =
		&name, &x, &y, &w, &h
	return b
}
func (b *MouseClickBuilder) Modifier(m ModifierValue) *MouseClickBuilder {
	b.modifiers = append(b.modifiers, m)
	return b
}

func (b *MouseClickBuilder) Build() Data {
	c := b.common()
	return Data{
		Primary: MouseClick{
			common:     c,
			Action:     b.action,
			ButtonID:   b.buttonID,
			ButtonName: b.buttonName,
		},
		Modifiers: b.buildModifiers(c),
	}
}

// MouseScrollBuilder builds a MouseScroll Data, accumulating deltas across
// possibly multiple scroll axes seen in a single raw motion event into a
// single builder.
type MouseScrollBuilder struct {
	commonBuilder
	verticalDelta   float64
	horizontalDelta float64
	contributed     bool
}

func NewMouseScrollBuilder() *MouseScrollBuilder { return &MouseScrollBuilder{} }

func (b *MouseScrollBuilder) Interval(d time.Duration) *MouseScrollBuilder { b.interval = d; return b }
func (b *MouseScrollBuilder) Timestamp(t time.Time) *MouseScrollBuilder    { b.timestamp = t; return b }
func (b *MouseScrollBuilder) DeviceKind(k DeviceKind) *MouseScrollBuilder  { b.deviceKind = k; return b }
func (b *MouseScrollBuilder) DeviceName(s string) *MouseScrollBuilder     { b.deviceName = s; return b }
func (b *MouseScrollBuilder) PositionX(x float64) *MouseScrollBuilder     { b.positionX = x; return b }
func (b *MouseScrollBuilder) PositionY(y float64) *MouseScrollBuilder     { b.positionY = y; return b }
func (b *MouseScrollBuilder) FocusWindow(name string, x, y, w, h float64) *MouseScrollBuilder {
	b.focusWindowName, b.focusWindowPositionX, b.focusWindowPositionY, b.focusWindowWidth, b.focusWindowHeight =
		&name, &x, &y, &w, &h
	return b
}
func (b *MouseScrollBuilder) Modifier(m ModifierValue) *MouseScrollBuilder {
	b.modifiers = append(b.modifiers, m)
	return b
}

// AddVertical accumulates a vertical delta contribution from one scroll axis.
func (b *MouseScrollBuilder) AddVertical(delta float64) *MouseScrollBuilder {
	b.verticalDelta += delta
	if delta != 0 {
		b.contributed = true
	}
	return b
}

// AddHorizontal accumulates a horizontal delta contribution from one scroll axis.
func (b *MouseScrollBuilder) AddHorizontal(delta float64) *MouseScrollBuilder {
	b.horizontalDelta += delta
	if delta != 0 {
		b.contributed = true
	}
	return b
}

// Contributed reports whether any axis contributed a non-zero delta; the
// transformer only emits the MouseScroll when this is true.
func (b *MouseScrollBuilder) Contributed() bool { return b.contributed }

func (b *MouseScrollBuilder) Build() Data {
	c := b.common()
	return Data{
		Primary: MouseScroll{
			common:          c,
			VerticalDelta:   b.verticalDelta,
			HorizontalDelta: b.horizontalDelta,
		},
		Modifiers: b.buildModifiers(c),
	}
}

// KeyBuilder builds a Key Data.
type KeyBuilder struct {
	commonBuilder
	action    ButtonAction
	keyCode   int
	character string
	keyName   string
}

func NewKeyBuilder() *KeyBuilder { return &KeyBuilder{} }

func (b *KeyBuilder) Interval(d time.Duration) *KeyBuilder { b.interval = d; return b }
func (b *KeyBuilder) Timestamp(t time.Time) *KeyBuilder    { b.timestamp = t; return b }
func (b *KeyBuilder) DeviceKind(k DeviceKind) *KeyBuilder  { b.deviceKind = k; return b }
func (b *KeyBuilder) DeviceName(s string) *KeyBuilder     { b.deviceName = s; return b }
func (b *KeyBuilder) PositionX(x float64) *KeyBuilder     { b.positionX = x; return b }
func (b *KeyBuilder) PositionY(y float64) *KeyBuilder     { b.positionY = y; return b }
func (b *KeyBuilder) Action(a ButtonAction) *KeyBuilder   { b.action = a; return b }
func (b *KeyBuilder) KeyCode(code int) *KeyBuilder        { b.keyCode = code; return b }
func (b *KeyBuilder) Character(s string) *KeyBuilder      { b.character = s; return b }
func (b *KeyBuilder) KeyName(s string) *KeyBuilder        { b.keyName = s; return b }
func (b *KeyBuilder) FocusWindow(name string, x, y, w, h float64) *KeyBuilder {
	b.focusWindowName, b.focusWindowPositionX, b.focusWindowPositionY, b.focusWindowWidth, b.focusWindowHeight =
		&name, &x, &y, &w, &h
	return b
}
func (b *KeyBuilder) Modifier(m ModifierValue) *KeyBuilder {
	b.modifiers = append(b.modifiers, m)
	return b
}

func (b *KeyBuilder) Build() Data {
	c := b.common()
	return Data{
		Primary: Key{
			common:    c,
			Action:    b.action,
			KeyCode:   b.keyCode,
			Character: b.character,
			KeyName:   b.keyName,
		},
		Modifiers: b.buildModifiers(c),
	}
}
