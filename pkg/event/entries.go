package event

import "strconv"

// MouseMove is a mouse motion entry: no kind-specific fields.
type MouseMove struct {
	common Common
}

func (e MouseMove) Kind() EntryKind { return KindMouseMove }
func (e MouseMove) Schema() Schema  { return SchemaMouseMove }
func (e MouseMove) Common() Common  { return e.common }
func (e MouseMove) Fields() []string {
	return commonFieldValues(e.common)
}

// MouseClick is a mouse button press/release/repeat entry.
type MouseClick struct {
	common     Common
	Action     ButtonAction
	ButtonID   int
	ButtonName string
}

func (e MouseClick) Kind() EntryKind { return KindMouseClick }
func (e MouseClick) Schema() Schema  { return SchemaMouseClick }
func (e MouseClick) Common() Common  { return e.common }
func (e MouseClick) Fields() []string {
	return append(commonFieldValues(e.common),
		e.Action.String(),
		strconv.Itoa(e.ButtonID),
		e.ButtonName,
	)
}

// MouseScroll is a scroll-wheel entry. VerticalDelta/HorizontalDelta are
// signed; sign indicates direction.
type MouseScroll struct {
	common          Common
	VerticalDelta   float64
	HorizontalDelta float64
}

func (e MouseScroll) Kind() EntryKind { return KindMouseScroll }
func (e MouseScroll) Schema() Schema  { return SchemaMouseScroll }
func (e MouseScroll) Common() Common  { return e.common }
func (e MouseScroll) Fields() []string {
	return append(commonFieldValues(e.common),
		serializeDouble(e.VerticalDelta),
		serializeDouble(e.HorizontalDelta),
	)
}

// Key is a keyboard press/release/repeat entry.
type Key struct {
	common    Common
	Action    ButtonAction
	KeyCode   int
	Character string
	KeyName   string
}

func (e Key) Kind() EntryKind { return KindKey }
func (e Key) Schema() Schema  { return SchemaKey }
func (e Key) Common() Common  { return e.common }
func (e Key) Fields() []string {
	return append(commonFieldValues(e.common),
		e.Action.String(),
		strconv.Itoa(e.KeyCode),
		e.Character,
		e.KeyName,
	)
}

// Modifier represents one active keyboard modifier, attached to a parent
// entry; it never stands alone. It shares interval/timestamp with its
// parent.
type Modifier struct {
	common Common
	Value  ModifierValue
}

func (e Modifier) Kind() EntryKind { return KindModifier }
func (e Modifier) Schema() Schema  { return SchemaModifier }
func (e Modifier) Common() Common  { return e.common }
func (e Modifier) Fields() []string {
	return []string{e.Value.String()}
}
