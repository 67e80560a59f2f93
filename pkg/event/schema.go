// Package event defines the typed event schema: one struct per entry kind,
// a compile-time-ordered field schema for each, and a Data aggregate
// combining a primary entry with its modifiers.
package event

// FieldType is the wire type of one schema field.
type FieldType int

const (
	FieldString FieldType = iota
	FieldInteger
	FieldDouble
	FieldTimestamp
	FieldInterval
)

func (t FieldType) String() string {
	switch t {
	case FieldString:
		return "String"
	case FieldInteger:
		return "Integer"
	case FieldDouble:
		return "Double"
	case FieldTimestamp:
		return "Timestamp"
	case FieldInterval:
		return "Interval"
	default:
		return "Unknown"
	}
}

// SchemaField names and types one positional field of an entry's schema.
type SchemaField struct {
	Name string
	Type FieldType
}

// Schema is the ordered list of fields for one entry kind. Serialization
// walks this slice in order; the number of emitted values always equals
// len(Schema).
type Schema []SchemaField

// Common schema fields shared by every entry kind.
var (
	fieldInterval             = SchemaField{"Interval", FieldInterval}
	fieldTimestamp            = SchemaField{"Timestamp", FieldTimestamp}
	fieldDeviceKind           = SchemaField{"DeviceKind", FieldString}
	fieldDeviceName           = SchemaField{"DeviceName", FieldString}
	fieldPositionX            = SchemaField{"PositionX", FieldDouble}
	fieldPositionY            = SchemaField{"PositionY", FieldDouble}
	fieldFocusWindowName      = SchemaField{"FocusWindowName", FieldString}
	fieldFocusWindowPositionX = SchemaField{"FocusWindowPositionX", FieldDouble}
	fieldFocusWindowPositionY = SchemaField{"FocusWindowPositionY", FieldDouble}
	fieldFocusWindowWidth     = SchemaField{"FocusWindowWidth", FieldDouble}
	fieldFocusWindowHeight    = SchemaField{"FocusWindowHeight", FieldDouble}
)

func commonFields() []SchemaField {
	return []SchemaField{
		fieldInterval,
		fieldTimestamp,
		fieldDeviceKind,
		fieldDeviceName,
		fieldPositionX,
		fieldPositionY,
		fieldFocusWindowName,
		fieldFocusWindowPositionX,
		fieldFocusWindowPositionY,
		fieldFocusWindowWidth,
		fieldFocusWindowHeight,
	}
}

// SchemaMouseMove is the MouseMove entry schema: no kind-specific fields
// beyond the common ones.
var SchemaMouseMove = Schema(commonFields())

// SchemaMouseClick is the MouseClick entry schema.
var SchemaMouseClick = Schema(append(commonFields(),
	SchemaField{"Action", FieldString},
	SchemaField{"ButtonID", FieldInteger},
	SchemaField{"ButtonName", FieldString},
))

// SchemaMouseScroll is the MouseScroll entry schema.
var SchemaMouseScroll = Schema(append(commonFields(),
	SchemaField{"VerticalDelta", FieldDouble},
	SchemaField{"HorizontalDelta", FieldDouble},
))

// SchemaKey is the Key entry schema.
var SchemaKey = Schema(append(commonFields(),
	SchemaField{"Action", FieldString},
	SchemaField{"KeyCode", FieldInteger},
	SchemaField{"Character", FieldString},
	SchemaField{"KeyName", FieldString},
))

// SchemaModifier is the Modifier entry schema. A Modifier never stands
// alone; it shares its parent's Interval/Timestamp but its own schema is
// just the modifier value.
var SchemaModifier = Schema{
	{"ModifierValue", FieldString},
}
