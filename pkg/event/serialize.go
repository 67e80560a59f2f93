package event

import (
	"strconv"
	"time"
)

// serializeTimestamp formats a timestamp as RFC-3339 with nanoseconds and
// timezone.
func serializeTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339Nano)
}

// serializeInterval formats an interval as a signed nanosecond integer.
func serializeInterval(d time.Duration) string {
	return strconv.FormatInt(d.Nanoseconds(), 10)
}

// serializeDouble formats a double via the standard "%f" equivalent: fixed
// notation with six decimal places.
func serializeDouble(f float64) string {
	return strconv.FormatFloat(f, 'f', 6, 64)
}

func serializeOptionalDouble(f *float64) string {
	if f == nil {
		return ""
	}
	return serializeDouble(*f)
}

func serializeOptionalString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// commonFieldValues returns the serialized common fields in the order
// produced by commonFields() in schema.go.
func commonFieldValues(c Common) []string {
	return []string{
		serializeInterval(c.Interval),
		serializeTimestamp(c.Timestamp),
		c.DeviceKind.String(),
		c.DeviceName,
		serializeDouble(c.PositionX),
		serializeDouble(c.PositionY),
		serializeOptionalString(c.FocusWindowName),
		serializeOptionalDouble(c.FocusWindowPositionX),
		serializeOptionalDouble(c.FocusWindowPositionY),
		serializeOptionalDouble(c.FocusWindowWidth),
		serializeOptionalDouble(c.FocusWindowHeight),
	}
}
