package event

// Data is a collection of one primary Entry plus zero or more Modifier
// entries that apply to it. Invariant: every entry in a Data shares the
// same Interval and Timestamp as the primary.
type Data struct {
	Primary   Entry
	Modifiers []Modifier
}

// Kind returns the primary entry's kind, used by sinks to dispatch.
func (d Data) Kind() EntryKind {
	if d.Primary == nil {
		return -1
	}
	return d.Primary.Kind()
}

// IsZero reports whether d carries no primary entry at all (e.g. a
// transformer call that produced nothing).
func (d Data) IsZero() bool {
	return d.Primary == nil
}
