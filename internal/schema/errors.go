// Package schema converts between wire payloads and model entities. Loads
// validate field constraints and aggregate every violation; dumps expose a
// fixed, per-relationship truncation of nested entities so the object graph
// never expands past one hop.
package schema

// FieldErrors maps a field name to the list of human-readable messages
// describing each constraint it violated. A validation response body is
// this map serialized as-is.
type FieldErrors map[string][]string

// Add appends a message to the field's error list.
func (e FieldErrors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Empty reports whether no field has any error.
func (e FieldErrors) Empty() bool {
	return len(e) == 0
}
