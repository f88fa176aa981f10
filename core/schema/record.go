package schema

import (
	"fmt"
	"sort"
)

// ErrFieldNotLoaded is returned when a field or relation is read on a record
// that never had it populated. This is distinct from a field that is loaded
// and null: a null value is data, an unloaded field is a caller mistake (the
// field must be fetched before it can be inspected).
var ErrFieldNotLoaded = fmt.Errorf("schema: field not loaded")

// Record is a structured value of a named schema whose fields may or may not
// be populated. A field absent from the backing map is *unloaded*; a field
// present with a nil value is loaded and null. Records are reference values:
// two *Record pointers are the same record only if they are the same pointer.
//
// Record is not safe for concurrent mutation; the engine only reads records
// during an operation and produces fresh ones for transformed results.
type Record struct {
	schema string
	fields map[string]any
}

// NewRecord creates an empty record of the given schema.
func NewRecord(schemaName string) *Record {
	return &Record{
		schema: schemaName,
		fields: make(map[string]any),
	}
}

// Schema returns the name of the record's schema.
func (r *Record) Schema() string {
	return r.schema
}

// Set populates a field with a value (nil marks the field loaded and null)
// and returns the record for chaining during construction.
func (r *Record) Set(field string, value any) *Record {
	r.fields[field] = value
	return r
}

// Unset removes a field entirely, returning it to the unloaded state.
func (r *Record) Unset(field string) {
	delete(r.fields, field)
}

// Get returns the value of a field and whether the field is loaded.
func (r *Record) Get(field string) (any, bool) {
	v, ok := r.fields[field]
	return v, ok
}

// Value returns the value of a field, or ErrFieldNotLoaded when the field was
// never populated on this record.
func (r *Record) Value(field string) (any, error) {
	v, ok := r.fields[field]
	if !ok {
		return nil, fmt.Errorf("field %q on schema %q: %w", field, r.schema, ErrFieldNotLoaded)
	}
	return v, nil
}

// Loaded reports whether the field is populated on this record.
func (r *Record) Loaded(field string) bool {
	_, ok := r.fields[field]
	return ok
}

// LoadedFields returns the populated field names in sorted order.
func (r *Record) LoadedFields() []string {
	names := make([]string, 0, len(r.fields))
	for name := range r.fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of populated fields.
func (r *Record) Len() int {
	return len(r.fields)
}

// Clone returns a new record of the same schema with the same populated
// fields. The copy is shallow: related records stay shared.
func (r *Record) Clone() *Record {
	out := NewRecord(r.schema)
	for name, value := range r.fields {
		out.fields[name] = value
	}
	return out
}

// String renders the record for logs and test failures.
func (r *Record) String() string {
	parts := ""
	for _, name := range r.LoadedFields() {
		if parts != "" {
			parts += ", "
		}
		parts += fmt.Sprintf("%s:%v", name, r.fields[name])
	}
	return fmt.Sprintf("%s{%s}", r.schema, parts)
}
