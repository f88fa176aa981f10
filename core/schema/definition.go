// Package schema defines the metadata vocabulary of the record engine: the
// closed set of primitive field kinds, field descriptors (direct fields and
// dotted relation paths), and the minimal schema definition consumed by host
// record sources. Records themselves live in record.go.
package schema

import "strings"

// FieldKind represents the primitive value kinds supported by the engine.
type FieldKind string

const (
	KindBoolean    FieldKind = "boolean"    // True/false values
	KindDate       FieldKind = "date"       // Calendar date, compared by instant
	KindDateTime   FieldKind = "datetime"   // Point in time, compared by instant
	KindNumeric    FieldKind = "numeric"    // Numeric data of any Go width
	KindIdentifier FieldKind = "identifier" // Opaque identity value, equality only
	KindText       FieldKind = "text"       // Text data
)

// Orderable reports whether values of this kind support ordering comparisons
// (less-than and friends). Identifiers and booleans are equality-only.
func (k FieldKind) Orderable() bool {
	switch k {
	case KindNumeric, KindDate, KindDateTime, KindText:
		return true
	default:
		return false
	}
}

// knownKinds is the closed set of kinds a descriptor may declare.
var knownKinds = map[FieldKind]struct{}{
	KindBoolean:    {},
	KindDate:       {},
	KindDateTime:   {},
	KindNumeric:    {},
	KindIdentifier: {},
	KindText:       {},
}

// IsKnown reports whether k is one of the supported primitive kinds.
func (k FieldKind) IsKnown() bool {
	_, ok := knownKinds[k]
	return ok
}

// FieldDescriptor identifies a field on a schema together with its declared
// primitive kind. Path holds a single segment for a direct field, or the full
// relation chain for a dotted path such as "Parent.Name", where every
// non-terminal segment names a relation whose value is another record.
type FieldDescriptor struct {
	Path []string
	Kind FieldKind
}

// Field creates a descriptor for a direct field.
func Field(name string, kind FieldKind) FieldDescriptor {
	return FieldDescriptor{Path: []string{name}, Kind: kind}
}

// FieldPath creates a descriptor from a dot-separated relation path. A path
// without dots is equivalent to Field.
func FieldPath(path string, kind FieldKind) FieldDescriptor {
	return FieldDescriptor{Path: strings.Split(path, "."), Kind: kind}
}

// Name returns the terminal field name of the descriptor.
func (fd FieldDescriptor) Name() string {
	if len(fd.Path) == 0 {
		return ""
	}
	return fd.Path[len(fd.Path)-1]
}

// IsDirect reports whether the descriptor addresses a field on the record
// itself rather than through a relation chain.
func (fd FieldDescriptor) IsDirect() bool {
	return len(fd.Path) == 1
}

// String returns the dotted form of the descriptor's path.
func (fd FieldDescriptor) String() string {
	return strings.Join(fd.Path, ".")
}

// FieldDefinition describes one field of a schema as the host stores it.
type FieldDefinition struct {
	Name string
	Kind FieldKind
}

// SchemaDefinition is the minimal metadata a host record source needs:
// the schema name (doubling as the backing table name for SQL hosts) and the
// ordered field list with declared kinds.
type SchemaDefinition struct {
	Name   string
	Fields []FieldDefinition
}

// Field returns the definition of the named field, if present.
func (s *SchemaDefinition) Field(name string) (FieldDefinition, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldDefinition{}, false
}

// Descriptor builds a direct-field descriptor from the schema's declared kind
// for the named field. The boolean result is false when the field is unknown.
func (s *SchemaDefinition) Descriptor(name string) (FieldDescriptor, bool) {
	f, ok := s.Field(name)
	if !ok {
		return FieldDescriptor{}, false
	}
	return Field(f.Name, f.Kind), true
}

// FieldNames returns the declared field names in schema order.
func (s *SchemaDefinition) FieldNames() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}
