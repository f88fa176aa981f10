package view

import (
	"fmt"
	"time"

	"github.com/asaidimu/go-recordview/core/predicate"
	"github.com/asaidimu/go-recordview/core/schema"
)

// Pluck projects the resolved value of one field across every record, in
// original order. The result always has exactly one element per record;
// null values stay in place as nil entries, never compacted away.
func (c *Collection) Pluck(fd schema.FieldDescriptor) ([]any, error) {
	out := make([]any, len(c.records))
	for i, r := range c.records {
		value, err := predicate.Resolve(r, fd)
		if err != nil {
			return nil, err
		}
		out[i] = value
	}
	return out, nil
}

// pluckKind is the single extraction path behind the typed pluck functions:
// resolve, coerce through the kind table, and collect as pointers so null
// entries survive. Go methods cannot introduce type parameters, so the typed
// variants are package-level functions.
func pluckKind[T any](c *Collection, fd schema.FieldDescriptor, kind schema.FieldKind) ([]*T, error) {
	out := make([]*T, len(c.records))
	for i, r := range c.records {
		value, err := predicate.Resolve(r, fd)
		if err != nil {
			return nil, err
		}
		if value == nil {
			continue
		}
		coerced, ok := schema.Coerce(kind, value)
		if !ok {
			return nil, fmt.Errorf("plucking %q: cannot read %T as %s: %w",
				fd.String(), value, kind, predicate.ErrUnsupportedComparison)
		}
		typed := coerced.(T)
		out[i] = &typed
	}
	return out, nil
}

// PluckBooleans extracts a boolean field. Null values appear as nil entries.
func PluckBooleans(c *Collection, fd schema.FieldDescriptor) ([]*bool, error) {
	return pluckKind[bool](c, fd, schema.KindBoolean)
}

// PluckNumbers extracts a numeric field as float64 values.
func PluckNumbers(c *Collection, fd schema.FieldDescriptor) ([]*float64, error) {
	return pluckKind[float64](c, fd, schema.KindNumeric)
}

// PluckTimes extracts a date or datetime field.
func PluckTimes(c *Collection, fd schema.FieldDescriptor) ([]*time.Time, error) {
	return pluckKind[time.Time](c, fd, schema.KindDateTime)
}

// PluckIdentifiers extracts an identifier field.
func PluckIdentifiers(c *Collection, fd schema.FieldDescriptor) ([]*string, error) {
	return pluckKind[string](c, fd, schema.KindIdentifier)
}

// PluckText extracts a text field.
func PluckText(c *Collection, fd schema.FieldDescriptor) ([]*string, error) {
	return pluckKind[string](c, fd, schema.KindText)
}
