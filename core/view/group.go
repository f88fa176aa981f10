package view

import (
	"fmt"
	"time"

	"github.com/asaidimu/go-recordview/core/predicate"
	"github.com/asaidimu/go-recordview/core/schema"
)

// Group is one bucket of a Grouping: the first-seen raw key value and the
// records sharing it, in their original relative order.
type Group struct {
	Key     any
	Records []*schema.Record
}

// Grouping is the result of Collection.GroupBy: records partitioned by the
// resolved value of one field. Insertion order of first-seen keys is
// preserved, and a null field value is a valid key like any other.
type Grouping struct {
	kind    schema.FieldKind
	order   []any                    // normalized keys in first-seen order
	display map[any]any              // normalized key -> first-seen raw value
	groups  map[any][]*schema.Record // normalized key -> records
}

// GroupBy partitions the view's records by the resolved value of the given
// field. Key equality follows the field kind's coercion rules, so numeric
// keys of different widths and temporal keys denoting the same instant land
// in one bucket.
func (c *Collection) GroupBy(fd schema.FieldDescriptor) (*Grouping, error) {
	g := &Grouping{
		kind:    fd.Kind,
		display: make(map[any]any),
		groups:  make(map[any][]*schema.Record),
	}
	for _, r := range c.records {
		value, err := predicate.Resolve(r, fd)
		if err != nil {
			return nil, err
		}
		key, err := normalizeGroupKey(fd.Kind, value)
		if err != nil {
			return nil, fmt.Errorf("grouping by %q: %w", fd.String(), err)
		}
		if _, seen := g.groups[key]; !seen {
			g.order = append(g.order, key)
			g.display[key] = value
		}
		g.groups[key] = append(g.groups[key], r)
	}
	c.logger.Debug("grouped view")
	return g, nil
}

// Len returns the number of distinct keys.
func (g *Grouping) Len() int {
	return len(g.order)
}

// Keys returns the raw key values in first-seen order.
func (g *Grouping) Keys() []any {
	keys := make([]any, len(g.order))
	for i, norm := range g.order {
		keys[i] = g.display[norm]
	}
	return keys
}

// Group returns the records for a key and whether the key is present. The
// lookup key is normalized the same way group keys were, so any value equal
// under the field kind's rules finds the bucket.
func (g *Grouping) Group(key any) ([]*schema.Record, bool) {
	norm, err := normalizeGroupKey(g.kind, key)
	if err != nil {
		return nil, false
	}
	records, ok := g.groups[norm]
	if !ok {
		return nil, false
	}
	out := make([]*schema.Record, len(records))
	copy(out, records)
	return out, true
}

// Groups returns every bucket in first-seen key order. The union of the
// buckets is exactly the grouped view's record multiset.
func (g *Grouping) Groups() []Group {
	out := make([]Group, len(g.order))
	for i, norm := range g.order {
		records := make([]*schema.Record, len(g.groups[norm]))
		copy(records, g.groups[norm])
		out[i] = Group{Key: g.display[norm], Records: records}
	}
	return out
}

// normalizeGroupKey maps a raw value to a comparable canonical key. Temporal
// values normalize to the instant so two representations of one moment share
// a bucket.
func normalizeGroupKey(kind schema.FieldKind, v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	c, ok := schema.Coerce(kind, v)
	if !ok {
		return nil, fmt.Errorf("cannot group %T as %s: %w", v, kind, predicate.ErrUnsupportedComparison)
	}
	if t, isTime := c.(time.Time); isTime {
		return t.UnixNano(), nil
	}
	return c, nil
}
