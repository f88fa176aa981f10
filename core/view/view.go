// Package view implements the immutable collection view over records: every
// operation reads its own backing sequence and builds a new one, so a view
// can never be corrupted through an earlier view or through the slice it was
// constructed from. Records themselves are shared by pointer, not copied.
package view

import (
	"fmt"

	"github.com/asaidimu/go-recordview/core/predicate"
	"github.com/asaidimu/go-recordview/core/schema"
	"go.uber.org/zap"
)

// TransformFunc produces a replacement record for an input record. The
// replacement must belong to the view's declared schema.
type TransformFunc func(r *schema.Record) (*schema.Record, error)

// Collection is an immutable-in-effect view over a sequence of records.
// Transformations return new Collections; the receiver is never mutated.
type Collection struct {
	records []*schema.Record
	schema  string // empty when records span schemas or the view is empty
	logger  *zap.Logger
}

// Of creates a view over the given records. The input is copied, so later
// changes to the caller's slice do not reach the view. The view's schema is
// inferred when every record shares one.
func Of(records ...*schema.Record) *Collection {
	return OfSlice(records)
}

// OfSlice creates a view from a record slice, copying it.
func OfSlice(records []*schema.Record) *Collection {
	owned := make([]*schema.Record, len(records))
	copy(owned, records)
	return &Collection{
		records: owned,
		schema:  commonSchema(owned),
		logger:  zap.NewNop(),
	}
}

func commonSchema(records []*schema.Record) string {
	if len(records) == 0 {
		return ""
	}
	name := records[0].Schema()
	for _, r := range records[1:] {
		if r.Schema() != name {
			return ""
		}
	}
	return name
}

// WithLogger returns a view over the same records that logs operation
// diagnostics to the given logger.
func (c *Collection) WithLogger(logger *zap.Logger) *Collection {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Collection{records: c.records, schema: c.schema, logger: logger}
}

// derive builds a successor view carrying the receiver's schema and logger.
func (c *Collection) derive(records []*schema.Record) *Collection {
	return &Collection{records: records, schema: commonSchema(records), logger: c.logger}
}

// Count returns the number of records in the view.
func (c *Collection) Count() int {
	return len(c.records)
}

// IsEmpty reports whether the view holds no records.
func (c *Collection) IsEmpty() bool {
	return len(c.records) == 0
}

// Schema returns the view's declared schema name, or "" when unknown.
func (c *Collection) Schema() string {
	return c.schema
}

// Filter returns a view of the records the predicate matches, preserving
// relative order.
func (c *Collection) Filter(p predicate.Predicate) (*Collection, error) {
	kept := make([]*schema.Record, 0, len(c.records))
	for _, r := range c.records {
		ok, err := p.Matches(r)
		if err != nil {
			return nil, err
		}
		if ok {
			kept = append(kept, r)
		}
	}
	c.logger.Debug("filtered view",
		zap.Int("in", len(c.records)),
		zap.Int("out", len(kept)))
	return c.derive(kept), nil
}

// Remove returns a view of the records the predicate rejects. Together with
// Filter it partitions the view with no overlap and no loss.
func (c *Collection) Remove(p predicate.Predicate) (*Collection, error) {
	return c.Filter(predicate.Not(p))
}

// MapAll applies the transform to every record, producing a view of the same
// size. A transform result of a different schema than the view declares is a
// schema mismatch error.
func (c *Collection) MapAll(fn TransformFunc) (*Collection, error) {
	out := make([]*schema.Record, len(c.records))
	for i, r := range c.records {
		mapped, err := c.applyTransform(fn, r)
		if err != nil {
			return nil, err
		}
		out[i] = mapped
	}
	c.logger.Debug("mapped view", zap.Int("count", len(out)))
	return c.derive(out), nil
}

// MapSome applies the transform only to records the predicate matches;
// everything else passes through unchanged. Order and size are preserved.
func (c *Collection) MapSome(p predicate.Predicate, fn TransformFunc) (*Collection, error) {
	out := make([]*schema.Record, len(c.records))
	mapped := 0
	for i, r := range c.records {
		ok, err := p.Matches(r)
		if err != nil {
			return nil, err
		}
		if !ok {
			out[i] = r
			continue
		}
		transformed, err := c.applyTransform(fn, r)
		if err != nil {
			return nil, err
		}
		out[i] = transformed
		mapped++
	}
	c.logger.Debug("mapped view selectively",
		zap.Int("count", len(out)),
		zap.Int("mapped", mapped))
	return c.derive(out), nil
}

func (c *Collection) applyTransform(fn TransformFunc, r *schema.Record) (*schema.Record, error) {
	mapped, err := fn(r)
	if err != nil {
		return nil, fmt.Errorf("transform failed: %w", err)
	}
	if mapped == nil {
		return nil, fmt.Errorf("transform returned no record: %w", ErrSchemaMismatch)
	}
	if c.schema != "" && mapped.Schema() != c.schema {
		return nil, fmt.Errorf("transform returned schema %q, view declares %q: %w",
			mapped.Schema(), c.schema, ErrSchemaMismatch)
	}
	return mapped, nil
}

// Pick produces a view of fresh records containing only the listed fields.
// Every other field is explicitly unset on the copies, which guards a later
// persist of the picked records against overwriting fields the caller never
// meant to touch. The fields must be direct and loaded on every record.
func (c *Collection) Pick(fields ...schema.FieldDescriptor) (*Collection, error) {
	for _, fd := range fields {
		if !fd.IsDirect() {
			return nil, fmt.Errorf("pick of %q: %w", fd.String(), ErrNotDirectField)
		}
	}
	out := make([]*schema.Record, len(c.records))
	for i, r := range c.records {
		picked := schema.NewRecord(r.Schema())
		for _, fd := range fields {
			value, err := r.Value(fd.Name())
			if err != nil {
				return nil, err
			}
			picked.Set(fd.Name(), value)
		}
		out[i] = picked
	}
	c.logger.Debug("picked view",
		zap.Int("count", len(out)),
		zap.Int("fields", len(fields)))
	return c.derive(out), nil
}

// AsList materializes the view as an ordered slice. The result is a copy;
// mutating it does not affect the view.
func (c *Collection) AsList() []*schema.Record {
	out := make([]*schema.Record, len(c.records))
	copy(out, c.records)
	return out
}

// AsSet materializes the view with duplicate records removed, keeping the
// first occurrence. Records deduplicate by identity: the same *Record
// appearing twice collapses, two equal-valued records do not.
func (c *Collection) AsSet() []*schema.Record {
	seen := make(map[*schema.Record]struct{}, len(c.records))
	out := make([]*schema.Record, 0, len(c.records))
	for _, r := range c.records {
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}

// AsListOf materializes the view as records of the requested schema, failing
// when any record belongs to a different one.
func (c *Collection) AsListOf(schemaName string) ([]*schema.Record, error) {
	for _, r := range c.records {
		if r.Schema() != schemaName {
			return nil, fmt.Errorf("record of schema %q in a %q materialization: %w",
				r.Schema(), schemaName, ErrSchemaMismatch)
		}
	}
	return c.AsList(), nil
}
