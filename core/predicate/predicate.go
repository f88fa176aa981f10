package predicate

import (
	"fmt"

	"github.com/asaidimu/go-recordview/core/schema"
)

// Predicate is the capability to evaluate true/false against a record.
// Implementations are FieldsMatch, RecordMatch and the Not wrapper.
type Predicate interface {
	Matches(r *schema.Record) (bool, error)
}

// Condition is one (field, operator, target) triple of a FieldsMatch.
type Condition struct {
	Field    schema.FieldDescriptor
	Operator ComparisonOperator
	Value    any
}

// FieldsMatch is an ordered conjunction of conditions: a record matches when
// every condition holds. A FieldsMatch is immutable once built; extending it
// through Also produces a fresh pending condition carrying a copy of the
// prior list, never touching the original.
type FieldsMatch struct {
	conditions []Condition
}

// Matches evaluates the conjunction against a record. Conditions are
// evaluated in declaration order and the walk stops at the first false
// result, so later conditions may never resolve their fields.
func (m *FieldsMatch) Matches(r *schema.Record) (bool, error) {
	for _, cond := range m.conditions {
		value, err := Resolve(r, cond.Field)
		if err != nil {
			return false, err
		}
		ok, err := Evaluate(value, cond.Operator, cond.Value, cond.Field.Kind)
		if err != nil {
			return false, fmt.Errorf("condition on %q: %w", cond.Field.String(), err)
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// Conditions returns a copy of the condition list in declaration order.
func (m *FieldsMatch) Conditions() []Condition {
	out := make([]Condition, len(m.conditions))
	copy(out, m.conditions)
	return out
}

// Also starts a new condition on another field. The returned pending
// condition references the prior conditions plus the new field and awaits
// exactly one comparator.
func (m *FieldsMatch) Also(fd schema.FieldDescriptor) *PendingCondition {
	prior := make([]Condition, len(m.conditions))
	copy(prior, m.conditions)
	return &PendingCondition{prior: prior, field: fd}
}

// Field is an alias of Also, mirroring the entry-point factory.
func (m *FieldsMatch) Field(fd schema.FieldDescriptor) *PendingCondition {
	return m.Also(fd)
}

// Where begins a FieldsMatch on the given field. The result is incomplete
// until one of the comparator methods is called.
func Where(fd schema.FieldDescriptor) *PendingCondition {
	return &PendingCondition{field: fd}
}

// PendingCondition is a FieldsMatch under construction: prior conditions plus
// one field awaiting its comparator. Each comparator method completes the
// condition and returns the finished, immutable FieldsMatch; a half-built
// condition can never be evaluated because PendingCondition is not a
// Predicate.
type PendingCondition struct {
	prior []Condition
	field schema.FieldDescriptor
}

// complete closes the pending condition with an operator and target value.
func (p *PendingCondition) complete(op ComparisonOperator, value any) *FieldsMatch {
	conditions := make([]Condition, len(p.prior), len(p.prior)+1)
	copy(conditions, p.prior)
	conditions = append(conditions, Condition{Field: p.field, Operator: op, Value: value})
	return &FieldsMatch{conditions: conditions}
}

// Eq completes the condition with an equality comparison.
func (p *PendingCondition) Eq(value any) *FieldsMatch {
	return p.complete(OperatorEq, value)
}

// Neq completes the condition with a not-equal comparison.
func (p *PendingCondition) Neq(value any) *FieldsMatch {
	return p.complete(OperatorNeq, value)
}

// Lt completes the condition with a less-than comparison.
func (p *PendingCondition) Lt(value any) *FieldsMatch {
	return p.complete(OperatorLt, value)
}

// Lte completes the condition with a less-or-equal comparison.
func (p *PendingCondition) Lte(value any) *FieldsMatch {
	return p.complete(OperatorLte, value)
}

// Gt completes the condition with a greater-than comparison.
func (p *PendingCondition) Gt(value any) *FieldsMatch {
	return p.complete(OperatorGt, value)
}

// Gte completes the condition with a greater-or-equal comparison.
func (p *PendingCondition) Gte(value any) *FieldsMatch {
	return p.complete(OperatorGte, value)
}

// In completes the condition with a set membership test.
func (p *PendingCondition) In(values ...any) *FieldsMatch {
	return p.complete(OperatorIn, values)
}

// Nin completes the condition with a negated set membership test.
func (p *PendingCondition) Nin(values ...any) *FieldsMatch {
	return p.complete(OperatorNin, values)
}

// Exists completes the condition with a non-null test.
func (p *PendingCondition) Exists() *FieldsMatch {
	return p.complete(OperatorExists, nil)
}

// RecordMatch matches records against a prototype: a target matches when its
// value equals the prototype's for every field *populated* on the prototype.
// Fields unset on the prototype impose no constraint. Equality is by value
// per the kind inferred from the compared values, never by reference.
type RecordMatch struct {
	prototype *schema.Record
}

// MatchRecord creates a prototype-match predicate.
func MatchRecord(prototype *schema.Record) *RecordMatch {
	return &RecordMatch{prototype: prototype}
}

// Matches compares every populated prototype field against the target.
// A prototype field that is unloaded on the target is an error, not a miss.
func (m *RecordMatch) Matches(r *schema.Record) (bool, error) {
	for _, field := range m.prototype.LoadedFields() {
		want, _ := m.prototype.Get(field)
		got, err := r.Value(field)
		if err != nil {
			return false, err
		}
		eq, err := valuesEqual(got, want)
		if err != nil {
			return false, fmt.Errorf("prototype field %q: %w", field, err)
		}
		if !eq {
			return false, nil
		}
	}
	return true, nil
}

// valuesEqual compares two raw values by inferred kind. Prototypes carry
// values rather than declared kinds, so the kind comes from the data itself.
func valuesEqual(a, b any) (bool, error) {
	if a == nil || b == nil {
		return a == nil && b == nil, nil
	}
	kind, ok := schema.InferKind(b)
	if !ok {
		kind, ok = schema.InferKind(a)
	}
	if !ok {
		return false, fmt.Errorf("values of type %T: %w", b, ErrUnsupportedComparison)
	}
	return equal(kind, a, b)
}

// notPredicate negates an inner predicate. Evaluation errors propagate
// unchanged: a field that cannot be resolved is still an error under Not.
type notPredicate struct {
	inner Predicate
}

// Not returns a predicate matching exactly the records its argument rejects.
func Not(p Predicate) Predicate {
	return &notPredicate{inner: p}
}

func (n *notPredicate) Matches(r *schema.Record) (bool, error) {
	ok, err := n.inner.Matches(r)
	if err != nil {
		return false, err
	}
	return !ok, nil
}
