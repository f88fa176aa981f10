package predicate

import (
	"fmt"
	"strings"
	"time"

	"github.com/asaidimu/go-recordview/core/schema"
)

// Evaluate applies a comparison operator to a resolved field value and a
// target, under the field's declared kind. Null handling is explicit: null
// equals null, a null operand never satisfies an ordering comparison, and
// exists is simply a non-null test. Kind mismatches and unsupported set
// element types fail with ErrUnsupportedComparison rather than evaluating to
// false, keeping the coercion rules auditable.
func Evaluate(value any, op ComparisonOperator, target any, kind schema.FieldKind) (bool, error) {
	switch {
	case op == OperatorExists:
		return value != nil, nil
	case op == OperatorEq || op == OperatorNeq:
		eq, err := equal(kind, value, target)
		if err != nil {
			return false, err
		}
		if op == OperatorNeq {
			return !eq, nil
		}
		return eq, nil
	case op.IsOrdering():
		return evaluateOrdering(value, op, target, kind)
	case op.IsMembership():
		return evaluateMembership(value, op, target, kind)
	default:
		return false, fmt.Errorf("operator %q: %w", op, ErrUnsupportedComparison)
	}
}

// equal compares two raw values by the declared kind's value equality.
func equal(kind schema.FieldKind, a, b any) (bool, error) {
	if a == nil || b == nil {
		return a == nil && b == nil, nil
	}
	ca, ok := schema.Coerce(kind, a)
	if !ok {
		return false, fmt.Errorf("cannot compare %T as %s: %w", a, kind, ErrUnsupportedComparison)
	}
	cb, ok := schema.Coerce(kind, b)
	if !ok {
		return false, fmt.Errorf("cannot compare %T as %s: %w", b, kind, ErrUnsupportedComparison)
	}
	if kind == schema.KindDate || kind == schema.KindDateTime {
		return ca.(time.Time).Equal(cb.(time.Time)), nil
	}
	return ca == cb, nil
}

func evaluateOrdering(value any, op ComparisonOperator, target any, kind schema.FieldKind) (bool, error) {
	if !kind.Orderable() {
		return false, fmt.Errorf("operator %q on kind %s: %w", op, kind, ErrUnsupportedComparison)
	}
	if value == nil || target == nil {
		// A missing value has no position in the ordering.
		return false, nil
	}
	cv, ok := schema.Coerce(kind, value)
	if !ok {
		return false, fmt.Errorf("cannot order %T as %s: %w", value, kind, ErrUnsupportedComparison)
	}
	ct, ok := schema.Coerce(kind, target)
	if !ok {
		return false, fmt.Errorf("cannot order %T as %s: %w", target, kind, ErrUnsupportedComparison)
	}

	var cmp int
	switch kind {
	case schema.KindNumeric:
		a, b := cv.(float64), ct.(float64)
		switch {
		case a < b:
			cmp = -1
		case a > b:
			cmp = 1
		}
	case schema.KindDate, schema.KindDateTime:
		a, b := cv.(time.Time), ct.(time.Time)
		switch {
		case a.Before(b):
			cmp = -1
		case a.After(b):
			cmp = 1
		}
	case schema.KindText:
		cmp = strings.Compare(cv.(string), ct.(string))
	}

	switch op {
	case OperatorLt:
		return cmp < 0, nil
	case OperatorLte:
		return cmp <= 0, nil
	case OperatorGt:
		return cmp > 0, nil
	default:
		return cmp >= 0, nil
	}
}

// evaluateMembership tests set membership. The target must be a set of
// supported primitive values; every element is validated even when the field
// value is null, so an unsupported element type always surfaces as an error.
func evaluateMembership(value any, op ComparisonOperator, target any, kind schema.FieldKind) (bool, error) {
	elements, err := setElements(target)
	if err != nil {
		return false, err
	}

	found := false
	for _, elem := range elements {
		if _, ok := schema.InferKind(elem); !ok {
			return false, fmt.Errorf("set element of type %T: %w", elem, ErrUnsupportedComparison)
		}
		if value == nil {
			continue
		}
		eq, err := equal(kind, value, elem)
		if err != nil {
			return false, err
		}
		if eq {
			found = true
		}
	}

	if op == OperatorNin {
		return !found, nil
	}
	return found, nil
}

// setElements normalizes the membership target into a value slice.
func setElements(target any) ([]any, error) {
	switch set := target.(type) {
	case []any:
		return set, nil
	case []string:
		out := make([]any, len(set))
		for i, v := range set {
			out[i] = v
		}
		return out, nil
	case []int:
		out := make([]any, len(set))
		for i, v := range set {
			out[i] = v
		}
		return out, nil
	case []int64:
		out := make([]any, len(set))
		for i, v := range set {
			out[i] = v
		}
		return out, nil
	case []float64:
		out := make([]any, len(set))
		for i, v := range set {
			out[i] = v
		}
		return out, nil
	case []bool:
		out := make([]any, len(set))
		for i, v := range set {
			out[i] = v
		}
		return out, nil
	case []time.Time:
		out := make([]any, len(set))
		for i, v := range set {
			out[i] = v
		}
		return out, nil
	default:
		return nil, fmt.Errorf("membership target of type %T is not a value set: %w", target, ErrUnsupportedComparison)
	}
}
