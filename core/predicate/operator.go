// Package predicate implements the matching engine: field-path resolution
// against records, typed value comparison, and the two predicate variants
// (field-condition conjunctions and whole-record prototype matches) unified
// behind the Predicate capability.
package predicate

// ComparisonOperator defines the set of operators a condition can use.
type ComparisonOperator string

const (
	OperatorEq     ComparisonOperator = "eq"
	OperatorNeq    ComparisonOperator = "neq"
	OperatorLt     ComparisonOperator = "lt"
	OperatorLte    ComparisonOperator = "lte"
	OperatorGt     ComparisonOperator = "gt"
	OperatorGte    ComparisonOperator = "gte"
	OperatorIn     ComparisonOperator = "in"
	OperatorNin    ComparisonOperator = "nin"
	OperatorExists ComparisonOperator = "exists"
)

// IsOrdering reports whether the operator compares by order and therefore
// requires an orderable field kind.
func (o ComparisonOperator) IsOrdering() bool {
	switch o {
	case OperatorLt, OperatorLte, OperatorGt, OperatorGte:
		return true
	default:
		return false
	}
}

// IsMembership reports whether the operator tests membership in a value set.
func (o ComparisonOperator) IsMembership() bool {
	return o == OperatorIn || o == OperatorNin
}

// supportedOperators is the closed set of operators the comparator evaluates.
var supportedOperators = map[ComparisonOperator]struct{}{
	OperatorEq:     {},
	OperatorNeq:    {},
	OperatorLt:     {},
	OperatorLte:    {},
	OperatorGt:     {},
	OperatorGte:    {},
	OperatorIn:     {},
	OperatorNin:    {},
	OperatorExists: {},
}

// IsSupported reports whether the operator is one of the built-in set.
func (o ComparisonOperator) IsSupported() bool {
	_, ok := supportedOperators[o]
	return ok
}
