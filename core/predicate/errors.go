package predicate

import "errors"

// Sentinel errors raised by predicate construction and evaluation.
var (
	// ErrUnsupportedComparison is returned when an ordering operator is
	// applied to a non-orderable field kind, when an in/nin value set
	// contains an element outside the supported primitive types, or when a
	// value's dynamic type cannot be coerced to the declared kind. These are
	// usage errors, never silently evaluated as false.
	ErrUnsupportedComparison = errors.New("predicate: unsupported comparison")

	// ErrInvalidPath is returned when a non-terminal path segment resolves
	// to a value that is not a record and therefore cannot be traversed.
	ErrInvalidPath = errors.New("predicate: path segment is not a relation")
)
