package view

import "errors"

// Sentinel errors returned by Collection operations.
var (
	// ErrSchemaMismatch is returned when a transform produces a record of a
	// different schema than the view declares, or when a schema-typed
	// materialization is requested for records of another schema.
	ErrSchemaMismatch = errors.New("view: record schema mismatch")

	// ErrNotDirectField is returned when an operation that reshapes records,
	// such as Pick, is given a relation path instead of a direct field.
	ErrNotDirectField = errors.New("view: operation requires a direct field")
)
