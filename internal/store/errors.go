package store

import "errors"

// Sentinel errors returned by store methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrDocumentNotFound is returned when a lookup, update, or delete
	// targets a document that does not exist in the collection.
	ErrDocumentNotFound = errors.New("document was not found")

	// ErrDuplicateKey is returned when an INSERT violates a uniqueness
	// constraint (e.g. the accounts email index). This is the store-level
	// backstop for the non-atomic check-then-create performed by the
	// account subsystem.
	ErrDuplicateKey = errors.New("document violates unique constraint")

	// ErrDocumentNotSaved is returned when an INSERT completes without a
	// driver error but affects zero rows.
	ErrDocumentNotSaved = errors.New("document was not saved")
)

// Low-level database operation errors. These are returned (or wrapped) by
// store methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised
	// SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRow is returned when scanning column values from a
	// result row fails.
	ErrScanningRow = errors.New("failed to scan document row")
)
