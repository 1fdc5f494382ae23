package types

import "errors"

// Table provides uniform CRUD operations for a single entity type.
// Get and Fetch return any; callers type-assert to the concrete entity struct.
type Table interface {
	// Get retrieves the entity with the given ID.
	// Returns ErrNotFound if no entity exists with that ID.
	Get(id string) (any, error)

	// Set creates or updates an entity. When id is empty a new UUID v7 is
	// generated. Returns the actual ID used (generated or provided).
	Set(id string, data any) (string, error)

	// Delete removes the entity with the given ID.
	// Returns ErrNotFound if no entity exists with that ID.
	Delete(id string) error

	// Fetch returns all entities matching the filter. An empty filter
	// returns every entity in the table.
	Fetch(filter map[string]any) ([]any, error)
}

// Table operation errors.
var (
	ErrNotFound      = errors.New("entity not found")
	ErrInvalidID     = errors.New("invalid entity ID")
	ErrInvalidData   = errors.New("invalid entity data")
	ErrInvalidFilter = errors.New("invalid filter value type")
)

// Domain errors.
var (
	// ErrCycle is returned when a reparent target is the category itself or
	// one of its own descendants. Never retried.
	ErrCycle = errors.New("reparent would create a cycle")

	// ErrConstraint is returned when a data invariant (amount ranges, date
	// ordering, uniqueness) is violated at the store boundary.
	ErrConstraint = errors.New("constraint violation")

	// ErrUnsupportedType is returned when a property definition names a value
	// type outside the closed enumeration. This is a schema error, not user
	// input.
	ErrUnsupportedType = errors.New("unsupported value type")

	// ErrTypeMismatch is returned when a Go value does not match the scalar
	// kind declared by a property definition.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrInvalidLineage is returned for a malformed lineage encoding or an ID
	// that cannot appear inside one.
	ErrInvalidLineage = errors.New("invalid lineage")

	// ErrInvalidName is returned when a required name field is empty.
	ErrInvalidName = errors.New("invalid name")
)
