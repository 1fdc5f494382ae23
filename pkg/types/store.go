package types

import "errors"

// Store defines the interface for backend-agnostic record storage.
// Callers attach to a backend, access tables by name, and detach when done.
type Store interface {
	// GetTable returns the Table for the given name.
	// Returns ErrTableNotFound if the name is not a standard table.
	GetTable(name string) (Table, error)

	// Attach connects the Store to the backend described by config.
	// Creates the DataDir if it does not exist.
	// Returns ErrAlreadyAttached if called while already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent: multiple calls succeed.
	// After Detach, operations on tables return ErrStoreDetached.
	Detach() error
}

// Store lifecycle errors.
var (
	ErrStoreDetached   = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
	ErrTableNotFound   = errors.New("table not found")
)

// LineageRewrite is a single descendant lineage update applied during a
// reparent.
type LineageRewrite struct {
	CategoryID string
	Lineage    Lineage
}

// Reparenter is implemented by category tables that can atomically apply a
// reparent: the category's own parent and lineage change plus every
// descendant lineage rewrite, all in one transaction. A store that cannot
// guarantee this atomicity must not implement the interface.
type Reparenter interface {
	Reparent(category *Category, rewrites []LineageRewrite) error
}
