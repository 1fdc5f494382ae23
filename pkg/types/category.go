package types

// Category is a node in the item category hierarchy. The tree owns the
// parent edge: deleting a category detaches its items and re-roots its
// children rather than deleting them.
type Category struct {
	CategoryID string  // UUID v7, generated on creation, never reused.
	Name       string  // Human-readable name (required, non-empty).
	ParentID   string  // Parent category ID; empty for roots.
	Lineage    Lineage // Ancestor IDs root-first; maintained by the store.
}

// IsRoot reports whether the category has no parent.
func (c *Category) IsRoot() bool {
	return c.ParentID == ""
}

// Validate checks structural invariants: a non-empty name, an ID usable
// inside a lineage encoding, no self-ancestry, and a lineage whose last
// element matches the parent reference.
func (c *Category) Validate() error {
	if c.Name == "" {
		return ErrInvalidName
	}
	if c.CategoryID != "" {
		if err := ValidateLineageID(c.CategoryID); err != nil {
			return err
		}
		if c.Lineage.Contains(c.CategoryID) {
			return ErrInvalidLineage
		}
	}
	if c.ParentID == "" {
		if len(c.Lineage) != 0 {
			return ErrInvalidLineage
		}
		return nil
	}
	if len(c.Lineage) == 0 || c.Lineage[len(c.Lineage)-1] != c.ParentID {
		return ErrInvalidLineage
	}
	return nil
}
