package types

// Item is a rentable stock entry. The category reference is weak: deleting
// the category detaches the item without deleting it.
type Item struct {
	ItemID     string // UUID v7, generated on creation.
	Name       string // Human-readable name (required, non-empty).
	Amount     int    // Total stock on hand; never negative.
	Archived   bool   // Archived items stay queryable but are retired.
	CategoryID string // Owning category; empty for uncategorized items.
}

// Validate checks the item invariants.
func (i *Item) Validate() error {
	if i.Name == "" {
		return ErrInvalidName
	}
	if i.Amount < 0 {
		return ErrConstraint
	}
	return nil
}
