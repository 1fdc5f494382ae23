package types

import "time"

// Rent is a time-bounded reservation made by a customer. Start and End are
// the reserved interval (inclusive on both ends); Issued and Returned track
// the physical hand-over when it happens.
type Rent struct {
	RentID     string
	CustomerID string // Weak reference; surviving customer deletion.
	Created    time.Time
	Start      time.Time
	End        time.Time
	Issued     *time.Time
	Returned   *time.Time
}

// Validate checks the rent interval invariants: Start <= End, Returned
// implies Issued, and Issued <= Returned when both are set. Violations
// surface as ErrConstraint.
func (r *Rent) Validate() error {
	if r.Start.After(r.End) {
		return ErrConstraint
	}
	if r.Returned != nil && r.Issued == nil {
		return ErrConstraint
	}
	if r.Issued != nil && r.Returned != nil && r.Issued.After(*r.Returned) {
		return ErrConstraint
	}
	return nil
}

// Overlaps reports whether the rent interval intersects [start, end].
// Intervals are closed: touching endpoints count as overlap.
func (r *Rent) Overlaps(start, end time.Time) bool {
	return !r.Start.After(end) && !r.End.Before(start)
}

// RentItem links a rent to an item with a reserved quantity. Rows are owned
// by their rent (cascade-deleted with it) but reference items weakly.
type RentItem struct {
	RentItemID string
	RentID     string
	ItemID     string // Nulled when the item is deleted.
	Amount     int    // Reserved quantity; always positive.
}

// Validate checks the rent-item invariants.
func (ri *RentItem) Validate() error {
	if ri.RentID == "" {
		return ErrInvalidData
	}
	if ri.Amount <= 0 {
		return ErrConstraint
	}
	return nil
}
