package catalog

import (
	"fmt"
	"sort"
	"time"

	"github.com/openrits/openrits/pkg/types"
)

// stockEvent marks a change in reserved quantity at one instant. A
// reservation of quantity q over [start, end] contributes {start, +q} and
// {end, -q}.
type stockEvent struct {
	at    time.Time
	delta int
}

// AvailableAmount returns the minimum number of free units of item at any
// instant within [windowStart, windowEnd], given every reservation
// overlapping the window. Intervals are closed on both ends.
//
// The result is deliberately not clamped at zero: an over-booked item
// yields a negative count so callers can see the size of the deficit.
// Availability is advisory; a booking must re-check inside the same
// transaction that commits its rent-item row.
func (c *Catalog) AvailableAmount(item *types.Item, windowStart, windowEnd time.Time) (int, error) {
	if item.Amount <= 0 {
		return 0, nil
	}

	reserved, err := c.reservedQuantities(item.ItemID, windowStart, windowEnd)
	if err != nil {
		return 0, err
	}
	if len(reserved) == 0 {
		return item.Amount, nil
	}

	events := make([]stockEvent, 0, 2*len(reserved))
	for _, r := range reserved {
		events = append(events,
			stockEvent{at: r.rent.Start, delta: +r.quantity},
			stockEvent{at: r.rent.End, delta: -r.quantity},
		)
	}

	// Ascending by time; at equal instants reservation starts apply before
	// ends, so a zero-length reservation still dips the minimum at its one
	// instant and touching reservations overlap at the shared boundary.
	sort.Slice(events, func(i, j int) bool {
		if events[i].at.Equal(events[j].at) {
			return events[i].delta > events[j].delta
		}
		return events[i].at.Before(events[j].at)
	})

	remaining := item.Amount
	minSeen := item.Amount
	for _, ev := range events {
		remaining -= ev.delta
		if remaining < minSeen {
			minSeen = remaining
		}
	}
	return minSeen, nil
}

// reservation pairs a rent with the total quantity of one item it holds.
type reservation struct {
	rent     *types.Rent
	quantity int
}

// reservedQuantities returns, for every rent overlapping the window, the
// summed quantity of the given item across that rent's item rows. Rents
// holding none of the item are skipped. Normally a rent carries one row
// per item, but the sum tolerates more.
func (c *Catalog) reservedQuantities(itemID string, windowStart, windowEnd time.Time) ([]reservation, error) {
	rentsTbl, err := c.store.GetTable(types.TableRents)
	if err != nil {
		return nil, err
	}
	entities, err := rentsTbl.Fetch(map[string]any{
		"starts_on_or_before": windowEnd,
		"ends_on_or_after":    windowStart,
	})
	if err != nil {
		return nil, fmt.Errorf("fetching overlapping rents: %w", err)
	}

	itemsTbl, err := c.store.GetTable(types.TableRentItems)
	if err != nil {
		return nil, err
	}

	var reserved []reservation
	for _, e := range entities {
		rent, ok := e.(*types.Rent)
		if !ok {
			return nil, types.ErrInvalidData
		}
		rows, err := itemsTbl.Fetch(map[string]any{
			"rent_id": rent.RentID,
			"item_id": itemID,
		})
		if err != nil {
			return nil, fmt.Errorf("fetching items of rent %s: %w", rent.RentID, err)
		}
		quantity := 0
		for _, re := range rows {
			ri, ok := re.(*types.RentItem)
			if !ok {
				return nil, types.ErrInvalidData
			}
			quantity += ri.Amount
		}
		if quantity > 0 {
			reserved = append(reserved, reservation{rent: rent, quantity: quantity})
		}
	}
	return reserved, nil
}
