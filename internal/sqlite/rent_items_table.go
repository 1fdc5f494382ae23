package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/openrits/openrits/pkg/types"
)

var _ types.Table = (*rentItemsTable)(nil)

type rentItemsTable struct {
	backend *Backend
}

func (rt *rentItemsTable) Get(id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	rt.backend.mu.RLock()
	defer rt.backend.mu.RUnlock()
	if !rt.backend.attached {
		return nil, types.ErrStoreDetached
	}

	row := rt.backend.db.QueryRow(
		"SELECT rent_item_id, rent_id, item_id, amount FROM rent_items WHERE rent_item_id = ?",
		id,
	)
	ri, err := hydrateRentItem(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting rent item %s: %w", id, err)
	}
	return ri, nil
}

// Set creates or updates a rent-item link. The referenced rent must exist;
// the (rent, item) pair is unique, both enforced by the schema.
func (rt *rentItemsTable) Set(id string, data any) (string, error) {
	ri, ok := data.(*types.RentItem)
	if !ok {
		return "", types.ErrInvalidData
	}
	if err := ri.Validate(); err != nil {
		return "", err
	}

	rt.backend.mu.Lock()
	defer rt.backend.mu.Unlock()
	if !rt.backend.attached {
		return "", types.ErrStoreDetached
	}

	if id == "" {
		id = newUUID()
		ri.RentItemID = id
		_, err := rt.backend.db.Exec(
			"INSERT INTO rent_items (rent_item_id, rent_id, item_id, amount) VALUES (?, ?, ?, ?)",
			id, ri.RentID, nullable(ri.ItemID), ri.Amount,
		)
		if err != nil {
			return "", fmt.Errorf("inserting rent item: %w", constraintErr(err))
		}
		return id, nil
	}

	res, err := rt.backend.db.Exec(
		"UPDATE rent_items SET rent_id = ?, item_id = ?, amount = ? WHERE rent_item_id = ?",
		ri.RentID, nullable(ri.ItemID), ri.Amount, id,
	)
	if err != nil {
		return "", fmt.Errorf("updating rent item: %w", constraintErr(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return "", fmt.Errorf("updating rent item: %w", err)
	}
	if n == 0 {
		return "", types.ErrNotFound
	}
	ri.RentItemID = id
	return id, nil
}

func (rt *rentItemsTable) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	rt.backend.mu.Lock()
	defer rt.backend.mu.Unlock()
	if !rt.backend.attached {
		return types.ErrStoreDetached
	}

	res, err := rt.backend.db.Exec("DELETE FROM rent_items WHERE rent_item_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting rent item: %w", constraintErr(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting rent item: %w", err)
	}
	if n == 0 {
		return types.ErrNotFound
	}
	return nil
}

// Fetch queries rent-item links. Supported filters: rent_id, item_id.
func (rt *rentItemsTable) Fetch(filter map[string]any) ([]any, error) {
	rt.backend.mu.RLock()
	defer rt.backend.mu.RUnlock()
	if !rt.backend.attached {
		return nil, types.ErrStoreDetached
	}

	query := "SELECT rent_item_id, rent_id, item_id, amount FROM rent_items"
	var conditions []string
	var args []any

	if filter != nil {
		for _, key := range []string{"rent_id", "item_id"} {
			if v, ok := filter[key]; ok {
				s, ok := v.(string)
				if !ok {
					return nil, types.ErrInvalidFilter
				}
				conditions = append(conditions, key+" = ?")
				args = append(args, s)
			}
		}
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY rent_item_id ASC"

	rows, err := rt.backend.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching rent items: %w", err)
	}
	defer rows.Close()

	results := []any{}
	for rows.Next() {
		ri, err := hydrateRentItem(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("hydrating rent item: %w", err)
		}
		results = append(results, ri)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rent items: %w", err)
	}
	return results, nil
}

func hydrateRentItem(scan func(...any) error) (*types.RentItem, error) {
	var ri types.RentItem
	var itemID sql.NullString
	if err := scan(&ri.RentItemID, &ri.RentID, &itemID, &ri.Amount); err != nil {
		return nil, err
	}
	ri.ItemID = itemID.String
	return &ri, nil
}
