package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/openrits/openrits/pkg/types"
)

var _ types.Table = (*itemsTable)(nil)

type itemsTable struct {
	backend *Backend
}

// Get retrieves an item by ID.
func (it *itemsTable) Get(id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	it.backend.mu.RLock()
	defer it.backend.mu.RUnlock()
	if !it.backend.attached {
		return nil, types.ErrStoreDetached
	}

	row := it.backend.db.QueryRow(
		"SELECT item_id, name, amount, archived, category_id FROM items WHERE item_id = ?",
		id,
	)
	item, err := hydrateItem(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting item %s: %w", id, err)
	}
	return item, nil
}

// Set creates or updates an item.
func (it *itemsTable) Set(id string, data any) (string, error) {
	item, ok := data.(*types.Item)
	if !ok {
		return "", types.ErrInvalidData
	}
	if err := item.Validate(); err != nil {
		return "", err
	}

	it.backend.mu.Lock()
	defer it.backend.mu.Unlock()
	if !it.backend.attached {
		return "", types.ErrStoreDetached
	}

	if id == "" {
		id = newUUID()
		item.ItemID = id
		_, err := it.backend.db.Exec(
			"INSERT INTO items (item_id, name, amount, archived, category_id) VALUES (?, ?, ?, ?, ?)",
			id, item.Name, item.Amount, boolToInt(item.Archived), nullable(item.CategoryID),
		)
		if err != nil {
			return "", fmt.Errorf("inserting item: %w", constraintErr(err))
		}
		return id, nil
	}

	res, err := it.backend.db.Exec(
		"UPDATE items SET name = ?, amount = ?, archived = ?, category_id = ? WHERE item_id = ?",
		item.Name, item.Amount, boolToInt(item.Archived), nullable(item.CategoryID), id,
	)
	if err != nil {
		return "", fmt.Errorf("updating item: %w", constraintErr(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return "", fmt.Errorf("updating item: %w", err)
	}
	if n == 0 {
		return "", types.ErrNotFound
	}
	item.ItemID = id
	return id, nil
}

// Delete removes an item. Reservation history survives: rent_items rows
// keep their quantity with a nulled item reference.
func (it *itemsTable) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	it.backend.mu.Lock()
	defer it.backend.mu.Unlock()
	if !it.backend.attached {
		return types.ErrStoreDetached
	}

	res, err := it.backend.db.Exec("DELETE FROM items WHERE item_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting item: %w", constraintErr(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	if n == 0 {
		return types.ErrNotFound
	}
	return nil
}

// Fetch queries items. Supported filters: name, category_id, archived.
func (it *itemsTable) Fetch(filter map[string]any) ([]any, error) {
	it.backend.mu.RLock()
	defer it.backend.mu.RUnlock()
	if !it.backend.attached {
		return nil, types.ErrStoreDetached
	}

	query := "SELECT item_id, name, amount, archived, category_id FROM items"
	var conditions []string
	var args []any

	if filter != nil {
		if v, ok := filter["name"]; ok {
			s, ok := v.(string)
			if !ok {
				return nil, types.ErrInvalidFilter
			}
			conditions = append(conditions, "name = ?")
			args = append(args, s)
		}
		if v, ok := filter["category_id"]; ok {
			s, ok := v.(string)
			if !ok {
				return nil, types.ErrInvalidFilter
			}
			if s == "" {
				conditions = append(conditions, "category_id IS NULL")
			} else {
				conditions = append(conditions, "category_id = ?")
				args = append(args, s)
			}
		}
		if v, ok := filter["archived"]; ok {
			b, ok := v.(bool)
			if !ok {
				return nil, types.ErrInvalidFilter
			}
			conditions = append(conditions, "archived = ?")
			args = append(args, boolToInt(b))
		}
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY name ASC, item_id ASC"

	rows, err := it.backend.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching items: %w", err)
	}
	defer rows.Close()

	results := []any{}
	for rows.Next() {
		item, err := hydrateItem(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("hydrating item: %w", err)
		}
		results = append(results, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating items: %w", err)
	}
	return results, nil
}

func hydrateItem(scan func(...any) error) (*types.Item, error) {
	var i types.Item
	var categoryID sql.NullString
	var archived int
	if err := scan(&i.ItemID, &i.Name, &i.Amount, &archived, &categoryID); err != nil {
		return nil, err
	}
	i.Archived = archived != 0
	i.CategoryID = categoryID.String
	return &i, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
