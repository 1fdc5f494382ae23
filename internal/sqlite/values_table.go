// Property value table accessor. The three owner kinds (item, customer,
// rent) share this one implementation: each instance is bound to its SQL
// table and the property scope whose definitions may be instantiated in it.
package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/openrits/openrits/pkg/types"
)

var _ types.Table = (*valuesTable)(nil)

type valuesTable struct {
	backend *Backend
	name    string // SQL table: item_values, customer_values, rent_values.
	scope   string // Property scope accepted by this table.
}

func (vt *valuesTable) Get(id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	vt.backend.mu.RLock()
	defer vt.backend.mu.RUnlock()
	if !vt.backend.attached {
		return nil, types.ErrStoreDetached
	}

	row := vt.backend.db.QueryRow(
		"SELECT value_id, property_id, owner_id, value FROM "+vt.name+" WHERE value_id = ?",
		id,
	)
	v, err := hydrateValue(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting value %s: %w", id, err)
	}
	return v, nil
}

// Set creates or updates a property value. The referenced definition must
// exist and carry the scope this table serves; (owner, property)
// uniqueness is enforced by the schema.
func (vt *valuesTable) Set(id string, data any) (string, error) {
	v, ok := data.(*types.PropertyValue)
	if !ok {
		return "", types.ErrInvalidData
	}
	if err := v.Validate(); err != nil {
		return "", err
	}

	vt.backend.mu.Lock()
	defer vt.backend.mu.Unlock()
	if !vt.backend.attached {
		return "", types.ErrStoreDetached
	}

	var scope string
	err := vt.backend.db.QueryRow(
		"SELECT scope FROM properties WHERE property_id = ?", v.PropertyID,
	).Scan(&scope)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", types.ErrNotFound
		}
		return "", fmt.Errorf("checking property existence: %w", err)
	}
	if scope != vt.scope {
		return "", types.ErrInvalidData
	}

	if id == "" {
		id = newUUID()
		v.ValueID = id
		_, err := vt.backend.db.Exec(
			"INSERT INTO "+vt.name+" (value_id, property_id, owner_id, value) VALUES (?, ?, ?, ?)",
			id, v.PropertyID, v.OwnerID, v.Raw,
		)
		if err != nil {
			return "", fmt.Errorf("inserting value: %w", constraintErr(err))
		}
		return id, nil
	}

	res, err := vt.backend.db.Exec(
		"UPDATE "+vt.name+" SET property_id = ?, owner_id = ?, value = ? WHERE value_id = ?",
		v.PropertyID, v.OwnerID, v.Raw, id,
	)
	if err != nil {
		return "", fmt.Errorf("updating value: %w", constraintErr(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return "", fmt.Errorf("updating value: %w", err)
	}
	if n == 0 {
		return "", types.ErrNotFound
	}
	v.ValueID = id
	return id, nil
}

func (vt *valuesTable) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	vt.backend.mu.Lock()
	defer vt.backend.mu.Unlock()
	if !vt.backend.attached {
		return types.ErrStoreDetached
	}

	res, err := vt.backend.db.Exec("DELETE FROM "+vt.name+" WHERE value_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting value: %w", constraintErr(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting value: %w", err)
	}
	if n == 0 {
		return types.ErrNotFound
	}
	return nil
}

// Fetch queries values. Supported filters: owner_id, property_id.
func (vt *valuesTable) Fetch(filter map[string]any) ([]any, error) {
	vt.backend.mu.RLock()
	defer vt.backend.mu.RUnlock()
	if !vt.backend.attached {
		return nil, types.ErrStoreDetached
	}

	query := "SELECT value_id, property_id, owner_id, value FROM " + vt.name
	var conditions []string
	var args []any

	if filter != nil {
		for _, key := range []string{"owner_id", "property_id"} {
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
	query += " ORDER BY value_id ASC"

	rows, err := vt.backend.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching values: %w", err)
	}
	defer rows.Close()

	results := []any{}
	for rows.Next() {
		v, err := hydrateValue(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("hydrating value: %w", err)
		}
		results = append(results, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating values: %w", err)
	}
	return results, nil
}

func hydrateValue(scan func(...any) error) (*types.PropertyValue, error) {
	var v types.PropertyValue
	if err := scan(&v.ValueID, &v.PropertyID, &v.OwnerID, &v.Raw); err != nil {
		return nil, err
	}
	return &v, nil
}
