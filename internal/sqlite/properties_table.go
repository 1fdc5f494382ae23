package sqlite

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/openrits/openrits/pkg/types"
)

var _ types.Table = (*propertiesTable)(nil)

type propertiesTable struct {
	backend *Backend
}

// Get retrieves a property definition by ID.
func (pt *propertiesTable) Get(id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	pt.backend.mu.RLock()
	defer pt.backend.mu.RUnlock()
	if !pt.backend.attached {
		return nil, types.ErrStoreDetached
	}

	row := pt.backend.db.QueryRow(
		"SELECT property_id, name, value_type, scope, category_id, created_at FROM properties WHERE property_id = ?",
		id,
	)
	def, err := hydrateProperty(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting property %s: %w", id, err)
	}
	return def, nil
}

// Set persists a property definition. On create a UUID v7 and creation
// timestamp are assigned; the name must be unique within its scope and
// owning category.
func (pt *propertiesTable) Set(id string, data any) (string, error) {
	def, ok := data.(*types.PropertyDefinition)
	if !ok {
		return "", types.ErrInvalidData
	}
	if err := def.Validate(); err != nil {
		return "", err
	}

	pt.backend.mu.Lock()
	defer pt.backend.mu.Unlock()
	if !pt.backend.attached {
		return "", types.ErrStoreDetached
	}

	isCreate := id == ""
	if isCreate {
		id = newUUID()
		def.PropertyID = id
		if def.CreatedAt.IsZero() {
			def.CreatedAt = time.Now()
		}
	}

	// Name uniqueness within (scope, category).
	var dupID string
	err := pt.backend.db.QueryRow(
		"SELECT property_id FROM properties WHERE scope = ? AND category_id IS ? AND name = ? AND property_id != ?",
		def.Scope, nullable(def.CategoryID), def.Name, id,
	).Scan(&dupID)
	if err == nil {
		return "", types.ErrConstraint
	}
	if err != sql.ErrNoRows {
		return "", fmt.Errorf("checking property name uniqueness: %w", err)
	}

	if isCreate {
		_, err = pt.backend.db.Exec(
			"INSERT INTO properties (property_id, name, value_type, scope, category_id, created_at) VALUES (?, ?, ?, ?, ?, ?)",
			id, def.Name, def.ValueType, def.Scope, nullable(def.CategoryID), encodeTime(def.CreatedAt),
		)
	} else {
		// Value type, scope and owning category are fixed after creation;
		// stored values already encode the declared kind.
		_, err = pt.backend.db.Exec(
			"UPDATE properties SET name = ? WHERE property_id = ?",
			def.Name, id,
		)
	}
	if err != nil {
		return "", fmt.Errorf("persisting property: %w", constraintErr(err))
	}
	return id, nil
}

// Delete removes a property definition; its stored values cascade with it.
func (pt *propertiesTable) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	pt.backend.mu.Lock()
	defer pt.backend.mu.Unlock()
	if !pt.backend.attached {
		return types.ErrStoreDetached
	}

	res, err := pt.backend.db.Exec("DELETE FROM properties WHERE property_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting property: %w", constraintErr(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting property: %w", err)
	}
	if n == 0 {
		return types.ErrNotFound
	}
	return nil
}

// Fetch queries property definitions. Supported filters: scope,
// category_id, name. Results are ordered by creation time then name, the
// stable order property inheritance relies on.
func (pt *propertiesTable) Fetch(filter map[string]any) ([]any, error) {
	pt.backend.mu.RLock()
	defer pt.backend.mu.RUnlock()
	if !pt.backend.attached {
		return nil, types.ErrStoreDetached
	}

	query := "SELECT property_id, name, value_type, scope, category_id, created_at FROM properties"
	var conditions []string
	var args []any

	if filter != nil {
		if v, ok := filter["scope"]; ok {
			s, ok := v.(string)
			if !ok {
				return nil, types.ErrInvalidFilter
			}
			conditions = append(conditions, "scope = ?")
			args = append(args, s)
		}
		if v, ok := filter["category_id"]; ok {
			s, ok := v.(string)
			if !ok {
				return nil, types.ErrInvalidFilter
			}
			conditions = append(conditions, "category_id = ?")
			args = append(args, s)
		}
		if v, ok := filter["name"]; ok {
			s, ok := v.(string)
			if !ok {
				return nil, types.ErrInvalidFilter
			}
			conditions = append(conditions, "name = ?")
			args = append(args, s)
		}
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at ASC, name ASC"

	rows, err := pt.backend.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching properties: %w", err)
	}
	defer rows.Close()

	results := []any{}
	for rows.Next() {
		def, err := hydrateProperty(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("hydrating property: %w", err)
		}
		results = append(results, def)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating properties: %w", err)
	}
	return results, nil
}

func hydrateProperty(scan func(...any) error) (*types.PropertyDefinition, error) {
	var d types.PropertyDefinition
	var categoryID sql.NullString
	var createdAt string
	if err := scan(&d.PropertyID, &d.Name, &d.ValueType, &d.Scope, &categoryID, &createdAt); err != nil {
		return nil, err
	}
	d.CategoryID = categoryID.String
	t, err := decodeTime(createdAt)
	if err != nil {
		return nil, err
	}
	d.CreatedAt = t
	return &d, nil
}
