// Category table accessor. Lineage is computed here on insert so the
// encoding invariant (lineage of a node always equals its parent's lineage
// plus the parent ID) holds for every row the table ever contains.
package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/openrits/openrits/pkg/types"
)

var _ types.Table = (*categoriesTable)(nil)
var _ types.Reparenter = (*categoriesTable)(nil)

type categoriesTable struct {
	backend *Backend
}

// Get retrieves a category by ID.
func (ct *categoriesTable) Get(id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	ct.backend.mu.RLock()
	defer ct.backend.mu.RUnlock()
	if !ct.backend.attached {
		return nil, types.ErrStoreDetached
	}

	row := ct.backend.db.QueryRow(
		"SELECT category_id, name, parent_id, lineage FROM categories WHERE category_id = ?",
		id,
	)
	cat, err := hydrateCategory(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting category %s: %w", id, err)
	}
	return cat, nil
}

// Set persists a category. On create (empty id) the lineage is computed
// from the parent reference. On update only the name may change: a parent
// change must go through Reparent so the whole subtree is rewritten
// atomically, so a differing ParentID is rejected with ErrInvalidData.
func (ct *categoriesTable) Set(id string, data any) (string, error) {
	cat, ok := data.(*types.Category)
	if !ok {
		return "", types.ErrInvalidData
	}
	if cat.Name == "" {
		return "", types.ErrInvalidName
	}

	ct.backend.mu.Lock()
	defer ct.backend.mu.Unlock()
	if !ct.backend.attached {
		return "", types.ErrStoreDetached
	}

	if id == "" {
		return ct.insert(cat)
	}
	return ct.update(id, cat)
}

func (ct *categoriesTable) insert(cat *types.Category) (string, error) {
	cat.CategoryID = newUUID()

	if cat.ParentID == "" {
		cat.Lineage = types.Lineage{}
	} else {
		parent, err := ct.getLocked(cat.ParentID)
		if err != nil {
			return "", err
		}
		cat.Lineage = parent.Lineage.Child(parent.CategoryID)
	}

	if err := cat.Validate(); err != nil {
		return "", err
	}

	_, err := ct.backend.db.Exec(
		"INSERT INTO categories (category_id, name, parent_id, lineage) VALUES (?, ?, ?, ?)",
		cat.CategoryID, cat.Name, nullable(cat.ParentID), cat.Lineage.String(),
	)
	if err != nil {
		return "", fmt.Errorf("inserting category: %w", constraintErr(err))
	}
	return cat.CategoryID, nil
}

func (ct *categoriesTable) update(id string, cat *types.Category) (string, error) {
	existing, err := ct.getLocked(id)
	if err != nil {
		return "", err
	}
	if cat.ParentID != existing.ParentID {
		return "", types.ErrInvalidData
	}

	_, err = ct.backend.db.Exec(
		"UPDATE categories SET name = ? WHERE category_id = ?",
		cat.Name, id,
	)
	if err != nil {
		return "", fmt.Errorf("updating category: %w", constraintErr(err))
	}
	cat.CategoryID = id
	cat.Lineage = existing.Lineage
	return id, nil
}

// Delete removes a category. Items referencing it are detached and child
// categories keep their rows (parent set NULL by the schema); the caller is
// expected to reparent children first if orphan roots are unwanted.
func (ct *categoriesTable) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	ct.backend.mu.Lock()
	defer ct.backend.mu.Unlock()
	if !ct.backend.attached {
		return types.ErrStoreDetached
	}

	res, err := ct.backend.db.Exec("DELETE FROM categories WHERE category_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting category: %w", constraintErr(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting category: %w", err)
	}
	if n == 0 {
		return types.ErrNotFound
	}
	return nil
}

// Fetch queries categories. Supported filters: name, parent_id (empty
// string matches roots), lineage_contains (a category ID; matches every
// descendant of that category). Results are ordered by name, then ID.
func (ct *categoriesTable) Fetch(filter map[string]any) ([]any, error) {
	ct.backend.mu.RLock()
	defer ct.backend.mu.RUnlock()
	if !ct.backend.attached {
		return nil, types.ErrStoreDetached
	}

	query := "SELECT category_id, name, parent_id, lineage FROM categories"
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
		if v, ok := filter["parent_id"]; ok {
			s, ok := v.(string)
			if !ok {
				return nil, types.ErrInvalidFilter
			}
			if s == "" {
				conditions = append(conditions, "parent_id IS NULL")
			} else {
				conditions = append(conditions, "parent_id = ?")
				args = append(args, s)
			}
		}
		if v, ok := filter["lineage_contains"]; ok {
			s, ok := v.(string)
			if !ok {
				return nil, types.ErrInvalidFilter
			}
			if err := types.ValidateLineageID(s); err != nil {
				return nil, err
			}
			// Delimiter padding makes substring containment exact: IDs never
			// contain the separator.
			conditions = append(conditions, "instr(lineage, ?) > 0")
			args = append(args, types.LineageSeparator+s+types.LineageSeparator)
		}
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY name ASC, category_id ASC"

	rows, err := ct.backend.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching categories: %w", err)
	}
	defer rows.Close()

	results := []any{}
	for rows.Next() {
		cat, err := hydrateCategory(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("hydrating category: %w", err)
		}
		results = append(results, cat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating categories: %w", err)
	}
	return results, nil
}

// Reparent applies a computed reparent in a single transaction: the
// category's own parent and lineage change plus every descendant lineage
// rewrite. Either everything commits or nothing does; no reader ever
// observes a half-rewritten subtree.
func (ct *categoriesTable) Reparent(category *types.Category, rewrites []types.LineageRewrite) error {
	if category == nil || category.CategoryID == "" {
		return types.ErrInvalidID
	}
	ct.backend.mu.Lock()
	defer ct.backend.mu.Unlock()
	if !ct.backend.attached {
		return types.ErrStoreDetached
	}

	tx, err := ct.backend.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning reparent transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		"UPDATE categories SET parent_id = ?, lineage = ? WHERE category_id = ?",
		nullable(category.ParentID), category.Lineage.String(), category.CategoryID,
	)
	if err != nil {
		return fmt.Errorf("reparenting category: %w", constraintErr(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reparenting category: %w", err)
	}
	if n == 0 {
		return types.ErrNotFound
	}

	for _, rw := range rewrites {
		if _, err := tx.Exec(
			"UPDATE categories SET lineage = ? WHERE category_id = ?",
			rw.Lineage.String(), rw.CategoryID,
		); err != nil {
			return fmt.Errorf("rewriting lineage of %s: %w", rw.CategoryID, constraintErr(err))
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing reparent: %w", err)
	}
	return nil
}

// getLocked reads a category while the caller holds the backend lock.
func (ct *categoriesTable) getLocked(id string) (*types.Category, error) {
	row := ct.backend.db.QueryRow(
		"SELECT category_id, name, parent_id, lineage FROM categories WHERE category_id = ?",
		id,
	)
	cat, err := hydrateCategory(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting category %s: %w", id, err)
	}
	return cat, nil
}

// hydrateCategory scans a category row. The scan argument abstracts over
// sql.Row and sql.Rows.
func hydrateCategory(scan func(...any) error) (*types.Category, error) {
	var c types.Category
	var parentID sql.NullString
	var lineage string
	if err := scan(&c.CategoryID, &c.Name, &parentID, &lineage); err != nil {
		return nil, err
	}
	c.ParentID = parentID.String
	lin, err := types.ParseLineage(lineage)
	if err != nil {
		return nil, err
	}
	c.Lineage = lin
	return &c, nil
}

// nullable maps an empty string to SQL NULL for weak references.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
