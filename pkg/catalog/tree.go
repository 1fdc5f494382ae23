package catalog

import (
	"fmt"

	"github.com/openrits/openrits/pkg/types"
)

// Catalog answers hierarchy, inheritance, reconciliation, and availability
// queries over a record store.
type Catalog struct {
	store types.Store
}

// New creates a Catalog over an attached store.
func New(store types.Store) *Catalog {
	return &Catalog{store: store}
}

// Category retrieves a category by ID.
func (c *Catalog) Category(id string) (*types.Category, error) {
	tbl, err := c.store.GetTable(types.TableCategories)
	if err != nil {
		return nil, err
	}
	entity, err := tbl.Get(id)
	if err != nil {
		return nil, err
	}
	cat, ok := entity.(*types.Category)
	if !ok {
		return nil, types.ErrInvalidData
	}
	return cat, nil
}

// Descendants returns every category below cat in the tree, at any depth.
// The result never includes cat itself and is empty for leaves. No
// ordering beyond the store's stable default is promised.
func (c *Catalog) Descendants(cat *types.Category) ([]*types.Category, error) {
	tbl, err := c.store.GetTable(types.TableCategories)
	if err != nil {
		return nil, err
	}
	entities, err := tbl.Fetch(map[string]any{"lineage_contains": cat.CategoryID})
	if err != nil {
		return nil, fmt.Errorf("fetching descendants of %s: %w", cat.CategoryID, err)
	}
	descendants := make([]*types.Category, 0, len(entities))
	for _, e := range entities {
		d, ok := e.(*types.Category)
		if !ok {
			return nil, types.ErrInvalidData
		}
		descendants = append(descendants, d)
	}
	return descendants, nil
}

// Ancestors returns the categories named by cat's lineage, root first,
// immediate parent last. The order comes from the lineage itself, not from
// a traversal. A lineage ID that resolves to no category is ErrNotFound.
func (c *Catalog) Ancestors(cat *types.Category) ([]*types.Category, error) {
	tbl, err := c.store.GetTable(types.TableCategories)
	if err != nil {
		return nil, err
	}
	ancestors := make([]*types.Category, 0, len(cat.Lineage))
	for _, id := range cat.Lineage {
		entity, err := tbl.Get(id)
		if err != nil {
			return nil, fmt.Errorf("resolving ancestor %s: %w", id, err)
		}
		a, ok := entity.(*types.Category)
		if !ok {
			return nil, types.ErrInvalidData
		}
		ancestors = append(ancestors, a)
	}
	return ancestors, nil
}

// Reparent moves cat under newParent (nil makes cat a root). Fails with
// ErrCycle when newParent is cat itself or one of cat's descendants, in
// which case the tree is left untouched.
//
// The descendant set and every rewritten lineage are computed from the
// pre-mutation state: after the node's own lineage changes, descendant
// rows no longer carry the old prefix to match against. The store then
// applies the node update and all rewrites in one transaction.
func (c *Catalog) Reparent(cat *types.Category, newParent *types.Category) error {
	if newParent != nil && newParent.CategoryID == cat.CategoryID {
		return types.ErrCycle
	}

	descendants, err := c.Descendants(cat)
	if err != nil {
		return err
	}
	if newParent != nil {
		for _, d := range descendants {
			if d.CategoryID == newParent.CategoryID {
				return types.ErrCycle
			}
		}
	}

	var newLineage types.Lineage
	var newParentID string
	if newParent != nil {
		newLineage = newParent.Lineage.Child(newParent.CategoryID)
		newParentID = newParent.CategoryID
	} else {
		newLineage = types.Lineage{}
	}

	oldPrefix := cat.Lineage.Child(cat.CategoryID)
	newPrefix := newLineage.Child(cat.CategoryID)

	rewrites := make([]types.LineageRewrite, 0, len(descendants))
	for _, d := range descendants {
		if !d.Lineage.HasPrefix(oldPrefix) {
			return fmt.Errorf("descendant %s lineage %q lacks prefix %q: %w",
				d.CategoryID, d.Lineage.String(), oldPrefix.String(), types.ErrInvalidLineage)
		}
		suffix := d.Lineage[len(oldPrefix):]
		rewritten := append(newPrefix.Clone(), suffix...)
		rewrites = append(rewrites, types.LineageRewrite{
			CategoryID: d.CategoryID,
			Lineage:    rewritten,
		})
	}

	tbl, err := c.store.GetTable(types.TableCategories)
	if err != nil {
		return err
	}
	reparenter, ok := tbl.(types.Reparenter)
	if !ok {
		return fmt.Errorf("category table does not support atomic reparenting: %w", types.ErrInvalidData)
	}

	moved := &types.Category{
		CategoryID: cat.CategoryID,
		Name:       cat.Name,
		ParentID:   newParentID,
		Lineage:    newLineage,
	}
	if err := reparenter.Reparent(moved, rewrites); err != nil {
		return err
	}

	cat.ParentID = newParentID
	cat.Lineage = newLineage
	return nil
}
