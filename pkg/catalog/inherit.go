package catalog

import (
	"fmt"

	"github.com/openrits/openrits/pkg/types"
)

// VisibleProperties returns the property definitions visible to cat: every
// ancestor's own item-scoped definitions root first, then cat's own, each
// category's block in creation order. A nil cat sees nothing. Categories
// sharing no lineage get disjoint results.
func (c *Catalog) VisibleProperties(cat *types.Category) ([]*types.PropertyDefinition, error) {
	if cat == nil {
		return []*types.PropertyDefinition{}, nil
	}

	ancestors, err := c.Ancestors(cat)
	if err != nil {
		return nil, err
	}

	visible := []*types.PropertyDefinition{}
	for _, owner := range append(ancestors, cat) {
		defs, err := c.ownProperties(owner.CategoryID)
		if err != nil {
			return nil, err
		}
		visible = append(visible, defs...)
	}
	return visible, nil
}

// ownProperties returns the item-scoped definitions owned directly by one
// category, in the store's stable creation order.
func (c *Catalog) ownProperties(categoryID string) ([]*types.PropertyDefinition, error) {
	tbl, err := c.store.GetTable(types.TableProperties)
	if err != nil {
		return nil, err
	}
	entities, err := tbl.Fetch(map[string]any{
		"scope":       types.ScopeItem,
		"category_id": categoryID,
	})
	if err != nil {
		return nil, fmt.Errorf("fetching properties of category %s: %w", categoryID, err)
	}
	defs := make([]*types.PropertyDefinition, 0, len(entities))
	for _, e := range entities {
		d, ok := e.(*types.PropertyDefinition)
		if !ok {
			return nil, types.ErrInvalidData
		}
		defs = append(defs, d)
	}
	return defs, nil
}
