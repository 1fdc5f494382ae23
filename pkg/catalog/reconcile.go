package catalog

import (
	"fmt"

	"github.com/openrits/openrits/pkg/types"
)

// PartitionValues splits the property values stored on item into the ones
// whose definition is still visible to the item's current category
// (defined) and the ones orphaned by a re-categorization (obsolete). The
// two slices are complementary: every stored value lands in exactly one.
// An item without a category has no visible definitions, so everything it
// carries is obsolete. Read-only.
func (c *Catalog) PartitionValues(item *types.Item) (defined, obsolete []*types.PropertyValue, err error) {
	var cat *types.Category
	if item.CategoryID != "" {
		cat, err = c.Category(item.CategoryID)
		if err != nil {
			return nil, nil, err
		}
	}

	visible, err := c.VisibleProperties(cat)
	if err != nil {
		return nil, nil, err
	}
	visibleIDs := make(map[string]bool, len(visible))
	for _, d := range visible {
		visibleIDs[d.PropertyID] = true
	}

	values, err := c.itemValues(item.ItemID)
	if err != nil {
		return nil, nil, err
	}

	defined = []*types.PropertyValue{}
	obsolete = []*types.PropertyValue{}
	for _, v := range values {
		if visibleIDs[v.PropertyID] {
			defined = append(defined, v)
		} else {
			obsolete = append(obsolete, v)
		}
	}
	return defined, obsolete, nil
}

// DefinedValues returns the values on item whose definitions the item's
// category still inherits.
func (c *Catalog) DefinedValues(item *types.Item) ([]*types.PropertyValue, error) {
	defined, _, err := c.PartitionValues(item)
	return defined, err
}

// ObsoleteValues returns the values on item left over after the item or
// the tree above it was re-categorized.
func (c *Catalog) ObsoleteValues(item *types.Item) ([]*types.PropertyValue, error) {
	_, obsolete, err := c.PartitionValues(item)
	return obsolete, err
}

// PruneObsolete deletes every obsolete value stored on item and reports
// how many were removed. Reconciliation itself never mutates; pruning is
// this separate, explicit call.
func (c *Catalog) PruneObsolete(item *types.Item) (int, error) {
	_, obsolete, err := c.PartitionValues(item)
	if err != nil {
		return 0, err
	}
	tbl, err := c.store.GetTable(types.TableItemValues)
	if err != nil {
		return 0, err
	}
	for i, v := range obsolete {
		if err := tbl.Delete(v.ValueID); err != nil {
			return i, fmt.Errorf("pruning value %s: %w", v.ValueID, err)
		}
	}
	return len(obsolete), nil
}

// itemValues returns every property value stored on one item.
func (c *Catalog) itemValues(itemID string) ([]*types.PropertyValue, error) {
	tbl, err := c.store.GetTable(types.TableItemValues)
	if err != nil {
		return nil, err
	}
	entities, err := tbl.Fetch(map[string]any{"owner_id": itemID})
	if err != nil {
		return nil, fmt.Errorf("fetching values of item %s: %w", itemID, err)
	}
	values := make([]*types.PropertyValue, 0, len(entities))
	for _, e := range entities {
		v, ok := e.(*types.PropertyValue)
		if !ok {
			return nil, types.ErrInvalidData
		}
		values = append(values, v)
	}
	return values, nil
}
