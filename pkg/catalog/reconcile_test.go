package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openrits/openrits/pkg/types"
)

func valueProps(values []*types.PropertyValue) map[string]bool {
	props := make(map[string]bool, len(values))
	for _, v := range values {
		props[v.PropertyID] = true
	}
	return props
}

// familyWithValues sets one integer property on A, A_1 and A_1_1 each, an
// item in A_1, and a stored value on the item for all three properties.
func familyWithValues(t *testing.T) (*Catalog, map[string]*types.Category, map[string]*types.PropertyDefinition, *types.Item) {
	t.Helper()
	c, b, cats := buildFamily(t)

	props := map[string]*types.PropertyDefinition{
		"A_prop":     addItemProperty(t, b, "A_prop", cats["A"].CategoryID),
		"A_1_prop":   addItemProperty(t, b, "A_1_prop", cats["A_1"].CategoryID),
		"A_1_1_prop": addItemProperty(t, b, "A_1_1_prop", cats["A_1_1"].CategoryID),
	}
	item := addItem(t, b, "a_1_thing", 3, cats["A_1"].CategoryID)
	for _, p := range props {
		addItemValue(t, b, item.ItemID, p.PropertyID, "7")
	}
	return c, cats, props, item
}

func TestPartitionValues(t *testing.T) {
	c, _, props, item := familyWithValues(t)

	defined, obsolete, err := c.PartitionValues(item)
	require.NoError(t, err)

	// A_1 inherits from A and defines its own property; the value bound to
	// the deeper A_1_1 definition is orphaned.
	assert.Equal(t, map[string]bool{
		props["A_prop"].PropertyID:   true,
		props["A_1_prop"].PropertyID: true,
	}, valueProps(defined))
	assert.Equal(t, map[string]bool{
		props["A_1_1_prop"].PropertyID: true,
	}, valueProps(obsolete))
	assert.Len(t, defined, 2)
	assert.Len(t, obsolete, 1)
}

func TestPartitionValuesComplementary(t *testing.T) {
	c, _, props, item := familyWithValues(t)

	defined, obsolete, err := c.PartitionValues(item)
	require.NoError(t, err)
	assert.Equal(t, len(props), len(defined)+len(obsolete))

	all := valueProps(defined)
	for p := range valueProps(obsolete) {
		assert.NotContains(t, all, p)
		all[p] = true
	}
	assert.Len(t, all, len(props))
}

func TestPartitionValuesItemWithoutCategory(t *testing.T) {
	c, b, cats := buildFamily(t)
	prop := addItemProperty(t, b, "A_prop", cats["A"].CategoryID)
	item := addItem(t, b, "loose", 1, "")
	addItemValue(t, b, item.ItemID, prop.PropertyID, "1")

	defined, obsolete, err := c.PartitionValues(item)
	require.NoError(t, err)
	assert.Empty(t, defined)
	assert.Len(t, obsolete, 1)
}

func TestPartitionValuesAfterReparent(t *testing.T) {
	c, b, cats := buildFamily(t)
	aProp := addItemProperty(t, b, "A_prop", cats["A"].CategoryID)
	a1Prop := addItemProperty(t, b, "A_1_prop", cats["A_1"].CategoryID)
	bProp := addItemProperty(t, b, "B_prop", cats["B"].CategoryID)
	item := addItem(t, b, "a_1_thing", 3, cats["A_1"].CategoryID)
	addItemValue(t, b, item.ItemID, aProp.PropertyID, "1")
	addItemValue(t, b, item.ItemID, a1Prop.PropertyID, "2")

	// Moving A_1 under B strands the value inherited from A. The value on
	// A_1's own property survives, and B's property is merely unset, not
	// obsolete.
	require.NoError(t, c.Reparent(cats["A_1"], cats["B"]))

	defined, obsolete, err := c.PartitionValues(item)
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{a1Prop.PropertyID: true}, valueProps(defined))
	assert.Equal(t, map[string]bool{aProp.PropertyID: true}, valueProps(obsolete))
	assert.NotContains(t, valueProps(defined), bProp.PropertyID)
}

func TestDefinedAndObsoleteValues(t *testing.T) {
	c, _, props, item := familyWithValues(t)

	defined, err := c.DefinedValues(item)
	require.NoError(t, err)
	assert.Len(t, defined, 2)

	obsolete, err := c.ObsoleteValues(item)
	require.NoError(t, err)
	require.Len(t, obsolete, 1)
	assert.Equal(t, props["A_1_1_prop"].PropertyID, obsolete[0].PropertyID)
}

func TestPruneObsolete(t *testing.T) {
	c, _, _, item := familyWithValues(t)

	n, err := c.PruneObsolete(item)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// Pruning is idempotent and never touches defined values.
	defined, obsolete, err := c.PartitionValues(item)
	require.NoError(t, err)
	assert.Len(t, defined, 2)
	assert.Empty(t, obsolete)

	n, err = c.PruneObsolete(item)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestPartitionValuesNoValues(t *testing.T) {
	c, b, cats := buildFamily(t)
	addItemProperty(t, b, "A_prop", cats["A"].CategoryID)
	item := addItem(t, b, "bare", 1, cats["A"].CategoryID)

	defined, obsolete, err := c.PartitionValues(item)
	require.NoError(t, err)
	assert.Empty(t, defined)
	assert.Empty(t, obsolete)
}
