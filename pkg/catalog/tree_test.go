package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openrits/openrits/internal/sqlite"
	"github.com/openrits/openrits/pkg/types"
)

// buildFamily creates the tree A -> A_1 -> A_1_1 -> A_1_1_1, A -> A_2,
// and an unrelated root B.
func buildFamily(t *testing.T) (*Catalog, *sqlite.Backend, map[string]*types.Category) {
	t.Helper()
	c, b := newTestCatalog(t)
	cats := map[string]*types.Category{}
	cats["A"] = addCategory(t, b, "A", "")
	cats["A_1"] = addCategory(t, b, "A_1", cats["A"].CategoryID)
	cats["A_1_1"] = addCategory(t, b, "A_1_1", cats["A_1"].CategoryID)
	cats["A_1_1_1"] = addCategory(t, b, "A_1_1_1", cats["A_1_1"].CategoryID)
	cats["A_2"] = addCategory(t, b, "A_2", cats["A"].CategoryID)
	cats["B"] = addCategory(t, b, "B", "")
	return c, b, cats
}

func TestLineageComputedOnCreate(t *testing.T) {
	_, _, cats := buildFamily(t)

	a := cats["A"]
	assert.Equal(t, ",", a.Lineage.String())

	a1 := cats["A_1"]
	assert.Equal(t, ","+a.CategoryID+",", a1.Lineage.String())

	a11 := cats["A_1_1"]
	assert.Equal(t, ","+a.CategoryID+","+a1.CategoryID+",", a11.Lineage.String())
}

func TestDescendants(t *testing.T) {
	c, _, cats := buildFamily(t)

	descendants, err := c.Descendants(cats["A"])
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{
		"A_1": true, "A_2": true, "A_1_1": true, "A_1_1_1": true,
	}, categoryNames(descendants))

	// A category is never its own descendant.
	for _, d := range descendants {
		assert.NotEqual(t, cats["A"].CategoryID, d.CategoryID)
	}
}

func TestDescendantsOfLeaf(t *testing.T) {
	c, _, cats := buildFamily(t)

	descendants, err := c.Descendants(cats["B"])
	require.NoError(t, err)
	assert.Empty(t, descendants)
}

func TestAncestorsRootFirst(t *testing.T) {
	c, _, cats := buildFamily(t)

	ancestors, err := c.Ancestors(cats["A_1_1"])
	require.NoError(t, err)
	require.Len(t, ancestors, 2)
	assert.Equal(t, "A", ancestors[0].Name)
	assert.Equal(t, "A_1", ancestors[1].Name)
}

func TestAncestorsOfRoot(t *testing.T) {
	c, _, cats := buildFamily(t)

	ancestors, err := c.Ancestors(cats["B"])
	require.NoError(t, err)
	assert.Empty(t, ancestors)
}

func TestReparentToOtherCategory(t *testing.T) {
	c, b, cats := buildFamily(t)
	root := cats["B"]

	err := c.Reparent(cats["A_1"], root)
	require.NoError(t, err)

	// Walk A_1 -> A_1_1 -> A_1_1_1 checking parent and lineage chains.
	expectedParent := root.CategoryID
	expectedLineage := "," + root.CategoryID + ","
	for _, name := range []string{"A_1", "A_1_1", "A_1_1_1"} {
		cat := getCategory(t, b, cats[name].CategoryID)
		assert.Equal(t, expectedParent, cat.ParentID, "parent of %s", name)
		assert.Equal(t, expectedLineage, cat.Lineage.String(), "lineage of %s", name)
		expectedParent = cat.CategoryID
		expectedLineage += cat.CategoryID + ","
	}

	// The sibling A_2 keeps its old lineage.
	a2 := getCategory(t, b, cats["A_2"].CategoryID)
	assert.Equal(t, ","+cats["A"].CategoryID+",", a2.Lineage.String())
}

func TestReparentToRoot(t *testing.T) {
	c, b, cats := buildFamily(t)

	err := c.Reparent(cats["A_1"], nil)
	require.NoError(t, err)

	expectedParent := ""
	expectedLineage := ","
	for _, name := range []string{"A_1", "A_1_1", "A_1_1_1"} {
		cat := getCategory(t, b, cats[name].CategoryID)
		assert.Equal(t, expectedParent, cat.ParentID, "parent of %s", name)
		assert.Equal(t, expectedLineage, cat.Lineage.String(), "lineage of %s", name)
		expectedParent = cat.CategoryID
		expectedLineage += cat.CategoryID + ","
	}
}

func TestReparentToDescendantFails(t *testing.T) {
	c, b, cats := buildFamily(t)

	err := c.Reparent(cats["A_1"], cats["A_1_1_1"])
	assert.ErrorIs(t, err, types.ErrCycle)

	// The tree is untouched.
	a1 := getCategory(t, b, cats["A_1"].CategoryID)
	assert.Equal(t, cats["A"].CategoryID, a1.ParentID)
	assert.Equal(t, ","+cats["A"].CategoryID+",", a1.Lineage.String())
	a111 := getCategory(t, b, cats["A_1_1_1"].CategoryID)
	assert.Equal(t, cats["A_1_1"].CategoryID, a111.ParentID)
}

func TestReparentToSelfFails(t *testing.T) {
	c, _, cats := buildFamily(t)

	err := c.Reparent(cats["A_1"], cats["A_1"])
	assert.ErrorIs(t, err, types.ErrCycle)
}

func TestDescendantsMatchChildWalk(t *testing.T) {
	c, b, cats := buildFamily(t)

	// Reconstruct the descendant set by walking child links recursively.
	tbl, err := b.GetTable(types.TableCategories)
	require.NoError(t, err)

	walk := map[string]bool{}
	var visit func(id string)
	visit = func(id string) {
		entities, err := tbl.Fetch(map[string]any{"parent_id": id})
		require.NoError(t, err)
		for _, e := range entities {
			child := e.(*types.Category)
			walk[child.Name] = true
			visit(child.CategoryID)
		}
	}
	visit(cats["A"].CategoryID)

	descendants, err := c.Descendants(cats["A"])
	require.NoError(t, err)
	assert.Equal(t, walk, categoryNames(descendants))
}

func TestReparentDeepChainRepeatedly(t *testing.T) {
	c, b, cats := buildFamily(t)

	// Move A_1 under B, then back under A; lineages must settle exactly.
	require.NoError(t, c.Reparent(cats["A_1"], cats["B"]))
	moved := getCategory(t, b, cats["A_1"].CategoryID)
	require.NoError(t, c.Reparent(moved, cats["A"]))

	a111 := getCategory(t, b, cats["A_1_1_1"].CategoryID)
	want := "," + cats["A"].CategoryID + "," + cats["A_1"].CategoryID + "," + cats["A_1_1"].CategoryID + ","
	assert.Equal(t, want, a111.Lineage.String())
}
