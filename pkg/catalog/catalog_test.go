package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/openrits/openrits/internal/sqlite"
	"github.com/openrits/openrits/pkg/types"
)

// newTestCatalog attaches a fresh SQLite backend in a temp dir and returns
// a Catalog over it.
func newTestCatalog(t *testing.T) (*Catalog, *sqlite.Backend) {
	t.Helper()
	backend := sqlite.NewBackend()
	err := backend.Attach(types.Config{
		Backend: types.BackendSQLite,
		DataDir: t.TempDir(),
	})
	require.NoError(t, err)
	t.Cleanup(func() { backend.Detach() })
	return New(backend), backend
}

// addCategory creates a category under the given parent (empty for roots).
func addCategory(t *testing.T, b *sqlite.Backend, name, parentID string) *types.Category {
	t.Helper()
	tbl, err := b.GetTable(types.TableCategories)
	require.NoError(t, err)
	cat := &types.Category{Name: name, ParentID: parentID}
	_, err = tbl.Set("", cat)
	require.NoError(t, err)
	return cat
}

// getCategory re-reads a category so assertions see stored state.
func getCategory(t *testing.T, b *sqlite.Backend, id string) *types.Category {
	t.Helper()
	tbl, err := b.GetTable(types.TableCategories)
	require.NoError(t, err)
	entity, err := tbl.Get(id)
	require.NoError(t, err)
	return entity.(*types.Category)
}

// propertyClock hands out strictly increasing creation times, so tests
// exercising creation order do not depend on wall-clock resolution.
var propertyClock = time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

// addItemProperty defines an item-scoped property on a category.
func addItemProperty(t *testing.T, b *sqlite.Backend, name, categoryID string) *types.PropertyDefinition {
	t.Helper()
	tbl, err := b.GetTable(types.TableProperties)
	require.NoError(t, err)
	propertyClock = propertyClock.Add(time.Second)
	def := &types.PropertyDefinition{
		Name:       name,
		ValueType:  types.ValueTypeInteger,
		Scope:      types.ScopeItem,
		CategoryID: categoryID,
		CreatedAt:  propertyClock,
	}
	_, err = tbl.Set("", def)
	require.NoError(t, err)
	return def
}

// addItem creates an item with the given stock in a category.
func addItem(t *testing.T, b *sqlite.Backend, name string, amount int, categoryID string) *types.Item {
	t.Helper()
	tbl, err := b.GetTable(types.TableItems)
	require.NoError(t, err)
	item := &types.Item{Name: name, Amount: amount, CategoryID: categoryID}
	_, err = tbl.Set("", item)
	require.NoError(t, err)
	return item
}

// addItemValue stores a property value on an item.
func addItemValue(t *testing.T, b *sqlite.Backend, itemID, propertyID, raw string) *types.PropertyValue {
	t.Helper()
	tbl, err := b.GetTable(types.TableItemValues)
	require.NoError(t, err)
	v := &types.PropertyValue{PropertyID: propertyID, OwnerID: itemID, Raw: raw}
	_, err = tbl.Set("", v)
	require.NoError(t, err)
	return v
}

// categoryNames projects categories to a name set for order-free asserts.
func categoryNames(cats []*types.Category) map[string]bool {
	names := make(map[string]bool, len(cats))
	for _, c := range cats {
		names[c.Name] = true
	}
	return names
}
