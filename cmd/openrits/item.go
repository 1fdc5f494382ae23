// Item commands manage inventory items and their property values.
package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/openrits/openrits/internal/sqlite"
	"github.com/openrits/openrits/pkg/catalog"
	"github.com/openrits/openrits/pkg/types"
)

var itemCmd = &cobra.Command{
	Use:   "item",
	Short: "Manage inventory items",
}

var (
	itemAddName      string
	itemAddAmount    int
	itemAddCategory  string
	itemListCategory string
	itemListArchived bool
	itemSetProperty  string
	itemSetValue     string
	itemValuesPrune  bool
)

var itemAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a new item",
	Long: `Add creates an inventory item with a stock amount, optionally placed
in a category.

Example:
  openrits item add --name "Ladder 3.8m" --amount 4 --category <category-id>`,
	RunE: runItemAdd,
}

var itemListCmd = &cobra.Command{
	Use:   "list",
	Short: "List items",
	RunE:  runItemList,
}

var itemSetCmd = &cobra.Command{
	Use:   "set <item-id>",
	Short: "Set a property value on an item",
	Long: `Set stores a value for one of the properties visible to the item's
category. The property is named, the raw value is checked against the
property's declared type.

Example:
  openrits item set <item-id> --property length_cm --value 380`,
	Args: cobra.ExactArgs(1),
	RunE: runItemSet,
}

var itemValuesCmd = &cobra.Command{
	Use:   "values <item-id>",
	Short: "Show an item's property values",
	Long: `Values lists the property values stored on an item, split into ones
whose definition the item's category still sees and obsolete leftovers
from past re-categorizations. With --prune the obsolete ones are
deleted.

Example:
  openrits item values <item-id>
  openrits item values <item-id> --prune`,
	Args: cobra.ExactArgs(1),
	RunE: runItemValues,
}

func init() {
	itemAddCmd.Flags().StringVar(&itemAddName, "name", "", "name for the item (required)")
	itemAddCmd.Flags().IntVar(&itemAddAmount, "amount", 0, "stock amount")
	itemAddCmd.Flags().StringVar(&itemAddCategory, "category", "", "category ID")
	_ = itemAddCmd.MarkFlagRequired("name")

	itemListCmd.Flags().StringVar(&itemListCategory, "category", "", "filter by category ID")
	itemListCmd.Flags().BoolVar(&itemListArchived, "archived", false, "show archived items instead of active ones")

	itemSetCmd.Flags().StringVar(&itemSetProperty, "property", "", "property name (required)")
	itemSetCmd.Flags().StringVar(&itemSetValue, "value", "", "value to store (required)")
	_ = itemSetCmd.MarkFlagRequired("property")
	_ = itemSetCmd.MarkFlagRequired("value")

	itemValuesCmd.Flags().BoolVar(&itemValuesPrune, "prune", false, "delete obsolete values")

	itemCmd.AddCommand(itemAddCmd)
	itemCmd.AddCommand(itemListCmd)
	itemCmd.AddCommand(itemSetCmd)
	itemCmd.AddCommand(itemValuesCmd)
}

func runItemAdd(cmd *cobra.Command, args []string) error {
	backend, err := attachBackend()
	if err != nil {
		return err
	}
	defer backend.Detach()

	table, err := backend.GetTable(types.TableItems)
	if err != nil {
		return fmt.Errorf("get items table: %w", err)
	}

	item := &types.Item{Name: itemAddName, Amount: itemAddAmount, CategoryID: itemAddCategory}
	if _, err := table.Set("", item); err != nil {
		return fmt.Errorf("create item: %w", err)
	}

	if flagJSON {
		return printJSON(item)
	}
	fmt.Printf("Created item: %s\n", item.ItemID)
	return nil
}

func runItemList(cmd *cobra.Command, args []string) error {
	backend, err := attachBackend()
	if err != nil {
		return err
	}
	defer backend.Detach()

	table, err := backend.GetTable(types.TableItems)
	if err != nil {
		return fmt.Errorf("get items table: %w", err)
	}

	filter := map[string]any{"archived": itemListArchived}
	if cmd.Flags().Changed("category") {
		filter["category_id"] = itemListCategory
	}
	entities, err := table.Fetch(filter)
	if err != nil {
		return fmt.Errorf("fetch items: %w", err)
	}

	items := make([]*types.Item, len(entities))
	for i, e := range entities {
		items[i] = e.(*types.Item)
	}

	if flagJSON {
		return printJSON(items)
	}
	printItemTable(items)
	return nil
}

func runItemSet(cmd *cobra.Command, args []string) error {
	cat, backend, err := attachCatalog()
	if err != nil {
		return err
	}
	defer backend.Detach()

	item, err := getItem(backend, args[0])
	if err != nil {
		return err
	}

	def, err := visiblePropertyByName(cat, item, itemSetProperty)
	if err != nil {
		return err
	}

	// Round-trip through the codec so a mistyped value is rejected in its
	// canonical form before it is stored.
	decoded, err := def.Decode(itemSetValue)
	if err != nil {
		return fmt.Errorf("value for %s: %w", def.Name, err)
	}
	raw, err := def.Encode(decoded)
	if err != nil {
		return fmt.Errorf("value for %s: %w", def.Name, err)
	}

	table, err := backend.GetTable(types.TableItemValues)
	if err != nil {
		return fmt.Errorf("get item values table: %w", err)
	}

	// Update the existing row when the item already carries this property.
	existing, err := table.Fetch(map[string]any{
		"owner_id":    item.ItemID,
		"property_id": def.PropertyID,
	})
	if err != nil {
		return fmt.Errorf("fetch existing value: %w", err)
	}

	value := &types.PropertyValue{PropertyID: def.PropertyID, OwnerID: item.ItemID, Raw: raw}
	id := ""
	if len(existing) > 0 {
		id = existing[0].(*types.PropertyValue).ValueID
	}
	if _, err := table.Set(id, value); err != nil {
		return fmt.Errorf("store value: %w", err)
	}

	if flagJSON {
		return printJSON(value)
	}
	fmt.Printf("Set %s = %s on item %s\n", def.Name, raw, shortID(item.ItemID))
	return nil
}

func runItemValues(cmd *cobra.Command, args []string) error {
	cat, backend, err := attachCatalog()
	if err != nil {
		return err
	}
	defer backend.Detach()

	item, err := getItem(backend, args[0])
	if err != nil {
		return err
	}

	if itemValuesPrune {
		n, err := cat.PruneObsolete(item)
		if err != nil {
			return fmt.Errorf("prune values: %w", err)
		}
		if !flagJSON {
			fmt.Printf("Pruned %d obsolete value(s)\n", n)
		}
	}

	defined, obsolete, err := cat.PartitionValues(item)
	if err != nil {
		return fmt.Errorf("partition values: %w", err)
	}

	if flagJSON {
		return printJSON(map[string][]*types.PropertyValue{
			"defined":  defined,
			"obsolete": obsolete,
		})
	}

	properties, err := backend.GetTable(types.TableProperties)
	if err != nil {
		return fmt.Errorf("get properties table: %w", err)
	}
	printValueTable("Defined", defined, properties)
	if len(obsolete) > 0 {
		printValueTable("Obsolete", obsolete, properties)
	}
	return nil
}

// getItem loads one item by ID.
func getItem(backend *sqlite.Backend, id string) (*types.Item, error) {
	table, err := backend.GetTable(types.TableItems)
	if err != nil {
		return nil, fmt.Errorf("get items table: %w", err)
	}
	entity, err := table.Get(id)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return entity.(*types.Item), nil
}

// visiblePropertyByName resolves a property name against the definitions
// visible to the item's category.
func visiblePropertyByName(cat *catalog.Catalog, item *types.Item, name string) (*types.PropertyDefinition, error) {
	var owner *types.Category
	if item.CategoryID != "" {
		var err error
		owner, err = cat.Category(item.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("get item category: %w", err)
		}
	}
	visible, err := cat.VisibleProperties(owner)
	if err != nil {
		return nil, fmt.Errorf("fetch visible properties: %w", err)
	}
	for _, def := range visible {
		if def.Name == name {
			return def, nil
		}
	}
	return nil, fmt.Errorf("property %q not visible to item %s: %w", name, shortID(item.ItemID), types.ErrNotFound)
}

// printItemTable prints items in a human-readable table format.
func printItemTable(items []*types.Item) {
	if len(items) == 0 {
		fmt.Println("No items found.")
		return
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "ID\tNAME\tAMOUNT\tCATEGORY")
	fmt.Fprintln(w, "--\t----\t------\t--------")
	for _, item := range items {
		category := "-"
		if item.CategoryID != "" {
			category = shortID(item.CategoryID)
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n",
			shortID(item.ItemID),
			truncate(item.Name, 40),
			item.Amount,
			category,
		)
	}
	w.Flush()
	fmt.Print(sb.String())
}

// printValueTable prints property values with their property names.
func printValueTable(heading string, values []*types.PropertyValue, properties types.Table) {
	fmt.Printf("%s:\n", heading)
	if len(values) == 0 {
		fmt.Println("  (none)")
		return
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	for _, v := range values {
		name := shortID(v.PropertyID)
		if entity, err := properties.Get(v.PropertyID); err == nil {
			name = entity.(*types.PropertyDefinition).Name
		}
		fmt.Fprintf(w, "  %s\t%s\n", name, v.Raw)
	}
	w.Flush()
	fmt.Print(sb.String())
}
