// Property commands manage typed property definitions.
package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/openrits/openrits/pkg/types"
)

var propertyCmd = &cobra.Command{
	Use:   "property",
	Short: "Manage property definitions",
}

var (
	propertyDefineName     string
	propertyDefineType     string
	propertyDefineScope    string
	propertyDefineCategory string
	propertyListScope      string
	propertyListCategory   string
)

var propertyDefineCmd = &cobra.Command{
	Use:   "define",
	Short: "Define a new property",
	Long: `Define declares a typed property. Item-scoped properties attach to a
category and are inherited by all of its descendants; customer- and
rent-scoped properties are global.

Value types: integer, float, boolean, text, date.

Example:
  openrits property define --name length_cm --type integer --scope item --category <category-id>
  openrits property define --name discount --type float --scope customer`,
	RunE: runPropertyDefine,
}

var propertyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List property definitions",
	Long: `List prints property definitions, optionally filtered by scope or
owning category. With --category and no --scope, item-scoped definitions
visible to that category are shown, inherited ones included.

Example:
  openrits property list
  openrits property list --scope customer
  openrits property list --category <category-id>`,
	RunE: runPropertyList,
}

func init() {
	propertyDefineCmd.Flags().StringVar(&propertyDefineName, "name", "", "property name (required)")
	propertyDefineCmd.Flags().StringVar(&propertyDefineType, "type", "", "value type (required)")
	propertyDefineCmd.Flags().StringVar(&propertyDefineScope, "scope", "", "property scope: item, customer, rent (required)")
	propertyDefineCmd.Flags().StringVar(&propertyDefineCategory, "category", "", "owning category ID (item scope only)")
	_ = propertyDefineCmd.MarkFlagRequired("name")
	_ = propertyDefineCmd.MarkFlagRequired("type")
	_ = propertyDefineCmd.MarkFlagRequired("scope")

	propertyListCmd.Flags().StringVar(&propertyListScope, "scope", "", "filter by scope")
	propertyListCmd.Flags().StringVar(&propertyListCategory, "category", "", "show item properties visible to this category")

	propertyCmd.AddCommand(propertyDefineCmd)
	propertyCmd.AddCommand(propertyListCmd)
}

func runPropertyDefine(cmd *cobra.Command, args []string) error {
	backend, err := attachBackend()
	if err != nil {
		return err
	}
	defer backend.Detach()

	table, err := backend.GetTable(types.TableProperties)
	if err != nil {
		return fmt.Errorf("get properties table: %w", err)
	}

	def := &types.PropertyDefinition{
		Name:       propertyDefineName,
		ValueType:  propertyDefineType,
		Scope:      propertyDefineScope,
		CategoryID: propertyDefineCategory,
	}
	if _, err := table.Set("", def); err != nil {
		return fmt.Errorf("define property: %w", err)
	}

	if flagJSON {
		return printJSON(def)
	}
	fmt.Printf("Defined property: %s\n", def.PropertyID)
	return nil
}

func runPropertyList(cmd *cobra.Command, args []string) error {
	cat, backend, err := attachCatalog()
	if err != nil {
		return err
	}
	defer backend.Detach()

	var defs []*types.PropertyDefinition
	if propertyListCategory != "" && propertyListScope == "" {
		owner, err := cat.Category(propertyListCategory)
		if err != nil {
			return fmt.Errorf("get category: %w", err)
		}
		defs, err = cat.VisibleProperties(owner)
		if err != nil {
			return fmt.Errorf("fetch visible properties: %w", err)
		}
	} else {
		table, err := backend.GetTable(types.TableProperties)
		if err != nil {
			return fmt.Errorf("get properties table: %w", err)
		}
		filter := make(map[string]any)
		if propertyListScope != "" {
			filter["scope"] = propertyListScope
		}
		if propertyListCategory != "" {
			filter["category_id"] = propertyListCategory
		}
		entities, err := table.Fetch(filter)
		if err != nil {
			return fmt.Errorf("fetch properties: %w", err)
		}
		defs = make([]*types.PropertyDefinition, len(entities))
		for i, e := range entities {
			defs[i] = e.(*types.PropertyDefinition)
		}
	}

	if flagJSON {
		return printJSON(defs)
	}
	printPropertyTable(defs)
	return nil
}

// printPropertyTable prints property definitions in a human-readable
// table format.
func printPropertyTable(defs []*types.PropertyDefinition) {
	if len(defs) == 0 {
		fmt.Println("No properties found.")
		return
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "ID\tNAME\tTYPE\tSCOPE\tCATEGORY")
	fmt.Fprintln(w, "--\t----\t----\t-----\t--------")
	for _, d := range defs {
		category := "-"
		if d.CategoryID != "" {
			category = shortID(d.CategoryID)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			shortID(d.PropertyID),
			truncate(d.Name, 40),
			d.ValueType,
			d.Scope,
			category,
		)
	}
	w.Flush()
	fmt.Print(sb.String())
}
