// Category commands manage the category tree.
package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/openrits/openrits/pkg/types"
)

var categoryCmd = &cobra.Command{
	Use:   "category",
	Short: "Manage the category tree",
}

var (
	categoryAddName   string
	categoryAddParent string
	categoryListRoot  string
	categoryMoveTo    string
)

var categoryAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a new category",
	Long: `Add creates a category, optionally under a parent.

Example:
  openrits category add --name "Tools"
  openrits category add --name "Ladders" --parent <category-id>`,
	RunE: runCategoryAdd,
}

var categoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories",
	Long: `List prints every category, or the descendants of one category.

Example:
  openrits category list
  openrits category list --under <category-id>`,
	RunE: runCategoryList,
}

var categoryMoveCmd = &cobra.Command{
	Use:   "move <category-id>",
	Short: "Move a category to a new parent",
	Long: `Move re-attaches a category (and its whole subtree) under a new
parent, or to the root when --to is omitted. Moving a category under
itself or one of its descendants is refused.

Example:
  openrits category move <category-id> --to <parent-id>
  openrits category move <category-id>`,
	Args: cobra.ExactArgs(1),
	RunE: runCategoryMove,
}

func init() {
	categoryAddCmd.Flags().StringVar(&categoryAddName, "name", "", "name for the category (required)")
	categoryAddCmd.Flags().StringVar(&categoryAddParent, "parent", "", "parent category ID (default: root)")
	_ = categoryAddCmd.MarkFlagRequired("name")

	categoryListCmd.Flags().StringVar(&categoryListRoot, "under", "", "list only descendants of this category")

	categoryMoveCmd.Flags().StringVar(&categoryMoveTo, "to", "", "new parent category ID (default: root)")

	categoryCmd.AddCommand(categoryAddCmd)
	categoryCmd.AddCommand(categoryListCmd)
	categoryCmd.AddCommand(categoryMoveCmd)
}

func runCategoryAdd(cmd *cobra.Command, args []string) error {
	backend, err := attachBackend()
	if err != nil {
		return err
	}
	defer backend.Detach()

	table, err := backend.GetTable(types.TableCategories)
	if err != nil {
		return fmt.Errorf("get categories table: %w", err)
	}

	cat := &types.Category{Name: categoryAddName, ParentID: categoryAddParent}
	if _, err := table.Set("", cat); err != nil {
		return fmt.Errorf("create category: %w", err)
	}

	if flagJSON {
		return printJSON(cat)
	}
	fmt.Printf("Created category: %s\n", cat.CategoryID)
	return nil
}

func runCategoryList(cmd *cobra.Command, args []string) error {
	cat, backend, err := attachCatalog()
	if err != nil {
		return err
	}
	defer backend.Detach()

	var categories []*types.Category
	if categoryListRoot != "" {
		root, err := cat.Category(categoryListRoot)
		if err != nil {
			return fmt.Errorf("get category: %w", err)
		}
		categories, err = cat.Descendants(root)
		if err != nil {
			return fmt.Errorf("fetch descendants: %w", err)
		}
	} else {
		table, err := backend.GetTable(types.TableCategories)
		if err != nil {
			return fmt.Errorf("get categories table: %w", err)
		}
		entities, err := table.Fetch(nil)
		if err != nil {
			return fmt.Errorf("fetch categories: %w", err)
		}
		categories = make([]*types.Category, len(entities))
		for i, e := range entities {
			categories[i] = e.(*types.Category)
		}
	}

	if flagJSON {
		return printJSON(categories)
	}
	printCategoryTable(categories)
	return nil
}

func runCategoryMove(cmd *cobra.Command, args []string) error {
	cat, backend, err := attachCatalog()
	if err != nil {
		return err
	}
	defer backend.Detach()

	moving, err := cat.Category(args[0])
	if err != nil {
		return fmt.Errorf("get category: %w", err)
	}

	var newParent *types.Category
	if categoryMoveTo != "" {
		newParent, err = cat.Category(categoryMoveTo)
		if err != nil {
			return fmt.Errorf("get new parent: %w", err)
		}
	}

	if err := cat.Reparent(moving, newParent); err != nil {
		return fmt.Errorf("move category: %w", err)
	}

	if flagJSON {
		return printJSON(moving)
	}
	if newParent == nil {
		fmt.Printf("Moved category %s to root\n", shortID(moving.CategoryID))
	} else {
		fmt.Printf("Moved category %s under %s\n", shortID(moving.CategoryID), shortID(newParent.CategoryID))
	}
	return nil
}

// printCategoryTable prints categories in a human-readable table format.
func printCategoryTable(categories []*types.Category) {
	if len(categories) == 0 {
		fmt.Println("No categories found.")
		return
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "ID\tNAME\tPARENT\tDEPTH")
	fmt.Fprintln(w, "--\t----\t------\t-----")
	for _, c := range categories {
		parent := "-"
		if c.ParentID != "" {
			parent = shortID(c.ParentID)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n",
			shortID(c.CategoryID),
			truncate(c.Name, 40),
			parent,
			len(c.Lineage),
		)
	}
	w.Flush()
	fmt.Print(sb.String())
}
