// Rent commands manage reservations.
package main

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/openrits/openrits/pkg/types"
)

var rentCmd = &cobra.Command{
	Use:   "rent",
	Short: "Manage rents",
}

var (
	rentCreateCustomer string
	rentCreateStart    string
	rentCreateEnd      string
	rentAddItemAmount  int
	rentListCustomer   string
)

var rentCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new rent",
	Long: `Create books a rent over a closed date interval.

Example:
  openrits rent create --customer <customer-id> --start 2026-09-01 --end 2026-09-05`,
	RunE: runRentCreate,
}

var rentAddItemCmd = &cobra.Command{
	Use:   "add-item <rent-id> <item-id>",
	Short: "Reserve an item on a rent",
	Long: `Add-item reserves a quantity of an item on an existing rent. A rent
holds at most one row per item.

Example:
  openrits rent add-item <rent-id> <item-id> --amount 2`,
	Args: cobra.ExactArgs(2),
	RunE: runRentAddItem,
}

var rentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List rents",
	RunE:  runRentList,
}

func init() {
	rentCreateCmd.Flags().StringVar(&rentCreateCustomer, "customer", "", "customer ID")
	rentCreateCmd.Flags().StringVar(&rentCreateStart, "start", "", "first day of the rent, YYYY-MM-DD (required)")
	rentCreateCmd.Flags().StringVar(&rentCreateEnd, "end", "", "last day of the rent, YYYY-MM-DD (required)")
	_ = rentCreateCmd.MarkFlagRequired("start")
	_ = rentCreateCmd.MarkFlagRequired("end")

	rentAddItemCmd.Flags().IntVar(&rentAddItemAmount, "amount", 1, "quantity to reserve")

	rentListCmd.Flags().StringVar(&rentListCustomer, "customer", "", "filter by customer ID")

	rentCmd.AddCommand(rentCreateCmd)
	rentCmd.AddCommand(rentAddItemCmd)
	rentCmd.AddCommand(rentListCmd)
}

// parseDay parses a YYYY-MM-DD flag value as midnight UTC.
func parseDay(flag, value string) (time.Time, error) {
	t, err := time.Parse(types.DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("--%s: expected YYYY-MM-DD, got %q", flag, value)
	}
	return t, nil
}

func runRentCreate(cmd *cobra.Command, args []string) error {
	start, err := parseDay("start", rentCreateStart)
	if err != nil {
		return err
	}
	end, err := parseDay("end", rentCreateEnd)
	if err != nil {
		return err
	}

	backend, err := attachBackend()
	if err != nil {
		return err
	}
	defer backend.Detach()

	table, err := backend.GetTable(types.TableRents)
	if err != nil {
		return fmt.Errorf("get rents table: %w", err)
	}

	rent := &types.Rent{CustomerID: rentCreateCustomer, Start: start, End: end}
	if _, err := table.Set("", rent); err != nil {
		return fmt.Errorf("create rent: %w", err)
	}

	if flagJSON {
		return printJSON(rent)
	}
	fmt.Printf("Created rent: %s\n", rent.RentID)
	return nil
}

func runRentAddItem(cmd *cobra.Command, args []string) error {
	backend, err := attachBackend()
	if err != nil {
		return err
	}
	defer backend.Detach()

	table, err := backend.GetTable(types.TableRentItems)
	if err != nil {
		return fmt.Errorf("get rent items table: %w", err)
	}

	ri := &types.RentItem{RentID: args[0], ItemID: args[1], Amount: rentAddItemAmount}
	if _, err := table.Set("", ri); err != nil {
		return fmt.Errorf("reserve item: %w", err)
	}

	if flagJSON {
		return printJSON(ri)
	}
	fmt.Printf("Reserved %d x %s on rent %s\n", ri.Amount, shortID(ri.ItemID), shortID(ri.RentID))
	return nil
}

func runRentList(cmd *cobra.Command, args []string) error {
	backend, err := attachBackend()
	if err != nil {
		return err
	}
	defer backend.Detach()

	table, err := backend.GetTable(types.TableRents)
	if err != nil {
		return fmt.Errorf("get rents table: %w", err)
	}

	filter := make(map[string]any)
	if rentListCustomer != "" {
		filter["customer_id"] = rentListCustomer
	}
	entities, err := table.Fetch(filter)
	if err != nil {
		return fmt.Errorf("fetch rents: %w", err)
	}

	rents := make([]*types.Rent, len(entities))
	for i, e := range entities {
		rents[i] = e.(*types.Rent)
	}

	if flagJSON {
		return printJSON(rents)
	}
	printRentTable(rents)
	return nil
}

// printRentTable prints rents in a human-readable table format.
func printRentTable(rents []*types.Rent) {
	if len(rents) == 0 {
		fmt.Println("No rents found.")
		return
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "ID\tCUSTOMER\tSTART\tEND\tISSUED\tRETURNED")
	fmt.Fprintln(w, "--\t--------\t-----\t---\t------\t--------")
	for _, r := range rents {
		customer := "-"
		if r.CustomerID != "" {
			customer = shortID(r.CustomerID)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			shortID(r.RentID),
			customer,
			r.Start.Format(types.DateLayout),
			r.End.Format(types.DateLayout),
			formatDay(r.Issued),
			formatDay(r.Returned),
		)
	}
	w.Flush()
	fmt.Print(sb.String())
}

// formatDay renders an optional timestamp as a date, or "-" when unset.
func formatDay(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(types.DateLayout)
}
