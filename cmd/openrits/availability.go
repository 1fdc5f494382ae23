// Availability command reports free stock over a window.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	availabilityFrom string
	availabilityTo   string
)

var availabilityCmd = &cobra.Command{
	Use:   "availability <item-id>",
	Short: "Show the free stock of an item over a window",
	Long: `Availability reports the minimum number of free units of an item at
any instant within the closed window [--from, --to], counting every
overlapping rent. A negative number means the item is over-booked.

Example:
  openrits availability <item-id> --from 2026-09-01 --to 2026-09-05`,
	Args: cobra.ExactArgs(1),
	RunE: runAvailability,
}

func init() {
	availabilityCmd.Flags().StringVar(&availabilityFrom, "from", "", "first day of the window, YYYY-MM-DD (required)")
	availabilityCmd.Flags().StringVar(&availabilityTo, "to", "", "last day of the window, YYYY-MM-DD (required)")
	_ = availabilityCmd.MarkFlagRequired("from")
	_ = availabilityCmd.MarkFlagRequired("to")
}

func runAvailability(cmd *cobra.Command, args []string) error {
	from, err := parseDay("from", availabilityFrom)
	if err != nil {
		return err
	}
	to, err := parseDay("to", availabilityTo)
	if err != nil {
		return err
	}
	if to.Before(from) {
		return fmt.Errorf("--to %s is before --from %s", availabilityTo, availabilityFrom)
	}

	cat, backend, err := attachCatalog()
	if err != nil {
		return err
	}
	defer backend.Detach()

	item, err := getItem(backend, args[0])
	if err != nil {
		return err
	}

	available, err := cat.AvailableAmount(item, from, to)
	if err != nil {
		return fmt.Errorf("compute availability: %w", err)
	}

	if flagJSON {
		return printJSON(map[string]any{
			"ItemID":    item.ItemID,
			"From":      availabilityFrom,
			"To":        availabilityTo,
			"Stock":     item.Amount,
			"Available": available,
		})
	}
	fmt.Printf("%s: %d of %d available from %s to %s\n",
		truncate(item.Name, 40), available, item.Amount, availabilityFrom, availabilityTo)
	return nil
}
