// Customer commands manage the customer register.
package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/openrits/openrits/pkg/types"
)

var customerCmd = &cobra.Command{
	Use:   "customer",
	Short: "Manage customers",
}

var (
	customerAddName    string
	customerAddSurname string
	customerAddEmail   string
)

var customerAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Register a new customer",
	Long: `Add registers a customer.

Example:
  openrits customer add --name Ada --surname Lovelace --email ada@example.org`,
	RunE: runCustomerAdd,
}

var customerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List customers",
	RunE:  runCustomerList,
}

func init() {
	customerAddCmd.Flags().StringVar(&customerAddName, "name", "", "first name (required)")
	customerAddCmd.Flags().StringVar(&customerAddSurname, "surname", "", "surname")
	customerAddCmd.Flags().StringVar(&customerAddEmail, "email", "", "email address")
	_ = customerAddCmd.MarkFlagRequired("name")

	customerCmd.AddCommand(customerAddCmd)
	customerCmd.AddCommand(customerListCmd)
}

func runCustomerAdd(cmd *cobra.Command, args []string) error {
	backend, err := attachBackend()
	if err != nil {
		return err
	}
	defer backend.Detach()

	table, err := backend.GetTable(types.TableCustomers)
	if err != nil {
		return fmt.Errorf("get customers table: %w", err)
	}

	customer := &types.Customer{
		Name:    customerAddName,
		Surname: customerAddSurname,
		Email:   customerAddEmail,
	}
	if _, err := table.Set("", customer); err != nil {
		return fmt.Errorf("create customer: %w", err)
	}

	if flagJSON {
		return printJSON(customer)
	}
	fmt.Printf("Created customer: %s\n", customer.CustomerID)
	return nil
}

func runCustomerList(cmd *cobra.Command, args []string) error {
	backend, err := attachBackend()
	if err != nil {
		return err
	}
	defer backend.Detach()

	table, err := backend.GetTable(types.TableCustomers)
	if err != nil {
		return fmt.Errorf("get customers table: %w", err)
	}
	entities, err := table.Fetch(nil)
	if err != nil {
		return fmt.Errorf("fetch customers: %w", err)
	}

	customers := make([]*types.Customer, len(entities))
	for i, e := range entities {
		customers[i] = e.(*types.Customer)
	}

	if flagJSON {
		return printJSON(customers)
	}
	printCustomerTable(customers)
	return nil
}

// printCustomerTable prints customers in a human-readable table format.
func printCustomerTable(customers []*types.Customer) {
	if len(customers) == 0 {
		fmt.Println("No customers found.")
		return
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "ID\tNAME\tSURNAME\tEMAIL")
	fmt.Fprintln(w, "--\t----\t-------\t-----")
	for _, c := range customers {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			shortID(c.CustomerID),
			truncate(c.Name, 30),
			truncate(c.Surname, 30),
			truncate(c.Email, 40),
		)
	}
	w.Flush()
	fmt.Print(sb.String())
}
