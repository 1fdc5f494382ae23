package types

// Standard table names for Store.GetTable.
const (
	TableCategories     = "categories"
	TableProperties     = "properties"
	TableItems          = "items"
	TableCustomers      = "customers"
	TableRents          = "rents"
	TableRentItems      = "rent_items"
	TableItemValues     = "item_values"
	TableCustomerValues = "customer_values"
	TableRentValues     = "rent_values"
)

// StandardTableNames lists all standard table names for enumeration.
var StandardTableNames = []string{
	TableCategories,
	TableProperties,
	TableItems,
	TableCustomers,
	TableRents,
	TableRentItems,
	TableItemValues,
	TableCustomerValues,
	TableRentValues,
}

// ValueTableFor returns the property-value table name for a property scope.
// Returns ErrUnsupportedType for an unknown scope.
func ValueTableFor(scope string) (string, error) {
	switch scope {
	case ScopeItem:
		return TableItemValues, nil
	case ScopeCustomer:
		return TableCustomerValues, nil
	case ScopeRent:
		return TableRentValues, nil
	default:
		return "", ErrUnsupportedType
	}
}
