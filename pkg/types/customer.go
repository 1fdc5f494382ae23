package types

// Customer is a renting party.
type Customer struct {
	CustomerID string
	Name       string
	Surname    string
	Email      string
}

// Validate checks that the customer has a name.
func (c *Customer) Validate() error {
	if c.Name == "" {
		return ErrInvalidName
	}
	return nil
}
