package types

// PropertyValue instantiates a PropertyDefinition on an owning entity.
// One shape serves all three owner kinds (item, customer, rent); the
// definition's scope decides which value table a row lives in, so the
// owner kind is a plain field read rather than a type hierarchy.
type PropertyValue struct {
	ValueID    string // UUID v7, generated on creation.
	PropertyID string // Definition this value instantiates.
	OwnerID    string // Item, customer, or rent ID per the definition scope.
	Raw        string // Opaque text encoding of the typed value.
}

// Decode returns the typed Go value of Raw according to the definition.
func (v *PropertyValue) Decode(def *PropertyDefinition) (any, error) {
	return def.Decode(v.Raw)
}

// Validate checks that the value references a definition and an owner.
func (v *PropertyValue) Validate() error {
	if v.PropertyID == "" || v.OwnerID == "" {
		return ErrInvalidData
	}
	return nil
}
