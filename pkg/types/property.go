package types

import (
	"fmt"
	"strconv"
	"time"
)

// Property value types determine the scalar kind a property's values carry.
const (
	ValueTypeInteger = "integer"
	ValueTypeFloat   = "float"
	ValueTypeBoolean = "boolean"
	ValueTypeText    = "text"
	ValueTypeDate    = "date"
)

// validValueTypes is the set of recognized property value types.
var validValueTypes = map[string]bool{
	ValueTypeInteger: true,
	ValueTypeFloat:   true,
	ValueTypeBoolean: true,
	ValueTypeText:    true,
	ValueTypeDate:    true,
}

// Property scopes name the entity kind a definition attaches values to.
// Item-scoped definitions belong to a category and are inherited down the
// tree; customer and rent scopes are global.
const (
	ScopeItem     = "item"
	ScopeCustomer = "customer"
	ScopeRent     = "rent"
)

// validScopes is the set of recognized property scopes.
var validScopes = map[string]bool{
	ScopeItem:     true,
	ScopeCustomer: true,
	ScopeRent:     true,
}

// DateLayout is the text encoding for date-typed property values.
const DateLayout = "2006-01-02"

// PropertyDefinition is a named, typed attribute schema. Item-scoped
// definitions are owned by a category; deleting the category deletes them.
type PropertyDefinition struct {
	PropertyID string    // UUID v7, generated on creation.
	Name       string    // Human-readable name (required, non-empty).
	ValueType  string    // One of the ValueType constants.
	Scope      string    // One of the Scope constants.
	CategoryID string    // Owning category; required for item scope only.
	CreatedAt  time.Time // Timestamp of creation; orders inherited results.
}

// IsValidValueType reports whether the given string is a recognized value type.
func IsValidValueType(vt string) bool {
	return validValueTypes[vt]
}

// IsValidScope reports whether the given string is a recognized scope.
func IsValidScope(s string) bool {
	return validScopes[s]
}

// Validate checks that the definition is well-formed.
func (d *PropertyDefinition) Validate() error {
	if d.Name == "" {
		return ErrInvalidName
	}
	if !validValueTypes[d.ValueType] {
		return ErrUnsupportedType
	}
	if !validScopes[d.Scope] {
		return ErrUnsupportedType
	}
	if d.Scope == ScopeItem && d.CategoryID == "" {
		return ErrInvalidData
	}
	if d.Scope != ScopeItem && d.CategoryID != "" {
		return ErrInvalidData
	}
	return nil
}

// Encode converts a typed Go value to its stored text form according to the
// definition's value type. Returns ErrTypeMismatch when the value's Go type
// does not match the declared kind, ErrUnsupportedType for an unknown kind.
func (d *PropertyDefinition) Encode(v any) (string, error) {
	switch d.ValueType {
	case ValueTypeInteger:
		switch n := v.(type) {
		case int64:
			return strconv.FormatInt(n, 10), nil
		case int:
			return strconv.Itoa(n), nil
		}
		return "", ErrTypeMismatch
	case ValueTypeFloat:
		f, ok := v.(float64)
		if !ok {
			return "", ErrTypeMismatch
		}
		return strconv.FormatFloat(f, 'g', -1, 64), nil
	case ValueTypeBoolean:
		b, ok := v.(bool)
		if !ok {
			return "", ErrTypeMismatch
		}
		return strconv.FormatBool(b), nil
	case ValueTypeText:
		s, ok := v.(string)
		if !ok {
			return "", ErrTypeMismatch
		}
		return s, nil
	case ValueTypeDate:
		t, ok := v.(time.Time)
		if !ok {
			return "", ErrTypeMismatch
		}
		return t.Format(DateLayout), nil
	default:
		return "", ErrUnsupportedType
	}
}

// Decode converts the stored text form back to a typed Go value: int64,
// float64, bool, string, or time.Time. Returns ErrUnsupportedType for an
// unknown kind; parse failures are wrapped and returned as-is.
func (d *PropertyDefinition) Decode(raw string) (any, error) {
	switch d.ValueType {
	case ValueTypeInteger:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("decoding integer value %q: %w", raw, err)
		}
		return n, nil
	case ValueTypeFloat:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("decoding float value %q: %w", raw, err)
		}
		return f, nil
	case ValueTypeBoolean:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("decoding boolean value %q: %w", raw, err)
		}
		return b, nil
	case ValueTypeText:
		return raw, nil
	case ValueTypeDate:
		t, err := time.Parse(DateLayout, raw)
		if err != nil {
			return nil, fmt.Errorf("decoding date value %q: %w", raw, err)
		}
		return t, nil
	default:
		return nil, ErrUnsupportedType
	}
}
