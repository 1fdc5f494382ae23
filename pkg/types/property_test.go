package types

import (
	"errors"
	"testing"
	"time"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	tests := []struct {
		valueType string
		value     any
		raw       string
	}{
		{ValueTypeInteger, int64(1), "1"},
		{ValueTypeInteger, int64(-42), "-42"},
		{ValueTypeFloat, 0.5, "0.5"},
		{ValueTypeBoolean, true, "true"},
		{ValueTypeBoolean, false, "false"},
		{ValueTypeText, "Hello sir!", "Hello sir!"},
		{ValueTypeDate, time.Date(1918, 11, 11, 0, 0, 0, 0, time.UTC), "1918-11-11"},
	}
	for _, tt := range tests {
		t.Run(tt.valueType+"/"+tt.raw, func(t *testing.T) {
			def := &PropertyDefinition{Name: "p", ValueType: tt.valueType}

			raw, err := def.Encode(tt.value)
			if err != nil {
				t.Fatalf("Encode(%v) error = %v", tt.value, err)
			}
			if raw != tt.raw {
				t.Errorf("Encode(%v) = %q, want %q", tt.value, raw, tt.raw)
			}

			got, err := def.Decode(raw)
			if err != nil {
				t.Fatalf("Decode(%q) error = %v", raw, err)
			}
			if tt.valueType == ValueTypeDate {
				if !got.(time.Time).Equal(tt.value.(time.Time)) {
					t.Errorf("Decode(%q) = %v, want %v", raw, got, tt.value)
				}
				return
			}
			if got != tt.value {
				t.Errorf("Decode(%q) = %v, want %v", raw, got, tt.value)
			}
		})
	}
}

func TestEncodeAcceptsPlainInt(t *testing.T) {
	def := &PropertyDefinition{Name: "p", ValueType: ValueTypeInteger}
	raw, err := def.Encode(7)
	if err != nil {
		t.Fatalf("Encode(7) error = %v", err)
	}
	if raw != "7" {
		t.Errorf("Encode(7) = %q, want %q", raw, "7")
	}
}

func TestEncodeTypeMismatch(t *testing.T) {
	tests := []struct {
		valueType string
		value     any
	}{
		{ValueTypeInteger, "1"},
		{ValueTypeFloat, 1},
		{ValueTypeBoolean, "true"},
		{ValueTypeText, 1},
		{ValueTypeDate, "1918-11-11"},
	}
	for _, tt := range tests {
		def := &PropertyDefinition{Name: "p", ValueType: tt.valueType}
		if _, err := def.Encode(tt.value); !errors.Is(err, ErrTypeMismatch) {
			t.Errorf("Encode(%s, %v) error = %v, want ErrTypeMismatch", tt.valueType, tt.value, err)
		}
	}
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		valueType string
		raw       string
	}{
		{ValueTypeInteger, "one"},
		{ValueTypeFloat, "half"},
		{ValueTypeBoolean, "maybe"},
		{ValueTypeDate, "11.11.1918"},
	}
	for _, tt := range tests {
		def := &PropertyDefinition{Name: "p", ValueType: tt.valueType}
		if _, err := def.Decode(tt.raw); err == nil {
			t.Errorf("Decode(%s, %q) expected error, got nil", tt.valueType, tt.raw)
		}
	}
}

func TestUnsupportedValueType(t *testing.T) {
	def := &PropertyDefinition{Name: "p", ValueType: "list"}
	if _, err := def.Encode("x"); !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("Encode error = %v, want ErrUnsupportedType", err)
	}
	if _, err := def.Decode("x"); !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("Decode error = %v, want ErrUnsupportedType", err)
	}
}

func TestIsValidValueType(t *testing.T) {
	valid := []string{
		ValueTypeInteger, ValueTypeFloat, ValueTypeBoolean,
		ValueTypeText, ValueTypeDate,
	}
	for _, vt := range valid {
		if !IsValidValueType(vt) {
			t.Errorf("IsValidValueType(%q) = false, want true", vt)
		}
	}
	invalid := []string{"", "unknown", "timestamp", "list"}
	for _, vt := range invalid {
		if IsValidValueType(vt) {
			t.Errorf("IsValidValueType(%q) = true, want false", vt)
		}
	}
}

func TestPropertyDefinitionValidate(t *testing.T) {
	tests := []struct {
		name    string
		def     PropertyDefinition
		wantErr error
	}{
		{"valid item scope", PropertyDefinition{Name: "color", ValueType: ValueTypeText, Scope: ScopeItem, CategoryID: "c1"}, nil},
		{"valid customer scope", PropertyDefinition{Name: "phone", ValueType: ValueTypeText, Scope: ScopeCustomer}, nil},
		{"valid rent scope", PropertyDefinition{Name: "deposit", ValueType: ValueTypeFloat, Scope: ScopeRent}, nil},
		{"empty name", PropertyDefinition{ValueType: ValueTypeText, Scope: ScopeCustomer}, ErrInvalidName},
		{"unknown value type", PropertyDefinition{Name: "x", ValueType: "blob", Scope: ScopeCustomer}, ErrUnsupportedType},
		{"unknown scope", PropertyDefinition{Name: "x", ValueType: ValueTypeText, Scope: "warehouse"}, ErrUnsupportedType},
		{"item scope without category", PropertyDefinition{Name: "x", ValueType: ValueTypeText, Scope: ScopeItem}, ErrInvalidData},
		{"customer scope with category", PropertyDefinition{Name: "x", ValueType: ValueTypeText, Scope: ScopeCustomer, CategoryID: "c1"}, ErrInvalidData},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.def.Validate(); err != tt.wantErr {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValueTableFor(t *testing.T) {
	tests := []struct {
		scope string
		want  string
	}{
		{ScopeItem, TableItemValues},
		{ScopeCustomer, TableCustomerValues},
		{ScopeRent, TableRentValues},
	}
	for _, tt := range tests {
		got, err := ValueTableFor(tt.scope)
		if err != nil {
			t.Fatalf("ValueTableFor(%q) error = %v", tt.scope, err)
		}
		if got != tt.want {
			t.Errorf("ValueTableFor(%q) = %q, want %q", tt.scope, got, tt.want)
		}
	}
	if _, err := ValueTableFor("warehouse"); !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("ValueTableFor(unknown) error = %v, want ErrUnsupportedType", err)
	}
}
