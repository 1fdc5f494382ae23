package types

import "testing"

func TestParseLineage(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Lineage
		wantErr error
	}{
		{"empty string", "", Lineage{}, nil},
		{"root form", ",", Lineage{}, nil},
		{"single ancestor", ",a,", Lineage{"a"}, nil},
		{"three ancestors", ",a,b,c,", Lineage{"a", "b", "c"}, nil},
		{"missing leading separator", "a,b,", nil, ErrInvalidLineage},
		{"missing trailing separator", ",a,b", nil, ErrInvalidLineage},
		{"empty segment", ",a,,b,", nil, ErrInvalidLineage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLineage(tt.in)
			if err != tt.wantErr {
				t.Fatalf("ParseLineage(%q) error = %v, want %v", tt.in, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ParseLineage(%q) = %v, want %v", tt.in, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ParseLineage(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestLineageString(t *testing.T) {
	tests := []struct {
		name string
		in   Lineage
		want string
	}{
		{"empty", Lineage{}, ","},
		{"nil", nil, ","},
		{"one", Lineage{"a"}, ",a,"},
		{"three", Lineage{"a", "b", "c"}, ",a,b,c,"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.String(); got != tt.want {
				t.Errorf("Lineage.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLineageRoundTrip(t *testing.T) {
	for _, lin := range []Lineage{{}, {"a"}, {"a", "b"}, {"x", "y", "z"}} {
		got, err := ParseLineage(lin.String())
		if err != nil {
			t.Fatalf("ParseLineage(%q) error = %v", lin.String(), err)
		}
		if got.String() != lin.String() {
			t.Errorf("round trip of %v = %v", lin, got)
		}
	}
}

func TestLineageContains(t *testing.T) {
	lin := Lineage{"a", "b", "c"}
	for _, id := range []string{"a", "b", "c"} {
		if !lin.Contains(id) {
			t.Errorf("Contains(%q) = false, want true", id)
		}
	}
	for _, id := range []string{"", "d", "ab"} {
		if lin.Contains(id) {
			t.Errorf("Contains(%q) = true, want false", id)
		}
	}
}

func TestLineageHasPrefix(t *testing.T) {
	lin := Lineage{"a", "b", "c"}
	tests := []struct {
		prefix Lineage
		want   bool
	}{
		{Lineage{}, true},
		{Lineage{"a"}, true},
		{Lineage{"a", "b"}, true},
		{Lineage{"a", "b", "c"}, true},
		{Lineage{"b"}, false},
		{Lineage{"a", "c"}, false},
		{Lineage{"a", "b", "c", "d"}, false},
	}
	for _, tt := range tests {
		if got := lin.HasPrefix(tt.prefix); got != tt.want {
			t.Errorf("HasPrefix(%v) = %v, want %v", tt.prefix, got, tt.want)
		}
	}
}

func TestLineageChild(t *testing.T) {
	parent := Lineage{"a", "b"}
	child := parent.Child("c")
	if child.String() != ",a,b,c," {
		t.Errorf("Child lineage = %q, want %q", child.String(), ",a,b,c,")
	}
	// The parent must stay untouched.
	if parent.String() != ",a,b," {
		t.Errorf("parent mutated to %q", parent.String())
	}
}

func TestValidateLineageID(t *testing.T) {
	if err := ValidateLineageID("0190fa5e-0001-7000-8000-000000000001"); err != nil {
		t.Errorf("ValidateLineageID(uuid) = %v, want nil", err)
	}
	for _, id := range []string{"", "a,b", ","} {
		if err := ValidateLineageID(id); err != ErrInvalidLineage {
			t.Errorf("ValidateLineageID(%q) = %v, want ErrInvalidLineage", id, err)
		}
	}
}
