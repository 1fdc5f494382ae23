package types

import "strings"

// LineageSeparator delimits category IDs in the stored lineage text form.
// IDs must never contain it; substring containment checks on the encoded
// form are only correct under that invariant.
const LineageSeparator = ","

// Lineage is the ordered sequence of ancestor category IDs, root first,
// immediate parent last. A root category has an empty lineage.
//
// Internally the lineage is an explicit ID sequence; the delimited text
// form ",id1,id2,...,idN," (root: ",") exists only at the storage boundary.
type Lineage []string

// ValidateLineageID reports whether id may appear in a lineage: non-empty
// and free of the separator character.
func ValidateLineageID(id string) error {
	if id == "" || strings.Contains(id, LineageSeparator) {
		return ErrInvalidLineage
	}
	return nil
}

// ParseLineage decodes the stored text form into an ID sequence.
// Accepts "" and "," as the empty (root) lineage.
func ParseLineage(s string) (Lineage, error) {
	if s == "" || s == LineageSeparator {
		return Lineage{}, nil
	}
	if !strings.HasPrefix(s, LineageSeparator) || !strings.HasSuffix(s, LineageSeparator) {
		return nil, ErrInvalidLineage
	}
	parts := strings.Split(s[1:len(s)-1], LineageSeparator)
	lin := make(Lineage, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			return nil, ErrInvalidLineage
		}
		lin = append(lin, p)
	}
	return lin, nil
}

// String encodes the lineage in the delimited storage form.
func (l Lineage) String() string {
	if len(l) == 0 {
		return LineageSeparator
	}
	return LineageSeparator + strings.Join(l, LineageSeparator) + LineageSeparator
}

// Contains reports whether id is one of the ancestors in the lineage.
func (l Lineage) Contains(id string) bool {
	for _, a := range l {
		if a == id {
			return true
		}
	}
	return false
}

// HasPrefix reports whether l starts with the given ancestor sequence.
func (l Lineage) HasPrefix(prefix Lineage) bool {
	if len(prefix) > len(l) {
		return false
	}
	for i, id := range prefix {
		if l[i] != id {
			return false
		}
	}
	return true
}

// Child returns the lineage a direct child of a category with this lineage
// and the given ID would carry.
func (l Lineage) Child(id string) Lineage {
	child := make(Lineage, len(l), len(l)+1)
	copy(child, l)
	return append(child, id)
}

// Clone returns an independent copy of the lineage.
func (l Lineage) Clone() Lineage {
	c := make(Lineage, len(l))
	copy(c, l)
	return c
}
