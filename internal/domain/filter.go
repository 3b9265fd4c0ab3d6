package domain

import (
	"fmt"
	"strings"
)

// FilterSet holds the structured constraints extracted from a shopper query.
// A nil field means the constraint was not found.
type FilterSet struct {
	MaxPrice *float64 `json:"max_price,omitempty"`
	Category *string  `json:"category,omitempty"`
	Material *string  `json:"material,omitempty"`
}

// IsEmpty reports whether no constraint is set
func (f FilterSet) IsEmpty() bool {
	return f.MaxPrice == nil && f.Category == nil && f.Material == nil
}

// SetMaxPrice sets the price ceiling unless one is already present.
// Returns true if the value was stored.
func (f *FilterSet) SetMaxPrice(v float64) bool {
	if f.MaxPrice != nil {
		return false
	}
	f.MaxPrice = &v
	return true
}

// SetCategory sets the category unless one is already present
func (f *FilterSet) SetCategory(v string) bool {
	if f.Category != nil {
		return false
	}
	f.Category = &v
	return true
}

// SetMaterial sets the material unless one is already present
func (f *FilterSet) SetMaterial(v string) bool {
	if f.Material != nil {
		return false
	}
	f.Material = &v
	return true
}

// OverrideCategory replaces the category regardless of what was extracted
func (f *FilterSet) OverrideCategory(v string) {
	f.Category = &v
}

func (f FilterSet) String() string {
	var parts []string
	if f.MaxPrice != nil {
		parts = append(parts, fmt.Sprintf("max_price=%g", *f.MaxPrice))
	}
	if f.Category != nil {
		parts = append(parts, "category="+*f.Category)
	}
	if f.Material != nil {
		parts = append(parts, "material="+*f.Material)
	}
	return "{" + strings.Join(parts, " ") + "}"
}
