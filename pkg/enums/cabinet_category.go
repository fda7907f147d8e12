package enums

import "fmt"

// CabinetCategory is the tagged form of the naming-convention prefix on a
// cabinet type ("D60" is a base cabinet, "G40" an upper, "N60" a tall,
// "DNZ90" a corner unit).
type CabinetCategory string

const (
	CategoryBase    CabinetCategory = "base"
	CategoryUpper   CabinetCategory = "upper"
	CategoryTall    CabinetCategory = "tall"
	CategoryCorner  CabinetCategory = "corner"
	CategoryUnknown CabinetCategory = "unknown"
)

var validCabinetCategories = []CabinetCategory{
	CategoryBase,
	CategoryUpper,
	CategoryTall,
	CategoryCorner,
	CategoryUnknown,
}

// String implements fmt.Stringer.
func (c CabinetCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CabinetCategory.
func (c CabinetCategory) IsValid() bool {
	for _, candidate := range validCabinetCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCabinetCategory converts raw input into a CabinetCategory.
func ParseCabinetCategory(value string) (CabinetCategory, error) {
	for _, candidate := range validCabinetCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid cabinet category %q", value)
}
