package enums

import "fmt"

// ConstantType describes how a stored constant should be rendered for
// editing. Values are always persisted as floats regardless of this tag;
// the type is display metadata only and deliberately not enforced.
type ConstantType string

const (
	ConstantInt    ConstantType = "int"
	ConstantFloat  ConstantType = "float"
	ConstantBool   ConstantType = "bool"
	ConstantString ConstantType = "str"
)

var validConstantTypes = []ConstantType{
	ConstantInt,
	ConstantFloat,
	ConstantBool,
	ConstantString,
}

// String implements fmt.Stringer.
func (c ConstantType) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ConstantType.
func (c ConstantType) IsValid() bool {
	for _, candidate := range validConstantTypes {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseConstantType converts raw input into a ConstantType.
func ParseConstantType(value string) (ConstantType, error) {
	for _, candidate := range validConstantTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid constant type %q", value)
}
