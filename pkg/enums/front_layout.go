package enums

import "fmt"

// FrontLayout selects how the front of a cabinet is split into doors or
// drawer faces. Derived once from the type name by the classifier; nothing
// downstream sniffs the name string again.
type FrontLayout string

const (
	FrontSingleDoor  FrontLayout = "single_door"
	FrontDoubleDoor  FrontLayout = "double_door"
	FrontDrawer1     FrontLayout = "drawer_1"
	FrontDrawer2     FrontLayout = "drawer_2"
	FrontDrawer3     FrontLayout = "drawer_3"
	FrontDisplayCase FrontLayout = "display_case"
)

var validFrontLayouts = []FrontLayout{
	FrontSingleDoor,
	FrontDoubleDoor,
	FrontDrawer1,
	FrontDrawer2,
	FrontDrawer3,
	FrontDisplayCase,
}

// String implements fmt.Stringer.
func (f FrontLayout) String() string {
	return string(f)
}

// IsValid reports whether the value is a known FrontLayout.
func (f FrontLayout) IsValid() bool {
	for _, candidate := range validFrontLayouts {
		if candidate == f {
			return true
		}
	}
	return false
}

// DrawerRows returns the number of drawer faces for drawer layouts, 0 otherwise.
func (f FrontLayout) DrawerRows() int {
	switch f {
	case FrontDrawer1:
		return 1
	case FrontDrawer2:
		return 2
	case FrontDrawer3:
		return 3
	default:
		return 0
	}
}

// ParseFrontLayout converts raw input into a FrontLayout.
func ParseFrontLayout(value string) (FrontLayout, error) {
	for _, candidate := range validFrontLayouts {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid front layout %q", value)
}
