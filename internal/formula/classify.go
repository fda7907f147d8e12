package formula

import (
	"regexp"
	"strings"

	"github.com/mwitczak/cabplanner/pkg/enums"
)

// Classification is the tagged form of a convention-encoded cabinet type
// name. All string sniffing happens here, once; the engine and everything
// downstream dispatch on the enums.
type Classification struct {
	Category enums.CabinetCategory
	Layout   enums.FrontLayout
	// WidthMM is the width encoded in the name ("D60" -> 600), nil when the
	// name carries no digits.
	WidthMM *int
}

var widthDigits = regexp.MustCompile(`\d+`)

// Classify parses a cabinet type name. Matching is done on the trimmed,
// uppercased name; prefix order matters ("DNZ90" is a corner unit, not a
// base cabinet, even though it also starts with "D").
func Classify(name string) Classification {
	norm := strings.ToUpper(strings.TrimSpace(name))

	return Classification{
		Category: detectCategory(norm),
		Layout:   detectLayout(norm),
		WidthMM:  ExtractWidthFromName(norm),
	}
}

func detectCategory(norm string) enums.CabinetCategory {
	switch {
	case strings.HasPrefix(norm, "DNZ"):
		return enums.CategoryCorner
	case strings.HasPrefix(norm, "D"):
		return enums.CategoryBase
	case strings.HasPrefix(norm, "G"):
		return enums.CategoryUpper
	case strings.HasPrefix(norm, "N"):
		return enums.CategoryTall
	default:
		return enums.CategoryUnknown
	}
}

func detectLayout(norm string) enums.FrontLayout {
	switch {
	case strings.Contains(norm, "S3"):
		return enums.FrontDrawer3
	case strings.Contains(norm, "S2"):
		return enums.FrontDrawer2
	case strings.Contains(norm, "S1"):
		return enums.FrontDrawer1
	case strings.Contains(norm, "WITRYNA"):
		return enums.FrontDisplayCase
	case strings.Contains(norm, "2X"), strings.Contains(norm, "SŁOJE PION"):
		return enums.FrontDoubleDoor
	default:
		return enums.FrontSingleDoor
	}
}

// ExtractWidthFromName reads the width encoded in a type name: the first run
// of digits is centimeters ("D60" -> 600mm, "G40S3" -> 400mm). Returns nil
// when the name has no digits.
func ExtractWidthFromName(name string) *int {
	match := widthDigits.FindString(name)
	if match == "" {
		return nil
	}
	width := 0
	for _, r := range match {
		width = width*10 + int(r-'0')
	}
	width *= 10
	return &width
}
