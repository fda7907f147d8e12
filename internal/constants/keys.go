package constants

import "github.com/mwitczak/cabplanner/pkg/enums"

// Well-known constant keys. The formula engine reads these through a
// Snapshot and falls back to the listed defaults when a key was never
// seeded, so a fresh database still computes sensible cabinets.
const (
	KeyBoardThickness       = "board_thickness"
	KeyHDFThickness         = "hdf_thickness"
	KeyMinCut               = "min_cut"
	KeyRailHeight           = "rail_height"
	KeyShelfBackClearance   = "shelf_back_clearance"
	KeyBackPlayHeight       = "back_play_height"
	KeyBackPlayWidth        = "back_play_width"
	KeyFrontGap             = "front_gap"
	KeyDrawerTopFrontHeight = "drawer_top_front_height"
	KeyBaseHeight           = "base_height"
	KeyUpperHeight          = "upper_height"
	KeyTallHeight           = "tall_height"
	KeyBaseDepth            = "base_depth"
	KeyUpperDepth           = "upper_depth"
	KeyTallDepth            = "tall_depth"
)

// Default describes one seedable constant.
type Default struct {
	Key         string
	Value       float64
	Type        enums.ConstantType
	Group       string
	Description string
}

// Defaults lists every constant the planner knows about, grouped the way the
// settings editor presents them.
var Defaults = []Default{
	{KeyBoardThickness, 18, enums.ConstantInt, "plyty", "chipboard thickness in mm"},
	{KeyHDFThickness, 3, enums.ConstantInt, "plyty", "HDF back panel thickness in mm"},
	{KeyMinCut, 10, enums.ConstantInt, "plyty", "smallest dimension the saw can cut"},
	{KeyRailHeight, 100, enums.ConstantInt, "plyty", "height of the stiffening rail blank (listwa)"},
	{KeyShelfBackClearance, 10, enums.ConstantInt, "plyty", "shelf setback from the back panel"},
	{KeyBackPlayHeight, 2, enums.ConstantInt, "plyty", "HDF back height play"},
	{KeyBackPlayWidth, 2, enums.ConstantInt, "plyty", "HDF back width play"},
	{KeyFrontGap, 3, enums.ConstantInt, "fronty", "gap around doors and drawer faces"},
	{KeyDrawerTopFrontHeight, 140, enums.ConstantInt, "fronty", "top drawer face height"},
	{KeyBaseHeight, 720, enums.ConstantInt, "wymiary", "default base cabinet height"},
	{KeyUpperHeight, 720, enums.ConstantInt, "wymiary", "default upper cabinet height"},
	{KeyTallHeight, 2020, enums.ConstantInt, "wymiary", "default tall cabinet height"},
	{KeyBaseDepth, 560, enums.ConstantInt, "wymiary", "default base cabinet depth"},
	{KeyUpperDepth, 300, enums.ConstantInt, "wymiary", "default upper cabinet depth"},
	{KeyTallDepth, 560, enums.ConstantInt, "wymiary", "default tall cabinet depth"},
}
