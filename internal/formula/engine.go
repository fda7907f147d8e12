package formula

import (
	"math"

	"go.uber.org/multierr"

	"github.com/mwitczak/cabplanner/internal/constants"
	"github.com/mwitczak/cabplanner/pkg/enums"
	pkgerrors "github.com/mwitczak/cabplanner/pkg/errors"
)

// Constants is the read surface the engine needs from the constants store.
type Constants interface {
	Float(key string, fallback float64) float64
	Int(key string, fallback int) int
}

// Hardcoded fallbacks used when the corresponding constant was never seeded.
const (
	defaultWidthMM        = 600
	defaultBoardThickness = 18
	defaultHDFThickness   = 3
	defaultMinCut         = 10
	defaultRailHeight     = 100
	defaultShelfClearance = 10
	defaultBackPlay       = 2
	defaultFrontGap       = 3
	defaultDrawerTopH     = 140
)

// Category defaults (height, depth) in mm.
var categoryDefaults = map[enums.CabinetCategory]struct{ height, depth int }{
	enums.CategoryBase:  {720, 560},
	enums.CategoryUpper: {720, 300},
	enums.CategoryTall:  {2020, 560},
}

// Dims carries the user-declared outer dimensions; nil fields fall back to
// the name-encoded width and category constants.
type Dims struct {
	WidthMM  *int
	HeightMM *int
	DepthMM  *int
}

// Compute derives the cut list for a cabinet type name and its declared
// dimensions. It is a pure function of its inputs: the same name, dims and
// constants snapshot always produce the same plans.
func Compute(name string, dims Dims, consts Constants) ([]PartPlan, error) {
	cls := Classify(name)
	w, h, d := resolveDims(cls, dims, consts)

	board := consts.Float(constants.KeyBoardThickness, defaultBoardThickness)
	hdf := consts.Float(constants.KeyHDFThickness, defaultHDFThickness)

	plans := make([]PartPlan, 0, 10)

	// Carcass: two sides, top and bottom rails, stiffening rail blanks.
	plans = append(plans,
		PartPlan{
			PartName:    "bok",
			HeightMM:    roundMM(h),
			WidthMM:     roundMM(d - hdf),
			Pieces:      2,
			Material:    MaterialBoard,
			ThicknessMM: intPtr(roundMM(board)),
			Wrapping:    strPtr("1D"),
		},
		PartPlan{
			PartName:    "wieniec",
			HeightMM:    roundMM(w - 2*board),
			WidthMM:     roundMM(d - hdf),
			Pieces:      2,
			Material:    MaterialBoard,
			ThicknessMM: intPtr(roundMM(board)),
			Wrapping:    strPtr("1D"),
		},
		PartPlan{
			PartName:    "listwa",
			HeightMM:    consts.Int(constants.KeyRailHeight, defaultRailHeight),
			WidthMM:     roundMM(w - 2*board),
			Pieces:      2,
			Material:    MaterialBoard,
			ThicknessMM: intPtr(roundMM(board)),
		},
	)

	// Shelves. Per-template shelf rules are not surfaced in the catalog yet;
	// every cabinet gets a single shelf.
	shelfClearance := consts.Float(constants.KeyShelfBackClearance, defaultShelfClearance)
	plans = append(plans, PartPlan{
		PartName:    "półka",
		HeightMM:    roundMM(d - shelfClearance - hdf),
		WidthMM:     roundMM(w - 2*board),
		Pieces:      shelfCount(cls),
		Material:    MaterialBoard,
		ThicknessMM: intPtr(roundMM(board)),
		Wrapping:    strPtr("1D"),
	})

	// HDF back panel, reduced by the play constants.
	plans = append(plans, PartPlan{
		PartName:    "plecy HDF",
		HeightMM:    roundMM(h - consts.Float(constants.KeyBackPlayHeight, defaultBackPlay)),
		WidthMM:     roundMM(w - consts.Float(constants.KeyBackPlayWidth, defaultBackPlay)),
		Pieces:      1,
		Material:    MaterialHDF,
		ThicknessMM: intPtr(roundMM(hdf)),
	})

	plans = append(plans, frontPlans(cls.Layout, w, h, consts)...)

	minCut := consts.Int(constants.KeyMinCut, defaultMinCut)
	if err := validatePlans(plans, minCut); err != nil {
		return nil, err
	}
	return plans, nil
}

func resolveDims(cls Classification, dims Dims, consts Constants) (w, h, d float64) {
	switch {
	case dims.WidthMM != nil:
		w = float64(*dims.WidthMM)
	case cls.WidthMM != nil:
		w = float64(*cls.WidthMM)
	default:
		w = defaultWidthMM
	}

	// Corner units share the base-cabinet height and depth constants.
	category := cls.Category
	if category == enums.CategoryCorner || category == enums.CategoryUnknown {
		category = enums.CategoryBase
	}
	defaults := categoryDefaults[category]

	if dims.HeightMM != nil {
		h = float64(*dims.HeightMM)
	} else {
		h = float64(consts.Int(heightKey(category), defaults.height))
	}

	if dims.DepthMM != nil {
		d = float64(*dims.DepthMM)
	} else {
		d = float64(consts.Int(depthKey(category), defaults.depth))
	}
	return w, h, d
}

func heightKey(category enums.CabinetCategory) string {
	switch category {
	case enums.CategoryUpper:
		return constants.KeyUpperHeight
	case enums.CategoryTall:
		return constants.KeyTallHeight
	default:
		return constants.KeyBaseHeight
	}
}

func depthKey(category enums.CabinetCategory) string {
	switch category {
	case enums.CategoryUpper:
		return constants.KeyUpperDepth
	case enums.CategoryTall:
		return constants.KeyTallDepth
	default:
		return constants.KeyBaseDepth
	}
}

func shelfCount(Classification) int { return 1 }

// frontPlans derives door or drawer-face parts for the resolved layout.
func frontPlans(layout enums.FrontLayout, w, h float64, consts Constants) []PartPlan {
	gap := consts.Float(constants.KeyFrontGap, defaultFrontGap)
	frontW := w - 2*gap
	frontH := h - 2*gap

	switch layout {
	case enums.FrontDoubleDoor:
		return []PartPlan{{
			PartName: "front",
			HeightMM: roundMM(frontH),
			WidthMM:  roundMM((w - 3*gap) / 2),
			Pieces:   2,
			Material: MaterialFront,
			Wrapping: strPtr("4D"),
		}}

	case enums.FrontDrawer1:
		return []PartPlan{{
			PartName: "front szuflady",
			HeightMM: roundMM(frontH),
			WidthMM:  roundMM(frontW),
			Pieces:   1,
			Material: MaterialFront,
			Wrapping: strPtr("4D"),
		}}

	case enums.FrontDrawer2:
		topH := consts.Float(constants.KeyDrawerTopFrontHeight, defaultDrawerTopH)
		return []PartPlan{
			{
				PartName: "front szuflady górny",
				HeightMM: roundMM(topH),
				WidthMM:  roundMM(frontW),
				Pieces:   1,
				Material: MaterialFront,
				Wrapping: strPtr("4D"),
			},
			{
				PartName: "front szuflady dolny",
				HeightMM: roundMM(h - topH - 3*gap),
				WidthMM:  roundMM(frontW),
				Pieces:   1,
				Material: MaterialFront,
				Wrapping: strPtr("4D"),
			},
		}

	case enums.FrontDrawer3:
		topH := consts.Float(constants.KeyDrawerTopFrontHeight, defaultDrawerTopH)
		lowerH := (h - topH - 4*gap) / 2
		return []PartPlan{
			{
				PartName: "front szuflady górny",
				HeightMM: roundMM(topH),
				WidthMM:  roundMM(frontW),
				Pieces:   1,
				Material: MaterialFront,
				Wrapping: strPtr("4D"),
			},
			{
				PartName: "front szuflady dolny",
				HeightMM: roundMM(lowerH),
				WidthMM:  roundMM(frontW),
				Pieces:   2,
				Material: MaterialFront,
				Wrapping: strPtr("4D"),
			},
		}

	case enums.FrontDisplayCase:
		return []PartPlan{{
			PartName: "rama aluminiowa",
			HeightMM: roundMM(frontH),
			WidthMM:  roundMM(frontW),
			Pieces:   1,
			Material: MaterialGlass,
			Comments: strPtr("szklany front w ramie aluminiowej"),
		}}

	default:
		return []PartPlan{{
			PartName: "front",
			HeightMM: roundMM(frontH),
			WidthMM:  roundMM(frontW),
			Pieces:   1,
			Material: MaterialFront,
			Wrapping: strPtr("4D"),
		}}
	}
}

func validatePlans(plans []PartPlan, minCut int) error {
	var errs error
	for _, plan := range plans {
		if plan.HeightMM <= 0 || plan.HeightMM < minCut {
			errs = multierr.Append(errs, pkgerrors.Newf(pkgerrors.CodeValidation,
				"part %q: height %dmm below minimum cut %dmm", plan.PartName, plan.HeightMM, minCut))
		}
		if plan.WidthMM <= 0 || plan.WidthMM < minCut {
			errs = multierr.Append(errs, pkgerrors.Newf(pkgerrors.CodeValidation,
				"part %q: width %dmm below minimum cut %dmm", plan.PartName, plan.WidthMM, minCut))
		}
	}
	if errs != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, errs, "computed parts failed validation")
	}
	return nil
}

func roundMM(v float64) int {
	return int(math.Round(v))
}
