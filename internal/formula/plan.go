package formula

// Materials stamped on computed parts. The report aggregator buckets rows by
// a case-insensitive prefix match on these strings, so they are part of the
// data contract, not just labels.
const (
	MaterialBoard = "PŁYTA"
	MaterialFront = "FRONT"
	MaterialHDF   = "HDF"
	MaterialGlass = "WITRYNA"
)

// PartPlan is one computed manufactured piece before persistence. Plans are
// produced fresh on every engine run and never mutated afterwards. A plan
// needs a name, a material and strictly positive dimensions to be persisted.
type PartPlan struct {
	PartName    string `validate:"required"`
	HeightMM    int    `validate:"gt=0"`
	WidthMM     int    `validate:"gt=0"`
	Pieces      int    `validate:"gte=1"`
	Material    string `validate:"required"`
	ThicknessMM *int
	Wrapping    *string
	Comments    *string
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }
