package catalog

import (
	"context"

	"github.com/mwitczak/cabplanner/internal/formula"
	"github.com/mwitczak/cabplanner/pkg/enums"
)

// seedNames is the standard template library. Each name encodes category,
// width and front layout; the engine derives the parts.
var seedNames = []string{
	"D40",
	"D60",
	"D80",
	"D60S1",
	"D60S2",
	"D60S3",
	"D80 2X",
	"DNZ90",
	"G40",
	"G60",
	"G60 WITRYNA",
	"N60",
}

// SeedDefaults creates the standard templates that are missing, computing
// their parts with the current constants. Existing templates, edited or not,
// are left alone. Returns the number of templates created.
func SeedDefaults(ctx context.Context, svc Service, consts formula.Constants, kitchenType string) (int, error) {
	created := 0
	for _, name := range seedNames {
		existing, err := svc.GetByName(ctx, name)
		if err != nil {
			return created, err
		}
		if existing != nil {
			continue
		}

		plans, err := formula.Compute(name, formula.Dims{}, consts)
		if err != nil {
			return created, err
		}

		input := CreateTemplateInput{
			KitchenType: kitchenType,
			Name:        name,
			DrawerRows:  drawerRows(name, plans),
			Accessories: DefaultAccessories(name),
		}
		for _, plan := range plans {
			input.Parts = append(input.Parts, PartInput{
				PartName:    plan.PartName,
				HeightMM:    plan.HeightMM,
				WidthMM:     plan.WidthMM,
				Pieces:      plan.Pieces,
				Material:    plan.Material,
				ThicknessMM: plan.ThicknessMM,
				Wrapping:    plan.Wrapping,
				Comments:    plan.Comments,
			})
		}

		if _, err := svc.Create(ctx, input); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

// drawerRows records the front stack of a drawer cabinet, row heights taken
// from the computed drawer faces (top row first).
func drawerRows(name string, plans []formula.PartPlan) []DrawerRowInput {
	cls := formula.Classify(name)
	count := cls.Layout.DrawerRows()
	if count == 0 {
		return nil
	}

	var heights []int
	for _, plan := range plans {
		if plan.Material != formula.MaterialFront {
			continue
		}
		for i := 0; i < plan.Pieces; i++ {
			heights = append(heights, plan.HeightMM)
		}
	}

	rows := make([]DrawerRowInput, 0, count)
	for i := 0; i < count; i++ {
		row := DrawerRowInput{RowNumber: i + 1}
		if i < len(heights) {
			height := heights[i]
			row.FrontHeightMM = &height
		}
		rows = append(rows, row)
	}
	return rows
}

// DefaultAccessories derives the hardware lines from the front layout: hinges
// per door leaf, a slide pair per drawer row.
func DefaultAccessories(name string) []AccessoryInput {
	cls := formula.Classify(name)

	if rows := cls.Layout.DrawerRows(); rows > 0 {
		return []AccessoryInput{
			{Name: "prowadnica szuflady (komplet)", Count: rows},
			{Name: "uchwyt", Count: rows},
		}
	}

	doors := 1
	if cls.Layout == enums.FrontDoubleDoor {
		doors = 2
	}
	accessories := []AccessoryInput{
		{Name: "zawias puszkowy", Count: 2 * doors},
		{Name: "uchwyt", Count: doors},
	}
	if cls.Layout == enums.FrontDisplayCase {
		accessories = append(accessories, AccessoryInput{Name: "zawias do ramy aluminiowej", Count: 2})
	}
	return accessories
}
