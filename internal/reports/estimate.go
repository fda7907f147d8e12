package reports

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// SheetEstimate sums panel areas and converts them into a stock-sheet
// purchase recommendation.
type SheetEstimate struct {
	TotalAreaSqM    decimal.Decimal
	SheetAreaSqM    decimal.Decimal
	SheetsExact     decimal.Decimal
	SheetsMin       int
	SheetsWithWaste int
	WastePercent    decimal.Decimal
	EstimatedCost   decimal.Decimal
	PricePerSheet   decimal.Decimal
}

var sqmmPerSqm = decimal.NewFromInt(1_000_000)

// EstimateSheets computes how many stock sheets the panel buckets (formatki
// plus fronts) of the cut-list require, with a waste factor applied.
func EstimateSheets(cutlist *CutList, sheetWidthMM, sheetHeightMM, wastePercent, pricePerSheet float64) (*SheetEstimate, error) {
	if cutlist == nil {
		return nil, fmt.Errorf("cut-list is required")
	}
	if sheetWidthMM <= 0 || sheetHeightMM <= 0 {
		return nil, fmt.Errorf("sheet dimensions must be positive")
	}

	totalArea := decimal.Zero
	for _, rows := range [][]Row{cutlist.Formatki, cutlist.Fronty} {
		for _, row := range rows {
			area := decimal.NewFromInt(int64(row.HeightMM)).
				Mul(decimal.NewFromInt(int64(row.WidthMM))).
				Mul(decimal.NewFromInt(int64(row.Quantity)))
			totalArea = totalArea.Add(area)
		}
	}

	sheetArea := decimal.NewFromFloat(sheetWidthMM).Mul(decimal.NewFromFloat(sheetHeightMM))
	waste := decimal.NewFromFloat(wastePercent)
	price := decimal.NewFromFloat(pricePerSheet)

	exact := totalArea.Div(sheetArea)
	sheetsMin := int(exact.Ceil().IntPart())

	factor := decimal.NewFromInt(1).Add(waste.Div(decimal.NewFromInt(100)))
	sheetsWithWaste := int(exact.Mul(factor).Ceil().IntPart())
	if sheetsWithWaste < sheetsMin {
		sheetsWithWaste = sheetsMin
	}

	return &SheetEstimate{
		TotalAreaSqM:    totalArea.Div(sqmmPerSqm).Round(3),
		SheetAreaSqM:    sheetArea.Div(sqmmPerSqm).Round(3),
		SheetsExact:     exact.Round(3),
		SheetsMin:       sheetsMin,
		SheetsWithWaste: sheetsWithWaste,
		WastePercent:    waste,
		EstimatedCost:   price.Mul(decimal.NewFromInt(int64(sheetsWithWaste))).Round(2),
		PricePerSheet:   price,
	}, nil
}
