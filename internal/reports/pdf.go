package reports

import (
	"fmt"

	"github.com/go-pdf/fpdf"
)

// Page layout constants (A4 portrait in mm).
const (
	pageWidth  = 210.0
	marginLeft = 15.0
	marginTop  = 15.0
	rowHeight  = 7.0
)

var partColWidths = []float64{15, 55, 25, 25, 15, 25, 20}

// WritePDF renders the cut-list as a printable A4 document, one section per
// bucket. Circled ordinals fall outside the core PDF fonts, so ordinals are
// printed in their "(n)" form here.
func WritePDF(cutlist *CutList, path string) error {
	if cutlist == nil {
		return fmt.Errorf("cut-list is required")
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-2*marginLeft, 10, fmt.Sprintf("Cut-list: %s", cutlist.ProjectName), "", 1, "L", false, 0, "")

	sections := []struct {
		title string
		rows  []Row
	}{
		{"Formatki", cutlist.Formatki},
		{"Fronty", cutlist.Fronty},
		{"Witryny", cutlist.Witryny},
		{"HDF", cutlist.HDF},
	}

	for _, section := range sections {
		if len(section.rows) == 0 {
			continue
		}
		renderPartSection(pdf, section.title, section.rows)
	}

	if len(cutlist.Akcesoria) > 0 {
		renderAccessorySection(pdf, cutlist.Akcesoria)
	}

	return pdf.OutputFileAndClose(path)
}

func renderPartSection(pdf *fpdf.Fpdf, title string, rows []Row) {
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetX(marginLeft)
	pdf.CellFormat(pageWidth-2*marginLeft, 8, title, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetX(marginLeft)
	headers := []string{"Szafka", "Nazwa", "Wys. [mm]", "Szer. [mm]", "Szt.", "Kolor", "Okleina"}
	for i, h := range headers {
		pdf.CellFormat(partColWidths[i], rowHeight, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(rowHeight)

	pdf.SetFont("Helvetica", "", 9)
	for _, row := range rows {
		pdf.SetX(marginLeft)
		cells := []string{
			plainOrdinal(row.Ordinal),
			row.PartName,
			fmt.Sprintf("%d", row.HeightMM),
			fmt.Sprintf("%d", row.WidthMM),
			fmt.Sprintf("%d", row.Quantity),
			row.Color,
			row.Wrapping,
		}
		for i, cell := range cells {
			pdf.CellFormat(partColWidths[i], rowHeight, cell, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(rowHeight)
	}
}

func renderAccessorySection(pdf *fpdf.Fpdf, rows []AccessoryRow) {
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetX(marginLeft)
	pdf.CellFormat(pageWidth-2*marginLeft, 8, "Akcesoria", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetX(marginLeft)
	widths := []float64{15, 120, 20}
	for i, h := range []string{"Szafka", "Nazwa", "Szt."} {
		pdf.CellFormat(widths[i], rowHeight, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(rowHeight)

	pdf.SetFont("Helvetica", "", 9)
	for _, row := range rows {
		pdf.SetX(marginLeft)
		cells := []string{plainOrdinal(row.Ordinal), row.Name, fmt.Sprintf("%d", row.Quantity)}
		for i, cell := range cells {
			pdf.CellFormat(widths[i], rowHeight, cell, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(rowHeight)
	}
}

// plainOrdinal maps a circled glyph back to "(n)" for fonts without the
// enclosed-alphanumerics block.
func plainOrdinal(ordinal string) string {
	runes := []rune(ordinal)
	if len(runes) == 1 && runes[0] >= 0x2460 && runes[0] <= 0x2473 {
		return fmt.Sprintf("(%d)", int(runes[0]-0x2460)+1)
	}
	return ordinal
}
