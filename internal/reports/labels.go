package reports

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"
)

func bytesReader(b []byte) *bytes.Reader { return bytes.NewReader(b) }

// LabelInfo is the payload encoded into each part label's QR code.
type LabelInfo struct {
	Project  string `json:"project"`
	Cabinet  string `json:"cabinet"`
	PartName string `json:"part"`
	HeightMM int    `json:"height_mm"`
	WidthMM  int    `json:"width_mm"`
	Quantity int    `json:"qty"`
	Color    string `json:"color"`
}

// Label sheet layout (3 columns x 10 rows on A4).
const (
	labelPageWidth  = 210.0
	labelMarginTop  = 10.0
	labelMarginLeft = 5.0
	labelWidth      = 66.7
	labelHeight     = 27.5
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSizeMM        = 20.0
	labelPadding    = 2.0
)

// WriteLabels generates a PDF of QR-coded labels, one label per cut-list
// row, covering every bucket with physical parts.
func WriteLabels(cutlist *CutList, path string) error {
	if cutlist == nil {
		return fmt.Errorf("cut-list is required")
	}

	var labels []LabelInfo
	for _, rows := range [][]Row{cutlist.Formatki, cutlist.Fronty, cutlist.Witryny, cutlist.HDF} {
		for _, row := range rows {
			labels = append(labels, LabelInfo{
				Project:  cutlist.ProjectName,
				Cabinet:  plainOrdinal(row.Ordinal),
				PartName: row.PartName,
				HeightMM: row.HeightMM,
				WidthMM:  row.WidthMM,
				Quantity: row.Quantity,
				Color:    row.Color,
			})
		}
	}
	if len(labels) == 0 {
		return fmt.Errorf("no parts to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, label); err != nil {
			return fmt.Errorf("rendering label for %q: %w", label.PartName, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

func renderLabel(pdf *fpdf.Fpdf, x, y float64, label LabelInfo) error {
	payload, err := json.Marshal(label)
	if err != nil {
		return err
	}
	png, err := qrcode.Encode(string(payload), qrcode.Medium, 256)
	if err != nil {
		return err
	}

	imageName := fmt.Sprintf("qr-%s-%s-%dx%d", label.Cabinet, label.PartName, label.HeightMM, label.WidthMM)
	pdf.RegisterImageOptionsReader(imageName, fpdf.ImageOptions{ImageType: "PNG"}, bytesReader(png))
	pdf.ImageOptions(imageName, x+labelPadding, y+labelPadding, qrSizeMM, qrSizeMM, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding + qrSizeMM + labelPadding
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetXY(textX, y+labelPadding)
	pdf.CellFormat(labelWidth-qrSizeMM-3*labelPadding, 4, fmt.Sprintf("%s %s", label.Cabinet, label.PartName), "", 2, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(labelWidth-qrSizeMM-3*labelPadding, 4, fmt.Sprintf("%d x %d mm", label.HeightMM, label.WidthMM), "", 2, "L", false, 0, "")
	pdf.CellFormat(labelWidth-qrSizeMM-3*labelPadding, 4, fmt.Sprintf("szt. %d", label.Quantity), "", 2, "L", false, 0, "")
	pdf.CellFormat(labelWidth-qrSizeMM-3*labelPadding, 4, label.Color, "", 2, "L", false, 0, "")
	return nil
}
