package reports

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// WriteXLSX renders the cut-list as a workbook with one worksheet per
// bucket, ready for the workshop.
func WriteXLSX(cutlist *CutList, path string) error {
	if cutlist == nil {
		return fmt.Errorf("cut-list is required")
	}

	f := excelize.NewFile()
	defer f.Close()

	partSheets := []struct {
		name string
		rows []Row
	}{
		{"Formatki", cutlist.Formatki},
		{"Fronty", cutlist.Fronty},
		{"Witryny", cutlist.Witryny},
		{"HDF", cutlist.HDF},
	}

	for i, sheet := range partSheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet.name); err != nil {
				return fmt.Errorf("renaming sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(sheet.name); err != nil {
				return fmt.Errorf("adding sheet %s: %w", sheet.name, err)
			}
		}
		if err := writePartSheet(f, sheet.name, sheet.rows); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet("Akcesoria"); err != nil {
		return fmt.Errorf("adding sheet Akcesoria: %w", err)
	}
	if err := writeAccessorySheet(f, cutlist.Akcesoria); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

func writePartSheet(f *excelize.File, sheet string, rows []Row) error {
	header := []any{"Szafka", "Nazwa", "Wysokość [mm]", "Szerokość [mm]", "Ilość", "Kolor", "Okleina", "Uwagi"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []any{row.Ordinal, row.PartName, row.HeightMM, row.WidthMM, row.Quantity, row.Color, row.Wrapping, row.Notes}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}
	return nil
}

func writeAccessorySheet(f *excelize.File, rows []AccessoryRow) error {
	header := []any{"Szafka", "Nazwa", "Ilość"}
	if err := f.SetSheetRow("Akcesoria", "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []any{row.Ordinal, row.Name, row.Quantity}
		if err := f.SetSheetRow("Akcesoria", cell, &values); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}
	return nil
}
