package reports_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/mwitczak/cabplanner/internal/reports"
)

func TestWriteXLSX(t *testing.T) {
	cutlist := reports.BuildCutList(sampleProject())
	path := filepath.Join(t.TempDir(), "cutlist.xlsx")

	require.NoError(t, reports.WriteXLSX(cutlist, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t,
		[]string{"Formatki", "Fronty", "Witryny", "HDF", "Akcesoria"},
		f.GetSheetList())

	name, err := f.GetCellValue("Formatki", "B2")
	require.NoError(t, err)
	assert.Equal(t, "bok", name)

	qty, err := f.GetCellValue("Formatki", "E2")
	require.NoError(t, err)
	assert.Equal(t, "4", qty)

	front, err := f.GetCellValue("Fronty", "F2")
	require.NoError(t, err)
	assert.Equal(t, "grafit", front)

	accessory, err := f.GetCellValue("Akcesoria", "B2")
	require.NoError(t, err)
	assert.Equal(t, "zawias", accessory)
}

func TestWriteXLSXRequiresCutList(t *testing.T) {
	err := reports.WriteXLSX(nil, filepath.Join(t.TempDir(), "cutlist.xlsx"))
	require.Error(t, err)
}

func TestWritePDF(t *testing.T) {
	cutlist := reports.BuildCutList(sampleProject())
	path := filepath.Join(t.TempDir(), "cutlist.pdf")

	require.NoError(t, reports.WritePDF(cutlist, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestWriteLabels(t *testing.T) {
	cutlist := reports.BuildCutList(sampleProject())
	path := filepath.Join(t.TempDir(), "labels.pdf")

	require.NoError(t, reports.WriteLabels(cutlist, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestEstimateSheets(t *testing.T) {
	cutlist := reports.BuildCutList(sampleProject())

	estimate, err := reports.EstimateSheets(cutlist, 2800, 2070, 15, 200)
	require.NoError(t, err)

	// Formatki: 720×557 ×4, fronty: 714×594 ×2.
	wantArea := (0.720*0.557)*4 + (0.714*0.594)*2
	area, _ := estimate.TotalAreaSqM.Float64()
	assert.InDelta(t, wantArea, area, 0.001)

	assert.Equal(t, 1, estimate.SheetsMin)
	assert.Equal(t, 1, estimate.SheetsWithWaste)
	cost, _ := estimate.EstimatedCost.Float64()
	assert.InDelta(t, 200.0, cost, 0.0001)
}

func TestEstimateSheetsRejectsBadSheetSize(t *testing.T) {
	cutlist := reports.BuildCutList(sampleProject())

	_, err := reports.EstimateSheets(cutlist, 0, 2070, 15, 200)
	require.Error(t, err)
}
