package reports_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwitczak/cabplanner/internal/constants"
	"github.com/mwitczak/cabplanner/internal/formula"
	"github.com/mwitczak/cabplanner/internal/projects"
	"github.com/mwitczak/cabplanner/internal/reports"
	"github.com/mwitczak/cabplanner/internal/testdb"
	"github.com/mwitczak/cabplanner/pkg/db"
	"github.com/mwitczak/cabplanner/pkg/db/models"
)

func sampleProject() *models.Project {
	return &models.Project{
		ID:   uuid.New(),
		Name: "Kuchnia",
		Cabinets: []models.ProjectCabinet{
			{
				SequenceNumber: 1,
				BodyColor:      "biały",
				FrontColor:     "grafit",
				Quantity:       2,
				Parts: []models.ProjectCabinetPart{
					{PartName: "bok", HeightMM: 720, WidthMM: 557, Pieces: 2, Material: "PŁYTA"},
					{PartName: "front", HeightMM: 714, WidthMM: 594, Pieces: 1, Material: "FRONT"},
					{PartName: "plecy hdf", HeightMM: 718, WidthMM: 598, Pieces: 1, Material: "HDF"},
					{PartName: "rama aluminiowa", HeightMM: 714, WidthMM: 594, Pieces: 1, Material: "WITRYNA"},
				},
				Accessories: []models.ProjectCabinetAccessory{
					{Name: "zawias", Count: 2},
				},
			},
		},
	}
}

func TestBuildCutListBucketsByMaterial(t *testing.T) {
	cutlist := reports.BuildCutList(sampleProject())

	require.Len(t, cutlist.Formatki, 1)
	require.Len(t, cutlist.Fronty, 1)
	require.Len(t, cutlist.HDF, 1)
	require.Len(t, cutlist.Witryny, 1)
	require.Len(t, cutlist.Akcesoria, 1)

	assert.Equal(t, "bok", cutlist.Formatki[0].PartName)
	assert.Equal(t, "front", cutlist.Fronty[0].PartName)
	assert.Equal(t, "plecy hdf", cutlist.HDF[0].PartName)
	assert.Equal(t, "rama aluminiowa", cutlist.Witryny[0].PartName)
}

func TestBuildCutListExpandsQuantity(t *testing.T) {
	cutlist := reports.BuildCutList(sampleProject())

	// 2 pieces × cabinet quantity 2.
	assert.Equal(t, 4, cutlist.Formatki[0].Quantity)
	assert.Equal(t, 2, cutlist.Fronty[0].Quantity)
	assert.Equal(t, 4, cutlist.Akcesoria[0].Quantity)
}

func TestBuildCutListResolvesColors(t *testing.T) {
	cutlist := reports.BuildCutList(sampleProject())

	assert.Equal(t, "biały", cutlist.Formatki[0].Color)
	assert.Equal(t, "biały", cutlist.HDF[0].Color)
	assert.Equal(t, "grafit", cutlist.Fronty[0].Color)
	assert.Equal(t, "grafit", cutlist.Witryny[0].Color)
}

// Rows written before materials were recorded carry an empty material; the
// bucket then comes from the part name.
func TestBuildCutListNameFallback(t *testing.T) {
	project := &models.Project{
		ID:   uuid.New(),
		Name: "Stare dane",
		Cabinets: []models.ProjectCabinet{
			{
				SequenceNumber: 1,
				BodyColor:      "biały",
				FrontColor:     "grafit",
				Quantity:       1,
				Parts: []models.ProjectCabinetPart{
					{PartName: "szyba witryny", HeightMM: 500, WidthMM: 400, Pieces: 1},
					{PartName: "front dolny", HeightMM: 714, WidthMM: 594, Pieces: 1},
					{PartName: "plecy", HeightMM: 718, WidthMM: 598, Pieces: 1},
					{PartName: "półka", HeightMM: 547, WidthMM: 564, Pieces: 1},
				},
			},
		},
	}

	cutlist := reports.BuildCutList(project)
	require.Len(t, cutlist.Witryny, 1)
	require.Len(t, cutlist.Fronty, 1)
	require.Len(t, cutlist.HDF, 1)
	require.Len(t, cutlist.Formatki, 1)
	assert.Equal(t, "półka", cutlist.Formatki[0].PartName)
}

func TestGetCircledNumber(t *testing.T) {
	assert.Equal(t, "①", reports.GetCircledNumber(1))
	assert.Equal(t, "⑤", reports.GetCircledNumber(5))
	assert.Equal(t, "⑳", reports.GetCircledNumber(20))
	assert.Equal(t, "(21)", reports.GetCircledNumber(21))
	assert.Equal(t, "(0)", reports.GetCircledNumber(0))
}

func TestAggregateMissingProjectReturnsNilNil(t *testing.T) {
	conn := testdb.Open(t)
	aggregator, err := reports.NewAggregator(projects.NewRepository(conn))
	require.NoError(t, err)

	cutlist, err := aggregator.Aggregate(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, cutlist)
}

// Full path: compute a D60 base cabinet, materialize it as a custom cabinet,
// aggregate the project and check the dimensions land in the right buckets.
func TestAggregateComputedCabinet(t *testing.T) {
	conn := testdb.Open(t)
	ctx := context.Background()
	runner := db.FromConn(conn)

	constantsSvc, err := constants.NewService(constants.NewRepository(conn))
	require.NoError(t, err)
	require.NoError(t, constantsSvc.SeedDefaults(ctx))
	snapshot, err := constantsSvc.Snapshot(ctx)
	require.NoError(t, err)

	plans, err := formula.Compute("D60", formula.Dims{}, snapshot)
	require.NoError(t, err)

	catalogStub := noTemplates{}
	projectsSvc, err := projects.NewService(projects.NewRepository(conn), catalogStub, runner, nil)
	require.NoError(t, err)

	project, err := projectsSvc.CreateProject(ctx, projects.CreateProjectInput{Name: "Kuchnia"})
	require.NoError(t, err)

	_, err = projectsSvc.AddCabinet(ctx, projects.AddCabinetInput{
		ProjectID:  project.ID,
		BodyColor:  "biały",
		FrontColor: "grafit",
		HandleType: "krawędziowy",
		Quantity:   1,
		Plans:      plans,
	})
	require.NoError(t, err)

	aggregator, err := reports.NewAggregator(projects.NewRepository(conn))
	require.NoError(t, err)
	cutlist, err := aggregator.Aggregate(ctx, project.ID)
	require.NoError(t, err)
	require.NotNil(t, cutlist)

	byName := make(map[string]reports.Row)
	for _, row := range cutlist.Formatki {
		byName[row.PartName] = row
	}
	require.Contains(t, byName, "bok")
	assert.Equal(t, 720, byName["bok"].HeightMM)
	assert.Equal(t, 557, byName["bok"].WidthMM)
	assert.Equal(t, 2, byName["bok"].Quantity)

	require.Contains(t, byName, "wieniec")
	assert.Equal(t, 564, byName["wieniec"].HeightMM)
	assert.Equal(t, 557, byName["wieniec"].WidthMM)

	require.Len(t, cutlist.Fronty, 1)
	assert.Equal(t, 714, cutlist.Fronty[0].HeightMM)
	assert.Equal(t, 594, cutlist.Fronty[0].WidthMM)

	require.Len(t, cutlist.HDF, 1)
	assert.Equal(t, 718, cutlist.HDF[0].HeightMM)
	assert.Equal(t, 598, cutlist.HDF[0].WidthMM)
}

// noTemplates satisfies the template loader for custom-only cabinets.
type noTemplates struct{}

func (noTemplates) Get(context.Context, uuid.UUID) (*models.CabinetTemplate, error) {
	return nil, nil
}
