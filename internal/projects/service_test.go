package projects_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwitczak/cabplanner/internal/catalog"
	"github.com/mwitczak/cabplanner/internal/formula"
	"github.com/mwitczak/cabplanner/internal/projects"
	"github.com/mwitczak/cabplanner/internal/testdb"
	"github.com/mwitczak/cabplanner/pkg/db"
	"github.com/mwitczak/cabplanner/pkg/db/models"
	pkgerrors "github.com/mwitczak/cabplanner/pkg/errors"
	"github.com/mwitczak/cabplanner/pkg/logger"
)

type fixture struct {
	projects projects.Service
	catalog  catalog.Service
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	conn := testdb.Open(t)
	runner := db.FromConn(conn)

	catalogSvc, err := catalog.NewService(catalog.NewRepository(conn), runner)
	require.NoError(t, err)

	projectsSvc, err := projects.NewService(projects.NewRepository(conn), catalogSvc, runner, nil)
	require.NoError(t, err)

	return fixture{projects: projectsSvc, catalog: catalogSvc}
}

func (f fixture) createProject(t *testing.T, name string) *models.Project {
	t.Helper()
	project, err := f.projects.CreateProject(context.Background(), projects.CreateProjectInput{Name: name})
	require.NoError(t, err)
	return project
}

func (f fixture) createTemplate(t *testing.T, name string) *models.CabinetTemplate {
	t.Helper()
	thickness := 18
	template, err := f.catalog.Create(context.Background(), catalog.CreateTemplateInput{
		KitchenType: "nowoczesna",
		Name:        name,
		Parts: []catalog.PartInput{
			{PartName: "bok", HeightMM: 720, WidthMM: 557, Pieces: 2, Material: "PŁYTA", ThicknessMM: &thickness},
			{PartName: "front", HeightMM: 714, WidthMM: 594, Pieces: 1, Material: "FRONT"},
		},
		Accessories: []catalog.AccessoryInput{
			{Name: "zawias", Count: 2},
		},
	})
	require.NoError(t, err)
	return template
}

func templateCabinet(projectID, templateID uuid.UUID) projects.AddCabinetInput {
	return projects.AddCabinetInput{
		ProjectID:  projectID,
		BodyColor:  "biały",
		FrontColor: "dąb sonoma",
		HandleType: "uchwyt krawędziowy",
		Quantity:   1,
		TemplateID: &templateID,
	}
}

func TestCreateAndListProjects(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.createProject(t, "Kuchnia Kowalscy")
	f.createProject(t, "Kuchnia Nowak")

	rows, err := f.projects.ListProjects(ctx)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestGetMissingProjectReturnsNilNil(t *testing.T) {
	f := newFixture(t)

	project, err := f.projects.GetProject(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, project)
}

func TestAddCabinetSnapshotsTemplateParts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	project := f.createProject(t, "Kuchnia")
	template := f.createTemplate(t, "D60")

	cabinet, err := f.projects.AddCabinet(ctx, templateCabinet(project.ID, template.ID))
	require.NoError(t, err)
	require.NotNil(t, cabinet)

	loaded, err := f.projects.GetCabinet(ctx, cabinet.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Parts, 2)
	require.Len(t, loaded.Accessories, 1)

	for _, part := range loaded.Parts {
		require.NotNil(t, part.SourceTemplateID)
		assert.Equal(t, template.ID, *part.SourceTemplateID)
		require.NotNil(t, part.SourcePartID)
	}
}

// Snapshots are frozen at add time; later catalog edits must not reach them.
func TestSnapshotSurvivesTemplateEdit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	project := f.createProject(t, "Kuchnia")
	template := f.createTemplate(t, "D60")

	cabinet, err := f.projects.AddCabinet(ctx, templateCabinet(project.ID, template.ID))
	require.NoError(t, err)

	edited := template.Parts[0]
	_, err = f.catalog.UpdatePart(ctx, catalog.UpdatePartInput{
		PartID:   edited.ID,
		PartName: "bok zmieniony",
		HeightMM: 999,
		WidthMM:  edited.WidthMM,
		Pieces:   edited.Pieces,
		Material: edited.Material,
	})
	require.NoError(t, err)

	loaded, err := f.projects.GetCabinet(ctx, cabinet.ID)
	require.NoError(t, err)
	names := make(map[string]int)
	for _, part := range loaded.Parts {
		names[part.PartName] = part.HeightMM
	}
	assert.Equal(t, 720, names["bok"])
	assert.NotContains(t, names, "bok zmieniony")
}

func TestAddCabinetAssignsNextSequence(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	project := f.createProject(t, "Kuchnia")
	template := f.createTemplate(t, "D60")

	first, err := f.projects.AddCabinet(ctx, templateCabinet(project.ID, template.ID))
	require.NoError(t, err)
	assert.Equal(t, 1, first.SequenceNumber)

	second, err := f.projects.AddCabinet(ctx, templateCabinet(project.ID, template.ID))
	require.NoError(t, err)
	assert.Equal(t, 2, second.SequenceNumber)
}

func TestAddCabinetRejectsDuplicateSequence(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	project := f.createProject(t, "Kuchnia")
	template := f.createTemplate(t, "D60")

	chosen := 5
	input := templateCabinet(project.ID, template.ID)
	input.SequenceNumber = &chosen
	_, err := f.projects.AddCabinet(ctx, input)
	require.NoError(t, err)

	_, err = f.projects.AddCabinet(ctx, input)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeConflict))

	// The rejected cabinet left no rows behind.
	cabinets, err := f.projects.ListCabinets(ctx, project.ID)
	require.NoError(t, err)
	assert.Len(t, cabinets, 1)
}

func TestSequenceNumbersIndependentPerProject(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first := f.createProject(t, "Kuchnia A")
	second := f.createProject(t, "Kuchnia B")
	template := f.createTemplate(t, "D60")

	chosen := 1
	input := templateCabinet(first.ID, template.ID)
	input.SequenceNumber = &chosen
	_, err := f.projects.AddCabinet(ctx, input)
	require.NoError(t, err)

	input = templateCabinet(second.ID, template.ID)
	input.SequenceNumber = &chosen
	_, err = f.projects.AddCabinet(ctx, input)
	require.NoError(t, err)
}

func TestAddCabinetRequiresExactlyOneSource(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	project := f.createProject(t, "Kuchnia")
	template := f.createTemplate(t, "D60")

	neither := templateCabinet(project.ID, template.ID)
	neither.TemplateID = nil
	_, err := f.projects.AddCabinet(ctx, neither)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	both := templateCabinet(project.ID, template.ID)
	both.Plans = []formula.PartPlan{{PartName: "bok", HeightMM: 720, WidthMM: 557, Pieces: 2, Material: "PŁYTA"}}
	_, err = f.projects.AddCabinet(ctx, both)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestAddCabinetRejectsMissingTemplate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	project := f.createProject(t, "Kuchnia")
	missing := uuid.New()
	_, err := f.projects.AddCabinet(ctx, templateCabinet(project.ID, missing))
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestAddCustomCabinetPersistsPlansAndContext(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	project := f.createProject(t, "Kuchnia")

	input := projects.AddCabinetInput{
		ProjectID:  project.ID,
		BodyColor:  "biały",
		FrontColor: "grafit",
		HandleType: "frezowany",
		Quantity:   2,
		Plans: []formula.PartPlan{
			{PartName: "bok", HeightMM: 720, WidthMM: 557, Pieces: 2, Material: "PŁYTA"},
			{PartName: "front", HeightMM: 714, WidthMM: 594, Pieces: 1, Material: "FRONT"},
		},
		Accessories: []projects.AccessoryLine{
			{Name: "prowadnica", Count: 2},
		},
		CalcContext: &projects.CalcContext{
			TemplateName: "D60",
			WidthMM:      600,
			HeightMM:     720,
			DepthMM:      560,
			Category:     "base",
		},
	}

	cabinet, err := f.projects.AddCabinet(ctx, input)
	require.NoError(t, err)

	loaded, err := f.projects.GetCabinet(ctx, cabinet.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Parts, 2)
	require.Len(t, loaded.Accessories, 1)
	assert.Nil(t, loaded.TypeID)

	for _, part := range loaded.Parts {
		require.NotNil(t, part.CalcContextJSON)
		var decoded projects.CalcContext
		require.NoError(t, json.Unmarshal([]byte(*part.CalcContextJSON), &decoded))
		assert.Equal(t, "D60", decoded.TemplateName)
		assert.Equal(t, 600, decoded.WidthMM)
		assert.Nil(t, part.SourcePartID)
	}
}

func TestAddCabinetLogsMaterializationContext(t *testing.T) {
	conn := testdb.Open(t)
	runner := db.FromConn(conn)

	catalogSvc, err := catalog.NewService(catalog.NewRepository(conn), runner)
	require.NoError(t, err)

	var buf bytes.Buffer
	logg := logger.New(logger.Options{ServiceName: "cabplanner", Output: &buf})

	projectsSvc, err := projects.NewService(projects.NewRepository(conn), catalogSvc, runner, logg)
	require.NoError(t, err)

	f := fixture{projects: projectsSvc, catalog: catalogSvc}
	ctx := context.Background()

	project := f.createProject(t, "Kuchnia")
	template := f.createTemplate(t, "D60")

	cabinet, err := f.projects.AddCabinet(ctx, templateCabinet(project.ID, template.ID))
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, project.ID.String(), entry["project_id"])
	assert.Equal(t, cabinet.ID.String(), entry["cabinet_id"])
	assert.Equal(t, "D60", entry["template"])
}

func TestAddCabinetRejectsDegeneratePlan(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	project := f.createProject(t, "Kuchnia")

	_, err := f.projects.AddCabinet(ctx, projects.AddCabinetInput{
		ProjectID:  project.ID,
		BodyColor:  "biały",
		FrontColor: "biały",
		HandleType: "frezowany",
		Quantity:   1,
		Plans: []formula.PartPlan{
			{PartName: "bok", HeightMM: 720, WidthMM: 557, Pieces: 2, Material: "PŁYTA"},
			{PartName: "", HeightMM: 0, WidthMM: -5, Pieces: 1, Material: ""},
		},
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	cabinets, err := f.projects.ListCabinets(ctx, project.ID)
	require.NoError(t, err)
	assert.Empty(t, cabinets)
}

func TestDuplicateCabinetTakesNextSequence(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	project := f.createProject(t, "Kuchnia")
	template := f.createTemplate(t, "D60")

	source, err := f.projects.AddCabinet(ctx, templateCabinet(project.ID, template.ID))
	require.NoError(t, err)

	duplicate, err := f.projects.DuplicateCabinet(ctx, source.ID)
	require.NoError(t, err)
	assert.Equal(t, source.SequenceNumber+1, duplicate.SequenceNumber)

	loaded, err := f.projects.GetCabinet(ctx, duplicate.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Parts, 2)
	for _, part := range loaded.Parts {
		for _, sourcePart := range source.Parts {
			assert.NotEqual(t, sourcePart.ID, part.ID)
		}
	}
}

func TestDeleteCabinetRemovesSnapshots(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	project := f.createProject(t, "Kuchnia")
	template := f.createTemplate(t, "D60")

	cabinet, err := f.projects.AddCabinet(ctx, templateCabinet(project.ID, template.ID))
	require.NoError(t, err)

	removed, err := f.projects.DeleteCabinet(ctx, cabinet.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	loaded, err := f.projects.GetCabinet(ctx, cabinet.ID)
	require.NoError(t, err)
	assert.Nil(t, loaded)

	removed, err = f.projects.DeleteCabinet(ctx, cabinet.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestDeleteProjectRemovesCabinets(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	project := f.createProject(t, "Kuchnia")
	template := f.createTemplate(t, "D60")

	cabinet, err := f.projects.AddCabinet(ctx, templateCabinet(project.ID, template.ID))
	require.NoError(t, err)

	removed, err := f.projects.DeleteProject(ctx, project.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	loaded, err := f.projects.GetProject(ctx, project.ID)
	require.NoError(t, err)
	assert.Nil(t, loaded)

	gone, err := f.projects.GetCabinet(ctx, cabinet.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	// The catalog template is untouched by project deletion.
	kept, err := f.catalog.Get(ctx, template.ID)
	require.NoError(t, err)
	assert.NotNil(t, kept)
}
