package projects

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mwitczak/cabplanner/internal/formula"
	"github.com/mwitczak/cabplanner/pkg/db"
	"github.com/mwitczak/cabplanner/pkg/db/models"
	pkgerrors "github.com/mwitczak/cabplanner/pkg/errors"
	"github.com/mwitczak/cabplanner/pkg/logger"
	"github.com/mwitczak/cabplanner/pkg/validate"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type templateLoader interface {
	Get(ctx context.Context, id uuid.UUID) (*models.CabinetTemplate, error)
}

// Service exposes project and cabinet operations, including the snapshot
// materializer. Missing rows surface as nil, nil; callers check for nil.
type Service interface {
	CreateProject(ctx context.Context, input CreateProjectInput) (*models.Project, error)
	GetProject(ctx context.Context, id uuid.UUID) (*models.Project, error)
	ListProjects(ctx context.Context) ([]models.Project, error)
	DeleteProject(ctx context.Context, id uuid.UUID) (bool, error)

	AddCabinet(ctx context.Context, input AddCabinetInput) (*models.ProjectCabinet, error)
	GetCabinet(ctx context.Context, id uuid.UUID) (*models.ProjectCabinet, error)
	ListCabinets(ctx context.Context, projectID uuid.UUID) ([]models.ProjectCabinet, error)
	DuplicateCabinet(ctx context.Context, id uuid.UUID) (*models.ProjectCabinet, error)
	DeleteCabinet(ctx context.Context, id uuid.UUID) (bool, error)
}

type service struct {
	repo      Repository
	templates templateLoader
	tx        txRunner
	logg      *logger.Logger
}

// NewService builds the projects service.
func NewService(repo Repository, templates templateLoader, tx txRunner, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("projects repository required")
	}
	if templates == nil {
		return nil, fmt.Errorf("template loader required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, templates: templates, tx: tx, logg: logg}, nil
}

// CreateProjectInput describes a new project.
type CreateProjectInput struct {
	Name     string  `json:"name" validate:"required"`
	Customer *string `json:"customer"`
}

// AccessoryLine is one hardware line supplied with a custom cabinet.
type AccessoryLine struct {
	Name  string `json:"name" validate:"required"`
	Count int    `json:"count" validate:"gte=1"`
}

// CalcContext records the formula inputs of a custom-computed cabinet. It is
// persisted as an opaque JSON blob on every snapshot part, purely for
// traceability.
type CalcContext struct {
	TemplateName string `json:"template_name"`
	WidthMM      int    `json:"width_mm"`
	HeightMM     int    `json:"height_mm"`
	DepthMM      int    `json:"depth_mm"`
	Category     string `json:"category"`
}

// AddCabinetInput places a cabinet in a project. Exactly one source must be
// given: TemplateID copies the catalog template's parts, Plans persists
// engine output for a custom cabinet.
type AddCabinetInput struct {
	ProjectID uuid.UUID `json:"project_id" validate:"required"`
	// SequenceNumber nil assigns the next free ordinal.
	SequenceNumber *int   `json:"sequence_number"`
	BodyColor      string `json:"body_color" validate:"required"`
	FrontColor     string `json:"front_color" validate:"required"`
	HandleType     string `json:"handle_type" validate:"required"`
	Quantity       int    `json:"quantity" validate:"gte=1"`

	TemplateID  *uuid.UUID         `json:"template_id"`
	Plans       []formula.PartPlan `json:"plans" validate:"dive"`
	Accessories []AccessoryLine    `json:"accessories" validate:"dive"`
	CalcContext *CalcContext       `json:"calc_context"`
}

func (s *service) CreateProject(ctx context.Context, input CreateProjectInput) (*models.Project, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}
	project := &models.Project{Name: input.Name, Customer: input.Customer}
	if err := s.repo.CreateProject(ctx, project); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating project")
	}
	return project, nil
}

func (s *service) GetProject(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	project, err := s.repo.FindProjectByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading project")
	}
	return project, nil
}

func (s *service) ListProjects(ctx context.Context) ([]models.Project, error) {
	projects, err := s.repo.ListProjects(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing projects")
	}
	return projects, nil
}

func (s *service) DeleteProject(ctx context.Context, id uuid.UUID) (bool, error) {
	project, err := s.GetProject(ctx, id)
	if err != nil {
		return false, err
	}
	if project == nil {
		return false, nil
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		cabinets, err := repo.ListCabinets(ctx, id)
		if err != nil {
			return err
		}
		for _, cabinet := range cabinets {
			if err := repo.DeleteCabinetSnapshots(ctx, cabinet.ID); err != nil {
				return err
			}
			if err := repo.DeleteCabinet(ctx, cabinet.ID); err != nil {
				return err
			}
		}
		return repo.DeleteProject(ctx, id)
	})
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting project")
	}
	return true, nil
}

// AddCabinet materializes a cabinet with its frozen snapshot rows. The copy
// happens exactly once, here; later catalog edits never touch the snapshots.
// Everything runs in one transaction: either the cabinet with all its parts
// and accessories is written, or nothing is.
func (s *service) AddCabinet(ctx context.Context, input AddCabinetInput) (*models.ProjectCabinet, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}
	if (input.TemplateID == nil) == (len(input.Plans) == 0) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			"exactly one of template_id or plans must be provided")
	}

	project, err := s.GetProject(ctx, input.ProjectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, nil
	}

	cabinet := &models.ProjectCabinet{
		ProjectID:  input.ProjectID,
		TypeID:     input.TemplateID,
		BodyColor:  input.BodyColor,
		FrontColor: input.FrontColor,
		HandleType: input.HandleType,
		Quantity:   input.Quantity,
	}

	var templateName string
	if input.TemplateID != nil {
		template, err := s.templates.Get(ctx, *input.TemplateID)
		if err != nil {
			return nil, err
		}
		if template == nil {
			return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "template %s does not exist", *input.TemplateID)
		}
		templateName = template.Name
		cabinet.Parts = snapshotTemplateParts(template)
		cabinet.Accessories = snapshotTemplateAccessories(template)
	} else {
		var contextJSON *string
		if input.CalcContext != nil {
			raw, err := json.Marshal(input.CalcContext)
			if err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding calc context")
			}
			encoded := string(raw)
			contextJSON = &encoded
		}
		cabinet.Parts = snapshotPlans(input.Plans, contextJSON)
		for _, line := range input.Accessories {
			cabinet.Accessories = append(cabinet.Accessories, models.ProjectCabinetAccessory{
				Name:  line.Name,
				Count: line.Count,
			})
		}
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		sequence, err := s.resolveSequence(ctx, repo, input.ProjectID, input.SequenceNumber)
		if err != nil {
			return err
		}
		cabinet.SequenceNumber = sequence

		return repo.CreateCabinet(ctx, cabinet)
	})
	if err != nil {
		if db.IsUniqueViolation(err, "sequence_number") {
			return nil, pkgerrors.Newf(pkgerrors.CodeConflict,
				"sequence number %d already used in this project", cabinet.SequenceNumber)
		}
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "materializing cabinet")
	}

	if s.logg != nil {
		lctx := s.logg.WithProjectID(ctx, input.ProjectID.String())
		lctx = s.logg.WithCabinetID(lctx, cabinet.ID.String())
		if templateName != "" {
			lctx = s.logg.WithTemplate(lctx, templateName)
		}
		lctx = s.logg.WithField(lctx, "parts", len(cabinet.Parts))
		s.logg.Info(lctx, "cabinet materialized")
	}
	return cabinet, nil
}

// resolveSequence allocates the next ordinal or validates a caller-chosen
// one. Duplicates are rejected here, before any row is persisted; the unique
// index backstops races.
func (s *service) resolveSequence(ctx context.Context, repo Repository, projectID uuid.UUID, requested *int) (int, error) {
	if requested == nil {
		max, err := repo.MaxSequenceNumber(ctx, projectID)
		if err != nil {
			return 0, err
		}
		return max + 1, nil
	}

	if *requested < 1 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "sequence number must be positive")
	}
	taken, err := repo.SequenceNumberTaken(ctx, projectID, *requested)
	if err != nil {
		return 0, err
	}
	if taken {
		return 0, pkgerrors.Newf(pkgerrors.CodeConflict,
			"sequence number %d already used in this project", *requested)
	}
	return *requested, nil
}

func snapshotTemplateParts(template *models.CabinetTemplate) []models.ProjectCabinetPart {
	parts := make([]models.ProjectCabinetPart, 0, len(template.Parts))
	for _, part := range template.Parts {
		sourcePartID := part.ID
		sourceTemplateID := template.ID
		parts = append(parts, models.ProjectCabinetPart{
			PartName:         part.PartName,
			HeightMM:         part.HeightMM,
			WidthMM:          part.WidthMM,
			Pieces:           part.Pieces,
			Material:         part.Material,
			ThicknessMM:      part.ThicknessMM,
			Wrapping:         part.Wrapping,
			Comments:         part.Comments,
			SourceTemplateID: &sourceTemplateID,
			SourcePartID:     &sourcePartID,
		})
	}
	return parts
}

func snapshotTemplateAccessories(template *models.CabinetTemplate) []models.ProjectCabinetAccessory {
	accessories := make([]models.ProjectCabinetAccessory, 0, len(template.Accessories))
	for _, accessory := range template.Accessories {
		sourceID := accessory.ID
		accessories = append(accessories, models.ProjectCabinetAccessory{
			Name:              accessory.Name,
			Count:             accessory.Count,
			SourceAccessoryID: &sourceID,
		})
	}
	return accessories
}

func snapshotPlans(plans []formula.PartPlan, contextJSON *string) []models.ProjectCabinetPart {
	parts := make([]models.ProjectCabinetPart, 0, len(plans))
	for _, plan := range plans {
		parts = append(parts, models.ProjectCabinetPart{
			PartName:        plan.PartName,
			HeightMM:        plan.HeightMM,
			WidthMM:         plan.WidthMM,
			Pieces:          plan.Pieces,
			Material:        plan.Material,
			ThicknessMM:     plan.ThicknessMM,
			Wrapping:        plan.Wrapping,
			Comments:        plan.Comments,
			CalcContextJSON: contextJSON,
		})
	}
	return parts
}

func (s *service) GetCabinet(ctx context.Context, id uuid.UUID) (*models.ProjectCabinet, error) {
	cabinet, err := s.repo.FindCabinetByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading cabinet")
	}
	return cabinet, nil
}

func (s *service) ListCabinets(ctx context.Context, projectID uuid.UUID) ([]models.ProjectCabinet, error) {
	cabinets, err := s.repo.ListCabinets(ctx, projectID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing cabinets")
	}
	return cabinets, nil
}

// DuplicateCabinet deep-copies a cabinet with all snapshot children, under
// the next free sequence number.
func (s *service) DuplicateCabinet(ctx context.Context, id uuid.UUID) (*models.ProjectCabinet, error) {
	source, err := s.GetCabinet(ctx, id)
	if err != nil {
		return nil, err
	}
	if source == nil {
		return nil, nil
	}

	duplicate := &models.ProjectCabinet{
		ProjectID:  source.ProjectID,
		TypeID:     source.TypeID,
		BodyColor:  source.BodyColor,
		FrontColor: source.FrontColor,
		HandleType: source.HandleType,
		Quantity:   source.Quantity,
	}
	for _, part := range source.Parts {
		duplicate.Parts = append(duplicate.Parts, models.ProjectCabinetPart{
			PartName:         part.PartName,
			HeightMM:         part.HeightMM,
			WidthMM:          part.WidthMM,
			Pieces:           part.Pieces,
			Material:         part.Material,
			ThicknessMM:      part.ThicknessMM,
			Wrapping:         part.Wrapping,
			Comments:         part.Comments,
			SourceTemplateID: part.SourceTemplateID,
			SourcePartID:     part.SourcePartID,
			CalcContextJSON:  part.CalcContextJSON,
		})
	}
	for _, accessory := range source.Accessories {
		duplicate.Accessories = append(duplicate.Accessories, models.ProjectCabinetAccessory{
			Name:              accessory.Name,
			Count:             accessory.Count,
			SourceAccessoryID: accessory.SourceAccessoryID,
		})
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		max, err := repo.MaxSequenceNumber(ctx, source.ProjectID)
		if err != nil {
			return err
		}
		duplicate.SequenceNumber = max + 1
		return repo.CreateCabinet(ctx, duplicate)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "duplicating cabinet")
	}
	return duplicate, nil
}

// DeleteCabinet removes the cabinet and all its snapshot rows.
func (s *service) DeleteCabinet(ctx context.Context, id uuid.UUID) (bool, error) {
	cabinet, err := s.GetCabinet(ctx, id)
	if err != nil {
		return false, err
	}
	if cabinet == nil {
		return false, nil
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.DeleteCabinetSnapshots(ctx, id); err != nil {
			return err
		}
		return repo.DeleteCabinet(ctx, id)
	})
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting cabinet")
	}
	return true, nil
}
