package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mwitczak/cabplanner/pkg/db"
	"github.com/mwitczak/cabplanner/pkg/db/models"
	pkgerrors "github.com/mwitczak/cabplanner/pkg/errors"
	"github.com/mwitczak/cabplanner/pkg/validate"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes catalog template operations. Missing rows surface as
// nil, nil rather than errors; callers check for nil.
type Service interface {
	Create(ctx context.Context, input CreateTemplateInput) (*models.CabinetTemplate, error)
	Get(ctx context.Context, id uuid.UUID) (*models.CabinetTemplate, error)
	GetByName(ctx context.Context, name string) (*models.CabinetTemplate, error)
	List(ctx context.Context, kitchenType string) ([]models.CabinetTemplate, error)
	UpdatePart(ctx context.Context, input UpdatePartInput) (*models.CabinetPart, error)
	Duplicate(ctx context.Context, id uuid.UUID) (*models.CabinetTemplate, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type service struct {
	repo Repository
	tx   txRunner
}

// NewService builds the catalog service.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

// PartInput is one predefined part of a new template.
type PartInput struct {
	PartName    string  `json:"part_name" validate:"required"`
	HeightMM    int     `json:"height_mm" validate:"gt=0"`
	WidthMM     int     `json:"width_mm" validate:"gt=0"`
	Pieces      int     `json:"pieces" validate:"gte=1"`
	Material    string  `json:"material" validate:"required"`
	ThicknessMM *int    `json:"thickness_mm"`
	Wrapping    *string `json:"wrapping"`
	Comments    *string `json:"comments"`
}

// AccessoryInput is one default hardware line of a new template.
type AccessoryInput struct {
	Name  string `json:"name" validate:"required"`
	Count int    `json:"count" validate:"gte=1"`
}

// DrawerRowInput describes one drawer row of a template's front stack.
type DrawerRowInput struct {
	RowNumber     int  `json:"row_number" validate:"gte=1"`
	FrontHeightMM *int `json:"front_height_mm"`
}

// CreateTemplateInput describes a new catalog template with its children.
type CreateTemplateInput struct {
	KitchenType string           `json:"kitchen_type" validate:"required"`
	Name        string           `json:"name" validate:"required"`
	Parts       []PartInput      `json:"parts" validate:"dive"`
	DrawerRows  []DrawerRowInput `json:"drawer_rows" validate:"dive"`
	Accessories []AccessoryInput `json:"accessories" validate:"dive"`
}

// UpdatePartInput mutates one catalog part. Materialized project snapshots
// are untouched by catalog edits.
type UpdatePartInput struct {
	PartID      uuid.UUID `json:"part_id" validate:"required"`
	PartName    string    `json:"part_name" validate:"required"`
	HeightMM    int       `json:"height_mm" validate:"gt=0"`
	WidthMM     int       `json:"width_mm" validate:"gt=0"`
	Pieces      int       `json:"pieces" validate:"gte=1"`
	Material    string    `json:"material" validate:"required"`
	ThicknessMM *int      `json:"thickness_mm"`
	Wrapping    *string   `json:"wrapping"`
	Comments    *string   `json:"comments"`
}

func (s *service) Create(ctx context.Context, input CreateTemplateInput) (*models.CabinetTemplate, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	template := &models.CabinetTemplate{
		KitchenType: input.KitchenType,
		Name:        input.Name,
	}
	for _, part := range input.Parts {
		template.Parts = append(template.Parts, models.CabinetPart{
			PartName:    part.PartName,
			HeightMM:    part.HeightMM,
			WidthMM:     part.WidthMM,
			Pieces:      part.Pieces,
			Material:    part.Material,
			ThicknessMM: part.ThicknessMM,
			Wrapping:    part.Wrapping,
			Comments:    part.Comments,
		})
	}
	for _, row := range input.DrawerRows {
		template.DrawerRows = append(template.DrawerRows, models.TemplateDrawerRow{
			RowNumber:     row.RowNumber,
			FrontHeightMM: row.FrontHeightMM,
		})
	}
	for _, accessory := range input.Accessories {
		template.Accessories = append(template.Accessories, models.TemplateAccessory{
			Name:  accessory.Name,
			Count: accessory.Count,
		})
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).Create(ctx, template)
	})
	if err != nil {
		if db.IsUniqueViolation(err, "cabinet_templates.name") {
			return nil, pkgerrors.Newf(pkgerrors.CodeConflict, "template %q already exists", input.Name)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating template")
	}
	return template, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.CabinetTemplate, error) {
	template, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading template")
	}
	return template, nil
}

func (s *service) GetByName(ctx context.Context, name string) (*models.CabinetTemplate, error) {
	template, err := s.repo.FindByName(ctx, name)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading template")
	}
	return template, nil
}

func (s *service) List(ctx context.Context, kitchenType string) ([]models.CabinetTemplate, error) {
	templates, err := s.repo.List(ctx, kitchenType)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing templates")
	}
	return templates, nil
}

func (s *service) UpdatePart(ctx context.Context, input UpdatePartInput) (*models.CabinetPart, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	part, err := s.repo.FindPartByID(ctx, input.PartID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading part")
	}

	part.PartName = input.PartName
	part.HeightMM = input.HeightMM
	part.WidthMM = input.WidthMM
	part.Pieces = input.Pieces
	part.Material = input.Material
	part.ThicknessMM = input.ThicknessMM
	part.Wrapping = input.Wrapping
	part.Comments = input.Comments

	if err := s.repo.UpdatePart(ctx, part); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating part")
	}
	return part, nil
}

// Duplicate deep-copies a template with all parts and accessories. The copy
// gets a "(kopia)" suffix, or "(kopia N)" when earlier copies exist.
func (s *service) Duplicate(ctx context.Context, id uuid.UUID) (*models.CabinetTemplate, error) {
	source, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if source == nil {
		return nil, nil
	}

	name, err := s.copyName(ctx, source.Name)
	if err != nil {
		return nil, err
	}

	duplicate := &models.CabinetTemplate{
		KitchenType: source.KitchenType,
		Name:        name,
	}
	for _, part := range source.Parts {
		duplicate.Parts = append(duplicate.Parts, models.CabinetPart{
			PartName:    part.PartName,
			HeightMM:    part.HeightMM,
			WidthMM:     part.WidthMM,
			Pieces:      part.Pieces,
			Material:    part.Material,
			ThicknessMM: part.ThicknessMM,
			Wrapping:    part.Wrapping,
			Comments:    part.Comments,
		})
	}
	for _, row := range source.DrawerRows {
		duplicate.DrawerRows = append(duplicate.DrawerRows, models.TemplateDrawerRow{
			RowNumber:     row.RowNumber,
			FrontHeightMM: row.FrontHeightMM,
		})
	}
	for _, accessory := range source.Accessories {
		duplicate.Accessories = append(duplicate.Accessories, models.TemplateAccessory{
			Name:  accessory.Name,
			Count: accessory.Count,
		})
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).Create(ctx, duplicate)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "duplicating template")
	}
	return duplicate, nil
}

// copyName finds the first free "<name> (kopia)" / "<name> (kopia N)" name.
func (s *service) copyName(ctx context.Context, base string) (string, error) {
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s (kopia)", base)
		if n > 1 {
			candidate = fmt.Sprintf("%s (kopia %d)", base, n)
		}
		existing, err := s.repo.FindByName(ctx, candidate)
		if err != nil && !db.IsNotFound(err) {
			return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "checking copy name")
		}
		if existing == nil || db.IsNotFound(err) {
			return candidate, nil
		}
	}
}

// Delete removes a template and, through the cascade, its parts and
// accessories. Returns false when the template does not exist.
func (s *service) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	template, err := s.Get(ctx, id)
	if err != nil {
		return false, err
	}
	if template == nil {
		return false, nil
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting template")
	}
	return true, nil
}
