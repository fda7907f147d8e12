package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mwitczak/cabplanner/pkg/db/models"
)

// Repository handles catalog template persistence.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, template *models.CabinetTemplate) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.CabinetTemplate, error)
	FindByName(ctx context.Context, name string) (*models.CabinetTemplate, error)
	List(ctx context.Context, kitchenType string) ([]models.CabinetTemplate, error)
	UpdatePart(ctx context.Context, part *models.CabinetPart) error
	FindPartByID(ctx context.Context, id uuid.UUID) (*models.CabinetPart, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to catalog operations.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, template *models.CabinetTemplate) error {
	return r.db.WithContext(ctx).Create(template).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.CabinetTemplate, error) {
	var template models.CabinetTemplate
	err := r.db.WithContext(ctx).
		Preload("Parts").
		Preload("DrawerRows", func(db *gorm.DB) *gorm.DB {
			return db.Order("row_number")
		}).
		Preload("Accessories").
		Where("id = ?", id).
		First(&template).Error
	if err != nil {
		return nil, err
	}
	return &template, nil
}

func (r *repository) FindByName(ctx context.Context, name string) (*models.CabinetTemplate, error) {
	var template models.CabinetTemplate
	err := r.db.WithContext(ctx).
		Preload("Parts").
		Preload("DrawerRows", func(db *gorm.DB) *gorm.DB {
			return db.Order("row_number")
		}).
		Preload("Accessories").
		Where("name = ?", name).
		First(&template).Error
	if err != nil {
		return nil, err
	}
	return &template, nil
}

func (r *repository) List(ctx context.Context, kitchenType string) ([]models.CabinetTemplate, error) {
	query := r.db.WithContext(ctx).
		Preload("Parts").
		Preload("DrawerRows", func(db *gorm.DB) *gorm.DB {
			return db.Order("row_number")
		}).
		Preload("Accessories").
		Order("name")
	if kitchenType != "" {
		query = query.Where("kitchen_type = ?", kitchenType)
	}
	var templates []models.CabinetTemplate
	if err := query.Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

func (r *repository) UpdatePart(ctx context.Context, part *models.CabinetPart) error {
	return r.db.WithContext(ctx).Save(part).Error
}

func (r *repository) FindPartByID(ctx context.Context, id uuid.UUID) (*models.CabinetPart, error) {
	var part models.CabinetPart
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&part).Error; err != nil {
		return nil, err
	}
	return &part, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.CabinetTemplate{}, "id = ?", id).Error
}
