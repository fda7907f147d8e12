package constants

import (
	"context"

	"gorm.io/gorm"

	"github.com/mwitczak/cabplanner/pkg/db/models"
)

// Repository handles constant persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to constant operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByKey loads a constant by its key.
func (r *Repository) FindByKey(ctx context.Context, key string) (*models.Constant, error) {
	var constant models.Constant
	if err := r.db.WithContext(ctx).Where("key = ?", key).First(&constant).Error; err != nil {
		return nil, err
	}
	return &constant, nil
}

// List returns constants ordered by group then key, optionally filtered by group.
func (r *Repository) List(ctx context.Context, group string) ([]models.Constant, error) {
	query := r.db.WithContext(ctx).Order("group_name, key")
	if group != "" {
		query = query.Where("group_name = ?", group)
	}
	var constants []models.Constant
	if err := query.Find(&constants).Error; err != nil {
		return nil, err
	}
	return constants, nil
}

// Create persists a new constant row.
func (r *Repository) Create(ctx context.Context, constant *models.Constant) error {
	return r.db.WithContext(ctx).Create(constant).Error
}

// Update saves the provided constant.
func (r *Repository) Update(ctx context.Context, constant *models.Constant) error {
	return r.db.WithContext(ctx).Save(constant).Error
}
