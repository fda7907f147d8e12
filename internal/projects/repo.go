package projects

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mwitczak/cabplanner/pkg/db/models"
)

// Repository handles project and snapshot persistence.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateProject(ctx context.Context, project *models.Project) error
	FindProjectByID(ctx context.Context, id uuid.UUID) (*models.Project, error)
	FindProjectWithSnapshots(ctx context.Context, id uuid.UUID) (*models.Project, error)
	ListProjects(ctx context.Context) ([]models.Project, error)
	DeleteProject(ctx context.Context, id uuid.UUID) error

	CreateCabinet(ctx context.Context, cabinet *models.ProjectCabinet) error
	FindCabinetByID(ctx context.Context, id uuid.UUID) (*models.ProjectCabinet, error)
	ListCabinets(ctx context.Context, projectID uuid.UUID) ([]models.ProjectCabinet, error)
	MaxSequenceNumber(ctx context.Context, projectID uuid.UUID) (int, error)
	SequenceNumberTaken(ctx context.Context, projectID uuid.UUID, sequence int) (bool, error)
	DeleteCabinet(ctx context.Context, id uuid.UUID) error
	DeleteCabinetSnapshots(ctx context.Context, cabinetID uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to project operations.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) CreateProject(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

func (r *repository) FindProjectByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	var project models.Project
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// FindProjectWithSnapshots loads the full snapshot tree for reporting,
// cabinets ordered by sequence number.
func (r *repository) FindProjectWithSnapshots(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).
		Preload("Cabinets", func(db *gorm.DB) *gorm.DB {
			return db.Order("sequence_number")
		}).
		Preload("Cabinets.Parts").
		Preload("Cabinets.Accessories").
		Where("id = ?", id).
		First(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *repository) ListProjects(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	if err := r.db.WithContext(ctx).Order("created_at").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *repository) DeleteProject(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Project{}, "id = ?", id).Error
}

// CreateCabinet inserts the cabinet together with any snapshot children
// attached to it, in a single statement batch.
func (r *repository) CreateCabinet(ctx context.Context, cabinet *models.ProjectCabinet) error {
	return r.db.WithContext(ctx).Create(cabinet).Error
}

func (r *repository) FindCabinetByID(ctx context.Context, id uuid.UUID) (*models.ProjectCabinet, error) {
	var cabinet models.ProjectCabinet
	err := r.db.WithContext(ctx).
		Preload("Parts").
		Preload("Accessories").
		Where("id = ?", id).
		First(&cabinet).Error
	if err != nil {
		return nil, err
	}
	return &cabinet, nil
}

func (r *repository) ListCabinets(ctx context.Context, projectID uuid.UUID) ([]models.ProjectCabinet, error) {
	var cabinets []models.ProjectCabinet
	err := r.db.WithContext(ctx).
		Preload("Parts").
		Preload("Accessories").
		Where("project_id = ?", projectID).
		Order("sequence_number").
		Find(&cabinets).Error
	if err != nil {
		return nil, err
	}
	return cabinets, nil
}

func (r *repository) MaxSequenceNumber(ctx context.Context, projectID uuid.UUID) (int, error) {
	var max *int
	err := r.db.WithContext(ctx).
		Model(&models.ProjectCabinet{}).
		Where("project_id = ?", projectID).
		Select("MAX(sequence_number)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max, nil
}

func (r *repository) SequenceNumberTaken(ctx context.Context, projectID uuid.UUID, sequence int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ProjectCabinet{}).
		Where("project_id = ? AND sequence_number = ?", projectID, sequence).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) DeleteCabinet(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.ProjectCabinet{}, "id = ?", id).Error
}

// DeleteCabinetSnapshots removes the snapshot rows explicitly. The schema
// cascades as well; the explicit delete keeps the ownership contract visible
// even against a connection without the foreign-key pragma.
func (r *repository) DeleteCabinetSnapshots(ctx context.Context, cabinetID uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Delete(&models.ProjectCabinetPart{}, "project_cabinet_id = ?", cabinetID).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Delete(&models.ProjectCabinetAccessory{}, "project_cabinet_id = ?", cabinetID).Error
}
