package constants

import (
	"context"
	"fmt"

	"github.com/mwitczak/cabplanner/pkg/db"
	"github.com/mwitczak/cabplanner/pkg/db/models"
	"github.com/mwitczak/cabplanner/pkg/enums"
	pkgerrors "github.com/mwitczak/cabplanner/pkg/errors"
	"github.com/mwitczak/cabplanner/pkg/validate"
)

type constantRepository interface {
	FindByKey(ctx context.Context, key string) (*models.Constant, error)
	List(ctx context.Context, group string) ([]models.Constant, error)
	Create(ctx context.Context, constant *models.Constant) error
	Update(ctx context.Context, constant *models.Constant) error
}

// Service exposes the constants store. Constants are upserted in place;
// there is no delete.
type Service interface {
	Get(ctx context.Context, key string) (*models.Constant, error)
	Set(ctx context.Context, input SetInput) (*models.Constant, error)
	List(ctx context.Context, group string) ([]models.Constant, error)
	Snapshot(ctx context.Context) (Snapshot, error)
	SeedDefaults(ctx context.Context) error
}

type service struct {
	repo constantRepository
}

// NewService builds the constants service.
func NewService(repo constantRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("constants repository required")
	}
	return &service{repo: repo}, nil
}

// SetInput carries one upsert. Type is rendering metadata; the value is
// stored as a float either way.
type SetInput struct {
	Key         string             `json:"key" validate:"required"`
	Value       float64            `json:"value"`
	Type        enums.ConstantType `json:"type" validate:"required"`
	Group       *string            `json:"group"`
	Description *string            `json:"description"`
}

// Get returns the constant or nil when the key was never set.
func (s *service) Get(ctx context.Context, key string) (*models.Constant, error) {
	constant, err := s.repo.FindByKey(ctx, key)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading constant")
	}
	return constant, nil
}

// Set upserts a constant by key.
func (s *service) Set(ctx context.Context, input SetInput) (*models.Constant, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}
	if !input.Type.IsValid() {
		return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "invalid constant type %q", input.Type)
	}

	existing, err := s.repo.FindByKey(ctx, input.Key)
	if err != nil && !db.IsNotFound(err) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading constant")
	}

	if existing != nil {
		existing.Value = input.Value
		existing.ValueType = input.Type
		if input.Group != nil {
			existing.Group = input.Group
		}
		if input.Description != nil {
			existing.Description = input.Description
		}
		if err := s.repo.Update(ctx, existing); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating constant")
		}
		return existing, nil
	}

	constant := &models.Constant{
		Key:         input.Key,
		Value:       input.Value,
		ValueType:   input.Type,
		Group:       input.Group,
		Description: input.Description,
	}
	if err := s.repo.Create(ctx, constant); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating constant")
	}
	return constant, nil
}

// List returns constants, optionally filtered by group.
func (s *service) List(ctx context.Context, group string) ([]models.Constant, error) {
	constants, err := s.repo.List(ctx, group)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing constants")
	}
	return constants, nil
}

// Snapshot fetches the current constants as an immutable map. Callers hold
// the snapshot for the duration of a computation and re-fetch when they want
// fresh values; nothing is cached behind their back.
func (s *service) Snapshot(ctx context.Context) (Snapshot, error) {
	constants, err := s.repo.List(ctx, "")
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading constants snapshot")
	}
	snapshot := make(Snapshot, len(constants))
	for _, constant := range constants {
		snapshot[constant.Key] = constant.Value
	}
	return snapshot, nil
}

// SeedDefaults inserts every known constant that is not present yet,
// leaving user-edited values alone.
func (s *service) SeedDefaults(ctx context.Context) error {
	for _, def := range Defaults {
		existing, err := s.repo.FindByKey(ctx, def.Key)
		if err != nil && !db.IsNotFound(err) {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "checking constant")
		}
		if existing != nil {
			continue
		}
		group := def.Group
		description := def.Description
		constant := &models.Constant{
			Key:         def.Key,
			Value:       def.Value,
			ValueType:   def.Type,
			Group:       &group,
			Description: &description,
		}
		if err := s.repo.Create(ctx, constant); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "seeding constant")
		}
	}
	return nil
}
