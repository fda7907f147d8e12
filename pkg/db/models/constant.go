package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mwitczak/cabplanner/pkg/enums"
)

// Constant is one user-editable numeric setting (board thickness, gaps,
// default heights). Value is always a float; ValueType only drives how the
// editor renders it.
type Constant struct {
	ID          uuid.UUID          `gorm:"column:id;type:text;primaryKey"`
	Key         string             `gorm:"column:key;not null;uniqueIndex"`
	Value       float64            `gorm:"column:value;not null"`
	ValueType   enums.ConstantType `gorm:"column:value_type;not null;default:'float'"`
	Group       *string            `gorm:"column:group_name"`
	Description *string            `gorm:"column:description"`
	CreatedAt   time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

func (c *Constant) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
