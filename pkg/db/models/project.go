package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Project is one customer order being planned.
type Project struct {
	ID        uuid.UUID        `gorm:"column:id;type:text;primaryKey"`
	Name      string           `gorm:"column:name;not null"`
	Customer  *string          `gorm:"column:customer"`
	Cabinets  []ProjectCabinet `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

func (p *Project) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
