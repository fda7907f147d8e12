package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProjectCabinet is a cabinet placed in a project. TypeID nil marks a custom
// cabinet with no catalog backing. SequenceNumber is unique within a project
// and shows up as the circled glyph in reports.
type ProjectCabinet struct {
	ID             uuid.UUID                 `gorm:"column:id;type:text;primaryKey"`
	ProjectID      uuid.UUID                 `gorm:"column:project_id;type:text;not null;index;uniqueIndex:idx_project_sequence"`
	TypeID         *uuid.UUID                `gorm:"column:type_id;type:text"`
	SequenceNumber int                       `gorm:"column:sequence_number;not null;uniqueIndex:idx_project_sequence"`
	BodyColor      string                    `gorm:"column:body_color;not null"`
	FrontColor     string                    `gorm:"column:front_color;not null"`
	HandleType     string                    `gorm:"column:handle_type;not null"`
	Quantity       int                       `gorm:"column:quantity;not null;default:1"`
	Parts          []ProjectCabinetPart      `gorm:"foreignKey:ProjectCabinetID;constraint:OnDelete:CASCADE"`
	Accessories    []ProjectCabinetAccessory `gorm:"foreignKey:ProjectCabinetID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time                 `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time                 `gorm:"column:updated_at;autoUpdateTime"`
}

func (c *ProjectCabinet) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// ProjectCabinetPart is the frozen snapshot of one manufactured part. Once
// written, dimension fields are never recomputed: reports reflect what was
// actually planned even if the source template changes later. The source
// references and CalcContextJSON exist purely for traceability.
type ProjectCabinetPart struct {
	ID               uuid.UUID  `gorm:"column:id;type:text;primaryKey"`
	ProjectCabinetID uuid.UUID  `gorm:"column:project_cabinet_id;type:text;not null;index"`
	PartName         string     `gorm:"column:part_name;not null"`
	HeightMM         int        `gorm:"column:height_mm;not null"`
	WidthMM          int        `gorm:"column:width_mm;not null"`
	Pieces           int        `gorm:"column:pieces;not null;default:1"`
	Material         string     `gorm:"column:material;not null"`
	ThicknessMM      *int       `gorm:"column:thickness_mm"`
	Wrapping         *string    `gorm:"column:wrapping"`
	Comments         *string    `gorm:"column:comments"`
	SourceTemplateID *uuid.UUID `gorm:"column:source_template_id;type:text"`
	SourcePartID     *uuid.UUID `gorm:"column:source_part_id;type:text"`
	CalcContextJSON  *string    `gorm:"column:calc_context_json"`
	CreatedAt        time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (p *ProjectCabinetPart) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// ProjectCabinetAccessory is the frozen copy of one hardware line.
type ProjectCabinetAccessory struct {
	ID                uuid.UUID  `gorm:"column:id;type:text;primaryKey"`
	ProjectCabinetID  uuid.UUID  `gorm:"column:project_cabinet_id;type:text;not null;index"`
	Name              string     `gorm:"column:name;not null"`
	Count             int        `gorm:"column:count;not null;default:1"`
	SourceAccessoryID *uuid.UUID `gorm:"column:source_accessory_id;type:text"`
	CreatedAt         time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (a *ProjectCabinetAccessory) BeforeCreate(*gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
