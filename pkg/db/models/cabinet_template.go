package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CabinetTemplate is a catalog-level reusable cabinet definition. The catalog
// side stays mutable; projects never reference these rows for dimensions,
// only for traceability.
type CabinetTemplate struct {
	ID          uuid.UUID           `gorm:"column:id;type:text;primaryKey"`
	KitchenType string              `gorm:"column:kitchen_type;not null"`
	Name        string              `gorm:"column:name;not null;uniqueIndex"`
	Parts       []CabinetPart       `gorm:"foreignKey:TemplateID;constraint:OnDelete:CASCADE"`
	DrawerRows  []TemplateDrawerRow `gorm:"foreignKey:TemplateID;constraint:OnDelete:CASCADE"`
	Accessories []TemplateAccessory `gorm:"foreignKey:TemplateID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

func (t *CabinetTemplate) BeforeCreate(*gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// CabinetPart is one predefined part of a catalog template.
type CabinetPart struct {
	ID          uuid.UUID `gorm:"column:id;type:text;primaryKey"`
	TemplateID  uuid.UUID `gorm:"column:template_id;type:text;not null;index"`
	PartName    string    `gorm:"column:part_name;not null"`
	HeightMM    int       `gorm:"column:height_mm;not null"`
	WidthMM     int       `gorm:"column:width_mm;not null"`
	Pieces      int       `gorm:"column:pieces;not null;default:1"`
	Material    string    `gorm:"column:material;not null"`
	ThicknessMM *int      `gorm:"column:thickness_mm"`
	Wrapping    *string   `gorm:"column:wrapping"`
	Comments    *string   `gorm:"column:comments"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (p *CabinetPart) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TemplateDrawerRow describes one drawer row of a template's front stack.
// Catalog-side metadata only; snapshots carry the computed front parts, not
// the row definitions.
type TemplateDrawerRow struct {
	ID            uuid.UUID `gorm:"column:id;type:text;primaryKey"`
	TemplateID    uuid.UUID `gorm:"column:template_id;type:text;not null;index"`
	RowNumber     int       `gorm:"column:row_number;not null"`
	FrontHeightMM *int      `gorm:"column:front_height_mm"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (d *TemplateDrawerRow) BeforeCreate(*gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// TemplateAccessory is a default hardware line attached to a template.
type TemplateAccessory struct {
	ID         uuid.UUID `gorm:"column:id;type:text;primaryKey"`
	TemplateID uuid.UUID `gorm:"column:template_id;type:text;not null;index"`
	Name       string    `gorm:"column:name;not null"`
	Count      int       `gorm:"column:count;not null;default:1"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (a *TemplateAccessory) BeforeCreate(*gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
