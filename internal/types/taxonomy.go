package types

import (
	"time"

	"github.com/google/uuid"
)

// Taxonomy reference tables. Owned by the catalog/admin side; the intake
// pipeline only resolves slugs against them, it never writes them.

type Category struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Slug      string    `gorm:"column:slug;not null;uniqueIndex" json:"slug"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Category) TableName() string { return "categories" }

type Service struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CategoryID uuid.UUID `gorm:"type:uuid;not null;index:idx_service_category_slug,unique,priority:1" json:"category_id"`
	Category   *Category `gorm:"constraint:OnDelete:CASCADE;foreignKey:CategoryID;references:ID" json:"category,omitempty"`
	Slug       string    `gorm:"column:slug;not null;index:idx_service_category_slug,unique,priority:2" json:"slug"`
	Name       string    `gorm:"column:name;not null" json:"name"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}

func (Service) TableName() string { return "services" }

type Site struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Domain    string    `gorm:"column:domain;not null;uniqueIndex" json:"domain"`
	Name      string    `gorm:"column:name" json:"name"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Site) TableName() string { return "sites" }

type Metro struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Slug      string    `gorm:"column:slug;not null;uniqueIndex" json:"slug"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	State     string    `gorm:"column:state;not null" json:"state"`
	IsActive  bool      `gorm:"column:is_active;not null;default:true;index" json:"is_active"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Metro) TableName() string { return "metros" }
