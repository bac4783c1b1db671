package types

import (
	"time"

	"github.com/google/uuid"
)

type Lead struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	SiteID *uuid.UUID `gorm:"type:uuid;index" json:"site_id,omitempty"`
	Site   *Site      `gorm:"foreignKey:SiteID;references:ID" json:"site,omitempty"`

	// Client-supplied retry token. Unique when present; a resubmission with
	// the same key returns the original lead, never a second row.
	IdempotencyKey *string `gorm:"column:idempotency_key;uniqueIndex" json:"idempotency_key,omitempty"`

	Status          LeadStatus       `gorm:"column:status;not null;index" json:"status"`
	RejectionReason *RejectionReason `gorm:"column:rejection_reason" json:"rejection_reason,omitempty"`
	DedupeHit       bool             `gorm:"column:dedupe_hit;not null;default:false" json:"dedupe_hit"`

	CategoryID *uuid.UUID `gorm:"type:uuid;index" json:"category_id,omitempty"`
	ServiceID  *uuid.UUID `gorm:"type:uuid;index" json:"service_id,omitempty"`

	// Value drivers (free-form enumerations, all optional)
	Urgency           *string `gorm:"column:urgency" json:"urgency,omitempty"`
	PropertyType      *string `gorm:"column:property_type" json:"property_type,omitempty"`
	ProjectSizeBucket *string `gorm:"column:project_size_bucket" json:"project_size_bucket,omitempty"`
	BudgetRange       *string `gorm:"column:budget_range" json:"budget_range,omitempty"`
	TimeframeDays     *int    `gorm:"column:timeframe_days" json:"timeframe_days,omitempty"`

	// Location
	TargetingMode TargetingMode `gorm:"column:targeting_mode;not null;default:'METRO'" json:"targeting_mode"`
	State         *string       `gorm:"column:state" json:"state,omitempty"`
	Zip           *string       `gorm:"column:zip;index" json:"zip,omitempty"`
	MetroSlug     *string       `gorm:"column:metro_slug;index" json:"metro_slug,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Lead) TableName() string { return "leads" }
