package types

import (
	"time"

	"github.com/google/uuid"
)

// LeadStatusEvent is the append-only audit trail of status transitions.
// The first event for a lead always has FromStatus = nil.
type LeadStatusEvent struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	LeadID uuid.UUID `gorm:"type:uuid;not null;index" json:"lead_id"`
	Lead   *Lead     `gorm:"constraint:OnDelete:CASCADE;foreignKey:LeadID;references:ID" json:"lead,omitempty"`

	FromStatus *LeadStatus `gorm:"column:from_status" json:"from_status,omitempty"`
	ToStatus   LeadStatus  `gorm:"column:to_status;not null" json:"to_status"`
	Reason     string      `gorm:"column:reason" json:"reason"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (LeadStatusEvent) TableName() string { return "lead_status_events" }
