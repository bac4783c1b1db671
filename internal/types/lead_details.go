package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// LeadDetails holds the qualifying-question responses. No row is written when
// a submission carries no responses.
type LeadDetails struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	LeadID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"lead_id"`
	Lead   *Lead     `gorm:"constraint:OnDelete:CASCADE;foreignKey:LeadID;references:ID" json:"lead,omitempty"`

	Responses datatypes.JSON `gorm:"column:responses;type:jsonb;not null" json:"responses"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (LeadDetails) TableName() string { return "lead_details" }
