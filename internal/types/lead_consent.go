package types

import (
	"time"

	"github.com/google/uuid"
)

// LeadConsent captures the TCPA opt-in verbatim at submission time so
// compliance can be proven even if the live consent copy later changes.
type LeadConsent struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	LeadID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"lead_id"`
	Lead   *Lead     `gorm:"constraint:OnDelete:CASCADE;foreignKey:LeadID;references:ID" json:"lead,omitempty"`

	TCPAConsent        bool   `gorm:"column:tcpa_consent;not null" json:"tcpa_consent"`
	ConsentText        string `gorm:"column:consent_text;not null" json:"consent_text"`
	ConsentTextVersion string `gorm:"column:consent_text_version;not null" json:"consent_text_version"`

	IPAddress *string `gorm:"column:ip_address" json:"ip_address,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (LeadConsent) TableName() string { return "lead_consents" }
