package types

import (
	"time"

	"github.com/google/uuid"
)

// LeadContact is the encrypted PII envelope for a lead. Plaintext contact
// data is never persisted; only the AES-GCM envelopes and one-way hashes are.
type LeadContact struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	LeadID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"lead_id"`
	Lead   *Lead     `gorm:"constraint:OnDelete:CASCADE;foreignKey:LeadID;references:ID" json:"lead,omitempty"`

	PhoneEncrypted     []byte `gorm:"column:phone_encrypted;not null" json:"-"`
	EmailEncrypted     []byte `gorm:"column:email_encrypted" json:"-"`
	FirstNameEncrypted []byte `gorm:"column:first_name_encrypted" json:"-"`
	LastNameEncrypted  []byte `gorm:"column:last_name_encrypted" json:"-"`

	// Hashes are for dedupe equality lookups only, never reversed.
	PhoneHash string  `gorm:"column:phone_hash;not null;index" json:"-"`
	EmailHash *string `gorm:"column:email_hash;index" json:"-"`

	// Operational metadata, cleartext by design of the schema.
	IPAddress *string `gorm:"column:ip_address" json:"ip_address,omitempty"`
	UserAgent *string `gorm:"column:user_agent" json:"user_agent,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (LeadContact) TableName() string { return "lead_contacts" }
