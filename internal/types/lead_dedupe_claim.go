package types

import (
	"time"

	"github.com/google/uuid"
)

// LeadDedupeClaim is a time-windowed reservation proving a contact channel
// already produced a lead. Claims are never updated; they expire naturally
// once now passes WindowEnd. Uniqueness across concurrent submissions is
// best-effort, not enforced at the row level.
type LeadDedupeClaim struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	LeadID uuid.UUID `gorm:"type:uuid;not null;index" json:"lead_id"`
	Lead   *Lead     `gorm:"constraint:OnDelete:CASCADE;foreignKey:LeadID;references:ID" json:"lead,omitempty"`

	ClaimHash string    `gorm:"column:claim_hash;not null;index:idx_dedupe_claim_lookup,priority:1" json:"claim_hash"`
	ClaimType ClaimType `gorm:"column:claim_type;not null;index:idx_dedupe_claim_lookup,priority:2" json:"claim_type"`

	WindowStart time.Time `gorm:"column:window_start;not null" json:"window_start"`
	WindowEnd   time.Time `gorm:"column:window_end;not null;index" json:"window_end"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (LeadDedupeClaim) TableName() string { return "lead_dedupe_claims" }

// Active reports whether the claim window contains the given instant.
func (c *LeadDedupeClaim) Active(now time.Time) bool {
	return !now.Before(c.WindowStart) && !now.After(c.WindowEnd)
}
