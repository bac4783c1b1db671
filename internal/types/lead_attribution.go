package types

import (
	"time"

	"github.com/google/uuid"
)

type LeadAttribution struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	LeadID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"lead_id"`
	Lead   *Lead     `gorm:"constraint:OnDelete:CASCADE;foreignKey:LeadID;references:ID" json:"lead,omitempty"`

	Domain   string `gorm:"column:domain;not null;index" json:"domain"`
	PageURL  string `gorm:"column:page_url;not null" json:"page_url"`
	PageType string `gorm:"column:page_type" json:"page_type"`

	UTMSource   *string `gorm:"column:utm_source" json:"utm_source,omitempty"`
	UTMMedium   *string `gorm:"column:utm_medium" json:"utm_medium,omitempty"`
	UTMCampaign *string `gorm:"column:utm_campaign" json:"utm_campaign,omitempty"`
	UTMTerm     *string `gorm:"column:utm_term" json:"utm_term,omitempty"`
	UTMContent  *string `gorm:"column:utm_content" json:"utm_content,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (LeadAttribution) TableName() string { return "lead_attributions" }
