package services

import (
	"regexp"
	"strings"
)

// CapturePayload is the typed shape of one inbound form submission. It is
// produced by JSON binding and must pass Validate before anything downstream
// reads it.
type CapturePayload struct {
	// Required
	Phone              string `json:"phone"`
	FirstName          string `json:"first_name"`
	LastName           string `json:"last_name"`
	Zip                string `json:"zip"`
	CategorySlug       string `json:"category_slug"`
	ServiceSlug        string `json:"service_slug"`
	TCPAConsent        bool   `json:"tcpa_consent"`
	ConsentText        string `json:"consent_text"`
	ConsentTextVersion string `json:"consent_text_version"`
	Domain             string `json:"domain"`
	PageURL            string `json:"page_url"`

	// Optional
	Email             *string                `json:"email,omitempty"`
	Urgency           *string                `json:"urgency,omitempty"`
	PropertyType      *string                `json:"property_type,omitempty"`
	ProjectSizeBucket *string                `json:"project_size_bucket,omitempty"`
	BudgetRange       *string                `json:"budget_range,omitempty"`
	TimeframeDays     *int                   `json:"timeframe_days,omitempty"`
	PageType          *string                `json:"page_type,omitempty"`
	UTMSource         *string                `json:"utm_source,omitempty"`
	UTMMedium         *string                `json:"utm_medium,omitempty"`
	UTMCampaign       *string                `json:"utm_campaign,omitempty"`
	UTMTerm           *string                `json:"utm_term,omitempty"`
	UTMContent        *string                `json:"utm_content,omitempty"`
	IdempotencyKey    *string                `json:"idempotency_key,omitempty"`
	Responses         map[string]interface{} `json:"responses,omitempty"`

	// Honeypot: a real consumer never fills this.
	Website string `json:"website,omitempty"`
}

var (
	nonDigitRe = regexp.MustCompile(`\D`)
	zipRe      = regexp.MustCompile(`^\d{5}$`)
)

// NormalizePhone strips everything but digits.
func NormalizePhone(phone string) string {
	return nonDigitRe.ReplaceAllString(phone, "")
}

// ValidatePayload checks every constraint in one pass and returns the full
// list of violations so the caller can report them all at once. It is pure.
func ValidatePayload(p *CapturePayload) []string {
	var errs []string
	if p == nil {
		return []string{"payload is required"}
	}
	if strings.TrimSpace(p.Phone) == "" {
		errs = append(errs, "phone is required")
	} else if digits := NormalizePhone(p.Phone); len(digits) < 10 || len(digits) > 11 {
		errs = append(errs, "phone must be 10-11 digits")
	}
	if strings.TrimSpace(p.FirstName) == "" {
		errs = append(errs, "first_name is required")
	}
	if strings.TrimSpace(p.LastName) == "" {
		errs = append(errs, "last_name is required")
	}
	if strings.TrimSpace(p.Zip) == "" {
		errs = append(errs, "zip is required")
	} else if !zipRe.MatchString(p.Zip) {
		errs = append(errs, "zip must be 5 digits")
	}
	if strings.TrimSpace(p.CategorySlug) == "" {
		errs = append(errs, "category_slug is required")
	}
	if strings.TrimSpace(p.ServiceSlug) == "" {
		errs = append(errs, "service_slug is required")
	}
	if !p.TCPAConsent {
		errs = append(errs, "tcpa_consent must be true")
	}
	if strings.TrimSpace(p.ConsentText) == "" {
		errs = append(errs, "consent_text is required")
	}
	if strings.TrimSpace(p.ConsentTextVersion) == "" {
		errs = append(errs, "consent_text_version is required")
	}
	if strings.TrimSpace(p.Domain) == "" {
		errs = append(errs, "domain is required")
	}
	if strings.TrimSpace(p.PageURL) == "" {
		errs = append(errs, "page_url is required")
	}
	return errs
}
