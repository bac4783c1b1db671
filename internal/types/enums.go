package types

// Lead lifecycle. The intake core only ever writes NEW or REJECTED; the
// remaining statuses belong to downstream auction processing and are kept so
// the status-event audit trail can hold them.
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "NEW"
	LeadStatusValidated LeadStatus = "VALIDATED"
	LeadStatusQualified LeadStatus = "QUALIFIED"
	LeadStatusQueued    LeadStatus = "QUEUED"
	LeadStatusOffered   LeadStatus = "OFFERED"
	LeadStatusSold      LeadStatus = "SOLD"
	LeadStatusRejected  LeadStatus = "REJECTED"
	LeadStatusExpired   LeadStatus = "EXPIRED"
	LeadStatusUnsold    LeadStatus = "UNSOLD"
)

func (s LeadStatus) Terminal() bool {
	switch s {
	case LeadStatusSold, LeadStatusRejected, LeadStatusExpired, LeadStatusUnsold:
		return true
	}
	return false
}

type RejectionReason string

const (
	RejectionDedupeHit           RejectionReason = "DEDUPE_HIT"
	RejectionInvalidPhone        RejectionReason = "INVALID_PHONE"
	RejectionInvalidEmail        RejectionReason = "INVALID_EMAIL"
	RejectionMissingRequired     RejectionReason = "MISSING_REQUIRED_FIELD"
	RejectionTCPAConsentMissing  RejectionReason = "TCPA_CONSENT_MISSING"
	RejectionHoneypotTriggered   RejectionReason = "HONEYPOT_TRIGGERED"
	RejectionRateLimited         RejectionReason = "RATE_LIMITED"
	RejectionJunkDetected        RejectionReason = "JUNK_DETECTED"
	RejectionFraudScoreHigh      RejectionReason = "FRAUD_SCORE_HIGH"
	RejectionStalenessExceeded   RejectionReason = "STALENESS_EXCEEDED"
)

type TargetingMode string

const (
	TargetingNationwide TargetingMode = "NATIONWIDE"
	TargetingState      TargetingMode = "STATE"
	TargetingZipRadius  TargetingMode = "ZIP_RADIUS"
	TargetingMetro      TargetingMode = "METRO"
)

type ClaimType string

const (
	ClaimTypePhone ClaimType = "phone"
	ClaimTypeEmail ClaimType = "email"
)

type OutboxEventStatus string

const (
	OutboxPending OutboxEventStatus = "PENDING"
	OutboxSent    OutboxEventStatus = "SENT"
	OutboxFailed  OutboxEventStatus = "FAILED"
)

type OutboxEventType string

const (
	OutboxEventLeadReceived OutboxEventType = "LeadReceived"
)
