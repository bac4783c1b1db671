package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/davincidevllc/continue-leads/internal/crypto"
	apperrors "github.com/davincidevllc/continue-leads/internal/pkg/errors"
	"github.com/davincidevllc/continue-leads/internal/pkg/logger"
	"github.com/davincidevllc/continue-leads/internal/repos"
	"github.com/davincidevllc/continue-leads/internal/types"
)

// SubmitResult is what the intake pipeline reports back to the HTTP layer.
type SubmitResult struct {
	LeadID    uuid.UUID
	Status    types.LeadStatus
	DedupeHit bool
	// Created is false for an idempotency-key replay.
	Created bool
}

// RequestMeta is operational metadata captured off the HTTP request.
type RequestMeta struct {
	ClientIP      string
	UserAgent     string
	CorrelationID string
}

type LeadIntakeService interface {
	Submit(ctx context.Context, payload *CapturePayload, meta RequestMeta) (*SubmitResult, error)
}

type leadIntakeService struct {
	db     *gorm.DB
	log    *logger.Logger
	cipher *crypto.Cipher

	leads        repos.LeadRepo
	contacts     repos.LeadContactRepo
	consents     repos.LeadConsentRepo
	attributions repos.LeadAttributionRepo
	details      repos.LeadDetailsRepo
	claims       repos.DedupeClaimRepo
	events       repos.StatusEventRepo
	taxonomy     repos.TaxonomyRepo

	dedupe DedupeService
	outbox OutboxService

	now func() time.Time
}

func NewLeadIntakeService(
	db *gorm.DB,
	baseLog *logger.Logger,
	cipher *crypto.Cipher,
	leads repos.LeadRepo,
	contacts repos.LeadContactRepo,
	consents repos.LeadConsentRepo,
	attributions repos.LeadAttributionRepo,
	details repos.LeadDetailsRepo,
	claims repos.DedupeClaimRepo,
	events repos.StatusEventRepo,
	taxonomy repos.TaxonomyRepo,
	dedupe DedupeService,
	outbox OutboxService,
	now func() time.Time,
) LeadIntakeService {
	if now == nil {
		now = time.Now
	}
	return &leadIntakeService{
		db:           db,
		log:          baseLog.With("service", "LeadIntakeService"),
		cipher:       cipher,
		leads:        leads,
		contacts:     contacts,
		consents:     consents,
		attributions: attributions,
		details:      details,
		claims:       claims,
		events:       events,
		taxonomy:     taxonomy,
		dedupe:       dedupe,
		outbox:       outbox,
		now:          now,
	}
}

func (s *leadIntakeService) Submit(ctx context.Context, payload *CapturePayload, meta RequestMeta) (*SubmitResult, error) {
	if fieldErrs := ValidatePayload(payload); len(fieldErrs) > 0 {
		return nil, apperrors.NewValidation(fieldErrs)
	}

	// Idempotency fast path: resubmission with a known key replays the
	// original outcome without touching any table.
	if payload.IdempotencyKey != nil && *payload.IdempotencyKey != "" {
		existing, err := s.leads.GetByIdempotencyKey(ctx, nil, *payload.IdempotencyKey)
		if err != nil {
			return nil, apperrors.NewStorage(err)
		}
		if existing != nil {
			return &SubmitResult{
				LeadID:    existing.ID,
				Status:    existing.Status,
				DedupeHit: existing.DedupeHit,
				Created:   false,
			}, nil
		}
	}

	// Resolve taxonomy references before paying for any crypto work.
	category, err := s.taxonomy.GetCategoryBySlug(ctx, nil, payload.CategorySlug)
	if err != nil {
		return nil, apperrors.NewStorage(err)
	}
	if category == nil {
		return nil, apperrors.NewNotFound("Invalid category_slug")
	}
	service, err := s.taxonomy.GetServiceBySlug(ctx, nil, category.ID, payload.ServiceSlug)
	if err != nil {
		return nil, apperrors.NewStorage(err)
	}
	if service == nil {
		return nil, apperrors.NewNotFound("Invalid service_slug for this category")
	}
	site, err := s.taxonomy.GetSiteByDomain(ctx, nil, payload.Domain)
	if err != nil {
		return nil, apperrors.NewStorage(err)
	}
	metroSlug, err := s.taxonomy.GetActiveMetroSlug(ctx, nil)
	if err != nil {
		return nil, apperrors.NewStorage(err)
	}

	// PII is encrypted and hashed up front; plaintext never crosses into the
	// transaction closure.
	phoneDigits := NormalizePhone(payload.Phone)
	phoneEncrypted, err := s.cipher.Encrypt(phoneDigits)
	if err != nil {
		return nil, err
	}
	phoneHash := crypto.Hash(phoneDigits)
	firstNameEncrypted, err := s.cipher.Encrypt(payload.FirstName)
	if err != nil {
		return nil, err
	}
	lastNameEncrypted, err := s.cipher.Encrypt(payload.LastName)
	if err != nil {
		return nil, err
	}
	var emailEncrypted []byte
	var emailHash *string
	if payload.Email != nil && strings.TrimSpace(*payload.Email) != "" {
		emailEncrypted, err = s.cipher.Encrypt(*payload.Email)
		if err != nil {
			return nil, err
		}
		h := crypto.Hash(*payload.Email)
		emailHash = &h
	}

	now := s.now()
	var result *SubmitResult

	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dedupeHit, err := s.dedupe.Check(ctx, tx, phoneHash, emailHash, now)
		if err != nil {
			return err
		}

		status := types.LeadStatusNew
		var rejection *types.RejectionReason
		if dedupeHit {
			status = types.LeadStatusRejected
			reason := types.RejectionDedupeHit
			rejection = &reason
		}

		lead := &types.Lead{
			Status:            status,
			RejectionReason:   rejection,
			DedupeHit:         dedupeHit,
			CategoryID:        &category.ID,
			ServiceID:         &service.ID,
			IdempotencyKey:    emptyToNil(payload.IdempotencyKey),
			Urgency:           payload.Urgency,
			PropertyType:      payload.PropertyType,
			ProjectSizeBucket: payload.ProjectSizeBucket,
			BudgetRange:       payload.BudgetRange,
			TimeframeDays:     payload.TimeframeDays,
			TargetingMode:     types.TargetingMetro,
			Zip:               &payload.Zip,
			MetroSlug:         metroSlug,
		}
		if site != nil {
			lead.SiteID = &site.ID
		}
		if _, err := s.leads.Create(ctx, tx, lead); err != nil {
			return err
		}

		contact := &types.LeadContact{
			LeadID:             lead.ID,
			PhoneEncrypted:     phoneEncrypted,
			EmailEncrypted:     emailEncrypted,
			FirstNameEncrypted: firstNameEncrypted,
			LastNameEncrypted:  lastNameEncrypted,
			PhoneHash:          phoneHash,
			EmailHash:          emailHash,
			IPAddress:          emptyToNil(&meta.ClientIP),
			UserAgent:          emptyToNil(&meta.UserAgent),
		}
		if _, err := s.contacts.Create(ctx, tx, contact); err != nil {
			return err
		}

		consent := &types.LeadConsent{
			LeadID:             lead.ID,
			TCPAConsent:        payload.TCPAConsent,
			ConsentText:        payload.ConsentText,
			ConsentTextVersion: payload.ConsentTextVersion,
			IPAddress:          emptyToNil(&meta.ClientIP),
		}
		if _, err := s.consents.Create(ctx, tx, consent); err != nil {
			return err
		}

		attribution := &types.LeadAttribution{
			LeadID:      lead.ID,
			Domain:      payload.Domain,
			PageURL:     payload.PageURL,
			PageType:    stringOrEmpty(payload.PageType),
			UTMSource:   payload.UTMSource,
			UTMMedium:   payload.UTMMedium,
			UTMCampaign: payload.UTMCampaign,
			UTMTerm:     payload.UTMTerm,
			UTMContent:  payload.UTMContent,
		}
		if _, err := s.attributions.Create(ctx, tx, attribution); err != nil {
			return err
		}

		if len(payload.Responses) > 0 {
			raw, err := json.Marshal(payload.Responses)
			if err != nil {
				return err
			}
			detailsRow := &types.LeadDetails{
				LeadID:    lead.ID,
				Responses: datatypes.JSON(raw),
			}
			if _, err := s.details.Create(ctx, tx, detailsRow); err != nil {
				return err
			}
		}

		if !dedupeHit {
			claims := s.dedupe.BuildClaims(lead.ID, phoneHash, emailHash, now)
			if _, err := s.claims.Create(ctx, tx, claims); err != nil {
				return err
			}
		}

		reason := "New lead captured"
		if dedupeHit {
			reason = "Phone or email dedupe hit"
		}
		event := &types.LeadStatusEvent{
			LeadID:   lead.ID,
			ToStatus: status,
			Reason:   reason,
		}
		if _, err := s.events.Append(ctx, tx, event); err != nil {
			return err
		}

		if !dedupeHit && s.outbox != nil {
			msg := s.buildLeadReceived(lead, payload, meta, now)
			if _, err := s.outbox.Enqueue(ctx, tx, msg); err != nil {
				return err
			}
		}

		result = &SubmitResult{
			LeadID:    lead.ID,
			Status:    status,
			DedupeHit: dedupeHit,
			Created:   true,
		}
		return nil
	})

	if txErr != nil {
		if isUniqueViolation(txErr) {
			// A concurrent request committed the same idempotency key first;
			// hand back its lead instead of erroring.
			if payload.IdempotencyKey != nil && *payload.IdempotencyKey != "" {
				existing, lookupErr := s.leads.GetByIdempotencyKey(ctx, nil, *payload.IdempotencyKey)
				if lookupErr == nil && existing != nil {
					return &SubmitResult{
						LeadID:    existing.ID,
						Status:    existing.Status,
						DedupeHit: existing.DedupeHit,
						Created:   false,
					}, nil
				}
			}
			return nil, apperrors.NewConflict("duplicate lead detected")
		}
		return nil, apperrors.NewStorage(txErr)
	}

	s.log.Info("Lead captured",
		"lead_id", result.LeadID,
		"status", string(result.Status),
		"dedupe_hit", result.DedupeHit,
	)
	return result, nil
}

func (s *leadIntakeService) buildLeadReceived(lead *types.Lead, payload *CapturePayload, meta RequestMeta, now time.Time) *LeadReceivedMessage {
	correlationID := meta.CorrelationID
	if correlationID == "" {
		correlationID = uuid.New().String()
	}
	msg := &LeadReceivedMessage{
		SchemaVersion: "1.0",
		EventType:     string(types.OutboxEventLeadReceived),
		EventID:       uuid.New(),
		OccurredAt:    now,
		LeadID:        lead.ID,
		CorrelationID: correlationID,
		CreatedAt:     now,
	}
	msg.Service.CategoryID = lead.CategoryID
	msg.Service.ServiceID = lead.ServiceID
	msg.Location.TargetingMode = lead.TargetingMode
	msg.Location.State = lead.State
	msg.Location.Zip = lead.Zip
	msg.Location.MetroSlug = lead.MetroSlug
	msg.Value.Urgency = lead.Urgency
	msg.Value.PropertyType = lead.PropertyType
	msg.Value.ProjectSizeBucket = lead.ProjectSizeBucket
	msg.Value.BudgetRange = lead.BudgetRange
	msg.Value.TimeframeDays = lead.TimeframeDays
	msg.Attribution.Domain = payload.Domain
	msg.Attribution.PageURL = payload.PageURL
	msg.Attribution.PageType = stringOrEmpty(payload.PageType)
	msg.Attribution.UTM.Source = payload.UTMSource
	msg.Attribution.UTM.Medium = payload.UTMMedium
	msg.Attribution.UTM.Campaign = payload.UTMCampaign
	msg.Attribution.UTM.Term = payload.UTMTerm
	msg.Attribution.UTM.Content = payload.UTMContent
	msg.Compliance.TCPAConsent = payload.TCPAConsent
	msg.Compliance.ConsentTextVersion = payload.ConsentTextVersion
	msg.Dedupe.DedupeWindowSeconds = s.dedupe.WindowDays() * 24 * 60 * 60
	msg.Dedupe.DedupeHit = lead.DedupeHit
	return msg
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	// 23505 is Postgres unique_violation; sqlite reports UNIQUE constraint.
	return strings.Contains(msg, "23505") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint")
}

func emptyToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
