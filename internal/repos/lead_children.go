package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/davincidevllc/continue-leads/internal/pkg/logger"
	"github.com/davincidevllc/continue-leads/internal/types"
)

// Child rows of a lead are write-once inside the intake transaction, so the
// repos here only carry Create plus the reads the tests and admin side need.

type LeadContactRepo interface {
	Create(ctx context.Context, tx *gorm.DB, contact *types.LeadContact) (*types.LeadContact, error)
	GetByLeadID(ctx context.Context, tx *gorm.DB, leadID uuid.UUID) (*types.LeadContact, error)
}

type leadContactRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLeadContactRepo(db *gorm.DB, baseLog *logger.Logger) LeadContactRepo {
	return &leadContactRepo{db: db, log: baseLog.With("repo", "LeadContactRepo")}
}

func (r *leadContactRepo) Create(ctx context.Context, tx *gorm.DB, contact *types.LeadContact) (*types.LeadContact, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if contact == nil {
		return nil, errors.New("contact is nil")
	}
	if err := transaction.WithContext(ctx).Create(contact).Error; err != nil {
		return nil, err
	}
	return contact, nil
}

func (r *leadContactRepo) GetByLeadID(ctx context.Context, tx *gorm.DB, leadID uuid.UUID) (*types.LeadContact, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var contact types.LeadContact
	err := transaction.WithContext(ctx).
		Where("lead_id = ?", leadID).
		Limit(1).
		Find(&contact).Error
	if err != nil {
		return nil, err
	}
	if contact.ID == uuid.Nil {
		return nil, nil
	}
	return &contact, nil
}

type LeadConsentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, consent *types.LeadConsent) (*types.LeadConsent, error)
}

type leadConsentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLeadConsentRepo(db *gorm.DB, baseLog *logger.Logger) LeadConsentRepo {
	return &leadConsentRepo{db: db, log: baseLog.With("repo", "LeadConsentRepo")}
}

func (r *leadConsentRepo) Create(ctx context.Context, tx *gorm.DB, consent *types.LeadConsent) (*types.LeadConsent, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if consent == nil {
		return nil, errors.New("consent is nil")
	}
	if err := transaction.WithContext(ctx).Create(consent).Error; err != nil {
		return nil, err
	}
	return consent, nil
}

type LeadAttributionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, attribution *types.LeadAttribution) (*types.LeadAttribution, error)
}

type leadAttributionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLeadAttributionRepo(db *gorm.DB, baseLog *logger.Logger) LeadAttributionRepo {
	return &leadAttributionRepo{db: db, log: baseLog.With("repo", "LeadAttributionRepo")}
}

func (r *leadAttributionRepo) Create(ctx context.Context, tx *gorm.DB, attribution *types.LeadAttribution) (*types.LeadAttribution, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if attribution == nil {
		return nil, errors.New("attribution is nil")
	}
	if err := transaction.WithContext(ctx).Create(attribution).Error; err != nil {
		return nil, err
	}
	return attribution, nil
}

type LeadDetailsRepo interface {
	Create(ctx context.Context, tx *gorm.DB, details *types.LeadDetails) (*types.LeadDetails, error)
}

type leadDetailsRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLeadDetailsRepo(db *gorm.DB, baseLog *logger.Logger) LeadDetailsRepo {
	return &leadDetailsRepo{db: db, log: baseLog.With("repo", "LeadDetailsRepo")}
}

func (r *leadDetailsRepo) Create(ctx context.Context, tx *gorm.DB, details *types.LeadDetails) (*types.LeadDetails, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if details == nil {
		return nil, errors.New("details is nil")
	}
	if err := transaction.WithContext(ctx).Create(details).Error; err != nil {
		return nil, err
	}
	return details, nil
}
