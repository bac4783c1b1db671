package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/davincidevllc/continue-leads/internal/pkg/logger"
	"github.com/davincidevllc/continue-leads/internal/types"
)

type LeadRepo interface {
	Create(ctx context.Context, tx *gorm.DB, lead *types.Lead) (*types.Lead, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Lead, error)
	GetByIdempotencyKey(ctx context.Context, tx *gorm.DB, key string) (*types.Lead, error)
}

type leadRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLeadRepo(db *gorm.DB, baseLog *logger.Logger) LeadRepo {
	return &leadRepo{db: db, log: baseLog.With("repo", "LeadRepo")}
}

func (r *leadRepo) Create(ctx context.Context, tx *gorm.DB, lead *types.Lead) (*types.Lead, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if lead == nil {
		return nil, errors.New("lead is nil")
	}
	if err := transaction.WithContext(ctx).Create(lead).Error; err != nil {
		return nil, err
	}
	return lead, nil
}

func (r *leadRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Lead, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var lead types.Lead
	err := transaction.WithContext(ctx).
		Where("id = ?", id).
		Limit(1).
		Find(&lead).Error
	if err != nil {
		return nil, err
	}
	if lead.ID == uuid.Nil {
		return nil, nil
	}
	return &lead, nil
}

func (r *leadRepo) GetByIdempotencyKey(ctx context.Context, tx *gorm.DB, key string) (*types.Lead, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if key == "" {
		return nil, nil
	}
	var lead types.Lead
	err := transaction.WithContext(ctx).
		Where("idempotency_key = ?", key).
		Limit(1).
		Find(&lead).Error
	if err != nil {
		return nil, err
	}
	if lead.ID == uuid.Nil {
		return nil, nil
	}
	return &lead, nil
}
