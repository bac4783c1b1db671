package repos

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/davincidevllc/continue-leads/internal/pkg/logger"
	"github.com/davincidevllc/continue-leads/internal/types"
)

type DedupeClaimRepo interface {
	Create(ctx context.Context, tx *gorm.DB, claims []*types.LeadDedupeClaim) ([]*types.LeadDedupeClaim, error)
	// AnyActive reports whether an active claim exists for the hash/channel
	// at the given instant (window_start <= now <= window_end).
	AnyActive(ctx context.Context, tx *gorm.DB, claimHash string, claimType types.ClaimType, now time.Time) (bool, error)
	// DeleteExpired drops claims whose window ended before the cutoff.
	// Storage hygiene only; correctness never depends on it.
	DeleteExpired(ctx context.Context, tx *gorm.DB, cutoff time.Time) (int64, error)
}

type dedupeClaimRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDedupeClaimRepo(db *gorm.DB, baseLog *logger.Logger) DedupeClaimRepo {
	return &dedupeClaimRepo{db: db, log: baseLog.With("repo", "DedupeClaimRepo")}
}

func (r *dedupeClaimRepo) Create(ctx context.Context, tx *gorm.DB, claims []*types.LeadDedupeClaim) ([]*types.LeadDedupeClaim, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(claims) == 0 {
		return []*types.LeadDedupeClaim{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&claims).Error; err != nil {
		return nil, err
	}
	return claims, nil
}

func (r *dedupeClaimRepo) AnyActive(ctx context.Context, tx *gorm.DB, claimHash string, claimType types.ClaimType, now time.Time) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if claimHash == "" {
		return false, nil
	}
	var count int64
	err := transaction.WithContext(ctx).
		Model(&types.LeadDedupeClaim{}).
		Where("claim_hash = ? AND claim_type = ? AND window_start <= ? AND window_end >= ?", claimHash, claimType, now, now).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *dedupeClaimRepo) DeleteExpired(ctx context.Context, tx *gorm.DB, cutoff time.Time) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	res := transaction.WithContext(ctx).
		Where("window_end < ?", cutoff).
		Delete(&types.LeadDedupeClaim{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
