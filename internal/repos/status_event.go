package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/davincidevllc/continue-leads/internal/pkg/logger"
	"github.com/davincidevllc/continue-leads/internal/types"
)

// StatusEventRepo is append-only; there is intentionally no update or delete.
type StatusEventRepo interface {
	Append(ctx context.Context, tx *gorm.DB, event *types.LeadStatusEvent) (*types.LeadStatusEvent, error)
	GetByLeadID(ctx context.Context, tx *gorm.DB, leadID uuid.UUID) ([]*types.LeadStatusEvent, error)
}

type statusEventRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStatusEventRepo(db *gorm.DB, baseLog *logger.Logger) StatusEventRepo {
	return &statusEventRepo{db: db, log: baseLog.With("repo", "StatusEventRepo")}
}

func (r *statusEventRepo) Append(ctx context.Context, tx *gorm.DB, event *types.LeadStatusEvent) (*types.LeadStatusEvent, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if event == nil {
		return nil, errors.New("status event is nil")
	}
	if err := transaction.WithContext(ctx).Create(event).Error; err != nil {
		return nil, err
	}
	return event, nil
}

func (r *statusEventRepo) GetByLeadID(ctx context.Context, tx *gorm.DB, leadID uuid.UUID) ([]*types.LeadStatusEvent, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.LeadStatusEvent
	if leadID == uuid.Nil {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("lead_id = ?", leadID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
