package repos

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/davincidevllc/continue-leads/internal/pkg/logger"
	"github.com/davincidevllc/continue-leads/internal/types"
)

type OutboxRepo interface {
	Create(ctx context.Context, tx *gorm.DB, event *types.OutboxEvent) (*types.OutboxEvent, error)
	// ClaimNextDue picks the oldest PENDING event whose next_available_at has
	// passed and bumps its attempt counter. Returns nil when nothing is due.
	ClaimNextDue(ctx context.Context, tx *gorm.DB, now time.Time) (*types.OutboxEvent, error)
	MarkSent(ctx context.Context, tx *gorm.DB, id uuid.UUID, now time.Time) error
	// MarkAttemptFailed records the error and schedules the retry; when the
	// claimed attempt count has reached maxAttempts the event goes FAILED.
	MarkAttemptFailed(ctx context.Context, tx *gorm.DB, id uuid.UUID, errMsg string, nextAvailableAt time.Time, exhausted bool) error
	GetByEventID(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) (*types.OutboxEvent, error)
	GetByAggregateID(ctx context.Context, tx *gorm.DB, aggregateID uuid.UUID) ([]*types.OutboxEvent, error)
}

type outboxRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOutboxRepo(db *gorm.DB, baseLog *logger.Logger) OutboxRepo {
	return &outboxRepo{db: db, log: baseLog.With("repo", "OutboxRepo")}
}

func (r *outboxRepo) Create(ctx context.Context, tx *gorm.DB, event *types.OutboxEvent) (*types.OutboxEvent, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if event == nil {
		return nil, errors.New("outbox event is nil")
	}
	if err := transaction.WithContext(ctx).Create(event).Error; err != nil {
		return nil, err
	}
	return event, nil
}

func (r *outboxRepo) ClaimNextDue(ctx context.Context, tx *gorm.DB, now time.Time) (*types.OutboxEvent, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var claimed *types.OutboxEvent
	err := transaction.WithContext(ctx).Transaction(func(txx *gorm.DB) error {
		var event types.OutboxEvent
		qErr := txx.
			Where("status = ? AND next_available_at <= ? AND attempts < max_attempts", types.OutboxPending, now).
			Order("created_at ASC").
			First(&event).Error
		if errors.Is(qErr, gorm.ErrRecordNotFound) {
			return nil
		}
		if qErr != nil {
			return qErr
		}
		// Conditional bump doubles as the claim; a raced row updates zero
		// rows and this pass simply yields nothing.
		res := txx.Model(&types.OutboxEvent{}).
			Where("id = ? AND status = ? AND attempts = ?", event.ID, types.OutboxPending, event.Attempts).
			Updates(map[string]interface{}{
				"attempts":        gorm.Expr("attempts + 1"),
				"last_attempt_at": now,
				"updated_at":      now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		event.Attempts++
		event.LastAttemptAt = &now
		claimed = &event
		return nil
	})
	if err != nil {
		return nil, err
	}
	return claimed, nil
}

func (r *outboxRepo) MarkSent(ctx context.Context, tx *gorm.DB, id uuid.UUID, now time.Time) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Model(&types.OutboxEvent{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        types.OutboxSent,
			"error_message": nil,
			"updated_at":    now,
		}).Error
}

func (r *outboxRepo) MarkAttemptFailed(ctx context.Context, tx *gorm.DB, id uuid.UUID, errMsg string, nextAvailableAt time.Time, exhausted bool) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	status := types.OutboxPending
	if exhausted {
		status = types.OutboxFailed
	}
	return transaction.WithContext(ctx).
		Model(&types.OutboxEvent{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":            status,
			"error_message":     errMsg,
			"next_available_at": nextAvailableAt,
		}).Error
}

func (r *outboxRepo) GetByEventID(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) (*types.OutboxEvent, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var event types.OutboxEvent
	err := transaction.WithContext(ctx).
		Where("event_id = ?", eventID).
		Limit(1).
		Find(&event).Error
	if err != nil {
		return nil, err
	}
	if event.ID == uuid.Nil {
		return nil, nil
	}
	return &event, nil
}

func (r *outboxRepo) GetByAggregateID(ctx context.Context, tx *gorm.DB, aggregateID uuid.UUID) ([]*types.OutboxEvent, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.OutboxEvent
	if err := transaction.WithContext(ctx).
		Where("aggregate_id = ?", aggregateID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
