package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// OutboxEvent is a durable, at-least-once publication record written in the
// same transaction as the lead it describes. Consumers dedupe on EventID.
type OutboxEvent struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	EventType OutboxEventType `gorm:"column:event_type;not null;index" json:"event_type"`
	EventID   uuid.UUID       `gorm:"type:uuid;column:event_id;not null;uniqueIndex" json:"event_id"`

	// AggregateID is the lead the event describes.
	AggregateID uuid.UUID `gorm:"type:uuid;column:aggregate_id;not null;index" json:"aggregate_id"`

	Payload datatypes.JSON `gorm:"column:payload;type:jsonb;not null" json:"payload"`

	Status      OutboxEventStatus `gorm:"column:status;not null;default:'PENDING';index" json:"status"`
	Attempts    int               `gorm:"column:attempts;not null;default:0" json:"attempts"`
	MaxAttempts int               `gorm:"column:max_attempts;not null" json:"max_attempts"`

	LastAttemptAt   *time.Time `gorm:"column:last_attempt_at" json:"last_attempt_at,omitempty"`
	NextAvailableAt time.Time  `gorm:"column:next_available_at;not null;index" json:"next_available_at"`
	ErrorMessage    *string    `gorm:"column:error_message" json:"error_message,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (OutboxEvent) TableName() string { return "outbox_events" }
