package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/davincidevllc/continue-leads/internal/observability"
	"github.com/davincidevllc/continue-leads/internal/pkg/logger"
	"github.com/davincidevllc/continue-leads/internal/repos"
	"github.com/davincidevllc/continue-leads/internal/types"
)

// LeadReceivedMessage is the versioned outbound contract consumed by the
// auction subsystem. Consumers must dedupe on EventID; redelivery can occur.
type LeadReceivedMessage struct {
	SchemaVersion string    `json:"schema_version"`
	EventType     string    `json:"event_type"`
	EventID       uuid.UUID `json:"event_id"`
	OccurredAt    time.Time `json:"occurred_at"`
	LeadID        uuid.UUID `json:"lead_id"`
	CorrelationID string    `json:"correlation_id"`
	CreatedAt     time.Time `json:"created_at"`

	Service struct {
		CategoryID *uuid.UUID `json:"category_id"`
		ServiceID  *uuid.UUID `json:"service_id"`
	} `json:"service"`

	Location struct {
		TargetingMode types.TargetingMode `json:"targeting_mode"`
		State         *string             `json:"state"`
		Zip           *string             `json:"zip"`
		MetroSlug     *string             `json:"metro_slug"`
	} `json:"location"`

	Value struct {
		Urgency           *string `json:"urgency"`
		PropertyType      *string `json:"property_type"`
		ProjectSizeBucket *string `json:"project_size_bucket"`
		BudgetRange       *string `json:"budget_range"`
		TimeframeDays     *int    `json:"timeframe_days"`
	} `json:"value"`

	Attribution struct {
		Domain   string `json:"domain"`
		PageURL  string `json:"page_url"`
		PageType string `json:"page_type"`
		UTM      struct {
			Source   *string `json:"source"`
			Medium   *string `json:"medium"`
			Campaign *string `json:"campaign"`
			Term     *string `json:"term"`
			Content  *string `json:"content"`
		} `json:"utm"`
	} `json:"attribution"`

	Compliance struct {
		TCPAConsent        bool   `json:"tcpa_consent"`
		ConsentTextVersion string `json:"consent_text_version"`
	} `json:"compliance"`

	Dedupe struct {
		DedupeWindowSeconds int  `json:"dedupe_window_seconds"`
		DedupeHit           bool `json:"dedupe_hit"`
	} `json:"dedupe"`
}

// EventPublisher delivers a serialized outbox payload to downstream
// consumers. Implementations must be safe for concurrent use.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, payload []byte) error
}

type OutboxService interface {
	// Enqueue writes the durable event row. It runs inside the intake
	// transaction so a committed lead always has its event and vice versa.
	Enqueue(ctx context.Context, tx *gorm.DB, msg *LeadReceivedMessage) (*types.OutboxEvent, error)
	// DispatchOne claims and delivers a single due event. Returns false when
	// nothing was due.
	DispatchOne(ctx context.Context) (bool, error)
	// Run loops DispatchOne until the context is cancelled.
	Run(ctx context.Context)
}

type outboxService struct {
	db          *gorm.DB
	log         *logger.Logger
	outbox      repos.OutboxRepo
	publisher   EventPublisher
	metrics     *observability.Metrics
	maxAttempts int
	interval    time.Duration
	baseBackoff time.Duration
	now         func() time.Time
}

func NewOutboxService(db *gorm.DB, baseLog *logger.Logger, outbox repos.OutboxRepo, publisher EventPublisher, metrics *observability.Metrics, maxAttempts int, interval time.Duration, now func() time.Time) OutboxService {
	if maxAttempts <= 0 {
		maxAttempts = 8
	}
	if interval <= 0 {
		interval = 5 * time.Second
	}
	if now == nil {
		now = time.Now
	}
	if metrics == nil {
		metrics = observability.NewMetrics()
	}
	return &outboxService{
		db:          db,
		log:         baseLog.With("service", "OutboxService"),
		outbox:      outbox,
		publisher:   publisher,
		metrics:     metrics,
		maxAttempts: maxAttempts,
		interval:    interval,
		baseBackoff: 2 * time.Second,
		now:         now,
	}
}

func (s *outboxService) Enqueue(ctx context.Context, tx *gorm.DB, msg *LeadReceivedMessage) (*types.OutboxEvent, error) {
	payload, err := json.Marshal(msg)
	if err != nil {
		return nil, err
	}
	event := &types.OutboxEvent{
		EventType:       types.OutboxEventType(msg.EventType),
		EventID:         msg.EventID,
		AggregateID:     msg.LeadID,
		Payload:         datatypes.JSON(payload),
		Status:          types.OutboxPending,
		MaxAttempts:     s.maxAttempts,
		NextAvailableAt: s.now(),
	}
	return s.outbox.Create(ctx, tx, event)
}

func (s *outboxService) DispatchOne(ctx context.Context) (bool, error) {
	now := s.now()
	event, err := s.outbox.ClaimNextDue(ctx, nil, now)
	if err != nil {
		return false, err
	}
	if event == nil {
		return false, nil
	}

	pubErr := s.publisher.Publish(ctx, string(event.EventType), event.Payload)
	if pubErr == nil {
		if err := s.outbox.MarkSent(ctx, nil, event.ID, s.now()); err != nil {
			// The publish already happened; the next claim will redeliver.
			// At-least-once makes that safe.
			s.log.Error("Outbox event published but not marked sent", "event_id", event.EventID, "error", err)
			return true, err
		}
		s.metrics.Inc(observability.OutboxPublished)
		s.log.Info("Outbox event published", "event_id", event.EventID, "attempts", event.Attempts)
		return true, nil
	}

	s.metrics.Inc(observability.OutboxFailures)

	exhausted := event.Attempts >= event.MaxAttempts
	next := now.Add(s.backoff(event.Attempts))
	if err := s.outbox.MarkAttemptFailed(ctx, nil, event.ID, pubErr.Error(), next, exhausted); err != nil {
		s.log.Error("Failed to record outbox attempt failure", "event_id", event.EventID, "error", err)
		return true, err
	}
	if exhausted {
		s.log.Error("Outbox event exhausted retries", "event_id", event.EventID, "attempts", event.Attempts, "error", pubErr)
	} else {
		s.log.Warn("Outbox publish failed, will retry", "event_id", event.EventID, "attempts", event.Attempts, "error", pubErr)
	}
	return true, nil
}

func (s *outboxService) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	s.log.Info("Outbox dispatcher started", "interval", s.interval.String())
	for {
		select {
		case <-ctx.Done():
			s.log.Info("Outbox dispatcher stopped")
			return
		case <-ticker.C:
			// Drain everything currently due before sleeping again.
			for {
				dispatched, err := s.DispatchOne(ctx)
				if err != nil || !dispatched {
					break
				}
			}
		}
	}
}

func (s *outboxService) backoff(attempts int) time.Duration {
	d := s.baseBackoff
	for i := 1; i < attempts && d < time.Minute; i++ {
		d *= 2
	}
	if d > time.Minute {
		d = time.Minute
	}
	return d
}
