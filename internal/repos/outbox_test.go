package repos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/davincidevllc/continue-leads/internal/types"
)

func pendingEvent(maxAttempts int, availableAt time.Time) *types.OutboxEvent {
	return &types.OutboxEvent{
		EventType:       types.OutboxEventLeadReceived,
		EventID:         uuid.New(),
		AggregateID:     uuid.New(),
		Payload:         datatypes.JSON([]byte(`{"schema_version":"1.0"}`)),
		Status:          types.OutboxPending,
		MaxAttempts:     maxAttempts,
		NextAvailableAt: availableAt,
	}
}

func TestOutboxRepo_ClaimNextDue(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewOutboxRepo(gdb, testLogger())
	ctx := context.Background()
	now := time.Now().UTC()

	event, err := repo.Create(ctx, nil, pendingEvent(3, now.Add(-time.Second)))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	claimed, err := repo.ClaimNextDue(ctx, nil, now)
	if err != nil {
		t.Fatalf("ClaimNextDue: %v", err)
	}
	if claimed == nil || claimed.ID != event.ID {
		t.Fatalf("expected the due event, got %+v", claimed)
	}
	if claimed.Attempts != 1 {
		t.Fatalf("claim must bump attempts, got %d", claimed.Attempts)
	}
	if claimed.LastAttemptAt == nil {
		t.Fatalf("claim must stamp last_attempt_at")
	}
}

func TestOutboxRepo_ClaimSkipsNotDue(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewOutboxRepo(gdb, testLogger())
	ctx := context.Background()
	now := time.Now().UTC()

	if _, err := repo.Create(ctx, nil, pendingEvent(3, now.Add(time.Hour))); err != nil {
		t.Fatalf("Create: %v", err)
	}

	claimed, err := repo.ClaimNextDue(ctx, nil, now)
	if err != nil {
		t.Fatalf("ClaimNextDue: %v", err)
	}
	if claimed != nil {
		t.Fatalf("deferred event must not be claimed: %+v", claimed)
	}
}

func TestOutboxRepo_ClaimSkipsExhaustedAndTerminal(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewOutboxRepo(gdb, testLogger())
	ctx := context.Background()
	now := time.Now().UTC()

	exhausted := pendingEvent(2, now.Add(-time.Second))
	exhausted.Attempts = 2
	if _, err := repo.Create(ctx, nil, exhausted); err != nil {
		t.Fatalf("Create: %v", err)
	}
	sent := pendingEvent(3, now.Add(-time.Second))
	sent.Status = types.OutboxSent
	if _, err := repo.Create(ctx, nil, sent); err != nil {
		t.Fatalf("Create: %v", err)
	}

	claimed, err := repo.ClaimNextDue(ctx, nil, now)
	if err != nil {
		t.Fatalf("ClaimNextDue: %v", err)
	}
	if claimed != nil {
		t.Fatalf("nothing claimable, got %+v", claimed)
	}
}

func TestOutboxRepo_MarkSentAndFailed(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewOutboxRepo(gdb, testLogger())
	ctx := context.Background()
	now := time.Now().UTC()

	event, err := repo.Create(ctx, nil, pendingEvent(3, now))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.MarkSent(ctx, nil, event.ID, now); err != nil {
		t.Fatalf("MarkSent: %v", err)
	}
	got, err := repo.GetByEventID(ctx, nil, event.EventID)
	if err != nil || got == nil {
		t.Fatalf("GetByEventID: %v", err)
	}
	if got.Status != types.OutboxSent {
		t.Fatalf("expected SENT, got %s", got.Status)
	}

	failing, err := repo.Create(ctx, nil, pendingEvent(3, now))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	retryAt := now.Add(4 * time.Second)
	if err := repo.MarkAttemptFailed(ctx, nil, failing.ID, "broker timeout", retryAt, false); err != nil {
		t.Fatalf("MarkAttemptFailed: %v", err)
	}
	got, _ = repo.GetByEventID(ctx, nil, failing.EventID)
	if got.Status != types.OutboxPending || got.ErrorMessage == nil || *got.ErrorMessage != "broker timeout" {
		t.Fatalf("retryable failure state wrong: %+v", got)
	}

	if err := repo.MarkAttemptFailed(ctx, nil, failing.ID, "broker timeout", retryAt, true); err != nil {
		t.Fatalf("MarkAttemptFailed exhausted: %v", err)
	}
	got, _ = repo.GetByEventID(ctx, nil, failing.EventID)
	if got.Status != types.OutboxFailed {
		t.Fatalf("exhausted failure must go FAILED, got %s", got.Status)
	}
}

func TestOutboxRepo_GetByAggregateID(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewOutboxRepo(gdb, testLogger())
	ctx := context.Background()
	now := time.Now().UTC()

	leadID := uuid.New()
	for i := 0; i < 2; i++ {
		event := pendingEvent(3, now)
		event.AggregateID = leadID
		if _, err := repo.Create(ctx, nil, event); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
	if _, err := repo.Create(ctx, nil, pendingEvent(3, now)); err != nil {
		t.Fatalf("Create: %v", err)
	}

	events, err := repo.GetByAggregateID(ctx, nil, leadID)
	if err != nil {
		t.Fatalf("GetByAggregateID: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events for the lead, got %d", len(events))
	}
}
