package repos

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/davincidevllc/continue-leads/internal/types"
)

func TestLeadRepo_CreateAndGetByID(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewLeadRepo(gdb, testLogger())
	ctx := context.Background()

	lead, err := repo.Create(ctx, nil, &types.Lead{Status: types.LeadStatusNew})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if lead.ID == uuid.Nil {
		t.Fatalf("id should be assigned on create")
	}

	got, err := repo.GetByID(ctx, nil, lead.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil || got.ID != lead.ID || got.Status != types.LeadStatusNew {
		t.Fatalf("unexpected lead: %+v", got)
	}

	missing, err := repo.GetByID(ctx, nil, uuid.New())
	if err != nil || missing != nil {
		t.Fatalf("missing lead should be nil, nil: %+v %v", missing, err)
	}
}

func TestLeadRepo_GetByIdempotencyKey(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewLeadRepo(gdb, testLogger())
	ctx := context.Background()

	key := "retry-1"
	lead, err := repo.Create(ctx, nil, &types.Lead{Status: types.LeadStatusNew, IdempotencyKey: &key})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByIdempotencyKey(ctx, nil, key)
	if err != nil || got == nil || got.ID != lead.ID {
		t.Fatalf("lookup by key failed: %+v %v", got, err)
	}

	none, err := repo.GetByIdempotencyKey(ctx, nil, "unknown")
	if err != nil || none != nil {
		t.Fatalf("unknown key should be nil, nil: %+v %v", none, err)
	}
	none, err = repo.GetByIdempotencyKey(ctx, nil, "")
	if err != nil || none != nil {
		t.Fatalf("empty key must not match NULL rows: %+v %v", none, err)
	}
}

func TestLeadRepo_IdempotencyKeyUnique(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewLeadRepo(gdb, testLogger())
	ctx := context.Background()

	key := "retry-1"
	if _, err := repo.Create(ctx, nil, &types.Lead{Status: types.LeadStatusNew, IdempotencyKey: &key}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := repo.Create(ctx, nil, &types.Lead{Status: types.LeadStatusNew, IdempotencyKey: &key}); err == nil {
		t.Fatalf("duplicate idempotency key must be rejected by the index")
	}

	// NULL keys do not collide with each other.
	if _, err := repo.Create(ctx, nil, &types.Lead{Status: types.LeadStatusNew}); err != nil {
		t.Fatalf("first NULL-key lead: %v", err)
	}
	if _, err := repo.Create(ctx, nil, &types.Lead{Status: types.LeadStatusNew}); err != nil {
		t.Fatalf("second NULL-key lead: %v", err)
	}
}

func TestStatusEventRepo_AppendOnlyTrail(t *testing.T) {
	gdb := newTestDB(t)
	leads := NewLeadRepo(gdb, testLogger())
	events := NewStatusEventRepo(gdb, testLogger())
	ctx := context.Background()

	lead, err := leads.Create(ctx, nil, &types.Lead{Status: types.LeadStatusNew})
	if err != nil {
		t.Fatalf("Create lead: %v", err)
	}

	first, err := events.Append(ctx, nil, &types.LeadStatusEvent{
		LeadID:   lead.ID,
		ToStatus: types.LeadStatusNew,
		Reason:   "New lead captured",
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	from := types.LeadStatusNew
	if _, err := events.Append(ctx, nil, &types.LeadStatusEvent{
		LeadID:     lead.ID,
		FromStatus: &from,
		ToStatus:   types.LeadStatusQueued,
		Reason:     "Queued for auction",
	}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	trail, err := events.GetByLeadID(ctx, nil, lead.ID)
	if err != nil {
		t.Fatalf("GetByLeadID: %v", err)
	}
	if len(trail) != 2 {
		t.Fatalf("expected 2 events, got %d", len(trail))
	}
	if trail[0].ID != first.ID || trail[0].FromStatus != nil {
		t.Fatalf("first event must open the trail with no from_status: %+v", trail[0])
	}
	if trail[1].FromStatus == nil || *trail[1].FromStatus != types.LeadStatusNew {
		t.Fatalf("second event must record the prior status: %+v", trail[1])
	}
}
