package repos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/davincidevllc/continue-leads/internal/types"
)

func claimRow(hash string, claimType types.ClaimType, start, end time.Time) *types.LeadDedupeClaim {
	return &types.LeadDedupeClaim{
		LeadID:      uuid.New(),
		ClaimHash:   hash,
		ClaimType:   claimType,
		WindowStart: start,
		WindowEnd:   end,
	}
}

func TestDedupeClaimRepo_AnyActiveWindowBounds(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewDedupeClaimRepo(gdb, testLogger())
	ctx := context.Background()

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(7 * 24 * time.Hour)
	if _, err := repo.Create(ctx, nil, []*types.LeadDedupeClaim{
		claimRow("hash-a", types.ClaimTypePhone, start, end),
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	cases := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"before window", start.Add(-time.Second), false},
		{"at window start", start, true},
		{"inside window", start.Add(3 * 24 * time.Hour), true},
		{"at window end", end, true},
		{"after window", end.Add(time.Second), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := repo.AnyActive(ctx, nil, "hash-a", types.ClaimTypePhone, tc.at)
			if err != nil {
				t.Fatalf("AnyActive: %v", err)
			}
			if got != tc.want {
				t.Fatalf("at %v: want %v got %v", tc.at, tc.want, got)
			}
		})
	}
}

func TestDedupeClaimRepo_AnyActiveMatchesHashAndType(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewDedupeClaimRepo(gdb, testLogger())
	ctx := context.Background()

	now := time.Now().UTC()
	if _, err := repo.Create(ctx, nil, []*types.LeadDedupeClaim{
		claimRow("hash-a", types.ClaimTypePhone, now, now.Add(time.Hour)),
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if hit, _ := repo.AnyActive(ctx, nil, "hash-b", types.ClaimTypePhone, now); hit {
		t.Fatalf("different hash must not match")
	}
	if hit, _ := repo.AnyActive(ctx, nil, "hash-a", types.ClaimTypeEmail, now); hit {
		t.Fatalf("different channel must not match")
	}
	if hit, _ := repo.AnyActive(ctx, nil, "", types.ClaimTypePhone, now); hit {
		t.Fatalf("empty hash must never match")
	}
}

func TestDedupeClaimRepo_DeleteExpired(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewDedupeClaimRepo(gdb, testLogger())
	ctx := context.Background()

	now := time.Now().UTC()
	if _, err := repo.Create(ctx, nil, []*types.LeadDedupeClaim{
		claimRow("old", types.ClaimTypePhone, now.Add(-20*24*time.Hour), now.Add(-13*24*time.Hour)),
		claimRow("live", types.ClaimTypePhone, now, now.Add(7*24*time.Hour)),
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	deleted, err := repo.DeleteExpired(ctx, nil, now.Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("DeleteExpired: %v", err)
	}
	if deleted != 1 {
		t.Fatalf("expected 1 deleted claim, got %d", deleted)
	}

	if hit, _ := repo.AnyActive(ctx, nil, "live", types.ClaimTypePhone, now); !hit {
		t.Fatalf("live claim must survive the purge")
	}
}

func TestDedupeClaimRepo_CreateEmptyBatch(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewDedupeClaimRepo(gdb, testLogger())

	created, err := repo.Create(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(created) != 0 {
		t.Fatalf("expected empty result, got %d", len(created))
	}
}
