package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/davincidevllc/continue-leads/internal/pkg/logger"
	"github.com/davincidevllc/continue-leads/internal/repos"
	"github.com/davincidevllc/continue-leads/internal/types"
)

// DedupeService answers "has this contact already produced a lead inside the
// window" and builds the claims that reserve the window for a new lead.
//
// The guarantee is best-effort: two submissions racing inside the same
// transaction boundary can both miss and both land as NEW. That is accepted;
// the dedupe flag is advisory for downstream review, not a hard uniqueness
// constraint.
type DedupeService interface {
	Check(ctx context.Context, tx *gorm.DB, phoneHash string, emailHash *string, now time.Time) (bool, error)
	BuildClaims(leadID uuid.UUID, phoneHash string, emailHash *string, now time.Time) []*types.LeadDedupeClaim
	WindowDays() int
}

type dedupeService struct {
	log        *logger.Logger
	claims     repos.DedupeClaimRepo
	windowDays int
}

func NewDedupeService(baseLog *logger.Logger, claims repos.DedupeClaimRepo, windowDays int) DedupeService {
	if windowDays <= 0 {
		windowDays = 7
	}
	return &dedupeService{
		log:        baseLog.With("service", "DedupeService"),
		claims:     claims,
		windowDays: windowDays,
	}
}

func (s *dedupeService) WindowDays() int { return s.windowDays }

func (s *dedupeService) Check(ctx context.Context, tx *gorm.DB, phoneHash string, emailHash *string, now time.Time) (bool, error) {
	hit, err := s.claims.AnyActive(ctx, tx, phoneHash, types.ClaimTypePhone, now)
	if err != nil {
		return false, err
	}
	if hit {
		return true, nil
	}
	if emailHash != nil && *emailHash != "" {
		hit, err = s.claims.AnyActive(ctx, tx, *emailHash, types.ClaimTypeEmail, now)
		if err != nil {
			return false, err
		}
		if hit {
			return true, nil
		}
	}
	return false, nil
}

func (s *dedupeService) BuildClaims(leadID uuid.UUID, phoneHash string, emailHash *string, now time.Time) []*types.LeadDedupeClaim {
	windowEnd := now.Add(time.Duration(s.windowDays) * 24 * time.Hour)
	claims := []*types.LeadDedupeClaim{
		{
			LeadID:      leadID,
			ClaimHash:   phoneHash,
			ClaimType:   types.ClaimTypePhone,
			WindowStart: now,
			WindowEnd:   windowEnd,
		},
	}
	if emailHash != nil && *emailHash != "" {
		claims = append(claims, &types.LeadDedupeClaim{
			LeadID:      leadID,
			ClaimHash:   *emailHash,
			ClaimType:   types.ClaimTypeEmail,
			WindowStart: now,
			WindowEnd:   windowEnd,
		})
	}
	return claims
}
