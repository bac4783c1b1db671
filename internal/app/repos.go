package app

import (
	"gorm.io/gorm"

	"github.com/davincidevllc/continue-leads/internal/pkg/logger"
	"github.com/davincidevllc/continue-leads/internal/repos"
)

type Repos struct {
	Lead            repos.LeadRepo
	LeadContact     repos.LeadContactRepo
	LeadConsent     repos.LeadConsentRepo
	LeadAttribution repos.LeadAttributionRepo
	LeadDetails     repos.LeadDetailsRepo
	DedupeClaim     repos.DedupeClaimRepo
	StatusEvent     repos.StatusEventRepo
	Outbox          repos.OutboxRepo
	Taxonomy        repos.TaxonomyRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Lead:            repos.NewLeadRepo(db, log),
		LeadContact:     repos.NewLeadContactRepo(db, log),
		LeadConsent:     repos.NewLeadConsentRepo(db, log),
		LeadAttribution: repos.NewLeadAttributionRepo(db, log),
		LeadDetails:     repos.NewLeadDetailsRepo(db, log),
		DedupeClaim:     repos.NewDedupeClaimRepo(db, log),
		StatusEvent:     repos.NewStatusEventRepo(db, log),
		Outbox:          repos.NewOutboxRepo(db, log),
		Taxonomy:        repos.NewTaxonomyRepo(db, log),
	}
}
