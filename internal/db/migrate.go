package db

import (
	"gorm.io/gorm"

	"github.com/davincidevllc/continue-leads/internal/types"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(

		// =========================
		// Taxonomy reference tables (owned by the admin app, read-only here;
		// migrated so a fresh environment can be seeded)
		// =========================
		&types.Category{},
		&types.Service{},
		&types.Site{},
		&types.Metro{},

		// =========================
		// Lead intake core
		// =========================
		&types.Lead{},
		&types.LeadContact{},
		&types.LeadConsent{},
		&types.LeadAttribution{},
		&types.LeadDetails{},
		&types.LeadDedupeClaim{},
		&types.LeadStatusEvent{},

		// =========================
		// Outbound notification
		// =========================
		&types.OutboxEvent{},
	)
}
