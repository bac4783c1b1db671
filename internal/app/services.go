package app

import (
	"fmt"

	"gorm.io/gorm"

	redisclient "github.com/davincidevllc/continue-leads/internal/clients/redis"
	"github.com/davincidevllc/continue-leads/internal/crypto"
	"github.com/davincidevllc/continue-leads/internal/observability"
	"github.com/davincidevllc/continue-leads/internal/pkg/logger"
	"github.com/davincidevllc/continue-leads/internal/services"
)

type Services struct {
	AbuseGuard *services.AbuseGuard
	Dedupe     services.DedupeService
	Outbox     services.OutboxService
	Intake     services.LeadIntakeService

	// Publisher is kept for shutdown; nil when Redis is not configured.
	Publisher redisclient.Publisher
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos, metrics *observability.Metrics) (Services, error) {
	log.Info("Wiring services...")

	cipher, err := crypto.NewCipher(cfg.PIIEncryptionKey)
	if err != nil {
		return Services{}, fmt.Errorf("init PII cipher: %w", err)
	}

	guard := services.NewAbuseGuard(log, cfg.CORSAllowedOrigins, cfg.RateLimitPerMinute, nil)
	dedupe := services.NewDedupeService(log, reposet.DedupeClaim, cfg.DedupeWindowDays)

	var publisher redisclient.Publisher
	var outbox services.OutboxService
	if cfg.RedisAddr != "" {
		publisher, err = redisclient.NewPublisher(log, cfg.RedisAddr, cfg.RedisChannel)
		if err != nil {
			return Services{}, fmt.Errorf("init redis publisher: %w", err)
		}
	} else {
		log.Warn("REDIS_ADDR not set; outbox events will accumulate until a dispatcher runs")
	}
	outbox = services.NewOutboxService(db, log, reposet.Outbox, publisher, metrics, cfg.OutboxMaxAttempts, cfg.OutboxDispatchInterval, nil)

	intake := services.NewLeadIntakeService(
		db, log, cipher,
		reposet.Lead,
		reposet.LeadContact,
		reposet.LeadConsent,
		reposet.LeadAttribution,
		reposet.LeadDetails,
		reposet.DedupeClaim,
		reposet.StatusEvent,
		reposet.Taxonomy,
		dedupe,
		outbox,
		nil,
	)

	return Services{
		AbuseGuard: guard,
		Dedupe:     dedupe,
		Outbox:     outbox,
		Intake:     intake,
		Publisher:  publisher,
	}, nil
}
