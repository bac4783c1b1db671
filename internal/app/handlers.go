package app

import (
	"github.com/davincidevllc/continue-leads/internal/http/handlers"
	"github.com/davincidevllc/continue-leads/internal/observability"
	"github.com/davincidevllc/continue-leads/internal/pkg/logger"
)

type Handlers struct {
	Health  *handlers.HealthHandler
	Lead    *handlers.LeadHandler
	Metrics *handlers.MetricsHandler
}

func wireHandlers(log *logger.Logger, cfg Config, serviceset Services, metrics *observability.Metrics) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:  handlers.NewHealthHandler(),
		Lead:    handlers.NewLeadHandler(log, serviceset.Intake, serviceset.AbuseGuard, metrics, cfg.Production),
		Metrics: handlers.NewMetricsHandler(metrics),
	}
}
