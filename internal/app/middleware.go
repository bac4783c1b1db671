package app

import (
	"github.com/gin-gonic/gin"

	"github.com/davincidevllc/continue-leads/internal/http/middleware"
	"github.com/davincidevllc/continue-leads/internal/pkg/logger"
	"github.com/davincidevllc/continue-leads/internal/services"
)

type Middleware struct {
	CORS       gin.HandlerFunc
	Trace      gin.HandlerFunc
	RequestLog gin.HandlerFunc
}

func wireMiddleware(log *logger.Logger, guard *services.AbuseGuard) Middleware {
	log.Info("Wiring middleware...")
	permissive := len(guard.AllowedOrigins()) == 0
	allowOrigin := func(origin string) bool {
		return guard.CheckOrigin(origin) == nil
	}
	return Middleware{
		CORS:       middleware.CORS(permissive, allowOrigin),
		Trace:      middleware.AttachTraceContext(),
		RequestLog: middleware.RequestLogger(log),
	}
}
