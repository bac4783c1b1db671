package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS reflects the validated origin. allowOrigin carries the allowlist
// matching (exact or subdomain); with no allowlist configured the capture
// endpoint runs in the permissive staging mode and answers `*`.
func CORS(permissive bool, allowOrigin func(origin string) bool) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods: []string{"POST", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", "X-Requested-With", "X-Request-Id"},
		MaxAge:       12 * time.Hour,
	}
	if permissive {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOriginFunc = allowOrigin
		cfg.AllowCredentials = true
	}
	return cors.New(cfg)
}
