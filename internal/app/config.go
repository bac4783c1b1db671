package app

import (
	"strings"
	"time"

	"github.com/davincidevllc/continue-leads/internal/pkg/logger"
	"github.com/davincidevllc/continue-leads/internal/utils"
)

type Config struct {
	Production bool

	PIIEncryptionKey string

	CORSAllowedOrigins []string
	RateLimitPerMinute int
	DedupeWindowDays   int

	RedisAddr    string
	RedisChannel string

	OutboxMaxAttempts      int
	OutboxDispatchInterval time.Duration
}

func LoadConfig(log *logger.Logger) Config {
	logMode := utils.GetEnv("LOG_MODE", "development", log)

	var origins []string
	for _, o := range strings.Split(utils.GetEnv("CORS_ALLOWED_ORIGINS", "", log), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			origins = append(origins, o)
		}
	}

	return Config{
		Production:             strings.HasPrefix(strings.ToLower(logMode), "prod"),
		PIIEncryptionKey:       utils.GetEnv("PII_ENCRYPTION_KEY", "", nil),
		CORSAllowedOrigins:     origins,
		RateLimitPerMinute:     utils.GetEnvAsInt("RATE_LIMIT_PER_MINUTE", 10, log),
		DedupeWindowDays:       utils.GetEnvAsInt("DEDUPE_WINDOW_DAYS", 7, log),
		RedisAddr:              utils.GetEnv("REDIS_ADDR", "", log),
		RedisChannel:           utils.GetEnv("REDIS_CHANNEL", "lead-events", log),
		OutboxMaxAttempts:      utils.GetEnvAsInt("OUTBOX_MAX_ATTEMPTS", 8, log),
		OutboxDispatchInterval: time.Duration(utils.GetEnvAsInt("OUTBOX_DISPATCH_INTERVAL_SECONDS", 5, log)) * time.Second,
	}
}
