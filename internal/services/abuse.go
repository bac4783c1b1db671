package services

import (
	"strings"
	"sync"
	"time"

	apperrors "github.com/davincidevllc/continue-leads/internal/pkg/errors"
	"github.com/davincidevllc/continue-leads/internal/pkg/logger"
)

const (
	rateWindow       = 60 * time.Second
	evictionInterval = 5 * time.Minute
)

// AbuseGuard runs the pre-validation checks: origin allowlist, per-IP rate
// limiting, honeypot detection. It is owned by the server instance and holds
// the only in-process mutable state outside the database.
type AbuseGuard struct {
	log            *logger.Logger
	allowedOrigins []string
	limit          int
	now            func() time.Time

	mu        sync.Mutex
	hits      map[string][]time.Time
	lastSweep time.Time
}

// NewAbuseGuard builds a guard. An empty allowlist means every origin is
// accepted; that is a deliberate staging posture and is logged loudly here so
// it can never happen silently.
func NewAbuseGuard(baseLog *logger.Logger, allowedOrigins []string, limitPerMinute int, now func() time.Time) *AbuseGuard {
	log := baseLog.With("service", "AbuseGuard")
	if now == nil {
		now = time.Now
	}
	cleaned := make([]string, 0, len(allowedOrigins))
	for _, o := range allowedOrigins {
		o = strings.TrimSpace(strings.ToLower(o))
		if o != "" {
			cleaned = append(cleaned, o)
		}
	}
	if len(cleaned) == 0 {
		log.Warn("No CORS origin allowlist configured; accepting all origins (staging mode)")
	}
	if limitPerMinute <= 0 {
		limitPerMinute = 10
	}
	return &AbuseGuard{
		log:            log,
		allowedOrigins: cleaned,
		limit:          limitPerMinute,
		now:            now,
		hits:           make(map[string][]time.Time),
		lastSweep:      now(),
	}
}

// AllowedOrigins returns the configured allowlist; empty means permissive.
func (g *AbuseGuard) AllowedOrigins() []string { return g.allowedOrigins }

// CheckOrigin enforces the allowlist: exact match or subdomain of an
// allowlisted domain. With no allowlist configured every origin passes,
// including an absent one.
func (g *AbuseGuard) CheckOrigin(origin string) error {
	if len(g.allowedOrigins) == 0 {
		return nil
	}
	host := originHost(origin)
	if host == "" {
		return &apperrors.AbuseError{Kind: apperrors.AbuseOrigin}
	}
	for _, allowed := range g.allowedOrigins {
		allowedHost := originHost(allowed)
		if allowedHost == "" {
			allowedHost = allowed
		}
		if host == allowedHost || strings.HasSuffix(host, "."+allowedHost) {
			return nil
		}
	}
	return &apperrors.AbuseError{Kind: apperrors.AbuseOrigin}
}

// CheckRate counts the request against the client IP's sliding 60-second
// window and rejects once the limit is exceeded.
func (g *AbuseGuard) CheckRate(clientIP string) error {
	if clientIP == "" {
		clientIP = "unknown"
	}
	now := g.now()
	cutoff := now.Add(-rateWindow)

	g.mu.Lock()
	defer g.mu.Unlock()

	if now.Sub(g.lastSweep) >= evictionInterval {
		g.sweepLocked(cutoff)
		g.lastSweep = now
	}

	recent := pruneBefore(g.hits[clientIP], cutoff)
	if len(recent) >= g.limit {
		g.hits[clientIP] = recent
		return &apperrors.AbuseError{Kind: apperrors.AbuseRateLimited}
	}
	g.hits[clientIP] = append(recent, now)
	return nil
}

// IsHoneypot reports whether the hidden form field was filled. The caller is
// responsible for fabricating a success response while persisting nothing.
func (g *AbuseGuard) IsHoneypot(websiteField string) bool {
	return strings.TrimSpace(websiteField) != ""
}

func (g *AbuseGuard) sweepLocked(cutoff time.Time) {
	for ip, stamps := range g.hits {
		recent := pruneBefore(stamps, cutoff)
		if len(recent) == 0 {
			delete(g.hits, ip)
		} else {
			g.hits[ip] = recent
		}
	}
}

func pruneBefore(stamps []time.Time, cutoff time.Time) []time.Time {
	out := stamps[:0]
	for _, s := range stamps {
		if s.After(cutoff) {
			out = append(out, s)
		}
	}
	return out
}

func originHost(origin string) string {
	origin = strings.TrimSpace(strings.ToLower(origin))
	if origin == "" {
		return ""
	}
	if idx := strings.Index(origin, "://"); idx >= 0 {
		origin = origin[idx+3:]
	}
	if idx := strings.IndexAny(origin, "/:"); idx >= 0 {
		origin = origin[:idx]
	}
	return origin
}
