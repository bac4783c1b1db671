package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/davincidevllc/continue-leads/internal/http/response"
	"github.com/davincidevllc/continue-leads/internal/observability"
	"github.com/davincidevllc/continue-leads/internal/pkg/ctxutil"
	apperrors "github.com/davincidevllc/continue-leads/internal/pkg/errors"
	"github.com/davincidevllc/continue-leads/internal/pkg/logger"
	"github.com/davincidevllc/continue-leads/internal/services"
	"github.com/davincidevllc/continue-leads/internal/types"
)

type LeadHandler struct {
	log        *logger.Logger
	intake     services.LeadIntakeService
	guard      *services.AbuseGuard
	metrics    *observability.Metrics
	production bool
}

func NewLeadHandler(baseLog *logger.Logger, intake services.LeadIntakeService, guard *services.AbuseGuard, metrics *observability.Metrics, production bool) *LeadHandler {
	return &LeadHandler{
		log:        baseLog.With("handler", "LeadHandler"),
		intake:     intake,
		guard:      guard,
		metrics:    metrics,
		production: production,
	}
}

type captureResponse struct {
	Success   bool             `json:"success"`
	LeadID    *uuid.UUID       `json:"lead_id"`
	Status    types.LeadStatus `json:"status"`
	DedupeHit bool             `json:"dedupe_hit"`
}

// Capture handles POST /api/leads/capture. The abuse checks run before the
// body is even parsed so abusive traffic never reaches validation or the
// database.
func (h *LeadHandler) Capture(c *gin.Context) {
	h.metrics.Inc(observability.SubmissionsReceived)

	if err := h.guard.CheckOrigin(c.GetHeader("Origin")); err != nil {
		h.metrics.Inc(observability.OriginBlockedRequests)
		c.AbortWithStatus(http.StatusForbidden)
		return
	}

	clientIP := clientIP(c)
	if err := h.guard.CheckRate(clientIP); err != nil {
		h.metrics.Inc(observability.RateLimitedRequests)
		c.AbortWithStatus(http.StatusTooManyRequests)
		return
	}

	var payload services.CapturePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.RespondError(c, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	// Honeypot hits get a convincing success and no persistence; the bot
	// must not learn it was detected.
	if h.guard.IsHoneypot(payload.Website) {
		h.metrics.Inc(observability.HoneypotCatches)
		h.log.Info("Honeypot triggered, discarding submission", "client_ip", clientIP)
		fake := uuid.New()
		c.JSON(http.StatusCreated, captureResponse{
			Success:   true,
			LeadID:    &fake,
			Status:    types.LeadStatusNew,
			DedupeHit: false,
		})
		return
	}

	meta := services.RequestMeta{
		ClientIP:  clientIP,
		UserAgent: c.GetHeader("User-Agent"),
	}
	if td := ctxutil.GetTraceData(c.Request.Context()); td != nil {
		meta.CorrelationID = td.TraceID
	}

	result, err := h.intake.Submit(c.Request.Context(), &payload, meta)
	if err != nil {
		h.respondSubmitError(c, err)
		return
	}

	status := http.StatusOK
	if result.Created && !result.DedupeHit {
		status = http.StatusCreated
		h.metrics.Inc(observability.SubmissionsAccepted)
	} else if result.DedupeHit {
		h.metrics.Inc(observability.SubmissionsDuplicate)
	} else {
		h.metrics.Inc(observability.SubmissionsReplayed)
	}

	leadID := result.LeadID
	c.JSON(status, captureResponse{
		Success:   true,
		LeadID:    &leadID,
		Status:    result.Status,
		DedupeHit: result.DedupeHit,
	})
}

func (h *LeadHandler) respondSubmitError(c *gin.Context, err error) {
	var validationErr *apperrors.ValidationError
	if errors.As(err, &validationErr) {
		h.metrics.Inc(observability.ValidationFailures)
		response.RespondError(c, http.StatusBadRequest, "Validation failed", validationErr.Fields)
		return
	}
	var notFoundErr *apperrors.NotFoundError
	if errors.As(err, &notFoundErr) {
		response.RespondError(c, http.StatusBadRequest, notFoundErr.Msg, nil)
		return
	}
	if errors.Is(err, apperrors.ErrConflict) {
		// A storage-level uniqueness race is reported as a duplicate, never
		// as a server fault.
		h.metrics.Inc(observability.SubmissionsDuplicate)
		c.JSON(http.StatusOK, captureResponse{
			Success:   true,
			Status:    types.LeadStatusRejected,
			DedupeHit: true,
		})
		return
	}
	if errors.Is(err, apperrors.ErrConfiguration) {
		h.log.Error("Lead capture misconfigured", "error", err)
		response.RespondError(c, http.StatusInternalServerError, "Internal server error", nil)
		return
	}

	h.log.Error("Lead capture failed", "error", err)
	if h.production {
		response.RespondError(c, http.StatusInternalServerError, "Internal server error", nil)
		return
	}
	response.RespondError(c, http.StatusInternalServerError, "Internal server error", []string{err.Error()})
}

func clientIP(c *gin.Context) string {
	if fwd := c.GetHeader("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		if ip := strings.TrimSpace(parts[0]); ip != "" {
			return ip
		}
	}
	if real := strings.TrimSpace(c.GetHeader("X-Real-Ip")); real != "" {
		return real
	}
	return c.ClientIP()
}
