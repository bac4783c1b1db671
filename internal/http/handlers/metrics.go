package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/davincidevllc/continue-leads/internal/observability"
)

type MetricsHandler struct {
	metrics *observability.Metrics
}

func NewMetricsHandler(metrics *observability.Metrics) *MetricsHandler {
	return &MetricsHandler{metrics: metrics}
}

func (h *MetricsHandler) Render(c *gin.Context) {
	c.String(http.StatusOK, h.metrics.Render())
}
