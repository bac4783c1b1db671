package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/davincidevllc/continue-leads/internal/pkg/ctxutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestCORS_PermissiveAnswersAnyOrigin(t *testing.T) {
	router := gin.New()
	router.Use(CORS(true, nil))
	router.POST("/capture", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/capture", nil)
	req.Header.Set("Origin", "https://anywhere.example")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("permissive mode should answer *, got %q", got)
	}
}

func TestCORS_AllowlistedOriginReflected(t *testing.T) {
	allow := func(origin string) bool {
		return strings.HasSuffix(origin, "atlantaroofpros.com")
	}
	router := gin.New()
	router.Use(CORS(false, allow))
	router.POST("/capture", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/capture", nil)
	req.Header.Set("Origin", "https://www.atlantaroofpros.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://www.atlantaroofpros.com" {
		t.Fatalf("expected reflected origin, got %q", got)
	}

	req = httptest.NewRequest(http.MethodOptions, "/capture", nil)
	req.Header.Set("Origin", "https://evil.example")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("denied origin must get no CORS headers, got %q", got)
	}
}

func TestAttachTraceContext_GeneratesAndPropagatesIDs(t *testing.T) {
	var seen *ctxutil.TraceData
	router := gin.New()
	router.Use(AttachTraceContext())
	router.GET("/", func(c *gin.Context) {
		seen = ctxutil.GetTraceData(c.Request.Context())
		c.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if seen == nil || seen.TraceID == "" || seen.RequestID == "" {
		t.Fatalf("trace data not attached: %+v", seen)
	}
	if rec.Header().Get("X-Trace-Id") != seen.TraceID {
		t.Fatalf("trace id not echoed in response headers")
	}
	if rec.Header().Get("X-Request-Id") != seen.RequestID {
		t.Fatalf("request id not echoed in response headers")
	}
}

func TestAttachTraceContext_HonorsInboundRequestID(t *testing.T) {
	router := gin.New()
	router.Use(AttachTraceContext())
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "req-from-edge")
	req.Header.Set("X-Trace-Id", "trace-from-edge")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Header().Get("X-Request-Id") != "req-from-edge" {
		t.Fatalf("inbound request id must be preserved")
	}
	if rec.Header().Get("X-Trace-Id") != "trace-from-edge" {
		t.Fatalf("inbound trace id must be preserved")
	}
}
