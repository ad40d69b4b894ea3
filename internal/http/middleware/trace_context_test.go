package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platziflix/catalog-backend/internal/observability"
	"github.com/platziflix/catalog-backend/internal/platform/ctxutil"
)

func TestAttachTraceContextPropagatesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AttachTraceContext())
	var seen *ctxutil.TraceData
	r.GET("/health", func(c *gin.Context) {
		seen = ctxutil.GetTraceData(c.Request.Context())
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-Id", "req-123")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.NotNil(t, seen)
	assert.Equal(t, "req-123", seen.RequestID)
	assert.NotEmpty(t, seen.TraceID)
	assert.Equal(t, "req-123", rec.Header().Get("X-Request-Id"))
	assert.Equal(t, seen.TraceID, rec.Header().Get("X-Trace-Id"))
}

func TestAttachTraceContextGeneratesIDs(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AttachTraceContext())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Len(t, rec.Header().Get("X-Request-Id"), 36)
	assert.NotEmpty(t, rec.Header().Get("X-Trace-Id"))
}

func TestMetricsMiddlewareUsesRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := observability.NewMetrics()
	r := gin.New()
	r.Use(Metrics(m))
	r.GET("/courses/:course/ratings", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/courses/1/ratings", "/courses/2/ratings"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))

	rec := httptest.NewRecorder()
	m.WriteHTTP(rec, nil)
	body := rec.Body.String()
	assert.Contains(t, body, `platziflix_api_requests_total{method="GET",route="/courses/:course/ratings",status="200"} 2`)
	assert.Contains(t, body, `platziflix_api_requests_total{method="GET",route="unmatched",status="404"} 1`)
}

func TestSanitizeID(t *testing.T) {
	assert.Equal(t, "abc-1.2_3", sanitizeID(" abc-1.2_3 "))
	assert.Equal(t, "", sanitizeID("bad id"))
	assert.Equal(t, "", sanitizeID("x\ny"))
	assert.Equal(t, "", sanitizeID(string(make([]byte, maxInboundIDLen+1))))
}
