// file: internal/server/middleware/ratelimit_test.go
// version: 2.0.0
// guid: b31f3de0-b0bc-4cbf-8448-7309df38f7c0

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newLimitedRouter(l *SearchLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/api/v1/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	catalog := router.Group("/api/v1", l.Middleware())
	catalog.GET("/search", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router
}

func get(router *gin.Engine, path, remote string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.RemoteAddr = remote
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func fixedClock(l *SearchLimiter) *time.Time {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	return &now
}

func TestNewSearchLimiterNormalizesLimits(t *testing.T) {
	l := NewSearchLimiter(-5, 0)
	perMinute, burst := l.Limits()
	assert.Equal(t, 0, perMinute)
	assert.Equal(t, 1, burst)
	assert.Equal(t, 0, l.Clients())
}

func TestSearchLimiterRejectsPerClient(t *testing.T) {
	l := NewSearchLimiter(1, 1)
	fixedClock(l)
	router := newLimitedRouter(l)

	assert.Equal(t, http.StatusOK, get(router, "/api/v1/search", "192.0.2.1:1234").Code)

	limited := get(router, "/api/v1/search", "192.0.2.1:1234")
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.Contains(t, limited.Body.String(), "RATE_LIMITED")
	assert.Contains(t, limited.Body.String(), "too many catalog searches")
	assert.Equal(t, "60", limited.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusOK, get(router, "/api/v1/search", "198.51.100.3:4321").Code)
	assert.Equal(t, 2, l.Clients())
}

func TestSearchLimiterLeavesOtherRoutesAlone(t *testing.T) {
	l := NewSearchLimiter(1, 1)
	fixedClock(l)
	router := newLimitedRouter(l)

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, get(router, "/api/v1/health", "192.0.2.1:1234").Code)
	}
	assert.Equal(t, 0, l.Clients())
}

func TestSearchLimiterRetryAfterFollowsRate(t *testing.T) {
	l := NewSearchLimiter(30, 1)
	fixedClock(l)
	router := newLimitedRouter(l)

	get(router, "/api/v1/search", "192.0.2.1:1")
	limited := get(router, "/api/v1/search", "192.0.2.1:1")
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.Equal(t, "2", limited.Header().Get("Retry-After"))
}

func TestSearchLimiterRefillsOverTime(t *testing.T) {
	l := NewSearchLimiter(60, 1)
	now := fixedClock(l)
	router := newLimitedRouter(l)

	assert.Equal(t, http.StatusOK, get(router, "/api/v1/search", "192.0.2.1:1").Code)
	assert.Equal(t, http.StatusTooManyRequests, get(router, "/api/v1/search", "192.0.2.1:1").Code)

	*now = now.Add(time.Second)
	assert.Equal(t, http.StatusOK, get(router, "/api/v1/search", "192.0.2.1:1").Code)
}

func TestSearchLimiterSetLimitsAppliesToTrackedClients(t *testing.T) {
	l := NewSearchLimiter(1, 1)
	fixedClock(l)
	router := newLimitedRouter(l)

	get(router, "/api/v1/search", "192.0.2.1:1")
	assert.Equal(t, http.StatusTooManyRequests, get(router, "/api/v1/search", "192.0.2.1:1").Code)

	l.SetLimits(600, 5)
	perMinute, burst := l.Limits()
	assert.Equal(t, 600, perMinute)
	assert.Equal(t, 5, burst)

	l.SetLimits(0, 0)
	for i := 0; i < 10; i++ {
		assert.Equal(t, http.StatusOK, get(router, "/api/v1/search", "192.0.2.1:1").Code)
	}
}

func TestSearchLimiterForgetsIdleClients(t *testing.T) {
	l := NewSearchLimiter(10, 1)
	now := fixedClock(l)
	router := newLimitedRouter(l)

	get(router, "/api/v1/search", "192.0.2.1:1")
	assert.Equal(t, 1, l.Clients())

	*now = now.Add(clientIdleTTL + time.Minute)
	get(router, "/api/v1/search", "198.51.100.3:1")
	assert.Equal(t, 1, l.Clients())
}
