// file: internal/server/middleware/ratelimit.go
// version: 2.0.0
// guid: 1331705a-85cb-4158-92f5-5ce203d8a0e7

package middleware

import (
	"fmt"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jdfalk/bookshelf/internal/metrics"
	"golang.org/x/time/rate"
)

const clientIdleTTL = 15 * time.Minute

type searchClient struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// SearchLimiter throttles, per client IP, the routes that fan out to the
// Open Library catalog. Limits can be changed while serving; every
// tracked client picks up the new values immediately.
type SearchLimiter struct {
	mu        sync.Mutex
	clients   map[string]*searchClient
	perMinute int
	burst     int
	lastSweep time.Time
	now       func() time.Time
}

// NewSearchLimiter allows perMinute requests per client with the given
// burst. perMinute <= 0 lets every request through.
func NewSearchLimiter(perMinute, burst int) *SearchLimiter {
	l := &SearchLimiter{
		clients: make(map[string]*searchClient),
		now:     time.Now,
	}
	l.perMinute, l.burst = normalizeLimits(perMinute, burst)
	return l
}

func normalizeLimits(perMinute, burst int) (int, int) {
	if perMinute < 0 {
		perMinute = 0
	}
	if burst < 1 {
		burst = 1
	}
	return perMinute, burst
}

func perSecond(perMinute int) rate.Limit {
	return rate.Limit(float64(perMinute) / 60.0)
}

// SetLimits replaces the limits for new and already tracked clients.
func (l *SearchLimiter) SetLimits(perMinute, burst int) {
	perMinute, burst = normalizeLimits(perMinute, burst)

	l.mu.Lock()
	defer l.mu.Unlock()
	if perMinute == l.perMinute && burst == l.burst {
		return
	}
	l.perMinute, l.burst = perMinute, burst
	now := l.now()
	for _, c := range l.clients {
		c.limiter.SetLimitAt(now, perSecond(perMinute))
		c.limiter.SetBurstAt(now, burst)
	}
}

// Limits returns the current requests per minute and burst.
func (l *SearchLimiter) Limits() (perMinute, burst int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.perMinute, l.burst
}

// Clients reports how many client IPs are currently tracked.
func (l *SearchLimiter) Clients() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// reserve takes a token for ip. It returns 0 when the request may go
// ahead, otherwise how long the client should wait. The second result is
// false when limiting is off.
func (l *SearchLimiter) reserve(ip string) (time.Duration, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.perMinute == 0 {
		return 0, false
	}

	now := l.now()
	if now.Sub(l.lastSweep) > time.Minute {
		for key, c := range l.clients {
			if now.Sub(c.lastSeen) > clientIdleTTL {
				delete(l.clients, key)
			}
		}
		l.lastSweep = now
	}

	c, ok := l.clients[ip]
	if !ok {
		c = &searchClient{limiter: rate.NewLimiter(perSecond(l.perMinute), l.burst)}
		l.clients[ip] = c
	}
	c.lastSeen = now

	r := c.limiter.ReserveN(now, 1)
	if !r.OK() {
		return time.Minute, true
	}
	if d := r.DelayFrom(now); d > 0 {
		r.CancelAt(now)
		return d, true
	}
	return 0, true
}

// Middleware rejects over-limit requests with 429 and a Retry-After
// header in whole seconds.
func (l *SearchLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if ip == "" {
			ip = "unknown"
		}
		wait, limited := l.reserve(ip)
		if !limited || wait == 0 {
			c.Next()
			return
		}

		retry := int(math.Ceil(wait.Seconds()))
		if retry < 1 {
			retry = 1
		}
		metrics.IncRateLimited(c.FullPath())
		c.Header("Retry-After", fmt.Sprintf("%d", retry))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"error":  fmt.Sprintf("too many catalog searches, retry in %ds", retry),
			"code":   "RATE_LIMITED",
			"status": http.StatusTooManyRequests,
		})
	}
}
