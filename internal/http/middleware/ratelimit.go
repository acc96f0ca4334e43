package middleware

import (
	"net/http"
	"sync"
	"time"

	"hrms/internal/domain"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// idleLimiterTTL is how long an unused per-IP limiter is kept.
const idleLimiterTTL = 10 * time.Minute

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client IP.
type RateLimiter struct {
	mu      sync.Mutex
	perMin  int
	clients map[string]*ipLimiter
	now     func() time.Time
}

func NewRateLimiter(perMin int) *RateLimiter {
	return &RateLimiter{perMin: perMin, clients: map[string]*ipLimiter{}, now: time.Now}
}

func (l *RateLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for k, v := range l.clients {
		if now.Sub(v.lastSeen) > idleLimiterTTL {
			delete(l.clients, k)
		}
	}

	cl, ok := l.clients[ip]
	if !ok {
		cl = &ipLimiter{limiter: rate.NewLimiter(rate.Limit(float64(l.perMin)/60.0), l.perMin)}
		l.clients[ip] = cl
	}
	cl.lastSeen = now
	return cl.limiter.AllowN(now, 1)
}

// Handler answers 429 once a client exceeds its budget. perMin <= 0 disables limiting.
func (l *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if l.perMin <= 0 || l.allow(c.ClientIP()) {
			c.Next()
			return
		}
		_ = c.Error(domain.New(domain.KindBadRequest, "Too many requests, please try again later", http.StatusTooManyRequests))
		c.Abort()
	}
}
