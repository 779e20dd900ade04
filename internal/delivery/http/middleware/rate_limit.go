package middleware

import (
	"sync"
	"time"

	"skill-swap/internal/observability"

	"github.com/gofiber/fiber/v3"
	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimitMiddleware applies a token bucket per client IP. Idle buckets are
// dropped after idleTTL.
type RateLimitMiddleware struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	r        rate.Limit
	b        int
	idleTTL  time.Duration
	lastGC   time.Time

	now func() time.Time
}

func NewRateLimitMiddleware(rps float64, burst int) *RateLimitMiddleware {
	if burst <= 0 {
		burst = 1
	}
	return &RateLimitMiddleware{
		visitors: make(map[string]*visitor),
		r:        rate.Limit(rps),
		b:        burst,
		idleTTL:  10 * time.Minute,
		now:      time.Now,
	}
}

func (m *RateLimitMiddleware) limiter(ip string) *rate.Limiter {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if now.Sub(m.lastGC) > m.idleTTL {
		for k, v := range m.visitors {
			if now.Sub(v.lastSeen) > m.idleTTL {
				delete(m.visitors, k)
			}
		}
		m.lastGC = now
	}

	v, ok := m.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(m.r, m.b)}
		m.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter
}

func (m *RateLimitMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		if m.r <= 0 {
			return c.Next()
		}
		if !m.limiter(c.IP()).AllowN(m.now(), 1) {
			observability.RateLimitedTotal.Inc()
			return NewAppError(fiber.StatusTooManyRequests, "Too many requests", nil, nil)
		}
		return c.Next()
	}
}
