package middleware

import (
	"net"
	"net/http"
	"sync"

	"golang.org/x/time/rate"

	"github.com/btkostner/plug/pkg/conn"
	"github.com/btkostner/plug/pkg/httpx"
)

// RateLimitConfig tunes the per-key limiter pool. Zero values fall back to
// 5 requests per second with a burst of 10.
type RateLimitConfig struct {
	RPS   float64
	Burst int
	// KeyFunc derives the limiter key from the exchange. Defaults to the
	// client IP, so each client gets its own budget.
	KeyFunc func(*conn.Conn) string
}

// clientIP strips the port from the exchange's remote address. Expect
// direct connections; ignore X-Forwarded-For.
func clientIP(c *conn.Conn) string {
	host, _, err := net.SplitHostPort(c.RemoteAddr)
	if err != nil {
		return c.RemoteAddr
	}
	return host
}

type limiterPool struct {
	mu  sync.Mutex
	m   map[string]*rate.Limiter
	cfg RateLimitConfig
}

func (p *limiterPool) get(key string) *rate.Limiter {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.m == nil {
		p.m = make(map[string]*rate.Limiter)
	}
	if l, ok := p.m[key]; ok {
		return l
	}
	rps := p.cfg.RPS
	if rps <= 0 {
		rps = 5
	}
	burst := p.cfg.Burst
	if burst <= 0 {
		burst = 10
	}
	l := rate.NewLimiter(rate.Limit(rps), burst)
	p.m[key] = l
	return l
}

// RateLimit answers 429 for exchanges over the per-key budget without
// invoking the inner handler.
func RateLimit(cfg RateLimitConfig) Middleware {
	pool := &limiterPool{cfg: cfg}
	keyFunc := cfg.KeyFunc
	if keyFunc == nil {
		keyFunc = clientIP
	}
	return func(next httpx.Handler) httpx.Handler {
		return func(c *conn.Conn) (*conn.Conn, error) {
			if !pool.get(keyFunc(c)).Allow() {
				return c.SendResp(http.StatusTooManyRequests, []byte("rate limit exceeded"))
			}
			return next(c)
		}
	}
}
