package middleware

import (
	"momnt-server/internal/modules/common/httpx"
	"momnt-server/internal/platform/service"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type IPRateLimiter struct {
	ips     sync.Map
	mu      sync.Mutex
	r       rate.Limit
	b       int
	idleTTL time.Duration
}

type client struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64 // unix nanos
}

func (c *client) touch() {
	c.lastSeen.Store(time.Now().UnixNano())
}

// NewIPRateLimiter keeps one token bucket per IP. Buckets idle for longer
// than idleTTL are dropped; idleTTL should cover a full refill.
func NewIPRateLimiter(r rate.Limit, b int, idleTTL time.Duration) *IPRateLimiter {
	if idleTTL <= 0 {
		idleTTL = 3 * time.Minute
	}
	i := &IPRateLimiter{
		r:       r,
		b:       b,
		idleTTL: idleTTL,
	}

	go i.cleanupLoop()

	return i
}

func (i *IPRateLimiter) getLimiter(ip string) *rate.Limiter {
	if v, ok := i.ips.Load(ip); ok {
		c := v.(*client)
		c.touch()
		return c.limiter
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	// Double check
	if v, ok := i.ips.Load(ip); ok {
		c := v.(*client)
		c.touch()
		return c.limiter
	}

	limiter := rate.NewLimiter(i.r, i.b)
	c := &client{limiter: limiter}
	c.touch()
	i.ips.Store(ip, c)

	return limiter
}

// Allow consumes one token for ip.
func (i *IPRateLimiter) Allow(ip string) bool {
	return i.getLimiter(ip).Allow()
}

func (i *IPRateLimiter) cleanupLoop() {
	for {
		time.Sleep(1 * time.Minute)
		i.ips.Range(func(key, value interface{}) bool {
			client := value.(*client)
			if time.Since(time.Unix(0, client.lastSeen.Load())) > i.idleTTL {
				i.ips.Delete(key)
			}
			return true
		})
	}
}

// GlobalLimit converts "max requests per window" into a token bucket rate.
func GlobalLimit(max int, window time.Duration) rate.Limit {
	if max <= 0 || window <= 0 {
		return rate.Inf
	}
	return rate.Limit(float64(max) / window.Seconds())
}

// RateLimitMiddleware applies the global per-IP token bucket. Limit and burst
// follow the current configuration.
func RateLimitMiddleware(appService *service.AppService) gin.HandlerFunc {
	var limiter *IPRateLimiter
	var once sync.Once

	return func(c *gin.Context) {
		cfg := appService.Config().RateLimit
		if !cfg.Enabled {
			c.Next()
			return
		}

		currentLimit := GlobalLimit(cfg.GlobalMax, cfg.Window())
		currentBurst := cfg.GlobalMax

		once.Do(func() {
			limiter = NewIPRateLimiter(currentLimit, currentBurst, cfg.Window())
		})

		l := limiter.getLimiter(c.ClientIP())

		if l.Limit() != currentLimit {
			l.SetLimit(currentLimit)
		}
		if l.Burst() != currentBurst {
			l.SetBurst(currentBurst)
		}

		if !l.Allow() {
			httpx.AbortWithError(c, http.StatusTooManyRequests, "rate_limited", "Too many requests, please try again later.")
			return
		}
		c.Next()
	}
}
