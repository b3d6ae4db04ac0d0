package middleware

import (
	"context"
	"fmt"
	"log"
	"momnt-server/internal/modules/common/httpx"
	"momnt-server/internal/platform/service"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// WindowCounter counts hits per key inside fixed, epoch-aligned windows.
type WindowCounter interface {
	// Incr records one hit and returns the count in the current window and when it resets.
	Incr(ctx context.Context, key string, window time.Duration) (int64, time.Time, error)
}

func windowStart(now time.Time, window time.Duration) time.Time {
	return now.Truncate(window)
}

type windowState struct {
	start time.Time
	count int64
}

// MemoryWindowCounter is the single-process WindowCounter.
type MemoryWindowCounter struct {
	mu      sync.Mutex
	windows map[string]*windowState
	now     func() time.Time
	swept   time.Time
}

func NewMemoryWindowCounter() *MemoryWindowCounter {
	return &MemoryWindowCounter{windows: make(map[string]*windowState), now: time.Now}
}

func (m *MemoryWindowCounter) Incr(_ context.Context, key string, window time.Duration) (int64, time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	start := windowStart(now, window)

	// drop stale keys at most once per window
	if now.Sub(m.swept) >= window {
		for k, st := range m.windows {
			if st.start.Before(start) {
				delete(m.windows, k)
			}
		}
		m.swept = now
	}

	st, ok := m.windows[key]
	if !ok || !st.start.Equal(start) {
		st = &windowState{start: start}
		m.windows[key] = st
	}
	st.count++
	return st.count, start.Add(window), nil
}

// RedisWindowCounter shares counters across instances.
type RedisWindowCounter struct {
	client *redis.Client
	now    func() time.Time
}

func NewRedisWindowCounter(client *redis.Client) *RedisWindowCounter {
	return &RedisWindowCounter{client: client, now: time.Now}
}

func (r *RedisWindowCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, time.Time, error) {
	start := windowStart(r.now(), window)
	bucketKey := key + ":" + strconv.FormatInt(start.Unix(), 10)

	var incr *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, bucketKey)
		pipe.PExpire(ctx, bucketKey, window)
		return nil
	})
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("redis window incr: %w", err)
	}
	return incr.Val(), start.Add(window), nil
}

// NewWindowCounter picks Redis when a client is available.
func NewWindowCounter(appService *service.AppService) WindowCounter {
	if client := appService.Redis(); client != nil {
		return NewRedisWindowCounter(client)
	}
	return NewMemoryWindowCounter()
}

// UploadRateLimit caps submissions per client IP per fixed window. It runs
// before any body parsing so rejected requests cost nothing.
func UploadRateLimit(appService *service.AppService, counter WindowCounter) gin.HandlerFunc {
	fallback := NewMemoryWindowCounter()

	return func(c *gin.Context) {
		cfg := appService.Config().RateLimit
		if !cfg.Enabled || cfg.UploadMax <= 0 {
			c.Next()
			return
		}
		window := cfg.Window()
		if window <= 0 {
			window = 15 * time.Minute
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()

		key := appService.RedisKey("ratelimit", "upload", c.ClientIP())
		count, resetAt, err := counter.Incr(ctx, key, window)
		if err != nil {
			log.Printf("⚠️ upload limiter degraded to memory: %v", err)
			count, resetAt, _ = fallback.Incr(ctx, key, window)
		}

		limit := int64(cfg.UploadMax)
		remaining := limit - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.FormatInt(limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetAt.Unix(), 10))

		if count > limit {
			retry := int(time.Until(resetAt).Seconds()) + 1
			c.Header("Retry-After", strconv.Itoa(retry))
			httpx.AbortWithError(c, http.StatusTooManyRequests, "rate_limited", "Too many uploads from this IP, please try again later.")
			return
		}
		c.Next()
	}
}
