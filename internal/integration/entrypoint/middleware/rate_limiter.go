package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	domainerror "github.com/finance-tracker/dashboard/internal/domain/error"
	"github.com/finance-tracker/dashboard/internal/integration/entrypoint/dto"
)

const (
	defaultMaxAttempts    = 5
	defaultWindowDuration = 1 * time.Minute

	rateLimitKeyPrefix = "ratelimit:"
)

// WindowCounter counts hits of a key inside a fixed window.
type WindowCounter interface {
	// Hit records one attempt and returns the attempts seen in the current window.
	Hit(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RateLimiter limits attempts per client IP in a fixed window.
type RateLimiter struct {
	counter        WindowCounter
	maxAttempts    int64
	windowDuration time.Duration
	enabled        bool
}

// NewRateLimiter creates a rate limiter with default settings.
func NewRateLimiter(counter WindowCounter, enabled bool) *RateLimiter {
	return NewRateLimiterWithConfig(counter, enabled, defaultMaxAttempts, defaultWindowDuration)
}

// NewRateLimiterWithConfig creates a rate limiter with custom settings.
func NewRateLimiterWithConfig(counter WindowCounter, enabled bool, maxAttempts int, windowDuration time.Duration) *RateLimiter {
	return &RateLimiter{
		counter:        counter,
		maxAttempts:    int64(maxAttempts),
		windowDuration: windowDuration,
		enabled:        enabled,
	}
}

// Middleware returns a Gin middleware handler that enforces rate limiting for one route group.
func (rl *RateLimiter) Middleware(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.enabled {
			c.Next()
			return
		}

		clientIP := c.ClientIP()
		if clientIP == "" {
			clientIP = c.Request.RemoteAddr
		}

		key := fmt.Sprintf("%s%s:%s", rateLimitKeyPrefix, scope, clientIP)
		attempts, err := rl.counter.Hit(c.Request.Context(), key, rl.windowDuration)
		if err != nil {
			// Fail open: a broken counter must not lock users out.
			slog.Warn("rate limiter unavailable", "scope", scope, "error", err)
			c.Next()
			return
		}

		if attempts > rl.maxAttempts {
			c.JSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: "Too many requests. Please try again later.",
				Code:  string(domainerror.ErrCodeRateLimited),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// redisCounter shares windows between instances.
type redisCounter struct {
	client *redis.Client
}

// NewRedisWindowCounter creates a WindowCounter backed by Redis INCR and EXPIRE.
func NewRedisWindowCounter(client *redis.Client) WindowCounter {
	return &redisCounter{client: client}
}

func (r *redisCounter) Hit(ctx context.Context, key string, window time.Duration) (int64, error) {
	attempts, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	// The first hit opens the window.
	if attempts == 1 {
		if err := r.client.Expire(ctx, key, window).Err(); err != nil {
			return 0, err
		}
	}
	return attempts, nil
}

type windowEntry struct {
	attempts  int64
	resetTime time.Time
}

// memoryCounter keeps windows in process memory.
type memoryCounter struct {
	mu      sync.Mutex
	entries map[string]*windowEntry
	now     func() time.Time
}

// NewMemoryWindowCounter creates an in-process WindowCounter.
func NewMemoryWindowCounter() WindowCounter {
	return &memoryCounter{
		entries: make(map[string]*windowEntry),
		now:     time.Now,
	}
}

func (m *memoryCounter) Hit(_ context.Context, key string, window time.Duration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()

	// Drop expired windows while we hold the lock.
	for k, e := range m.entries {
		if now.After(e.resetTime) {
			delete(m.entries, k)
		}
	}

	entry, exists := m.entries[key]
	if !exists {
		entry = &windowEntry{resetTime: now.Add(window)}
		m.entries[key] = entry
	}
	entry.attempts++
	return entry.attempts, nil
}
