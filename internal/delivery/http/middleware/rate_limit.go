package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"interview-prep-backend/internal/delivery/http/response"
	"interview-prep-backend/internal/domain"
	"interview-prep-backend/pkg/security"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	// Requests per window
	Limit int
	// Time window duration
	Window time.Duration
	// Key extractor (default: client IP)
	KeyFunc func(*gin.Context) string
	// Key prefix for Redis
	KeyPrefix string
	// Reject requests when Redis errors instead of falling back to memory
	FailClosed bool
}

// Lua script for atomic increment with TTL on first set
// KEYS[1] = counter key
// ARGV[1] = TTL in seconds
// Returns: [current_count, ttl_remaining]
const rateLimitLuaScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('TTL', KEYS[1])
return {count, ttl}
`

// ClientIPKey limits per client address.
func ClientIPKey(c *gin.Context) string {
	return c.ClientIP()
}

// UserKey limits per authenticated user and falls back to the client address.
func UserKey(c *gin.Context) string {
	if identity := IdentityFrom(c); identity != nil {
		return "user:" + identity.UserID
	}
	return "ip:" + c.ClientIP()
}

// AuthRateLimitConfig is the strict per-IP limit for the auth endpoints.
func AuthRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{
		Limit:      limit,
		Window:     window,
		KeyPrefix:  "rl:auth:",
		FailClosed: true,
		KeyFunc:    ClientIPKey,
	}
}

// RecommendRateLimitConfig bounds completion calls per user.
func RecommendRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{
		Limit:     limit,
		Window:    window,
		KeyPrefix: "rl:recommend:",
		KeyFunc:   UserKey,
	}
}

// RateLimiter counts requests in Redis with a fixed window and falls back to
// in-memory token buckets when Redis is absent or failing.
type RateLimiter struct {
	client    *goredis.Client
	secLogger *security.SecurityLogger

	mu       sync.Mutex
	buckets  map[string]*bucket
	lastScan time.Time
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter accepts a nil client, in which case only the in-memory path is used.
func NewRateLimiter(client *goredis.Client, secLogger *security.SecurityLogger) *RateLimiter {
	return &RateLimiter{
		client:    client,
		secLogger: secLogger,
		buckets:   make(map[string]*bucket),
		lastScan:  time.Now(),
	}
}

// Middleware enforces cfg on the routes it is attached to.
func (rl *RateLimiter) Middleware(cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = ClientIPKey
	}
	if cfg.Limit <= 0 {
		cfg.Limit = 1
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}

	return func(c *gin.Context) {
		key := cfg.KeyPrefix + cfg.KeyFunc(c)

		allowed, remaining, resetAt, err := rl.allow(c.Request.Context(), key, cfg)
		if err != nil {
			if cfg.FailClosed {
				rl.secLogger.Log(c.Request.Context(), security.SecurityEvent{
					Event:       security.EventRateLimitTriggered,
					SubjectType: "system",
					IP:          c.ClientIP(),
					Details:     map[string]interface{}{"error_type": "redis_error", "error": err.Error()},
				})
				response.Error(c, http.StatusServiceUnavailable, "Service temporarily unavailable. Please try again.")
				c.Abort()
				return
			}
			allowed, remaining, resetAt = rl.allowInMemory(key, cfg, time.Now())
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", resetAt.UTC().Format(time.RFC3339))

		if !allowed {
			retryAfter := int(time.Until(resetAt).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			rl.secLogger.LogRateLimitTriggered(c.Request.Context(), key, c.ClientIP(), c.Request.UserAgent(),
				c.GetString(string(domain.KeyRequestID)), c.FullPath())
			response.Error(c, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.")
			c.Abort()
			return
		}
		c.Next()
	}
}

func (rl *RateLimiter) allow(ctx context.Context, key string, cfg RateLimitConfig) (bool, int, time.Time, error) {
	if rl.client == nil {
		allowed, remaining, resetAt := rl.allowInMemory(key, cfg, time.Now())
		return allowed, remaining, resetAt, nil
	}

	count, resetAt, err := checkRateLimitRedis(ctx, rl.client, key, cfg.Window)
	if err != nil {
		return false, 0, time.Time{}, err
	}
	remaining := cfg.Limit - count
	if remaining < 0 {
		remaining = 0
	}
	return count <= cfg.Limit, remaining, resetAt, nil
}

// checkRateLimitRedis checks rate limit using Redis with atomic Lua script
func checkRateLimitRedis(ctx context.Context, client *goredis.Client, key string, window time.Duration) (int, time.Time, error) {
	ttlSeconds := int(window.Seconds())
	if ttlSeconds < 1 {
		ttlSeconds = 1
	}

	result, err := client.Eval(ctx, rateLimitLuaScript, []string{key}, ttlSeconds).Result()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("redis rate limit eval failed: %w", err)
	}

	arr, ok := result.([]interface{})
	if !ok || len(arr) < 2 {
		return 0, time.Time{}, errors.New("unexpected redis result format")
	}
	count, _ := arr[0].(int64)
	ttl, _ := arr[1].(int64)

	return int(count), time.Now().Add(time.Duration(ttl) * time.Second), nil
}

// allowInMemory uses a token bucket refilling Limit tokens per Window.
func (rl *RateLimiter) allowInMemory(key string, cfg RateLimitConfig, now time.Time) (bool, int, time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if now.Sub(rl.lastScan) > 5*time.Minute {
		for k, b := range rl.buckets {
			if now.Sub(b.lastSeen) > cfg.Window*2 {
				delete(rl.buckets, k)
			}
		}
		rl.lastScan = now
	}

	b, ok := rl.buckets[key]
	if !ok {
		every := cfg.Window / time.Duration(cfg.Limit)
		b = &bucket{limiter: rate.NewLimiter(rate.Every(every), cfg.Limit)}
		rl.buckets[key] = b
	}
	b.lastSeen = now

	allowed := b.limiter.AllowN(now, 1)
	remaining := int(b.limiter.TokensAt(now))
	if remaining < 0 {
		remaining = 0
	}
	return allowed, remaining, now.Add(cfg.Window)
}
