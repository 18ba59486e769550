package security

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// LoginTrackerConfig holds configuration for login tracking
type LoginTrackerConfig struct {
	MaxAttempts   int           // failed attempts before a block
	AttemptWindow time.Duration // window over which failures are counted
	BlockDuration time.Duration // block length once MaxAttempts is reached
}

func DefaultLoginTrackerConfig() LoginTrackerConfig {
	return LoginTrackerConfig{
		MaxAttempts:   5,
		AttemptWindow: 15 * time.Minute,
		BlockDuration: 15 * time.Minute,
	}
}

// LoginTracker counts failed sign-ins per email in Redis and blocks the address once the
// configured threshold is reached. A nil client disables tracking (fail open).
type LoginTracker struct {
	client *goredis.Client
	config LoginTrackerConfig
	logger *SecurityLogger
}

func NewLoginTracker(client *goredis.Client, config LoginTrackerConfig, logger *SecurityLogger) *LoginTracker {
	return &LoginTracker{
		client: client,
		config: config,
		logger: logger,
	}
}

const (
	failLoginPrefix    = "fail:login:user:"
	blockedLoginPrefix = "blocked:login:user:"
)

// KEYS[1] = counter key, ARGV[1] = TTL in seconds. Returns the count after increment.
const incrWithTTLScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
return count
`

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsBlocked reports whether email is currently locked out.
func (lt *LoginTracker) IsBlocked(ctx context.Context, email string) (bool, error) {
	if lt.client == nil {
		return false, nil
	}

	exists, err := lt.client.Exists(ctx, blockedLoginPrefix+normalizeEmail(email)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check login block: %w", err)
	}
	return exists > 0, nil
}

// RecordFailedAttempt increments the failure counter and blocks the email once the
// threshold is reached. Returns (blocked, attempts, error).
func (lt *LoginTracker) RecordFailedAttempt(ctx context.Context, email, ip, userAgent, requestID string) (bool, int, error) {
	lt.logger.LogLoginFailed(ctx, email, ip, userAgent, requestID, "invalid_credentials")

	if lt.client == nil {
		return false, 0, nil
	}

	key := normalizeEmail(email)
	ttlSeconds := int(lt.config.AttemptWindow.Seconds())

	result, err := lt.client.Eval(ctx, incrWithTTLScript, []string{failLoginPrefix + key}, ttlSeconds).Result()
	if err != nil {
		return false, 0, fmt.Errorf("failed to increment login counter: %w", err)
	}
	count, ok := result.(int64)
	if !ok {
		return false, 0, errors.New("unexpected result type from Lua script")
	}

	if int(count) < lt.config.MaxAttempts {
		return false, int(count), nil
	}

	if err := lt.client.Set(ctx, blockedLoginPrefix+key, "1", lt.config.BlockDuration).Err(); err != nil {
		return true, int(count), fmt.Errorf("failed to set login block: %w", err)
	}
	lt.logger.LogLoginBlocked(ctx, email, ip, userAgent, requestID)
	return true, int(count), nil
}

// ClearAttempts resets the failure counter after a successful sign-in.
func (lt *LoginTracker) ClearAttempts(ctx context.Context, email string) error {
	if lt.client == nil {
		return nil
	}
	if err := lt.client.Del(ctx, failLoginPrefix+normalizeEmail(email)).Err(); err != nil {
		return fmt.Errorf("failed to clear login attempts: %w", err)
	}
	return nil
}
