package middleware

import (
	"fmt"
	"time"

	"github.com/ariebrainware/medical-forum/config"
	"github.com/ariebrainware/medical-forum/util"
	"github.com/gin-gonic/gin"
	cache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	// Rate limiting defaults
	defaultRateLimit  = 30
	defaultRateWindow = time.Minute
)

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	Limit  int
	Window time.Duration
}

// RateLimiter creates a rate limiting middleware backed by Redis counters.
// Without a Redis client the counters are kept in process memory. When Redis
// is configured but failing, requests are let through.
func RateLimiter(cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.Limit <= 0 {
		cfg.Limit = defaultRateLimit
	}
	if cfg.Window <= 0 {
		cfg.Window = defaultRateWindow
	}
	local := cache.New(cfg.Window, 2*cfg.Window)

	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		endpoint := c.Request.URL.Path
		key := rateLimitKey(c.Request.Method, endpoint, clientIP)

		var (
			allowed bool
			err     error
		)
		if rdb := config.GetRedisClient(); rdb != nil {
			allowed, err = checkRateLimit(c, rdb, key, cfg.Limit, cfg.Window)
		} else {
			allowed = checkLocalRateLimit(local, key, cfg.Limit, cfg.Window)
		}
		if err != nil {
			util.Logger().Warn("rate limit check failed", zap.String("key", key), zap.Error(err))
			util.RecordAuditEvent(GetDB(c), util.AuditEvent{
				EventType: util.EventRateLimitFailure,
				RequestID: GetRequestID(c),
				IP:        clientIP,
				Message:   fmt.Sprintf("Rate limit check failed: %v", err),
			})
			c.Next()
			return
		}

		if !allowed {
			util.LogRateLimitExceeded(GetDB(c), GetRequestID(c), clientIP, endpoint)
			util.CallMasonError(c, util.NewAPIError(util.KindRateLimited,
				"Too many requests. Please try again later.", fmt.Errorf("rate limit exceeded")))
			return
		}

		c.Next()
	}
}

func rateLimitKey(method, endpoint, clientIP string) string {
	return fmt.Sprintf("ratelimit:%s:%s:%s", method, endpoint, clientIP)
}

// checkRateLimit counts the request and reports whether it is within the limit.
// The window starts with the first request.
func checkRateLimit(c *gin.Context, rdb *redis.Client, key string, limit int, window time.Duration) (bool, error) {
	ctx := c.Request.Context()
	count, err := rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check rate limit: %w", err)
	}
	if count == 1 {
		if err := rdb.Expire(ctx, key, window).Err(); err != nil {
			return false, fmt.Errorf("failed to set rate limit window: %w", err)
		}
	}
	return count <= int64(limit), nil
}

// checkLocalRateLimit is checkRateLimit for the in-memory counters.
func checkLocalRateLimit(local *cache.Cache, key string, limit int, window time.Duration) bool {
	if err := local.Add(key, int64(1), window); err == nil {
		return true
	}
	count, err := local.IncrementInt64(key, 1)
	if err != nil {
		// The window expired between Add and IncrementInt64.
		local.Set(key, int64(1), window)
		return true
	}
	return count <= int64(limit)
}

// ResetRateLimit resets the rate limit for a given client and endpoint.
func ResetRateLimit(c *gin.Context, method, endpoint, clientIP string) error {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return fmt.Errorf("redis not available")
	}
	return rdb.Del(c.Request.Context(), rateLimitKey(method, endpoint, clientIP)).Err()
}
