package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"qrdrop/backend/common"

	"github.com/burugo/thing"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Counter is a fixed-window hit counter.
type Counter interface {
	Incr(ctx context.Context, key string) (int64, error)
	Expire(ctx context.Context, key string, ttl time.Duration) error
}

type RedisCounter struct {
	rdb *redis.Client
}

func NewRedisCounter(rdb *redis.Client) *RedisCounter {
	return &RedisCounter{rdb: rdb}
}

func (r *RedisCounter) Incr(ctx context.Context, key string) (int64, error) {
	return r.rdb.Incr(ctx, key).Result()
}

func (r *RedisCounter) Expire(ctx context.Context, key string, ttl time.Duration) error {
	return r.rdb.Expire(ctx, key, ttl).Err()
}

// ThingCounter keeps counters in thing's process-local cache. It is used
// when redis is not configured; common.InitThingCache must run first.
type ThingCounter struct{}

var errThingCacheMissing = errors.New("thing.Cache() returned nil")

func NewThingCounter() ThingCounter {
	return ThingCounter{}
}

func (ThingCounter) Incr(ctx context.Context, key string) (int64, error) {
	cacheClient := thing.Cache()
	if cacheClient == nil {
		return 0, errThingCacheMissing
	}
	return cacheClient.Incr(ctx, key)
}

func (ThingCounter) Expire(ctx context.Context, key string, ttl time.Duration) error {
	cacheClient := thing.Cache()
	if cacheClient == nil {
		return errThingCacheMissing
	}
	return cacheClient.Expire(ctx, key, ttl)
}

// RateLimiter builds per-IP fixed-window limit middleware over a Counter.
type RateLimiter struct {
	counter Counter
	enabled bool
}

func NewRateLimiter(counter Counter, enabled bool) *RateLimiter {
	return &RateLimiter{counter: counter, enabled: enabled}
}

func (l *RateLimiter) limit(c *gin.Context, maxRequestNum int, durationSeconds int64, mark string) {
	key := "rateLimit:" + mark + c.ClientIP()
	ctx := c.Request.Context()

	count, err := l.counter.Incr(ctx, key)
	if err != nil {
		common.SysError(fmt.Sprintf("[RateLimit] Error incrementing counter for key %s: %v", key, err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	if count == 1 {
		window := time.Duration(durationSeconds) * time.Second
		if err := l.counter.Expire(ctx, key, window); err != nil {
			common.SysError(fmt.Sprintf("[RateLimit] Error setting expiration for key %s: %v", key, err))
		}
	}

	if count > int64(maxRequestNum) {
		c.String(http.StatusTooManyRequests, "Too many requests, please try again later.")
		c.Abort()
		return
	}
	c.Next()
}

func (l *RateLimiter) factory(maxRequestNum int, duration int64, mark string) gin.HandlerFunc {
	if l == nil || !l.enabled {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		l.limit(c, maxRequestNum, duration, mark)
	}
}

func (l *RateLimiter) GlobalWeb() gin.HandlerFunc {
	return l.factory(common.GlobalWebRateLimitNum, common.GlobalWebRateLimitDuration, "GW")
}

// Critical guards signup and login.
func (l *RateLimiter) Critical() gin.HandlerFunc {
	return l.factory(common.CriticalRateLimitNum, common.CriticalRateLimitDuration, "CT")
}

func (l *RateLimiter) Upload() gin.HandlerFunc {
	return l.factory(common.UploadRateLimitNum, common.UploadRateLimitDuration, "UP")
}
