package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"

	"todoapi/internal/adapter/telemetry"
)

// RateLimitEndpointConfig configures a fixed window for one routing pattern.
type RateLimitEndpointConfig struct {
	Requests int
	Window   time.Duration
	KeyFunc  func(*gin.Context) string
}

type RateLimiter struct {
	cache   *cache.Cache
	config  map[string]RateLimitEndpointConfig
	metrics *telemetry.AppMetrics
	mutex   sync.Mutex
}

type RateLimitEntry struct {
	Count     int
	ResetTime time.Time
}

// DefaultRateLimits matches the public surface: registration is capped hard,
// token issuance a little looser, everything else per-user.
func DefaultRateLimits() map[string]RateLimitEndpointConfig {
	return map[string]RateLimitEndpointConfig{
		"POST /auth/": {
			Requests: 5,
			Window:   time.Hour,
			KeyFunc:  GetClientIP,
		},
		"POST /auth/token": {
			Requests: 10,
			Window:   time.Minute,
			KeyFunc:  GetClientIP,
		},
		"default": {
			Requests: 60,
			Window:   time.Minute,
			KeyFunc:  GetClientIP,
		},
	}
}

func NewRateLimiter(configs map[string]RateLimitEndpointConfig, metrics *telemetry.AppMetrics) *RateLimiter {
	if configs == nil {
		configs = DefaultRateLimits()
	}

	return &RateLimiter{
		cache:   cache.New(5*time.Minute, 10*time.Minute),
		config:  configs,
		metrics: metrics,
	}
}

func (rl *RateLimiter) RateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()

		if path == "" {
			path = c.Request.URL.Path
		}

		methodPath := c.Request.Method + " " + path

		config, exists := rl.config[methodPath]

		if !exists {
			config, exists = rl.config[path]

			if !exists {
				config = rl.config["default"]
			}
		}

		key := methodPath + ":" + config.KeyFunc(c)

		allowed, remaining, resetTime := rl.checkRateLimit(key, config)

		c.Header("X-RateLimit-Limit", strconv.Itoa(config.Requests))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

		if !allowed {
			if rl.metrics != nil {
				rl.metrics.RecordRateLimitHit(c.Request.Context(), path, "ip")
			}

			slog.Warn("Rate limit exceeded",
				"key", key,
				"path", path,
				"limit", config.Requests,
				"window", config.Window)

			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Rate limit exceeded",
				"message":     fmt.Sprintf("Too many requests. Limit: %d per %v", config.Requests, config.Window),
				"retry_after": int(time.Until(resetTime).Seconds()),
			})
			c.Abort()
			return
		}

		if rl.metrics != nil {
			rl.metrics.RecordRateLimitAllowed(c.Request.Context(), path, "ip")
		}

		c.Next()
	}
}

func (rl *RateLimiter) checkRateLimit(key string, config RateLimitEndpointConfig) (bool, int, time.Time) {
	now := time.Now()

	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	if raw, found := rl.cache.Get(key); found {
		entry := raw.(RateLimitEntry)

		if now.After(entry.ResetTime) {
			resetTime := now.Add(config.Window)
			rl.cache.Set(key, RateLimitEntry{Count: 1, ResetTime: resetTime}, config.Window)
			return true, config.Requests - 1, resetTime
		}

		if entry.Count >= config.Requests {
			return false, 0, entry.ResetTime
		}

		entry.Count++
		rl.cache.Set(key, entry, cache.DefaultExpiration)

		return true, config.Requests - entry.Count, entry.ResetTime
	}

	resetTime := now.Add(config.Window)
	rl.cache.Set(key, RateLimitEntry{Count: 1, ResetTime: resetTime}, config.Window)

	return true, config.Requests - 1, resetTime
}

func GetClientIP(c *gin.Context) string {
	if ip := c.GetHeader("X-Forwarded-For"); ip != "" {
		ips := strings.Split(ip, ",")
		return strings.TrimSpace(ips[0])
	}

	if ip := c.GetHeader("X-Real-IP"); ip != "" {
		return ip
	}

	if ip := c.ClientIP(); ip != "" {
		return ip
	}

	return "unknown"
}
