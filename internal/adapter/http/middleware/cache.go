package middleware

import (
	"bytes"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"todoapi/internal/adapter/telemetry"
	"todoapi/internal/core/port"
)

type ResponseCacheConfig struct {
	TTL     time.Duration
	Enabled bool
}

// ResponseCache serves repeated GETs from the cache repository. Entries are
// keyed per user so one tenant never sees another's cached list.
type ResponseCache struct {
	store   port.CacheRepository
	config  map[string]ResponseCacheConfig
	metrics *telemetry.AppMetrics
}

type CachedResponse struct {
	StatusCode int                 `json:"status_code"`
	Headers    map[string][]string `json:"headers"`
	Body       []byte              `json:"body"`
}

func DefaultCacheConfigs() map[string]ResponseCacheConfig {
	return map[string]ResponseCacheConfig{
		"/todos/": {
			TTL:     3 * time.Second,
			Enabled: true,
		},
	}
}

func NewResponseCache(store port.CacheRepository, configs map[string]ResponseCacheConfig, metrics *telemetry.AppMetrics) *ResponseCache {
	if configs == nil {
		configs = DefaultCacheConfigs()
	}

	return &ResponseCache{
		store:   store,
		config:  configs,
		metrics: metrics,
	}
}

type cachingWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *cachingWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (rc *ResponseCache) CacheMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()

			// Writes invalidate the owner's cached reads.
			if c.Writer.Status() < http.StatusBadRequest {
				rc.invalidate(c)
			}

			return
		}

		path := c.FullPath()

		if path == "" {
			path = c.Request.URL.Path
		}

		config, exists := rc.config[path]

		if !exists || !config.Enabled {
			c.Next()
			return
		}

		key := rc.cacheKey(c, path)

		if raw, err := rc.store.Get(c.Request.Context(), key); err == nil {
			var cached CachedResponse

			if err := json.Unmarshal(raw, &cached); err == nil {
				if rc.metrics != nil {
					rc.metrics.RecordCacheHit(c.Request.Context(), path)
				}

				for header, values := range cached.Headers {
					for _, value := range values {
						c.Writer.Header().Add(header, value)
					}
				}

				c.Writer.Header().Set("X-Cache", "HIT")
				c.Data(cached.StatusCode, c.Writer.Header().Get("Content-Type"), cached.Body)
				c.Abort()
				return
			}
		}

		if rc.metrics != nil {
			rc.metrics.RecordCacheMiss(c.Request.Context(), path)
		}

		writer := &cachingWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = writer

		c.Next()

		if writer.Status() != http.StatusOK {
			return
		}

		cached := CachedResponse{
			StatusCode: writer.Status(),
			Headers:    writer.Header().Clone(),
			Body:       writer.body.Bytes(),
		}

		raw, err := json.Marshal(cached)

		if err != nil {
			return
		}

		if err := rc.store.Set(c.Request.Context(), key, raw, config.TTL); err != nil {
			slog.Debug("Response cache store failed", "error", err, "key", key)
		}
	}
}

func (rc *ResponseCache) cacheKey(c *gin.Context, path string) string {
	owner := "anonymous"

	if identity, ok := CurrentIdentity(c); ok {
		owner = identity.ID.String()
	}

	query := c.Request.URL.RawQuery

	return fmt.Sprintf("response:%s:%x", owner, md5.Sum([]byte(path+"?"+query)))
}

func (rc *ResponseCache) invalidate(c *gin.Context) {
	if identity, ok := CurrentIdentity(c); ok {
		if err := rc.store.DeleteByPrefix(c.Request.Context(), "response:"+identity.ID.String()); err != nil {
			slog.Debug("Response cache invalidation failed", "error", err)
		}
	}
}
