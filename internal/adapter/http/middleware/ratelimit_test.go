package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"todoapi/internal/adapter/http/middleware"
)

func rateLimitedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()

	limiter := middleware.NewRateLimiter(middleware.DefaultRateLimits(), nil)
	router.Use(limiter.RateLimitMiddleware())

	router.POST("/auth/", func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{"ok": true})
	})

	router.GET("/other", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	return router
}

func doFrom(router *gin.Engine, method, path, ip string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, nil)
	req.Header.Set("X-Forwarded-For", ip)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	return rr
}

func TestRateLimiter_RegistrationWindow(t *testing.T) {
	router := rateLimitedRouter()

	for i := 0; i < 5; i++ {
		rr := doFrom(router, "POST", "/auth/", "10.0.0.1")
		assert.Equal(t, http.StatusCreated, rr.Code, "request %d", i+1)
	}

	sixth := doFrom(router, "POST", "/auth/", "10.0.0.1")

	assert.Equal(t, http.StatusTooManyRequests, sixth.Code)
	assert.Equal(t, "0", sixth.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, sixth.Header().Get("X-RateLimit-Reset"))
}

func TestRateLimiter_KeyedByClientIP(t *testing.T) {
	router := rateLimitedRouter()

	for i := 0; i < 5; i++ {
		doFrom(router, "POST", "/auth/", "10.0.0.1")
	}

	// A different client still gets through.
	rr := doFrom(router, "POST", "/auth/", "10.0.0.2")

	assert.Equal(t, http.StatusCreated, rr.Code)
}

func TestRateLimiter_DefaultBucketIsSeparate(t *testing.T) {
	router := rateLimitedRouter()

	for i := 0; i < 5; i++ {
		doFrom(router, "POST", "/auth/", "10.0.0.1")
	}

	rr := doFrom(router, "GET", "/other", "10.0.0.1")

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRateLimiter_SetsLimitHeaders(t *testing.T) {
	router := rateLimitedRouter()

	rr := doFrom(router, "POST", "/auth/", "10.0.0.9")

	assert.Equal(t, "5", rr.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "4", rr.Header().Get("X-RateLimit-Remaining"))
}
