package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"todoapi/internal/adapter/http/handler"
	"todoapi/internal/adapter/http/middleware"
	"todoapi/internal/adapter/telemetry"
	"todoapi/internal/core/port"
)

type HandlersConfig struct {
	AuthHandler *handler.AuthHandler
	UserHandler *handler.UserHandler
	TodoHandler *handler.TodoHandler

	AuthService port.AuthService
	CacheStore  port.CacheRepository
}

func SetupRouter(handlers HandlersConfig, metrics *telemetry.AppMetrics) *gin.Engine {
	if gin.Mode() == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware("todoapi"))

	if metrics != nil {
		router.Use(middleware.MetricsMiddleware(metrics))
	}

	limiter := middleware.NewRateLimiter(middleware.DefaultRateLimits(), metrics)
	router.Use(limiter.RateLimitMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	setupPublicRoutes(router, handlers)
	setupProtectedRoutes(router, handlers, metrics)

	return router
}

// SetupRouterForTests skips telemetry and rate limiting so handler tests only
// exercise routing, auth and the handlers themselves.
func SetupRouterForTests(handlers HandlersConfig) *gin.Engine {
	if gin.Mode() == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	setupPublicRoutes(router, handlers)
	setupProtectedRoutes(router, handlers, nil)

	return router
}

func setupPublicRoutes(router *gin.Engine, handlers HandlersConfig) {
	auth := router.Group("/auth")
	{
		auth.POST("/", handlers.AuthHandler.Register)
		auth.POST("/token", handlers.AuthHandler.Token)
	}
}

func setupProtectedRoutes(router *gin.Engine, handlers HandlersConfig, metrics *telemetry.AppMetrics) {
	protected := router.Group("/")
	protected.Use(middleware.BearerAuth(handlers.AuthService))

	users := protected.Group("/users")
	{
		users.GET("/me", handlers.UserHandler.Me)
		users.PUT("/me/change-password", handlers.UserHandler.ChangePassword)
	}

	todos := protected.Group("/todos")

	if handlers.CacheStore != nil {
		cache := middleware.NewResponseCache(handlers.CacheStore, middleware.DefaultCacheConfigs(), metrics)
		todos.Use(cache.CacheMiddleware())
	}

	{
		todos.GET("/", handlers.TodoHandler.List)
		todos.POST("/", handlers.TodoHandler.Create)
		todos.GET("/:uuid", handlers.TodoHandler.Get)
		todos.PUT("/:uuid", handlers.TodoHandler.Update)
		todos.PUT("/:uuid/complete", handlers.TodoHandler.Complete)
		todos.DELETE("/:uuid", handlers.TodoHandler.Delete)
	}
}
