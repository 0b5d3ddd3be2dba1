package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"todoapi/internal/adapter/database/memory"
	"todoapi/internal/adapter/database/postgres"
	postgresrepo "todoapi/internal/adapter/database/postgres/repository"
	"todoapi/internal/adapter/database/redis"
	sqlite "todoapi/internal/adapter/database/sqlite"
	sqliterepo "todoapi/internal/adapter/database/sqlite/repository"
	"todoapi/internal/adapter/http/routes"
	"todoapi/internal/adapter/telemetry"
	"todoapi/internal/core/port"
	"todoapi/internal/core/util"
	"todoapi/pkg/config"
)

// StartServer wires the storage backend, the container and the router, then
// serves until the listener fails. DATABASE_URL selects postgres; without it
// the embedded sqlite database is used.
func StartServer(ctx context.Context, cfg *config.Config, metrics *telemetry.AppMetrics) error {
	repos, cleanup, err := buildRepositories(ctx, cfg)

	if err != nil {
		return err
	}

	defer cleanup()

	container, err := NewContainer(cfg, repos)

	if err != nil {
		return err
	}

	store := buildCacheStore(ctx, cfg)
	defer store.Close()

	router := routes.SetupRouter(routes.HandlersConfig{
		AuthHandler: container.AuthHandler,
		UserHandler: container.UserHandler,
		TodoHandler: container.TodoHandler,
		AuthService: container.AuthUseCase,
		CacheStore:  store,
	}, metrics)

	slog.Info("Server starting",
		"port", cfg.Port,
		"environment", cfg.Environment)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}

func buildRepositories(ctx context.Context, cfg *config.Config) (Repositories, func(), error) {
	cursors := util.NewCursorCodec(cfg.CursorSecret)

	if cfg.DatabaseURL != "" {
		db, err := postgres.NewDB(ctx, cfg)

		if err != nil {
			return Repositories{}, nil, err
		}

		return Repositories{
			Users: postgresrepo.NewUserRepository(db),
			Todos: postgresrepo.NewTodoRepository(db, cursors),
		}, db.Close, nil
	}

	db, err := sqlite.NewDB(cfg)

	if err != nil {
		return Repositories{}, nil, err
	}

	return Repositories{
		Users: sqliterepo.NewUserRepository(db),
		Todos: sqliterepo.NewTodoRepository(db, cursors),
	}, func() { db.Close() }, nil
}

func buildCacheStore(ctx context.Context, cfg *config.Config) port.CacheRepository {
	if cfg.RedisAddr != "" {
		store, err := redis.NewCacheRepository(ctx, cfg)

		if err == nil {
			return store
		}

		slog.Warn("Redis unavailable, using in-process cache", "error", err)
	}

	return memory.NewCacheRepository()
}
