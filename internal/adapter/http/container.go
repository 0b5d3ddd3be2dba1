package http

import (
	"todoapi/internal/adapter/http/handler"
	"todoapi/internal/core/port"
	"todoapi/internal/core/service"
	"todoapi/internal/core/util"
	"todoapi/pkg/auth"
	"todoapi/pkg/config"
)

// Repositories holds whichever backend was selected at startup; the container
// only sees the ports.
type Repositories struct {
	Users port.UserRepository
	Todos port.TodoRepository
}

type Container struct {
	UserRepo port.UserRepository
	TodoRepo port.TodoRepository

	AuthUseCase port.AuthService
	UserUseCase port.UserService
	TodoUseCase port.TodoService

	AuthHandler *handler.AuthHandler
	UserHandler *handler.UserHandler
	TodoHandler *handler.TodoHandler
}

func NewContainer(cfg *config.Config, repos Repositories) (*Container, error) {
	codec, err := auth.NewTokenCodec(cfg)

	if err != nil {
		return nil, err
	}

	cursors := util.NewCursorCodec(cfg.CursorSecret)

	authSvc := service.NewAuthService(repos.Users, codec)
	userSvc := service.NewUserService(repos.Users)
	todoSvc := service.NewTodoService(repos.Todos, cursors)

	return &Container{
		UserRepo: repos.Users,
		TodoRepo: repos.Todos,

		AuthUseCase: authSvc,
		UserUseCase: userSvc,
		TodoUseCase: todoSvc,

		AuthHandler: handler.NewAuthHandler(authSvc),
		UserHandler: handler.NewUserHandler(userSvc),
		TodoHandler: handler.NewTodoHandler(todoSvc),
	}, nil
}
