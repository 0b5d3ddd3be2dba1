package port

import (
	"context"
	"time"

	"todoapi/internal/core/domain"
	"todoapi/internal/core/model/request"
	"todoapi/internal/core/model/response"
)

type TodoRepository interface {
	GetAllWithCursor(ctx context.Context, ownerUUID string, limit int, cursor string) ([]domain.Todo, bool, error)
	GetByUUID(ctx context.Context, ownerUUID, uuid string) (domain.Todo, error)
	Create(ctx context.Context, todo domain.Todo) (domain.Todo, error)
	Update(ctx context.Context, todo domain.Todo) (domain.Todo, error)
	SetCompleted(ctx context.Context, ownerUUID, uuid string, at time.Time) error
	DeleteByUUID(ctx context.Context, ownerUUID, uuid string) error
}

// TodoService operations all take the resolved identity explicitly; there is
// no ambient current user.
type TodoService interface {
	Create(ctx context.Context, identity domain.ResolvedIdentity, req *request.TodoRequest) (domain.Todo, error)
	List(ctx context.Context, identity domain.ResolvedIdentity, limit int, cursor string) (*response.CursorResponse, error)
	GetByUUID(ctx context.Context, identity domain.ResolvedIdentity, uuid string) (domain.Todo, error)
	Update(ctx context.Context, identity domain.ResolvedIdentity, uuid string, req *request.TodoRequest) (domain.Todo, error)
	Complete(ctx context.Context, identity domain.ResolvedIdentity, uuid string) (domain.Todo, error)
	Delete(ctx context.Context, identity domain.ResolvedIdentity, uuid string) error
}
