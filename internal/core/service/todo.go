package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"todoapi/internal/core/domain"
	"todoapi/internal/core/model/request"
	"todoapi/internal/core/model/response"
	"todoapi/internal/core/port"
	"todoapi/internal/core/util"
)

// TodoService scopes every operation by the resolved identity. A todo owned
// by someone else answers exactly like a todo that does not exist.
type TodoService struct {
	repo    port.TodoRepository
	cursors *util.CursorCodec
}

func NewTodoService(repo port.TodoRepository, cursors *util.CursorCodec) *TodoService {
	return &TodoService{repo: repo, cursors: cursors}
}

func (ts *TodoService) Create(ctx context.Context, identity domain.ResolvedIdentity, req *request.TodoRequest) (domain.Todo, error) {
	priority, err := domain.ParsePriority(req.Priority)

	if err != nil {
		return domain.Todo{}, domain.Wrap(domain.KindValidation, "invalid priority", err)
	}

	now := time.Now()

	todo := domain.Todo{
		UUID:        uuid.New(),
		UserUUID:    identity.ID,
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    priority,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	saved, err := ts.repo.Create(ctx, todo)

	if err != nil {
		slog.Error("Todo#Create", "error", err, "user", identity.ID)
		return domain.Todo{}, domain.Wrap(domain.KindCreation, "could not create todo", err)
	}

	return saved, nil
}

func (ts *TodoService) List(ctx context.Context, identity domain.ResolvedIdentity, limit int, cursor string) (*response.CursorResponse, error) {
	rows, hasNext, err := ts.repo.GetAllWithCursor(ctx, identity.ID.String(), limit, cursor)

	if err != nil {
		// A bad cursor is the client's fault; anything else is ours.
		if errors.Is(err, util.ErrInvalidCursor) {
			return nil, domain.Wrap(domain.KindValidation, "invalid cursor", err)
		}

		slog.Error("Todo#List", "error", err, "user", identity.ID)
		return nil, domain.Wrap(domain.KindInternal, "could not list todos", err)
	}

	data := make([]response.TodoResponse, 0, len(rows))

	for _, todo := range rows {
		data = append(data, TodoToResponse(todo))
	}

	var nextCursor string

	if hasNext && len(rows) > 0 {
		// Full nanosecond precision: truncating here would skip rows created
		// in the same second as the page boundary.
		last := rows[len(rows)-1]
		nextCursor = ts.cursors.Encode(last.CreatedAt.Format(time.RFC3339Nano), last.ID)
	}

	dataBytes, _ := util.Serialize(data)

	resp := response.CursorResponse{
		Size: len(data),
		Data: dataBytes,
	}
	resp.Pagination.HasNext = hasNext
	resp.Pagination.NextCursor = nextCursor

	return &resp, nil
}

func (ts *TodoService) GetByUUID(ctx context.Context, identity domain.ResolvedIdentity, uid string) (domain.Todo, error) {
	todo, err := ts.repo.GetByUUID(ctx, identity.ID.String(), uid)

	if err != nil {
		return domain.Todo{}, domain.Wrap(domain.KindNotFound, "todo not found", err)
	}

	return todo, nil
}

func (ts *TodoService) Update(ctx context.Context, identity domain.ResolvedIdentity, uid string, req *request.TodoRequest) (domain.Todo, error) {
	todo, err := ts.GetByUUID(ctx, identity, uid)

	if err != nil {
		return domain.Todo{}, err
	}

	priority, err := domain.ParsePriority(req.Priority)

	if err != nil {
		return domain.Todo{}, domain.Wrap(domain.KindValidation, "invalid priority", err)
	}

	todo.Description = req.Description
	todo.DueDate = req.DueDate
	todo.Priority = priority
	todo.UpdatedAt = time.Now()

	updated, err := ts.repo.Update(ctx, todo)

	if err != nil {
		slog.Error("Todo#Update", "error", err, "uuid", uid)
		return domain.Todo{}, domain.Wrap(domain.KindInternal, "could not update todo", err)
	}

	return updated, nil
}

// Complete is idempotent: completing an already-completed todo returns the
// same representation without touching completed_at.
func (ts *TodoService) Complete(ctx context.Context, identity domain.ResolvedIdentity, uid string) (domain.Todo, error) {
	todo, err := ts.GetByUUID(ctx, identity, uid)

	if err != nil {
		return domain.Todo{}, err
	}

	if todo.Completed {
		return todo, nil
	}

	if err := ts.repo.SetCompleted(ctx, identity.ID.String(), uid, time.Now()); err != nil {
		slog.Error("Todo#Complete", "error", err, "uuid", uid)
		return domain.Todo{}, domain.Wrap(domain.KindInternal, "could not complete todo", err)
	}

	return ts.GetByUUID(ctx, identity, uid)
}

func (ts *TodoService) Delete(ctx context.Context, identity domain.ResolvedIdentity, uid string) error {
	if _, err := ts.GetByUUID(ctx, identity, uid); err != nil {
		return err
	}

	if err := ts.repo.DeleteByUUID(ctx, identity.ID.String(), uid); err != nil {
		slog.Error("Todo#Delete", "error", err, "uuid", uid)
		return domain.Wrap(domain.KindInternal, "could not delete todo", err)
	}

	return nil
}

func TodoToResponse(todo domain.Todo) response.TodoResponse {
	return response.TodoResponse{
		UUID:        todo.UUID,
		Description: todo.Description,
		DueDate:     todo.DueDate,
		Priority:    todo.Priority.String(),
		Completed:   todo.Completed,
		CompletedAt: todo.CompletedAt,
		CreatedAt:   todo.CreatedAt,
		UpdatedAt:   todo.UpdatedAt,
	}
}
