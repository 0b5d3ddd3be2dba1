package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"

	database "todoapi/internal/adapter/database/sqlite"
	"todoapi/internal/core/domain"
	"todoapi/internal/core/port"
	"todoapi/internal/core/util"
)

type TodoRepository struct {
	db      *database.DB
	cursors *util.CursorCodec
}

func NewTodoRepository(db *database.DB, cursors *util.CursorCodec) port.TodoRepository {
	return &TodoRepository{db: db, cursors: cursors}
}

var todoColumns = []string{
	"id", "uuid", "user_uuid", "description", "due_date", "priority",
	"completed", "completed_at", "created_at", "updated_at",
}

type scannable interface {
	Scan(dest ...any) error
}

func scanTodo(row scannable) (domain.Todo, error) {
	var todo domain.Todo
	var dueDate, completedAt sql.NullTime

	err := row.Scan(
		&todo.ID,
		&todo.UUID,
		&todo.UserUUID,
		&todo.Description,
		&dueDate,
		&todo.Priority,
		&todo.Completed,
		&completedAt,
		&todo.CreatedAt,
		&todo.UpdatedAt,
	)

	if err != nil {
		return domain.Todo{}, err
	}

	if dueDate.Valid {
		todo.DueDate = &dueDate.Time
	}

	if completedAt.Valid {
		todo.CompletedAt = &completedAt.Time
	}

	return todo, nil
}

func (tr *TodoRepository) GetAllWithCursor(ctx context.Context, ownerUUID string, limit int, cursor string) ([]domain.Todo, bool, error) {
	// Fetch one extra row to learn whether a next page exists.
	actualLimit := limit + 1

	query := tr.db.QueryBuilder.Select(todoColumns...).
		From("todos").
		Where(sq.Eq{"user_uuid": ownerUUID}).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(actualLimit))

	if cursor != "" {
		datetimeStr, id, err := tr.cursors.Decode(cursor)

		if err != nil {
			slog.Error("Error decoding cursor", "error", err)
			return []domain.Todo{}, false, err
		}

		datetime, err := time.Parse(time.RFC3339Nano, datetimeStr)

		if err != nil {
			slog.Error("Error parsing cursor datetime", "error", err, "datetime", datetimeStr)
			return []domain.Todo{}, false, fmt.Errorf("%w: %v", util.ErrInvalidCursor, err)
		}

		query = query.Where(sq.Or{
			sq.Lt{"created_at": datetime},
			sq.And{sq.Eq{"created_at": datetime}, sq.Lt{"id": id}},
		})
	}

	stmt, args, err := query.ToSql()

	if err != nil {
		return []domain.Todo{}, false, err
	}

	rows, err := tr.db.QueryContext(ctx, stmt, args...)

	if err != nil {
		slog.Error("Error fetching todos", "error", err)
		return []domain.Todo{}, false, err
	}

	defer rows.Close()

	data := []domain.Todo{}

	for rows.Next() {
		todo, err := scanTodo(rows)

		if err != nil {
			return []domain.Todo{}, false, err
		}

		data = append(data, todo)
	}

	if err := rows.Err(); err != nil {
		return []domain.Todo{}, false, err
	}

	hasNext := len(data) == actualLimit

	if hasNext {
		data = data[:limit]
	}

	return data, hasNext, nil
}

// GetByUUID filters by owner as well as id, so a foreign todo is
// indistinguishable from a missing one.
func (tr *TodoRepository) GetByUUID(ctx context.Context, ownerUUID, uid string) (domain.Todo, error) {
	stmt, args, err := tr.db.QueryBuilder.Select(todoColumns...).
		From("todos").
		Where(sq.Eq{"uuid": uid}).
		Where(sq.Eq{"user_uuid": ownerUUID}).
		Limit(1).
		ToSql()

	if err != nil {
		return domain.Todo{}, err
	}

	todo, err := scanTodo(tr.db.QueryRowContext(ctx, stmt, args...))

	if err != nil {
		return domain.Todo{}, err
	}

	return todo, nil
}

func (tr *TodoRepository) Create(ctx context.Context, todo domain.Todo) (domain.Todo, error) {
	stmt, args, err := tr.db.QueryBuilder.Insert("todos").
		Columns("uuid", "user_uuid", "description", "due_date", "priority", "completed", "completed_at", "created_at", "updated_at").
		Values(todo.UUID.String(), todo.UserUUID.String(), todo.Description, todo.DueDate, todo.Priority, todo.Completed, todo.CompletedAt, todo.CreatedAt, todo.UpdatedAt).
		ToSql()

	if err != nil {
		return domain.Todo{}, err
	}

	tx, err := tr.db.BeginTx(ctx, nil)

	if err != nil {
		return domain.Todo{}, err
	}

	if _, err := tx.ExecContext(ctx, stmt, args...); err != nil {
		tx.Rollback()
		slog.Error("Error creating todo", "error", err)
		return domain.Todo{}, err
	}

	if err := tx.Commit(); err != nil {
		return domain.Todo{}, err
	}

	return tr.GetByUUID(ctx, todo.UserUUID.String(), todo.UUID.String())
}

func (tr *TodoRepository) Update(ctx context.Context, todo domain.Todo) (domain.Todo, error) {
	stmt, args, err := tr.db.QueryBuilder.Update("todos").
		SetMap(map[string]any{
			"description": todo.Description,
			"due_date":    todo.DueDate,
			"priority":    todo.Priority,
			"updated_at":  todo.UpdatedAt,
		}).
		Where(sq.Eq{"uuid": todo.UUID.String()}).
		Where(sq.Eq{"user_uuid": todo.UserUUID.String()}).
		ToSql()

	if err != nil {
		return domain.Todo{}, err
	}

	result, err := tr.db.ExecContext(ctx, stmt, args...)

	if err != nil {
		slog.Error("Error updating todo", "error", err)
		return domain.Todo{}, err
	}

	if affected, err := result.RowsAffected(); err != nil || affected == 0 {
		return domain.Todo{}, fmt.Errorf("todo with uuid %s not found", todo.UUID)
	}

	return tr.GetByUUID(ctx, todo.UserUUID.String(), todo.UUID.String())
}

func (tr *TodoRepository) SetCompleted(ctx context.Context, ownerUUID, uid string, at time.Time) error {
	stmt, args, err := tr.db.QueryBuilder.Update("todos").
		SetMap(map[string]any{
			"completed":    true,
			"completed_at": at,
			"updated_at":   at,
		}).
		Where(sq.Eq{"uuid": uid}).
		Where(sq.Eq{"user_uuid": ownerUUID}).
		ToSql()

	if err != nil {
		return err
	}

	result, err := tr.db.ExecContext(ctx, stmt, args...)

	if err != nil {
		return err
	}

	if affected, err := result.RowsAffected(); err != nil || affected == 0 {
		return fmt.Errorf("todo with uuid %s not found", uid)
	}

	return nil
}

func (tr *TodoRepository) DeleteByUUID(ctx context.Context, ownerUUID, uid string) error {
	stmt, args, err := tr.db.QueryBuilder.Delete("todos").
		Where(sq.Eq{"uuid": uid}).
		Where(sq.Eq{"user_uuid": ownerUUID}).
		ToSql()

	if err != nil {
		return err
	}

	result, err := tr.db.ExecContext(ctx, stmt, args...)

	if err != nil {
		return err
	}

	if affected, err := result.RowsAffected(); err != nil || affected == 0 {
		return fmt.Errorf("todo with uuid %s not found", uid)
	}

	return nil
}
