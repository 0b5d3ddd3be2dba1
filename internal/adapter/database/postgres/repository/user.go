package repository

import (
	"context"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"go.opentelemetry.io/otel/attribute"

	database "todoapi/internal/adapter/database/postgres"
	"todoapi/internal/core/domain"
	"todoapi/internal/core/port"
	"todoapi/pkg/tracing"
)

type UserRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) port.UserRepository {
	return &UserRepository{db: db}
}

func (ur *UserRepository) getOne(ctx context.Context, pred any) (domain.User, error) {
	stmt, args, err := ur.db.QueryBuilder.Select(
		"id", "uuid", "username", "email", "first_name", "last_name", "password_hash", "created_at",
	).
		From("users").
		Where(pred).
		Limit(1).
		ToSql()

	if err != nil {
		return domain.User{}, err
	}

	var user domain.User

	err = ur.db.QueryRow(ctx, stmt, args...).Scan(
		&user.ID,
		&user.UUID,
		&user.Username,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.PasswordHash,
		&user.CreatedAt,
	)

	if err != nil {
		return domain.User{}, err
	}

	return user, nil
}

func (ur *UserRepository) GetByUUID(ctx context.Context, uid string) (domain.User, error) {
	return ur.getOne(ctx, sq.Eq{"uuid": uid})
}

func (ur *UserRepository) GetByIdentifier(ctx context.Context, identifier string) (domain.User, error) {
	return ur.getOne(ctx, sq.Or{sq.Eq{"username": identifier}, sq.Eq{"email": identifier}})
}

func (ur *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	ctx, span := tracing.CreateChildSpan(ctx, "db.users.Create", []attribute.KeyValue{
		attribute.String("db.table", "users"),
		attribute.String("db.operation", "INSERT"),
	})

	defer span.End()

	stmt, args, err := ur.db.QueryBuilder.Insert("users").
		Columns("uuid", "username", "email", "first_name", "last_name", "password_hash", "created_at").
		Values(user.UUID.String(), user.Username, user.Email, user.FirstName, user.LastName, user.PasswordHash, user.CreatedAt).
		ToSql()

	if err != nil {
		return domain.User{}, err
	}

	tx, err := ur.db.Begin(ctx)

	if err != nil {
		return domain.User{}, err
	}

	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, stmt, args...); err != nil {
		tracing.AddSpanError(span, err)
		slog.Error("Error creating user", "error", err)
		return domain.User{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.User{}, err
	}

	return ur.GetByUUID(ctx, user.UUID.String())
}

func (ur *UserRepository) UpdatePassword(ctx context.Context, uid string, passwordHash string) error {
	ctx, span := tracing.CreateChildSpan(ctx, "db.users.UpdatePassword", []attribute.KeyValue{
		attribute.String("db.table", "users"),
		attribute.String("db.operation", "UPDATE"),
	})

	defer span.End()

	stmt, args, err := ur.db.QueryBuilder.Update("users").
		Set("password_hash", passwordHash).
		Where(sq.Eq{"uuid": uid}).
		ToSql()

	if err != nil {
		return err
	}

	tx, err := ur.db.Begin(ctx)

	if err != nil {
		return err
	}

	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, stmt, args...)

	if err != nil {
		tracing.AddSpanError(span, err)
		slog.Error("Error updating password", "error", err)
		return err
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user with uuid %s not found", uid)
	}

	return tx.Commit(ctx)
}
