package repository

import (
	"context"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"

	database "todoapi/internal/adapter/database/sqlite"
	"todoapi/internal/core/domain"
	"todoapi/internal/core/port"
)

type UserRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) port.UserRepository {
	return &UserRepository{db: db}
}

func (ur *UserRepository) getOne(ctx context.Context, pred any) (domain.User, error) {
	query := ur.db.QueryBuilder.Select(
		"id", "uuid", "username", "email", "first_name", "last_name", "password_hash", "created_at",
	).
		From("users").
		Where(pred).
		Limit(1)

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.User{}, err
	}

	var user domain.User

	err = ur.db.QueryRowContext(ctx, stmt, args...).Scan(
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

// Create runs inside an explicit transaction: either the whole identity is
// visible afterwards or nothing is. Uniqueness violations on username/email
// come back as the driver's constraint error.
func (ur *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	stmt, args, err := ur.db.QueryBuilder.Insert("users").
		Columns("uuid", "username", "email", "first_name", "last_name", "password_hash", "created_at").
		Values(user.UUID.String(), user.Username, user.Email, user.FirstName, user.LastName, user.PasswordHash, user.CreatedAt).
		ToSql()

	if err != nil {
		return domain.User{}, err
	}

	tx, err := ur.db.BeginTx(ctx, nil)

	if err != nil {
		return domain.User{}, err
	}

	if _, err := tx.ExecContext(ctx, stmt, args...); err != nil {
		tx.Rollback()
		slog.Error("Error creating user", "error", err)
		return domain.User{}, err
	}

	if err := tx.Commit(); err != nil {
		return domain.User{}, err
	}

	return ur.GetByUUID(ctx, user.UUID.String())
}

func (ur *UserRepository) UpdatePassword(ctx context.Context, uid string, passwordHash string) error {
	stmt, args, err := ur.db.QueryBuilder.Update("users").
		Set("password_hash", passwordHash).
		Where(sq.Eq{"uuid": uid}).
		ToSql()

	if err != nil {
		return err
	}

	tx, err := ur.db.BeginTx(ctx, nil)

	if err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx, stmt, args...)

	if err != nil {
		tx.Rollback()
		slog.Error("Error updating password", "error", err)
		return err
	}

	affected, err := result.RowsAffected()

	if err != nil || affected == 0 {
		tx.Rollback()
		return fmt.Errorf("user with uuid %s not found", uid)
	}

	return tx.Commit()
}
