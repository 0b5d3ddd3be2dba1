package port

import (
	"context"

	"todoapi/internal/core/domain"
	"todoapi/internal/core/model/request"
)

type UserRepository interface {
	GetByUUID(ctx context.Context, uuid string) (domain.User, error)
	// GetByIdentifier matches the identifier against username OR email in a
	// single query.
	GetByIdentifier(ctx context.Context, identifier string) (domain.User, error)
	Create(ctx context.Context, user domain.User) (domain.User, error)
	UpdatePassword(ctx context.Context, uuid string, passwordHash string) error
}

type UserService interface {
	GetByUUID(ctx context.Context, uuid string) (domain.User, error)
	ChangePassword(ctx context.Context, identity domain.ResolvedIdentity, req *request.PasswordChangeRequest) error
}
