package port

import (
	"context"

	"todoapi/internal/core/domain"
	"todoapi/internal/core/model/request"
	"todoapi/internal/core/model/response"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*domain.User, error)
	Authenticate(ctx context.Context, identifier, password string) (domain.User, bool)
	Login(ctx context.Context, req *request.LoginRequest) (*response.TokenResponse, error)
	ResolveIdentity(token string) (domain.ResolvedIdentity, error)
}

// TokenCodec turns an identity into an opaque signed string and back. Decode
// failures are uniform: the codec never reveals which check rejected a token.
type TokenCodec interface {
	Encode(user domain.User) (string, error)
	Decode(token string) (domain.ResolvedIdentity, error)
}
