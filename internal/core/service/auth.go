package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"todoapi/internal/core/domain"
	"todoapi/internal/core/model/request"
	"todoapi/internal/core/model/response"
	"todoapi/internal/core/port"
	"todoapi/internal/core/util"
)

type AuthService struct {
	repo  port.UserRepository
	codec port.TokenCodec
}

func NewAuthService(repo port.UserRepository, codec port.TokenCodec) *AuthService {
	return &AuthService{repo: repo, codec: codec}
}

// Register hashes the plaintext and persists a fresh identity. Username and
// email uniqueness is arbitrated by the store; a violation surfaces as a
// creation-kind error with nothing half-written.
func (as *AuthService) Register(ctx context.Context, req *request.RegisterRequest) (*domain.User, error) {
	hash, err := util.HashPassword(req.Password)

	if err != nil {
		return nil, domain.Wrap(domain.KindInternal, "error hashing password", err)
	}

	user := domain.User{
		UUID:         uuid.New(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}

	saved, err := as.repo.Create(ctx, user)

	if err != nil {
		slog.Error("Auth#Register", "create", err)
		return nil, domain.Wrap(domain.KindCreation, "could not create user", err)
	}

	return &saved, nil
}

// Authenticate looks the identifier up as username or email and verifies the
// password. Unknown identifier and wrong password return the same negative
// result so callers cannot enumerate accounts.
func (as *AuthService) Authenticate(ctx context.Context, identifier, password string) (domain.User, bool) {
	user, err := as.repo.GetByIdentifier(ctx, identifier)

	if err != nil {
		slog.Warn("Auth#Authenticate failed", "identifier", identifier)
		return domain.User{}, false
	}

	if !util.VerifyPassword(password, user.PasswordHash) {
		slog.Warn("Auth#Authenticate failed", "identifier", identifier)
		return domain.User{}, false
	}

	return user, true
}

func (as *AuthService) Login(ctx context.Context, req *request.LoginRequest) (*response.TokenResponse, error) {
	user, ok := as.Authenticate(ctx, req.Username, req.Password)

	if !ok {
		return nil, domain.ErrAuthentication
	}

	token, err := as.codec.Encode(user)

	if err != nil {
		slog.Error("Auth#Login", "encode", err)
		return nil, domain.ErrAuthentication
	}

	return &response.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	}, nil
}

// ResolveIdentity runs on every authenticated request path.
func (as *AuthService) ResolveIdentity(token string) (domain.ResolvedIdentity, error) {
	return as.codec.Decode(token)
}
