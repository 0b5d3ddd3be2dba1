package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"todoapi/internal/core/domain"
	"todoapi/pkg/config"
)

type Claims struct {
	Username string `json:"username"`
	UserID   string `json:"id"`
	jwt.RegisteredClaims
}

// TokenCodec signs and verifies self-contained bearer tokens. The secret,
// algorithm and TTL come from startup config; rotating the secret invalidates
// every outstanding token.
type TokenCodec struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
}

func NewTokenCodec(cfg *config.Config) (*TokenCodec, error) {
	method := jwt.GetSigningMethod(cfg.JWTAlgorithm)

	if method == nil {
		return nil, fmt.Errorf("unsupported signing algorithm: %s", cfg.JWTAlgorithm)
	}

	return &TokenCodec{
		secret: []byte(cfg.JWTSecret),
		method: method,
		ttl:    cfg.TokenTTL(),
	}, nil
}

func (tc *TokenCodec) Encode(user domain.User) (string, error) {
	now := time.Now()

	claims := Claims{
		Username: user.Username,
		UserID:   user.UUID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tc.ttl)),
		},
	}

	return jwt.NewWithClaims(tc.method, claims).SignedString(tc.secret)
}

// Decode collapses every failure (bad signature, wrong algorithm, expired,
// malformed) into the same authentication error so the token is not an
// oracle.
func (tc *TokenCodec) Decode(token string) (domain.ResolvedIdentity, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		return tc.secret, nil
	}, jwt.WithValidMethods([]string{tc.method.Alg()}), jwt.WithExpirationRequired())

	if err != nil || !parsed.Valid {
		return domain.ResolvedIdentity{}, domain.ErrAuthentication
	}

	claims, ok := parsed.Claims.(*Claims)

	if !ok {
		return domain.ResolvedIdentity{}, domain.ErrAuthentication
	}

	userID, err := uuid.Parse(claims.UserID)

	if err != nil {
		return domain.ResolvedIdentity{}, domain.ErrAuthentication
	}

	return domain.ResolvedIdentity{
		ID:       userID,
		Username: claims.Username,
		Email:    claims.Subject,
	}, nil
}
