package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"todoapi/internal/adapter/database/sqlite/repository"
	"todoapi/internal/core/domain"
	"todoapi/internal/core/model/request"
	"todoapi/internal/core/port"
	"todoapi/internal/core/service"
	"todoapi/pkg/auth"
	"todoapi/pkg/config"
	. "todoapi/pkg/test"
)

var ctx = context.Background()

func testCodec() *auth.TokenCodec {
	codec, _ := auth.NewTokenCodec(&config.Config{
		JWTSecret:       "service-test-secret",
		JWTAlgorithm:    "HS256",
		TokenTTLMinutes: 30,
	})

	return codec
}

type AuthServiceSuite struct {
	suite.Suite
	UserRepo port.UserRepository
	Auth     *service.AuthService
	Codec    *auth.TokenCodec
}

func (s *AuthServiceSuite) SetupTest() {
	db := InitTestDB()

	s.UserRepo = repository.NewUserRepository(db)
	s.Codec = testCodec()
	s.Auth = service.NewAuthService(s.UserRepo, s.Codec)
}

func TestAuthServiceSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(AuthServiceSuite))
}

func registerRequest() *request.RegisterRequest {
	return &request.RegisterRequest{
		FirstName: "John",
		LastName:  "Doe",
		Username:  "johndoe",
		Email:     "john@example.com",
		Password:  "plaintext-password",
	}
}

func (s *AuthServiceSuite) TestRegister() {
	user, err := s.Auth.Register(ctx, registerRequest())

	Expect(err).To(BeNil())
	Expect(user.Username).To(Equal("johndoe"))
	Expect(user.UUID.String()).To(Not(BeEmpty()))

	Expect(user.PasswordHash).To(Not(ContainSubstring("plaintext-password")))
	Expect(strings.HasPrefix(user.PasswordHash, "$argon2id$")).To(BeTrue())
}

func (s *AuthServiceSuite) TestRegisterDuplicateEmail() {
	_, err := s.Auth.Register(ctx, registerRequest())
	Expect(err).To(BeNil())

	dup := registerRequest()
	dup.Username = "someone-else"

	_, err = s.Auth.Register(ctx, dup)

	Expect(err).To(Not(BeNil()))
	Expect(domain.KindOf(err)).To(Equal(domain.KindCreation))
}

func (s *AuthServiceSuite) TestRegisterDuplicateUsername() {
	_, err := s.Auth.Register(ctx, registerRequest())
	Expect(err).To(BeNil())

	dup := registerRequest()
	dup.Email = "other@example.com"

	_, err = s.Auth.Register(ctx, dup)

	Expect(err).To(Not(BeNil()))
	Expect(domain.KindOf(err)).To(Equal(domain.KindCreation))
}

func (s *AuthServiceSuite) TestAuthenticateByUsername() {
	s.Auth.Register(ctx, registerRequest())

	user, ok := s.Auth.Authenticate(ctx, "johndoe", "plaintext-password")

	Expect(ok).To(BeTrue())
	Expect(user.Email).To(Equal("john@example.com"))
}

func (s *AuthServiceSuite) TestAuthenticateByEmail() {
	s.Auth.Register(ctx, registerRequest())

	user, ok := s.Auth.Authenticate(ctx, "john@example.com", "plaintext-password")

	Expect(ok).To(BeTrue())
	Expect(user.Username).To(Equal("johndoe"))
}

// Unknown account and wrong password must be indistinguishable to the caller.
func (s *AuthServiceSuite) TestAuthenticateFailuresAreUniform() {
	s.Auth.Register(ctx, registerRequest())

	wrongPassword, okWrong := s.Auth.Authenticate(ctx, "johndoe", "not-the-password")
	unknownUser, okUnknown := s.Auth.Authenticate(ctx, "nobody", "plaintext-password")

	Expect(okWrong).To(BeFalse())
	Expect(okUnknown).To(BeFalse())
	Expect(wrongPassword).To(Equal(unknownUser))
}

func (s *AuthServiceSuite) TestLogin() {
	registered, _ := s.Auth.Register(ctx, registerRequest())

	token, err := s.Auth.Login(ctx, &request.LoginRequest{
		Username: "johndoe",
		Password: "plaintext-password",
	})

	Expect(err).To(BeNil())
	Expect(token.TokenType).To(Equal("bearer"))

	identity, err := s.Codec.Decode(token.AccessToken)

	Expect(err).To(BeNil())
	Expect(identity.ID).To(Equal(registered.UUID))
	Expect(identity.Email).To(Equal("john@example.com"))
}

func (s *AuthServiceSuite) TestLoginBadCredentials() {
	s.Auth.Register(ctx, registerRequest())

	_, err := s.Auth.Login(ctx, &request.LoginRequest{
		Username: "johndoe",
		Password: "wrong",
	})

	Expect(err).To(Equal(domain.ErrAuthentication))
}

func (s *AuthServiceSuite) TestResolveIdentity() {
	registered, _ := s.Auth.Register(ctx, registerRequest())

	token, _ := s.Auth.Login(ctx, &request.LoginRequest{
		Username: "johndoe",
		Password: "plaintext-password",
	})

	identity, err := s.Auth.ResolveIdentity(token.AccessToken)

	Expect(err).To(BeNil())
	Expect(identity.ID).To(Equal(registered.UUID))

	_, err = s.Auth.ResolveIdentity("garbage-token")
	Expect(err).To(Not(BeNil()))
}

// Legacy bcrypt hashes keep working without rehash.
func (s *AuthServiceSuite) TestAuthenticateLegacyBcryptHash() {
	legacyBytes, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	legacy := string(legacyBytes)

	_, err := s.UserRepo.Create(ctx, domain.User{
		UUID:         uuid.New(),
		FirstName:    "Old",
		LastName:     "Timer",
		Username:     "oldtimer",
		Email:        "old@example.com",
		PasswordHash: legacy,
	})
	Expect(err).To(BeNil())

	_, ok := s.Auth.Authenticate(ctx, "oldtimer", "password")
	Expect(ok).To(BeTrue())

	_, ok = s.Auth.Authenticate(ctx, "oldtimer", "not-password")
	Expect(ok).To(BeFalse())
}

// A corrupt stored hash is a failed login, never a panic or an error surfaced
// to the client.
func (s *AuthServiceSuite) TestAuthenticateCorruptStoredHash() {
	_, err := s.UserRepo.Create(ctx, domain.User{
		UUID:         uuid.New(),
		FirstName:    "Broken",
		LastName:     "Hash",
		Username:     "brokenhash",
		Email:        "broken@example.com",
		PasswordHash: "not-a-real-hash",
	})
	Expect(err).To(BeNil())

	_, ok := s.Auth.Authenticate(ctx, "brokenhash", "anything")
	Expect(ok).To(BeFalse())
}
