package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/suite"

	"todoapi/internal/adapter/database/sqlite/repository"
	"todoapi/internal/core/domain"
	"todoapi/internal/core/port"
	. "todoapi/pkg/test"
	factory "todoapi/pkg/test/factory"
)

var ctx = context.Background()

type UserRepositorySuite struct {
	suite.Suite
	UserRepo port.UserRepository
}

func (s *UserRepositorySuite) SetupTest() {
	db := InitTestDB()

	s.UserRepo = repository.NewUserRepository(db)
}

func TestUserRepositorySuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(UserRepositorySuite))
}

func (s *UserRepositorySuite) createUser(username, email string) domain.User {
	user, err := s.UserRepo.Create(ctx, factory.NewUser[domain.User](map[string]any{
		"UUID":      uuid.New(),
		"Username":  username,
		"Email":     email,
		"CreatedAt": time.Now().UTC(),
	}))

	Expect(err).To(BeNil())

	return user
}

func (s *UserRepositorySuite) TestCreateAndGetByUUID() {
	created := s.createUser("johndoe", "john@example.com")

	found, err := s.UserRepo.GetByUUID(ctx, created.UUID.String())

	Expect(err).To(BeNil())
	Expect(found.ID).To(Equal(created.ID))
	Expect(found.Username).To(Equal("johndoe"))
	Expect(found.Email).To(Equal("john@example.com"))
}

func (s *UserRepositorySuite) TestCreateDuplicateUsername() {
	s.createUser("johndoe", "john@example.com")

	_, err := s.UserRepo.Create(ctx, factory.NewUser[domain.User](map[string]any{
		"UUID":     uuid.New(),
		"Username": "johndoe",
		"Email":    "other@example.com",
	}))

	Expect(err).To(Not(BeNil()))
}

func (s *UserRepositorySuite) TestCreateDuplicateEmail() {
	s.createUser("johndoe", "john@example.com")

	_, err := s.UserRepo.Create(ctx, factory.NewUser[domain.User](map[string]any{
		"UUID":     uuid.New(),
		"Username": "janedoe",
		"Email":    "john@example.com",
	}))

	Expect(err).To(Not(BeNil()))
}

// A failed insert leaves nothing behind.
func (s *UserRepositorySuite) TestCreateDuplicateLeavesSingleRow() {
	s.createUser("johndoe", "john@example.com")

	s.UserRepo.Create(ctx, factory.NewUser[domain.User](map[string]any{
		"UUID":     uuid.New(),
		"Username": "johndoe",
		"Email":    "john@example.com",
	}))

	found, err := s.UserRepo.GetByIdentifier(ctx, "johndoe")

	Expect(err).To(BeNil())
	Expect(found.Email).To(Equal("john@example.com"))
}

func (s *UserRepositorySuite) TestGetByIdentifierMatchesUsernameOrEmail() {
	created := s.createUser("johndoe", "john@example.com")

	byUsername, err := s.UserRepo.GetByIdentifier(ctx, "johndoe")
	Expect(err).To(BeNil())
	Expect(byUsername.ID).To(Equal(created.ID))

	byEmail, err := s.UserRepo.GetByIdentifier(ctx, "john@example.com")
	Expect(err).To(BeNil())
	Expect(byEmail.ID).To(Equal(created.ID))
}

func (s *UserRepositorySuite) TestGetByIdentifierUnknown() {
	_, err := s.UserRepo.GetByIdentifier(ctx, "nobody")

	Expect(err).To(Not(BeNil()))
}

func (s *UserRepositorySuite) TestUpdatePassword() {
	created := s.createUser("johndoe", "john@example.com")

	err := s.UserRepo.UpdatePassword(ctx, created.UUID.String(), "$argon2id$new-hash")

	Expect(err).To(BeNil())

	found, _ := s.UserRepo.GetByUUID(ctx, created.UUID.String())
	Expect(found.PasswordHash).To(Equal("$argon2id$new-hash"))
}

func (s *UserRepositorySuite) TestUpdatePasswordUnknownUser() {
	err := s.UserRepo.UpdatePassword(ctx, uuid.NewString(), "$argon2id$new-hash")

	Expect(err).To(Not(BeNil()))
}
