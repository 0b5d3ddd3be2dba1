package service_test

import (
	"testing"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/suite"

	"todoapi/internal/adapter/database/sqlite/repository"
	"todoapi/internal/core/domain"
	"todoapi/internal/core/model/request"
	"todoapi/internal/core/port"
	"todoapi/internal/core/service"
	"todoapi/internal/core/util"
	. "todoapi/pkg/test"
)

type UserServiceSuite struct {
	suite.Suite
	UserRepo port.UserRepository
	Auth     *service.AuthService
	Users    *service.UserService
}

func (s *UserServiceSuite) SetupTest() {
	db := InitTestDB()

	s.UserRepo = repository.NewUserRepository(db)
	s.Auth = service.NewAuthService(s.UserRepo, testCodec())
	s.Users = service.NewUserService(s.UserRepo)
}

func TestUserServiceSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(UserServiceSuite))
}

func (s *UserServiceSuite) register() domain.ResolvedIdentity {
	user, err := s.Auth.Register(ctx, registerRequest())

	Expect(err).To(BeNil())

	return user.Identity()
}

func (s *UserServiceSuite) TestGetByUUID() {
	identity := s.register()

	user, err := s.Users.GetByUUID(ctx, identity.ID.String())

	Expect(err).To(BeNil())
	Expect(user.Username).To(Equal("johndoe"))
}

func (s *UserServiceSuite) TestGetByUUIDUnknown() {
	_, err := s.Users.GetByUUID(ctx, "00000000-0000-0000-0000-000000000000")

	Expect(err).To(Not(BeNil()))
	Expect(domain.KindOf(err)).To(Equal(domain.KindNotFound))
}

func (s *UserServiceSuite) TestChangePassword() {
	identity := s.register()

	err := s.Users.ChangePassword(ctx, identity, &request.PasswordChangeRequest{
		CurrentPassword:    "plaintext-password",
		NewPassword:        "brand-new-password",
		ConfirmNewPassword: "brand-new-password",
	})

	Expect(err).To(BeNil())

	updated, _ := s.Users.GetByUUID(ctx, identity.ID.String())

	Expect(util.VerifyPassword("brand-new-password", updated.PasswordHash)).To(BeTrue())
	Expect(util.VerifyPassword("plaintext-password", updated.PasswordHash)).To(BeFalse())
}

func (s *UserServiceSuite) TestChangePasswordWrongCurrent() {
	identity := s.register()

	err := s.Users.ChangePassword(ctx, identity, &request.PasswordChangeRequest{
		CurrentPassword:    "not-the-password",
		NewPassword:        "brand-new-password",
		ConfirmNewPassword: "brand-new-password",
	})

	Expect(domain.KindOf(err)).To(Equal(domain.KindAuthentication))

	// The stored hash stays untouched.
	unchanged, _ := s.Users.GetByUUID(ctx, identity.ID.String())
	Expect(util.VerifyPassword("plaintext-password", unchanged.PasswordHash)).To(BeTrue())
}

func (s *UserServiceSuite) TestChangePasswordConfirmationMismatch() {
	identity := s.register()

	err := s.Users.ChangePassword(ctx, identity, &request.PasswordChangeRequest{
		CurrentPassword:    "plaintext-password",
		NewPassword:        "brand-new-password",
		ConfirmNewPassword: "different-password",
	})

	Expect(domain.KindOf(err)).To(Equal(domain.KindValidation))

	unchanged, _ := s.Users.GetByUUID(ctx, identity.ID.String())
	Expect(util.VerifyPassword("plaintext-password", unchanged.PasswordHash)).To(BeTrue())
}

// When both checks would fail, the current-password check wins.
func (s *UserServiceSuite) TestChangePasswordCurrentCheckedFirst() {
	identity := s.register()

	err := s.Users.ChangePassword(ctx, identity, &request.PasswordChangeRequest{
		CurrentPassword:    "not-the-password",
		NewPassword:        "brand-new-password",
		ConfirmNewPassword: "different-password",
	})

	Expect(domain.KindOf(err)).To(Equal(domain.KindAuthentication))
}
