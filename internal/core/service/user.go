package service

import (
	"context"
	"log/slog"

	"todoapi/internal/core/domain"
	"todoapi/internal/core/model/request"
	"todoapi/internal/core/port"
	"todoapi/internal/core/util"
)

type UserService struct {
	repo port.UserRepository
}

func NewUserService(repo port.UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (us *UserService) GetByUUID(ctx context.Context, uuid string) (domain.User, error) {
	user, err := us.repo.GetByUUID(ctx, uuid)

	if err != nil {
		slog.Warn("User#GetByUUID not found", "uuid", uuid)
		return domain.User{}, domain.Wrap(domain.KindNotFound, "user not found", err)
	}

	return user, nil
}

// ChangePassword checks the current password first, then the confirmation,
// in that order; the first failing check short-circuits and the stored hash
// stays untouched.
func (us *UserService) ChangePassword(ctx context.Context, identity domain.ResolvedIdentity, req *request.PasswordChangeRequest) error {
	user, err := us.GetByUUID(ctx, identity.ID.String())

	if err != nil {
		return err
	}

	if !util.VerifyPassword(req.CurrentPassword, user.PasswordHash) {
		slog.Warn("User#ChangePassword invalid current password", "uuid", identity.ID)
		return domain.E(domain.KindAuthentication, "invalid password")
	}

	if req.NewPassword != req.ConfirmNewPassword {
		return domain.E(domain.KindValidation, "passwords do not match")
	}

	hash, err := util.HashPassword(req.NewPassword)

	if err != nil {
		return domain.Wrap(domain.KindInternal, "error hashing password", err)
	}

	if err := us.repo.UpdatePassword(ctx, identity.ID.String(), hash); err != nil {
		slog.Error("User#ChangePassword", "update", err)
		return domain.Wrap(domain.KindInternal, "could not update password", err)
	}

	return nil
}
