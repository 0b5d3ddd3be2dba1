package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	. "todoapi/internal/adapter/http/helper"
	"todoapi/internal/adapter/http/middleware"
	. "todoapi/internal/adapter/http/validation"
	"todoapi/internal/core/model/request"
	"todoapi/internal/core/model/response"
	"todoapi/internal/core/port"
	"todoapi/internal/core/util"
)

type UserHandler struct {
	svc port.UserService
}

func NewUserHandler(svc port.UserService) *UserHandler {
	return &UserHandler{
		svc: svc,
	}
}

func (u *UserHandler) Me(c *gin.Context) {
	ctx := c.Request.Context()

	identity, ok := middleware.CurrentIdentity(c)

	if !ok {
		SendUnauthorizedError(c, "Authentication failed")
		return
	}

	user, err := u.svc.GetByUUID(ctx, identity.ID.String())

	if err != nil {
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusOK, response.UserResponse{
		ID:        user.UUID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	})
}

// ChangePassword answers 204 on success. A wrong current password is 401 and
// a failed confirmation is 400, matching the order the service checks them.
func (u *UserHandler) ChangePassword(c *gin.Context) {
	ctx := c.Request.Context()

	identity, ok := middleware.CurrentIdentity(c)

	if !ok {
		SendUnauthorizedError(c, "Authentication failed")
		return
	}

	params, err := util.ParamsToMap[request.PasswordChangeRequest](c)

	if err != nil {
		SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	if err := Validator.Struct(params); err != nil {
		SendValidationError(c, err)
		return
	}

	if err := u.svc.ChangePassword(ctx, identity, &params); err != nil {
		SendDomainError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
