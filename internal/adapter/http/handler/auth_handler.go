package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	. "todoapi/internal/adapter/http/helper"
	. "todoapi/internal/adapter/http/validation"
	"todoapi/internal/core/model/request"
	"todoapi/internal/core/model/response"
	"todoapi/internal/core/port"
	"todoapi/internal/core/util"
)

type AuthHandler struct {
	svc port.AuthService
}

func NewAuthHandler(svc port.AuthService) *AuthHandler {
	return &AuthHandler{
		svc: svc,
	}
}

// Register creates an account from a JSON body and answers 201 with the
// public user representation. Uniqueness conflicts come back as 409.
func (a *AuthHandler) Register(c *gin.Context) {
	ctx := c.Request.Context()

	params, err := util.ParamsToMap[request.RegisterRequest](c)

	if err != nil {
		SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	if err := Validator.Struct(params); err != nil {
		SendValidationError(c, err)
		return
	}

	user, err := a.svc.Register(ctx, &params)

	if err != nil {
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusCreated, response.UserResponse{
		ID:        user.UUID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	})
}

// Token implements the password grant over a form-encoded body. The token
// payload goes out bare, without the success envelope, so standard OAuth2
// clients can consume it.
func (a *AuthHandler) Token(c *gin.Context) {
	ctx := c.Request.Context()

	params, err := util.FormToParams[request.LoginRequest](c)

	if err != nil {
		SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	if err := Validator.Struct(params); err != nil {
		SendValidationError(c, err)
		return
	}

	token, err := a.svc.Login(ctx, &params)

	if err != nil {
		SendDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, token)
}
