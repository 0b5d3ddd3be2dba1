package helper

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"todoapi/internal/adapter/http/validation"
	"todoapi/internal/core/domain"
	"todoapi/internal/core/model/response"
)

// kindStatus is the single mapping from domain error kinds to HTTP statuses.
// Handlers never pick status codes for domain failures themselves.
var kindStatus = map[domain.ErrorKind]int{
	domain.KindAuthentication: http.StatusUnauthorized,
	domain.KindValidation:     http.StatusBadRequest,
	domain.KindNotFound:       http.StatusNotFound,
	domain.KindCreation:       http.StatusConflict,
	domain.KindInternal:       http.StatusInternalServerError,
}

var kindCode = map[domain.ErrorKind]string{
	domain.KindAuthentication: "UNAUTHORIZED",
	domain.KindValidation:     "VALIDATION_ERROR",
	domain.KindNotFound:       "NOT_FOUND",
	domain.KindCreation:       "CREATION_FAILED",
	domain.KindInternal:       "INTERNAL_ERROR",
}

var kindMessage = map[domain.ErrorKind]string{
	domain.KindAuthentication: "Authentication failed",
	domain.KindValidation:     "Invalid request",
	domain.KindNotFound:       "Resource not found",
	domain.KindCreation:       "Resource could not be created",
	domain.KindInternal:       "Internal server error",
}

func SendSuccess(c *gin.Context, statusCode int, data any, message ...string) {
	resp := response.SuccessResponse{
		Data: data,
	}

	if len(message) > 0 && message[0] != "" {
		resp.Message = message[0]
	}

	c.JSON(statusCode, resp)
}

func SendError(c *gin.Context, statusCode int, code string, errors []response.ValidationError, details ...any) {
	errorResponse := response.ErrorResponse{
		Error: response.ResponseError{
			Code:   code,
			Errors: errors,
		},
	}

	if len(details) > 0 {
		errorResponse.Error.Details = details[0]
	}

	c.JSON(statusCode, errorResponse)
}

// SendDomainError maps a tagged service error onto the wire. Internal causes
// stay in the server logs; only the kind's generic message and, for
// user-recoverable kinds, the domain message go out.
func SendDomainError(c *gin.Context, err error) {
	kind := domain.KindOf(err)

	message := kindMessage[kind]

	var domainErr *domain.Error

	if kind != domain.KindInternal && kind != domain.KindCreation {
		if errors.As(err, &domainErr) && domainErr.Message != "" {
			message = domainErr.Message
		}
	}

	fieldErrors := []response.ValidationError{
		{
			Field:   "request",
			Message: message,
		},
	}

	SendError(c, kindStatus[kind], kindCode[kind], fieldErrors)
}

func SendValidationError(c *gin.Context, err error) {
	validationErrors := validation.FormatValidationErrors(err)
	SendError(c, http.StatusBadRequest, "VALIDATION_ERROR", validationErrors)
}

func SendUnauthorizedError(c *gin.Context, message string) {
	errors := []response.ValidationError{
		{
			Field:   "auth",
			Message: message,
		},
	}

	SendError(c, http.StatusUnauthorized, "UNAUTHORIZED", errors)
}

func SendBadRequestError(c *gin.Context, field string, message string) {
	errors := []response.ValidationError{
		{
			Field:   field,
			Message: message,
		},
	}

	SendError(c, http.StatusBadRequest, "BAD_REQUEST", errors)
}

func SendNotFoundError(c *gin.Context, message string) {
	errors := []response.ValidationError{
		{
			Field:   "resource",
			Message: message,
		},
	}

	SendError(c, http.StatusNotFound, "NOT_FOUND", errors)
}
