package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"

	. "todoapi/internal/adapter/http/helper"
	"todoapi/internal/adapter/http/middleware"
	. "todoapi/internal/adapter/http/validation"
	"todoapi/internal/core/model/request"
	"todoapi/internal/core/port"
	"todoapi/internal/core/service"
	"todoapi/internal/core/util"
	. "todoapi/pkg/tracing"
)

const defaultPageSize = 10

type TodoHandler struct {
	svc port.TodoService
}

func NewTodoHandler(svc port.TodoService) *TodoHandler {
	return &TodoHandler{
		svc: svc,
	}
}

func (t *TodoHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	identity, ok := middleware.CurrentIdentity(c)

	if !ok {
		SendUnauthorizedError(c, "Authentication failed")
		return
	}

	params, err := util.ParamsToMap[request.TodoRequest](c)

	if err != nil {
		SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	if err := Validator.Struct(params); err != nil {
		SendValidationError(c, err)
		return
	}

	todo, err := t.svc.Create(ctx, identity, &params)

	if err != nil {
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusCreated, service.TodoToResponse(todo))
}

func (t *TodoHandler) List(c *gin.Context) {
	ctx, span := CreateChildSpan(c.Request.Context(), "handler.todo.List", []attribute.KeyValue{
		attribute.String("handler.method", c.Request.Method),
		attribute.String("handler.path", c.FullPath()),
	})

	defer span.End()

	identity, ok := middleware.CurrentIdentity(c)

	if !ok {
		SendUnauthorizedError(c, "Authentication failed")
		return
	}

	cursor := c.Query("cursor")
	limit, _ := strconv.Atoi(c.Query("limit"))

	if limit <= 0 || limit > 100 {
		limit = defaultPageSize
	}

	span.SetAttributes(
		attribute.String("todo.owner", identity.ID.String()),
		attribute.Int("todo.limit", limit),
	)

	data, err := t.svc.List(ctx, identity, limit, cursor)

	if err != nil {
		AddSpanError(span, err)
		SendDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, data)
}

func (t *TodoHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	identity, ok := middleware.CurrentIdentity(c)

	if !ok {
		SendUnauthorizedError(c, "Authentication failed")
		return
	}

	todo, err := t.svc.GetByUUID(ctx, identity, c.Param("uuid"))

	if err != nil {
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusOK, service.TodoToResponse(todo))
}

func (t *TodoHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	identity, ok := middleware.CurrentIdentity(c)

	if !ok {
		SendUnauthorizedError(c, "Authentication failed")
		return
	}

	params, err := util.ParamsToMap[request.TodoRequest](c)

	if err != nil {
		SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	if err := Validator.Struct(params); err != nil {
		SendValidationError(c, err)
		return
	}

	todo, err := t.svc.Update(ctx, identity, c.Param("uuid"), &params)

	if err != nil {
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusOK, service.TodoToResponse(todo))
}

// Complete marks the todo done. Repeating the call returns the same
// representation with the original completion time.
func (t *TodoHandler) Complete(c *gin.Context) {
	ctx := c.Request.Context()

	identity, ok := middleware.CurrentIdentity(c)

	if !ok {
		SendUnauthorizedError(c, "Authentication failed")
		return
	}

	todo, err := t.svc.Complete(ctx, identity, c.Param("uuid"))

	if err != nil {
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusOK, service.TodoToResponse(todo))
}

func (t *TodoHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	identity, ok := middleware.CurrentIdentity(c)

	if !ok {
		SendUnauthorizedError(c, "Authentication failed")
		return
	}

	if err := t.svc.Delete(ctx, identity, c.Param("uuid")); err != nil {
		SendDomainError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
