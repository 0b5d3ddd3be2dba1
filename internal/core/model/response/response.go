package response

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// UserResponse never carries the password hash; there is deliberately no
// field for it.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type TodoResponse struct {
	UUID        uuid.UUID  `json:"id"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Priority    string     `json:"priority"`
	Completed   bool       `json:"is_completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type CursorData struct {
	Datetime string `json:"datetime"`
	ID       int    `json:"id,omitempty"`
}

type CursorResponse struct {
	Size       int             `json:"size"`
	Data       json.RawMessage `json:"data"`
	Pagination struct {
		HasNext    bool   `json:"has_next"`
		NextCursor string `json:"next_cursor"`
	} `json:"pagination"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ResponseError struct {
	Code    string            `json:"code"`
	Errors  []ValidationError `json:"errors"`
	Details any               `json:"details,omitempty"`
}

type SuccessResponse struct {
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

type ErrorResponse struct {
	Error ResponseError `json:"error"`
}
