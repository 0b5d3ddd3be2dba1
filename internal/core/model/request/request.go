package request

import "time"

type RegisterRequest struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Username  string `json:"username" validate:"required,min=3,max=50"`
	Email     string `json:"email" validate:"required,email,max=255"`
	Password  string `json:"password" validate:"required,min=8,max=100"`
}

// LoginRequest binds the OAuth2 password-grant form. Username accepts either
// the username or the email address.
type LoginRequest struct {
	Username  string `form:"username" json:"username" validate:"required,max=255"`
	Password  string `form:"password" json:"password" validate:"required,max=100"`
	GrantType string `form:"grant_type" json:"grant_type" validate:"omitempty,eq=password"`
}

type PasswordChangeRequest struct {
	CurrentPassword    string `json:"current_password" validate:"required,max=100"`
	NewPassword        string `json:"new_password" validate:"required,min=8,max=100"`
	ConfirmNewPassword string `json:"confirm_new_password" validate:"required,max=100"`
}

type TodoRequest struct {
	Description string     `json:"description" validate:"required,max=1000"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Priority    string     `json:"priority,omitempty" validate:"omitempty,oneof=low medium normal high top"`
}
