package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           int
	UUID         uuid.UUID
	FirstName    string `validate:"required,max=100"`
	LastName     string `validate:"required,max=100"`
	Username     string `validate:"required,min=3,max=50"`
	Email        string `validate:"required,email,max=255"`
	PasswordHash string `validate:"required"`
	CreatedAt    time.Time
}

// ResolvedIdentity is what a verified bearer token proves: a valid, unexpired
// token for this user id existed. It is the only scoping key the resource
// services accept, and it carries no trust beyond that.
type ResolvedIdentity struct {
	ID       uuid.UUID
	Username string
	Email    string
}

func (u *User) Identity() ResolvedIdentity {
	return ResolvedIdentity{
		ID:       u.UUID,
		Username: u.Username,
		Email:    u.Email,
	}
}
