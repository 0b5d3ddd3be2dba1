package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Priority int

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityNormal
	PriorityHigh
	PriorityTop
)

func (p Priority) String() string {
	names := []string{"low", "medium", "normal", "high", "top"}

	if p < PriorityLow || p > PriorityTop {
		return "unknown"
	}

	return names[p]
}

func ParsePriority(s string) (Priority, error) {
	switch s {
	case "low":
		return PriorityLow, nil
	case "medium":
		return PriorityMedium, nil
	case "normal", "":
		return PriorityNormal, nil
	case "high":
		return PriorityHigh, nil
	case "top":
		return PriorityTop, nil
	default:
		return PriorityNormal, fmt.Errorf("invalid priority: %s", s)
	}
}

type Todo struct {
	ID          int
	UUID        uuid.UUID
	UserUUID    uuid.UUID
	Description string `validate:"required,max=1000"`
	DueDate     *time.Time
	Priority    Priority
	Completed   bool
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (t *Todo) BelongsTo(identity ResolvedIdentity) bool {
	return t.UserUUID == identity.ID
}
