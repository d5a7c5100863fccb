package domain

import (
	"time"

	"github.com/google/uuid"
)

// Comment belongs to the comment store. TaskID references a task in the task
// store by value only.
type Comment struct {
	ID        int64
	Content   string
	TaskID    string
	UserID    uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Existence is the outcome of asking the task service whether a task exists.
// An indeterminate outcome is reported as an error, never as ExistenceNo.
type Existence int

const (
	ExistenceNo Existence = iota
	ExistenceYes
)

func (e Existence) String() string {
	if e == ExistenceYes {
		return "exists"
	}
	return "does_not_exist"
}
