package domain

import (
	"time"

	"github.com/google/uuid"
)

// Task is a user's TODO item. ID is opaque and assigned once at creation.
type Task struct {
	ID          string
	UserID      uuid.UUID
	Title       string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DueDate     *time.Time
	Completed   bool
	Categories  []Category
}

// Stage classifies the task relative to now. Completion wins over due date.
func (t *Task) Stage(now time.Time) TaskStage {
	if t.Completed {
		return TaskStageCompleted
	}
	if t.DueDate != nil && t.DueDate.Before(now) {
		return TaskStageOverdue
	}
	return TaskStageActive
}

// TaskUpdateParams carries a partial update. Nil fields are left unchanged.
type TaskUpdateParams struct {
	Title        *string
	Description  *string
	DueDate      *time.Time
	ClearDueDate bool
	Completed    *bool
}

// IsEmpty reports whether no column would change.
func (p TaskUpdateParams) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.DueDate == nil && !p.ClearDueDate && p.Completed == nil
}

// MaxTaskTitleLength bounds Task.Title in runes.
const MaxTaskTitleLength = 200

// TaskFilter contains filtering/pagination parameters for task queries.
// A nil UserID means all users; only the lifecycle sweeps query that way.
// Category matches by category name.
type TaskFilter struct {
	UserID    *uuid.UUID
	Completed *bool
	DueBefore *time.Time
	Category  *string
	Search    *string
	Limit     int
	Offset    int
}
