package domain

// TaskStage is the lifecycle position of a task at a given instant.
type TaskStage string

const (
	TaskStageActive    TaskStage = "ACTIVE"
	TaskStageCompleted TaskStage = "COMPLETED"
	TaskStageOverdue   TaskStage = "OVERDUE"
)

func (s TaskStage) String() string { return string(s) }

func (s TaskStage) IsValid() bool {
	switch s {
	case TaskStageActive, TaskStageCompleted, TaskStageOverdue:
		return true
	}
	return false
}

// SweepKind selects the lifecycle predicate of a reconciliation sweep.
type SweepKind string

const (
	SweepCompleted SweepKind = "completed"
	SweepOverdue   SweepKind = "overdue"
)

func (k SweepKind) String() string { return string(k) }

func (k SweepKind) IsValid() bool {
	switch k {
	case SweepCompleted, SweepOverdue:
		return true
	}
	return false
}

// UserRole represents the authorization level carried in access tokens.
type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleStaff UserRole = "staff"
)

func (r UserRole) String() string { return string(r) }

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleUser, UserRoleStaff:
		return true
	}
	return false
}

func (r UserRole) IsStaff() bool {
	return r == UserRoleStaff
}
