package domain

import "time"

// Filter returns the task filter that selects candidates of this kind at now.
func (k SweepKind) Filter(now time.Time) TaskFilter {
	switch k {
	case SweepCompleted:
		completed := true
		return TaskFilter{Completed: &completed}
	default:
		completed := false
		return TaskFilter{Completed: &completed, DueBefore: &now}
	}
}

// SweepReport summarises one sweep invocation.
type SweepReport struct {
	Kind            SweepKind
	StartedAt       time.Time
	FinishedAt      time.Time
	Candidates      int
	DeletedTasks    int
	DeletedComments int
	FailedTaskIDs   []string
}

// Failed reports whether any candidate could not be processed.
func (r SweepReport) Failed() bool {
	return len(r.FailedTaskIDs) > 0
}
