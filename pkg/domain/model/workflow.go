package model

import "time"

// WorkflowStatus is the lifecycle status of a workflow run as reported by the
// GitHub Actions API.
type WorkflowStatus string

const (
	WorkflowStatusQueued     WorkflowStatus = "queued"
	WorkflowStatusInProgress WorkflowStatus = "in_progress"
	WorkflowStatusCompleted  WorkflowStatus = "completed"
)

// WorkflowConclusion is the terminal result of a completed workflow run.
// Empty until the run completes.
type WorkflowConclusion string

const (
	WorkflowConclusionSuccess   WorkflowConclusion = "success"
	WorkflowConclusionFailure   WorkflowConclusion = "failure"
	WorkflowConclusionCancelled WorkflowConclusion = "cancelled"
	WorkflowConclusionSkipped   WorkflowConclusion = "skipped"
	WorkflowConclusionTimedOut  WorkflowConclusion = "timed_out"
)

// WorkflowRun represents one execution of a CI pipeline for a repository
type WorkflowRun struct {
	ID         int64
	Name       string
	Status     WorkflowStatus
	Conclusion WorkflowConclusion
	URL        string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Completed reports whether the run has reached a terminal status
func (r WorkflowRun) Completed() bool {
	return r.Status == WorkflowStatusCompleted
}

// WorkflowState is the last observation recorded for a monitored repository.
// Held only in process memory; re-seeded on the first poll after a restart.
type WorkflowState struct {
	LatestRunID   int64
	Status        WorkflowStatus
	Conclusion    WorkflowConclusion
	StartNotified bool
	ObservedAt    time.Time
}
