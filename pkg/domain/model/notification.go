package model

import (
	"time"

	"github.com/google/uuid"
)

// NotificationKind classifies a workflow transition for the rendering
// collaborator
type NotificationKind string

const (
	NotificationStarted NotificationKind = "started"
	NotificationSuccess NotificationKind = "success"
	NotificationFailure NotificationKind = "failure"
)

// Notification is the event emitted when a tracked workflow run transitions
type Notification struct {
	ID         string
	Kind       NotificationKind
	RepoKey    string
	RunID      int64
	RunName    string
	RunURL     string
	Conclusion WorkflowConclusion
	OccurredAt time.Time
}

// NewNotification builds a notification for a transition of the given run
func NewNotification(kind NotificationKind, repoKey string, run WorkflowRun) *Notification {
	return &Notification{
		ID:         uuid.NewString(),
		Kind:       kind,
		RepoKey:    repoKey,
		RunID:      run.ID,
		RunName:    run.Name,
		RunURL:     run.URL,
		Conclusion: run.Conclusion,
		OccurredAt: time.Now(),
	}
}
