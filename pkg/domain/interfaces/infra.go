package interfaces

import (
	"context"

	"github.com/tnylea/failwhale/pkg/domain/model"
)

// ActionsClient defines operations for fetching CI status from GitHub
type ActionsClient interface {
	// LatestRuns returns the most recent workflow runs for a repository,
	// ordered newest-first. An empty result means no runs exist; an error
	// means no information could be obtained this attempt.
	LatestRuns(ctx context.Context, owner, repo string) ([]model.WorkflowRun, error)
}

// ReachabilityProbe gates a polling cycle on network connectivity
type ReachabilityProbe interface {
	IsReachable(ctx context.Context) bool
}

// Notifier delivers a workflow transition event to a rendering collaborator
type Notifier interface {
	Notify(ctx context.Context, n *model.Notification) error
}

// SourceStore defines persistence for the monitored repository list
type SourceStore interface {
	// List returns all sources in insertion order
	List(ctx context.Context) ([]model.Source, error)

	// Add persists a new source. Returns types.ErrDuplicateSource when the
	// URL already exists verbatim.
	Add(ctx context.Context, src model.Source) error

	// Remove deletes a source by its URL. Returns types.ErrSourceNotFound
	// when no such source exists.
	Remove(ctx context.Context, url string) error

	// Close releases the underlying storage handle
	Close() error
}
