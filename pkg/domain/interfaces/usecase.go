package interfaces

import (
	"context"

	"github.com/tnylea/failwhale/pkg/domain/model"
)

// SourceUseCase defines source list management as exposed to the control API
// and the CLI
type SourceUseCase interface {
	// List returns the monitored sources in insertion order
	List(ctx context.Context) ([]model.Source, error)

	// Add validates and persists a new source URL. Returns
	// types.ErrInvalidRepoURL when the URL does not resolve to a repository
	// and types.ErrDuplicateSource when it is already monitored.
	Add(ctx context.Context, rawURL string) (*model.Source, error)

	// Remove stops monitoring the source with the given URL
	Remove(ctx context.Context, rawURL string) error
}
