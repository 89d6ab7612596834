package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/tnylea/failwhale/pkg/domain/interfaces"
	"github.com/tnylea/failwhale/pkg/domain/model"
	"github.com/tnylea/failwhale/pkg/domain/types"
)

type sourceUseCase struct {
	store interfaces.SourceStore
}

// NewSource creates a new instance of SourceUseCase
func NewSource(store interfaces.SourceStore) interfaces.SourceUseCase {
	return &sourceUseCase{store: store}
}

// List returns the monitored sources in insertion order
func (uc *sourceUseCase) List(ctx context.Context) ([]model.Source, error) {
	sources, err := uc.store.List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list sources")
	}
	return sources, nil
}

// Add validates and persists a new source URL
func (uc *sourceUseCase) Add(ctx context.Context, rawURL string) (*model.Source, error) {
	ref, ok := model.ParseRepoURL(rawURL)
	if !ok {
		return nil, goerr.Wrap(types.ErrInvalidRepoURL, "cannot resolve a repository from URL",
			goerr.V("url", rawURL))
	}

	src := model.Source{URL: rawURL, AddedAt: time.Now()}
	if err := uc.store.Add(ctx, src); err != nil {
		return nil, err
	}

	ctxlog.From(ctx).Info("source added", "url", rawURL, "repo", ref.Key())
	return &src, nil
}

// Remove stops monitoring the source with the given URL
func (uc *sourceUseCase) Remove(ctx context.Context, rawURL string) error {
	if err := uc.store.Remove(ctx, rawURL); err != nil {
		return err
	}

	ctxlog.From(ctx).Info("source removed", "url", rawURL)
	return nil
}
