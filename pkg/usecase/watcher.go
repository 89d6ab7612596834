package usecase

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/m-mizutani/ctxlog"

	"github.com/tnylea/failwhale/pkg/domain/interfaces"
	"github.com/tnylea/failwhale/pkg/domain/model"
	"github.com/tnylea/failwhale/pkg/utils/async"
)

const defaultPollInterval = 10 * time.Second

// Dispatcher runs a notification handler without blocking the caller
type Dispatcher func(ctx context.Context, handler func(ctx context.Context) error)

// Watcher drives the polling cycle: it gates on network reachability, walks
// the source list in stored order, feeds the latest run of each repository to
// the tracker and hands resulting notifications to the notifier off the
// polling path.
type Watcher struct {
	store    interfaces.SourceStore
	actions  interfaces.ActionsClient
	probe    interfaces.ReachabilityProbe
	notifier interfaces.Notifier
	tracker  *Tracker
	interval time.Duration
	dispatch Dispatcher

	// busy prevents overlapping cycles when one cycle outlasts the interval
	busy atomic.Bool
}

// WatcherOption is a functional option for Watcher configuration
type WatcherOption func(*Watcher)

// WithInterval sets the polling interval
func WithInterval(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.interval = d
		}
	}
}

// WithDispatcher replaces the asynchronous notification dispatcher. The
// one-shot poll command uses a synchronous dispatcher so notifications land
// before the process exits.
func WithDispatcher(d Dispatcher) WatcherOption {
	return func(w *Watcher) {
		if d != nil {
			w.dispatch = d
		}
	}
}

// NewWatcher creates a watcher over the given collaborators
func NewWatcher(
	store interfaces.SourceStore,
	actions interfaces.ActionsClient,
	probe interfaces.ReachabilityProbe,
	notifier interfaces.Notifier,
	opts ...WatcherOption,
) *Watcher {
	w := &Watcher{
		store:    store,
		actions:  actions,
		probe:    probe,
		notifier: notifier,
		tracker:  NewTracker(),
		interval: defaultPollInterval,
		dispatch: async.Dispatch,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run polls until the context is cancelled. The first cycle starts
// immediately rather than one interval in.
func (w *Watcher) Run(ctx context.Context) error {
	logger := ctxlog.From(ctx)
	logger.Info("watcher started", "interval", w.interval)

	w.PollOnce(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("watcher stopped")
			return nil
		case <-ticker.C:
			w.PollOnce(ctx)
		}
	}
}

// PollOnce executes a single polling cycle. A cycle is skipped when the
// previous one is still running or the network is unreachable. Failures of
// individual repositories never abort the rest of the cycle.
func (w *Watcher) PollOnce(ctx context.Context) {
	logger := ctxlog.From(ctx)

	if !w.busy.CompareAndSwap(false, true) {
		logger.Warn("previous polling cycle still running, skipping")
		return
	}
	defer w.busy.Store(false)

	if !w.probe.IsReachable(ctx) {
		logger.Debug("network unreachable, skipping cycle")
		return
	}

	sources, err := w.store.List(ctx)
	if err != nil {
		// Treated as "no sources this cycle"; tracked state is kept so the
		// next successful load resumes where it left off.
		logger.Warn("failed to load sources, skipping cycle", "error", err)
		return
	}

	active := make(map[string]struct{}, len(sources))
	for _, src := range sources {
		ref, ok := model.ParseRepoURL(src.URL)
		if !ok {
			logger.Warn("source URL no longer resolves, skipping", "url", src.URL)
			continue
		}
		active[ref.Key()] = struct{}{}

		runs, err := w.actions.LatestRuns(ctx, ref.Owner, ref.Repo)
		if err != nil {
			logger.Warn("workflow run fetch failed", "repo", ref.Key(), "error", err)
			continue
		}
		if len(runs) == 0 {
			continue
		}

		if n := w.tracker.Observe(ctx, ref.Key(), runs[0]); n != nil {
			logger.Info("workflow transition detected",
				"repo", n.RepoKey, "kind", n.Kind, "run_id", n.RunID)
			notif := n
			w.dispatch(ctx, func(ctx context.Context) error {
				return w.notifier.Notify(ctx, notif)
			})
		}
	}

	w.tracker.Prune(active)
}
