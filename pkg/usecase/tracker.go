package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/ctxlog"

	"github.com/tnylea/failwhale/pkg/domain/model"
)

// Tracker holds the last-observed workflow state per repository and turns
// fresh observations into at most one notification each.
//
// The state map is volatile: after a restart the first poll re-seeds every
// repository without emitting notifications for pre-existing runs.
type Tracker struct {
	mu     sync.Mutex
	states map[string]*model.WorkflowState
}

// NewTracker creates an empty tracker
func NewTracker() *Tracker {
	return &Tracker{
		states: make(map[string]*model.WorkflowState),
	}
}

// Observe records the latest run for a repository and returns the
// notification the transition warrants, or nil.
//
// Rules, in order:
//   - first sight of a repository seeds its state silently
//   - a new run id that is not yet completed emits "started"
//   - a new run id that is already completed is recorded silently: the run
//     started and finished between polls, and notifying here would duplicate
//     on fast poll cycles
//   - the tracked run moving to completed emits "success" or "failure"
func (t *Tracker) Observe(ctx context.Context, repoKey string, run model.WorkflowRun) *model.Notification {
	t.mu.Lock()
	defer t.mu.Unlock()

	logger := ctxlog.From(ctx)
	prev, tracked := t.states[repoKey]

	switch {
	case !tracked:
		t.states[repoKey] = newState(run, false)
		logger.Debug("seeded workflow state",
			"repo", repoKey, "run_id", run.ID, "status", run.Status)
		return nil

	case run.ID != prev.LatestRunID:
		if run.Completed() {
			t.states[repoKey] = newState(run, false)
			logger.Debug("workflow run completed between polls",
				"repo", repoKey, "run_id", run.ID, "conclusion", run.Conclusion)
			return nil
		}
		t.states[repoKey] = newState(run, true)
		return model.NewNotification(model.NotificationStarted, repoKey, run)

	case prev.Status != model.WorkflowStatusCompleted && run.Completed():
		t.states[repoKey] = newState(run, prev.StartNotified)
		kind := model.NotificationFailure
		if run.Conclusion == model.WorkflowConclusionSuccess {
			kind = model.NotificationSuccess
		}
		return model.NewNotification(kind, repoKey, run)

	default:
		return nil
	}
}

// Prune drops the tracked state of repositories no longer monitored
func (t *Tracker) Prune(active map[string]struct{}) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for key := range t.states {
		if _, ok := active[key]; !ok {
			delete(t.states, key)
		}
	}
}

func newState(run model.WorkflowRun, startNotified bool) *model.WorkflowState {
	return &model.WorkflowState{
		LatestRunID:   run.ID,
		Status:        run.Status,
		Conclusion:    run.Conclusion,
		StartNotified: startNotified,
		ObservedAt:    time.Now(),
	}
}
