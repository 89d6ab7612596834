package usecase_test

import (
	"context"
	"testing"

	"github.com/tnylea/failwhale/pkg/domain/model"
	"github.com/tnylea/failwhale/pkg/usecase"
)

func inProgress(id int64) model.WorkflowRun {
	return model.WorkflowRun{ID: id, Name: "CI", Status: model.WorkflowStatusInProgress}
}

func completed(id int64, conclusion model.WorkflowConclusion) model.WorkflowRun {
	return model.WorkflowRun{ID: id, Name: "CI", Status: model.WorkflowStatusCompleted, Conclusion: conclusion}
}

func TestTracker_FirstSightIsSilent(t *testing.T) {
	tests := []struct {
		name string
		run  model.WorkflowRun
	}{
		{name: "In-progress run", run: inProgress(1)},
		{name: "Completed failure", run: completed(1, model.WorkflowConclusionFailure)},
		{name: "Completed success", run: completed(1, model.WorkflowConclusionSuccess)},
		{name: "Queued run", run: model.WorkflowRun{ID: 1, Status: model.WorkflowStatusQueued}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracker := usecase.NewTracker()
			if n := tracker.Observe(context.Background(), "a/b", tt.run); n != nil {
				t.Errorf("first observation emitted %q, want none", n.Kind)
			}
		})
	}
}

func TestTracker_CompletionEmitsResult(t *testing.T) {
	tests := []struct {
		name       string
		conclusion model.WorkflowConclusion
		wantKind   model.NotificationKind
	}{
		{name: "Success", conclusion: model.WorkflowConclusionSuccess, wantKind: model.NotificationSuccess},
		{name: "Failure", conclusion: model.WorkflowConclusionFailure, wantKind: model.NotificationFailure},
		{name: "Cancelled maps to failure", conclusion: model.WorkflowConclusionCancelled, wantKind: model.NotificationFailure},
		{name: "Timed out maps to failure", conclusion: model.WorkflowConclusionTimedOut, wantKind: model.NotificationFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			tracker := usecase.NewTracker()

			if n := tracker.Observe(ctx, "a/b", inProgress(1)); n != nil {
				t.Fatalf("seeding emitted %q", n.Kind)
			}

			n := tracker.Observe(ctx, "a/b", completed(1, tt.conclusion))
			if n == nil {
				t.Fatal("completion emitted nothing")
			}
			if n.Kind != tt.wantKind {
				t.Errorf("Kind = %q, want %q", n.Kind, tt.wantKind)
			}
			if n.RepoKey != "a/b" || n.RunID != 1 {
				t.Errorf("unexpected notification: %+v", n)
			}
		})
	}
}

func TestTracker_NewRunEmitsStarted(t *testing.T) {
	ctx := context.Background()
	tracker := usecase.NewTracker()

	tracker.Observe(ctx, "a/b", inProgress(5))

	n := tracker.Observe(ctx, "a/b", inProgress(6))
	if n == nil || n.Kind != model.NotificationStarted {
		t.Fatalf("new run observation = %+v, want started", n)
	}
	if n.RunID != 6 {
		t.Errorf("RunID = %d, want 6", n.RunID)
	}

	// State moved to run 6: its completion is now the tracked transition
	done := tracker.Observe(ctx, "a/b", completed(6, model.WorkflowConclusionSuccess))
	if done == nil || done.Kind != model.NotificationSuccess {
		t.Fatalf("completion after supersede = %+v, want success", done)
	}
}

func TestTracker_FastCompletionIsSilent(t *testing.T) {
	ctx := context.Background()
	tracker := usecase.NewTracker()

	tracker.Observe(ctx, "a/b", completed(1, model.WorkflowConclusionSuccess))

	// Run 2 started and finished between two polls
	if n := tracker.Observe(ctx, "a/b", completed(2, model.WorkflowConclusionFailure)); n != nil {
		t.Errorf("fast-completed run emitted %q, want none", n.Kind)
	}

	// The record still advanced to run 2
	if n := tracker.Observe(ctx, "a/b", completed(2, model.WorkflowConclusionFailure)); n != nil {
		t.Errorf("repeat observation emitted %q, want none", n.Kind)
	}
}

func TestTracker_StableObservationIsSilent(t *testing.T) {
	ctx := context.Background()
	tracker := usecase.NewTracker()

	tracker.Observe(ctx, "a/b", inProgress(1))
	if n := tracker.Observe(ctx, "a/b", inProgress(1)); n != nil {
		t.Errorf("unchanged run emitted %q, want none", n.Kind)
	}

	tracker.Observe(ctx, "a/b", completed(1, model.WorkflowConclusionSuccess))
	if n := tracker.Observe(ctx, "a/b", completed(1, model.WorkflowConclusionSuccess)); n != nil {
		t.Errorf("already-completed run emitted %q, want none", n.Kind)
	}
}

func TestTracker_CompleteLifecycleEmitsOnce(t *testing.T) {
	ctx := context.Background()
	tracker := usecase.NewTracker()

	var emitted []model.NotificationKind
	for _, run := range []model.WorkflowRun{
		inProgress(1),
		completed(1, model.WorkflowConclusionSuccess),
	} {
		if n := tracker.Observe(ctx, "a/b", run); n != nil {
			emitted = append(emitted, n.Kind)
		}
	}

	if len(emitted) != 1 || emitted[0] != model.NotificationSuccess {
		t.Errorf("emitted %v, want exactly one success", emitted)
	}
}

func TestTracker_RepositoriesAreIndependent(t *testing.T) {
	ctx := context.Background()
	tracker := usecase.NewTracker()

	tracker.Observe(ctx, "a/b", inProgress(1))
	if n := tracker.Observe(ctx, "c/d", inProgress(1)); n != nil {
		t.Errorf("first sight of second repo emitted %q", n.Kind)
	}

	n := tracker.Observe(ctx, "a/b", completed(1, model.WorkflowConclusionFailure))
	if n == nil || n.Kind != model.NotificationFailure {
		t.Fatalf("completion of first repo = %+v, want failure", n)
	}
}

func TestTracker_PruneForgetsRemovedSources(t *testing.T) {
	ctx := context.Background()
	tracker := usecase.NewTracker()

	tracker.Observe(ctx, "a/b", inProgress(1))
	tracker.Prune(map[string]struct{}{})

	// Re-observing after prune is a first sight again: silent
	if n := tracker.Observe(ctx, "a/b", completed(1, model.WorkflowConclusionSuccess)); n != nil {
		t.Errorf("observation after prune emitted %q, want none", n.Kind)
	}
}
