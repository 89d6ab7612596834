package notify

import (
	"context"

	"github.com/m-mizutani/ctxlog"

	"github.com/tnylea/failwhale/pkg/domain/model"
)

// LogNotifier writes notifications to the structured log. Always active, so
// transitions are observable even without a Slack webhook.
type LogNotifier struct{}

// NewLog creates a log notifier
func NewLog() *LogNotifier {
	return &LogNotifier{}
}

// Notify logs the notification
func (n *LogNotifier) Notify(ctx context.Context, notif *model.Notification) error {
	ctxlog.From(ctx).Info("workflow notification",
		"id", notif.ID,
		"kind", notif.Kind,
		"repo", notif.RepoKey,
		"run_id", notif.RunID,
		"run_name", notif.RunName,
		"run_url", notif.RunURL,
		"conclusion", notif.Conclusion,
	)
	return nil
}
