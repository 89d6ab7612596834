package notify

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"

	"github.com/tnylea/failwhale/pkg/domain/model"
)

// SlackNotifier posts workflow transitions to a Slack incoming webhook
type SlackNotifier struct {
	webhookURL string
	reactions  map[model.NotificationKind]Reaction
}

// SlackOption is a functional option for SlackNotifier configuration
type SlackOption func(*SlackNotifier)

// WithReactions overrides the rendering table
func WithReactions(reactions map[model.NotificationKind]Reaction) SlackOption {
	return func(n *SlackNotifier) {
		if reactions != nil {
			n.reactions = reactions
		}
	}
}

// NewSlack creates a Slack webhook notifier
func NewSlack(webhookURL string, opts ...SlackOption) *SlackNotifier {
	n := &SlackNotifier{
		webhookURL: webhookURL,
		reactions:  DefaultReactions(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Notify posts the notification to the configured webhook
func (n *SlackNotifier) Notify(ctx context.Context, notif *model.Notification) error {
	reaction := n.reactions[notif.Kind]

	msg := &slack.WebhookMessage{
		Text: fmt.Sprintf("%s %s: %s", reaction.Emoji, notif.RepoKey, headline(notif)),
		Attachments: []slack.Attachment{
			{
				Color:     reaction.Color,
				Title:     notif.RunName,
				TitleLink: notif.RunURL,
				ImageURL:  reaction.ImageURL,
				Footer:    notif.RepoKey,
			},
		},
	}

	if err := slack.PostWebhookContext(ctx, n.webhookURL, msg); err != nil {
		return goerr.Wrap(err, "failed to post slack webhook",
			goerr.V("notification_id", notif.ID), goerr.V("kind", notif.Kind))
	}

	return nil
}

func headline(notif *model.Notification) string {
	switch notif.Kind {
	case model.NotificationStarted:
		return "workflow run started"
	case model.NotificationSuccess:
		return "workflow run succeeded"
	case model.NotificationFailure:
		return fmt.Sprintf("workflow run failed (%s)", notif.Conclusion)
	default:
		return string(notif.Kind)
	}
}
