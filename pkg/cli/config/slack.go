package config

import "github.com/urfave/cli/v3"

// Slack holds Slack notification configuration
type Slack struct {
	WebhookURL    string
	ReactionsPath string
}

// Flags returns CLI flags for Slack configuration
func (c *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-webhook-url",
			Usage:       "Slack incoming webhook URL (notifications are log-only when unset)",
			Destination: &c.WebhookURL,
			Sources:     cli.EnvVars("FAILWHALE_SLACK_WEBHOOK_URL"),
		},
		&cli.StringFlag{
			Name:        "reactions",
			Usage:       "Path to a TOML reaction table overriding the built-in rendering",
			Destination: &c.ReactionsPath,
			Sources:     cli.EnvVars("FAILWHALE_REACTIONS"),
		},
	}
}
