package config

import (
	"time"

	"github.com/urfave/cli/v3"
)

// GitHub holds GitHub API configuration
type GitHub struct {
	Token       string
	BaseURL     string
	Timeout     time.Duration
	MaxAttempts int64
}

// Flags returns CLI flags for GitHub configuration
func (c *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "GitHub API token (optional for public repositories)",
			Destination: &c.Token,
			Sources:     cli.EnvVars("FAILWHALE_GITHUB_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "github-api-url",
			Usage:       "GitHub API base URL (for GitHub Enterprise)",
			Destination: &c.BaseURL,
			Sources:     cli.EnvVars("FAILWHALE_GITHUB_API_URL"),
		},
		&cli.DurationFlag{
			Name:        "github-timeout",
			Usage:       "Per-attempt request timeout",
			Value:       10 * time.Second,
			Destination: &c.Timeout,
			Sources:     cli.EnvVars("FAILWHALE_GITHUB_TIMEOUT"),
		},
		&cli.IntFlag{
			Name:        "github-max-attempts",
			Usage:       "Attempt cap per status fetch",
			Value:       3,
			Destination: &c.MaxAttempts,
			Sources:     cli.EnvVars("FAILWHALE_GITHUB_MAX_ATTEMPTS"),
		},
	}
}
