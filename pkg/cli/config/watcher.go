package config

import (
	"time"

	"github.com/urfave/cli/v3"

	"github.com/tnylea/failwhale/pkg/infra/probe"
)

// Watcher holds polling loop configuration
type Watcher struct {
	Interval     time.Duration
	ProbeURL     string
	ProbeTimeout time.Duration
}

// Flags returns CLI flags for watcher configuration
func (c *Watcher) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.DurationFlag{
			Name:        "interval",
			Usage:       "Polling interval",
			Value:       10 * time.Second,
			Destination: &c.Interval,
			Sources:     cli.EnvVars("FAILWHALE_INTERVAL"),
		},
		&cli.StringFlag{
			Name:        "probe-url",
			Usage:       "Endpoint for the reachability pre-flight check",
			Value:       probe.DefaultEndpoint,
			Destination: &c.ProbeURL,
			Sources:     cli.EnvVars("FAILWHALE_PROBE_URL"),
		},
		&cli.DurationFlag{
			Name:        "probe-timeout",
			Usage:       "Timeout for the reachability pre-flight check",
			Value:       5 * time.Second,
			Destination: &c.ProbeTimeout,
			Sources:     cli.EnvVars("FAILWHALE_PROBE_TIMEOUT"),
		},
	}
}
