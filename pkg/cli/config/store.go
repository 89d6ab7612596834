package config

import "github.com/urfave/cli/v3"

// Store holds source store configuration
type Store struct {
	Path string
}

// Flags returns CLI flags for store configuration
func (c *Store) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "db",
			Usage:       "Path to the source database",
			Value:       "failwhale.db",
			Destination: &c.Path,
			Sources:     cli.EnvVars("FAILWHALE_DB"),
		},
	}
}
