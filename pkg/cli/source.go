package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/tnylea/failwhale/pkg/cli/config"
	"github.com/tnylea/failwhale/pkg/domain/interfaces"
	"github.com/tnylea/failwhale/pkg/infra/store"
	"github.com/tnylea/failwhale/pkg/usecase"
)

func cmdSource() *cli.Command {
	var storeCfg config.Store

	withSourceUC := func(action func(ctx context.Context, c *cli.Command, uc interfaces.SourceUseCase) error) cli.ActionFunc {
		return func(ctx context.Context, c *cli.Command) error {
			db, err := store.New(storeCfg.Path)
			if err != nil {
				return goerr.Wrap(err, "failed to open source store")
			}
			defer db.Close()

			return action(ctx, c, usecase.NewSource(db))
		}
	}

	return &cli.Command{
		Name:    "source",
		Aliases: []string{"src"},
		Usage:   "Manage the monitored repository list",
		Flags:   storeCfg.Flags(),
		Commands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Start monitoring a repository",
				ArgsUsage: "<repository URL>",
				Action: withSourceUC(func(ctx context.Context, c *cli.Command, uc interfaces.SourceUseCase) error {
					url := c.Args().First()
					if url == "" {
						return goerr.New("repository URL is required")
					}

					src, err := uc.Add(ctx, url)
					if err != nil {
						return err
					}

					fmt.Printf("%s %s\n", color.GreenString("added"), src.URL)
					return nil
				}),
			},
			{
				Name:      "remove",
				Aliases:   []string{"rm"},
				Usage:     "Stop monitoring a repository",
				ArgsUsage: "<repository URL>",
				Action: withSourceUC(func(ctx context.Context, c *cli.Command, uc interfaces.SourceUseCase) error {
					url := c.Args().First()
					if url == "" {
						return goerr.New("repository URL is required")
					}

					if err := uc.Remove(ctx, url); err != nil {
						return err
					}

					fmt.Printf("%s %s\n", color.RedString("removed"), url)
					return nil
				}),
			},
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List monitored repositories",
				Action: withSourceUC(func(ctx context.Context, c *cli.Command, uc interfaces.SourceUseCase) error {
					sources, err := uc.List(ctx)
					if err != nil {
						return err
					}

					if len(sources) == 0 {
						fmt.Println("no sources monitored")
						return nil
					}

					for _, src := range sources {
						fmt.Printf("%s  %s\n",
							color.CyanString(src.AddedAt.Format("2006-01-02 15:04")),
							src.URL,
						)
					}
					return nil
				}),
			},
		},
	}
}
