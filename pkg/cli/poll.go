package cli

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/tnylea/failwhale/pkg/cli/config"
	"github.com/tnylea/failwhale/pkg/infra/store"
	"github.com/tnylea/failwhale/pkg/usecase"
)

func cmdPoll() *cli.Command {
	var (
		storeCfg   config.Store
		githubCfg  config.GitHub
		watcherCfg config.Watcher
		slackCfg   config.Slack
	)

	flags := storeCfg.Flags()
	flags = append(flags, githubCfg.Flags()...)
	flags = append(flags, watcherCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)

	return &cli.Command{
		Name:  "poll",
		Usage: "Run a single polling cycle and exit (for verifying configuration)",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			db, err := store.New(storeCfg.Path)
			if err != nil {
				return goerr.Wrap(err, "failed to open source store")
			}
			defer db.Close()

			// Synchronous dispatch so notifications land before exit
			watcher, err := buildWatcher(db, &githubCfg, &watcherCfg, &slackCfg,
				usecase.WithDispatcher(func(ctx context.Context, handler func(ctx context.Context) error) {
					if err := handler(ctx); err != nil {
						ctxlog.From(ctx).Error("notification failed", "error", err)
					}
				}),
			)
			if err != nil {
				return err
			}

			watcher.PollOnce(ctx)
			return nil
		},
	}
}
