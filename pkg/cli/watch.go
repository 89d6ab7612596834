package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/tnylea/failwhale/pkg/cli/config"
	controller "github.com/tnylea/failwhale/pkg/controller/http"
	"github.com/tnylea/failwhale/pkg/domain/interfaces"
	infra "github.com/tnylea/failwhale/pkg/infra/github"
	"github.com/tnylea/failwhale/pkg/infra/notify"
	"github.com/tnylea/failwhale/pkg/infra/probe"
	"github.com/tnylea/failwhale/pkg/infra/store"
	"github.com/tnylea/failwhale/pkg/usecase"
)

func cmdWatch() *cli.Command {
	var (
		storeCfg   config.Store
		githubCfg  config.GitHub
		watcherCfg config.Watcher
		serverCfg  config.Server
		slackCfg   config.Slack
		sentryCfg  config.Sentry
	)

	flags := storeCfg.Flags()
	flags = append(flags, githubCfg.Flags()...)
	flags = append(flags, watcherCfg.Flags()...)
	flags = append(flags, serverCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)

	return &cli.Command{
		Name:    "watch",
		Aliases: []string{"w"},
		Usage:   "Poll monitored repositories and emit notifications",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			if err := sentryCfg.Configure(); err != nil {
				return err
			}
			defer sentry.Flush(2 * time.Second)

			db, err := store.New(storeCfg.Path)
			if err != nil {
				return goerr.Wrap(err, "failed to open source store")
			}
			defer db.Close()

			watcher, err := buildWatcher(db, &githubCfg, &watcherCfg, &slackCfg)
			if err != nil {
				return err
			}

			server, err := controller.NewServer(
				ctx,
				usecase.NewSource(db),
				controller.WithAddr(serverCfg.Addr),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create control API server")
			}

			logger.Info("Starting failwhale",
				slog.String("addr", serverCfg.Addr),
				slog.String("db", storeCfg.Path),
				slog.Duration("interval", watcherCfg.Interval),
			)

			watchCtx, cancel := context.WithCancel(ctx)
			defer cancel()

			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("control API server error", slog.Any("error", err))
				}
			}()

			watchDone := make(chan struct{})
			go func() {
				defer close(watchDone)
				if err := watcher.Run(watchCtx); err != nil {
					logger.Error("watcher error", slog.Any("error", err))
				}
			}()

			// Wait for interrupt signal
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			cancel()
			<-watchDone

			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutdownCancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown control API server gracefully")
			}

			logger.Info("Shutdown complete")
			return nil
		},
	}
}

// buildWatcher wires the polling loop from configuration
func buildWatcher(
	db *store.DB,
	githubCfg *config.GitHub,
	watcherCfg *config.Watcher,
	slackCfg *config.Slack,
	opts ...usecase.WatcherOption,
) (*usecase.Watcher, error) {
	ghOpts := []infra.Option{
		infra.WithTimeout(githubCfg.Timeout),
		infra.WithMaxAttempts(int(githubCfg.MaxAttempts)),
	}
	if githubCfg.BaseURL != "" {
		ghOpts = append(ghOpts, infra.WithBaseURL(githubCfg.BaseURL))
	}
	actions, err := infra.New(githubCfg.Token, ghOpts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create GitHub client")
	}

	notifier, err := buildNotifier(slackCfg)
	if err != nil {
		return nil, err
	}

	p := probe.New(
		probe.WithEndpoint(watcherCfg.ProbeURL),
		probe.WithTimeout(watcherCfg.ProbeTimeout),
	)

	opts = append([]usecase.WatcherOption{
		usecase.WithInterval(watcherCfg.Interval),
	}, opts...)

	return usecase.NewWatcher(db, actions, p, notifier, opts...), nil
}

// buildNotifier assembles the notification sinks from configuration
func buildNotifier(slackCfg *config.Slack) (interfaces.Notifier, error) {
	sinks := []interfaces.Notifier{notify.NewLog()}

	if slackCfg.WebhookURL != "" {
		reactions := notify.DefaultReactions()
		if slackCfg.ReactionsPath != "" {
			var err error
			reactions, err = notify.LoadReactions(slackCfg.ReactionsPath)
			if err != nil {
				return nil, err
			}
		}
		sinks = append(sinks, notify.NewSlack(slackCfg.WebhookURL, notify.WithReactions(reactions)))
	}

	return notify.Multi(sinks...), nil
}
