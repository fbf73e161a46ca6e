package main

import (
	"context"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type watchOptions struct {
	build    buildOptions
	debounce time.Duration
}

// newWatchCmd creates the "watch" subcommand for rebuilding on changes
// to the deployment file.
func newWatchCmd(global *globalOptions) *cobra.Command {
	opts := watchOptions{}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Rebuild templates when the deployment file changes",
		Long: `Watch monitors the deployment file and rebuilds on every change.

Rapid successive writes (editors often write a file more than once) are
debounced into a single rebuild. Build errors are logged and watching
continues.

Examples:
    webstack watch -o templates/
    webstack watch --stack blog --debounce 1s`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnvironment(global)
			if err != nil {
				return err
			}
			return runWatch(cmd, env, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.build.stack, "stack", "s", "", "Stack (appName) to build (default: all)")
	cmd.Flags().StringVarP(&opts.build.format, "format", "f", "json", "Output format: json or yaml")
	cmd.Flags().StringVarP(&opts.build.output, "output", "o", "", "Output file or directory (default: stdout)")
	cmd.Flags().DurationVar(&opts.debounce, "debounce", 500*time.Millisecond, "Debounce duration for rapid changes")

	return cmd
}

func runWatch(cmd *cobra.Command, env *environment, opts watchOptions) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() {
		_ = watcher.Close()
	}()

	target, err := filepath.Abs(env.deploymentPath)
	if err != nil {
		return err
	}
	// The directory, not the file, so saves that replace the file are seen.
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", target, err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rebuild := func() {
		if err := env.reload(); err != nil {
			env.log.WithError(err).Error("Reload failed")
			return
		}
		if err := runBuild(cmd, env, opts.build); err != nil {
			env.log.WithError(err).Error("Build failed")
			return
		}
		env.log.WithField("deployment", target).Info("Build successful")
	}

	rebuild()
	env.log.WithField("deployment", target).Info("Watching for changes (Ctrl+C to stop)")

	return watchLoop(ctx, watcher.Events, watcher.Errors, target, opts.debounce, rebuild, env.log)
}

// watchLoop calls rebuild once per burst of changes to target, until ctx
// is done or the event channels close.
func watchLoop(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error, target string, debounce time.Duration, rebuild func(), log logrus.FieldLogger) error {
	var debounceTimer *time.Timer
	rebuildChan := make(chan struct{}, 1)

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return nil
			}
			if !isDeploymentEvent(event, target) {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounce, func() {
				select {
				case rebuildChan <- struct{}{}:
				default:
				}
			})

		case <-rebuildChan:
			log.WithField("deployment", target).Info("Change detected, rebuilding")
			rebuild()

		case err, ok := <-errs:
			if !ok {
				return nil
			}
			log.WithError(err).Warn("Watch error")

		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return nil
		}
	}
}

func isDeploymentEvent(event fsnotify.Event, target string) bool {
	if filepath.Clean(event.Name) != target {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create) != 0
}
