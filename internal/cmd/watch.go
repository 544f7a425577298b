package cmd

import (
	"context"
	"fmt"

	"github.com/minicodemonkey/sfxgen/internal/paths"
	"github.com/minicodemonkey/sfxgen/internal/ui"
	"github.com/minicodemonkey/sfxgen/internal/watch"
	"go.uber.org/zap"
)

// WatchOptions contains configuration for the watch command.
type WatchOptions struct {
	Common
	Command string // Regenerate command named in the banner
}

// RunWatch regenerates the assets every time .sfxgen.yaml changes, until ctx
// is cancelled. An invalid config is reported and the previous outputs are
// left untouched.
func RunWatch(ctx context.Context, opts WatchOptions) error {
	e, err := opts.Common.resolve()
	if err != nil {
		return err
	}

	configPath := paths.ConfigPath(e.BaseDir)
	w, err := watch.NewWatcher(configPath)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := w.Start(); err != nil {
		return fmt.Errorf("failed to watch %s: %w", configPath, err)
	}
	defer w.Stop()

	fmt.Fprintf(e.Out, "%s %s\n", ui.Heading("Watching"), configPath)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events():
			if !ok {
				return nil
			}
			if event.Error != nil {
				e.Logger.Warn("config reload failed", zap.Error(event.Error))
				fmt.Fprintln(e.Out, ui.Warn(event.Error.Error()))
				continue
			}
			e.cfg = event.Config
			if _, err := generate(ctx, e, 0, 0, opts.Command); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				e.Logger.Error("regeneration failed", zap.Error(err))
				fmt.Fprintln(e.Out, ui.Fail(err.Error()))
			}
		}
	}
}
