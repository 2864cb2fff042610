package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

func newWatchCmd() *cobra.Command {
	var (
		flags      embedFlags
		out        string
		debounceMs int
	)

	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Rebuild the iframe whenever a snippet file changes",
		Long: `Start a long-running watcher on a snippet file. Every time the file is
saved, the embed is rebuilt and written to --out (or printed to stdout).

Changes are debounced so that editors saving in several steps trigger a
single rebuild.

Press Ctrl-C to stop.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			f := flags.resolve(cmd, cfg)
			logger := newLogger(cfg)

			if _, err := lookupRenderer(f.format); err != nil {
				return err
			}

			target, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolve %s: %w", args[0], err)
			}

			if !cmd.Flags().Changed("debounce") && cfg.Watch.DebounceMs > 0 {
				debounceMs = cfg.Watch.DebounceMs
			}
			debounce := time.Duration(debounceMs) * time.Millisecond

			watcher, err := fsnotify.NewWatcher()
			if err != nil {
				return fmt.Errorf("create watcher: %w", err)
			}
			defer watcher.Close()

			// Watch the directory: editors often replace the file on save.
			if err := watcher.Add(filepath.Dir(target)); err != nil {
				return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
			}

			rebuild := func() {
				if err := rebuildFile(target, out, f, cmd); err != nil {
					logger.Warn("rebuild failed", "file", target, "error", err)
					return
				}
				logger.Debug("rebuilt", "file", target, "out", out)
			}

			fmt.Fprintf(os.Stderr, "Watching %s (debounce %s). Press Ctrl-C to stop.\n", target, debounce)
			rebuild()

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return watchLoop(ctx, watcher, target, debounce, logger, rebuild)
		},
	}

	flags.bind(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "", "write output to a file instead of stdout")
	cmd.Flags().IntVar(&debounceMs, "debounce", 300, "debounce interval in milliseconds")

	return cmd
}

// watchLoop calls rebuild once per debounced burst of events on target.
func watchLoop(
	ctx context.Context,
	watcher *fsnotify.Watcher,
	target string,
	debounce time.Duration,
	logger *slog.Logger,
	rebuild func(),
) error {
	timer := time.NewTimer(debounce)
	timer.Stop() // Don't fire immediately.
	pending := false

	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(os.Stderr, "\nStopping watcher.")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isTargetEvent(event, target) {
				continue
			}
			logger.Debug("change", "op", event.Op.String())
			pending = true
			timer.Reset(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err)

		case <-timer.C:
			if !pending {
				continue
			}
			pending = false
			rebuild()
		}
	}
}

// isTargetEvent reports whether event should trigger a rebuild of target.
// Removals are ignored; the rebuild happens when the file reappears.
func isTargetEvent(event fsnotify.Event, target string) bool {
	if filepath.Clean(event.Name) != target {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}

func rebuildFile(target, out string, f embedFlags, cmd *cobra.Command) error {
	data, err := os.ReadFile(target)
	if err != nil {
		return err
	}
	output, err := renderEmbed(f.form(string(data)), f.format)
	if err != nil {
		return err
	}
	if out == "" {
		_, err = fmt.Fprint(cmd.OutOrStdout(), output)
		return err
	}
	return os.WriteFile(out, []byte(output), 0o644)
}
