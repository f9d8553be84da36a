package main

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/jingkaihe/skillrouter/pkg/logger"
	"github.com/jingkaihe/skillrouter/pkg/presenter"
)

// watchDebounce collapses the burst of events an editor emits on save
const watchDebounce = 150 * time.Millisecond

var rulesWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-check skill-rules.json whenever it changes",
	Long: `Run "rules check" once, then again every time the rules document is saved.
Stop with Ctrl-C.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		config := getRulesCheckConfigFromFlags(cmd)
		path, err := rulesPath(cmd.Context())
		if err != nil {
			presenter.Error(err, "Failed to resolve rules path")
			os.Exit(1)
		}

		w, err := newRulesWatcher(path)
		if err != nil {
			presenter.Error(err, "Failed to watch skill rules")
			os.Exit(1)
		}
		defer w.Close()

		check := func() {
			if _, err := checkRules(cmd, path, config); err != nil {
				presenter.Error(err, "Failed to check skill rules")
			}
		}

		check()
		presenter.Info("Watching " + path + " for changes...")
		if err := w.Run(cmd.Context(), check); err != nil {
			presenter.Error(err, "Watch stopped")
			os.Exit(1)
		}
	},
}

// rulesWatcher reports saves of one file. The parent directory is watched
// so that editors replacing the file by rename are still seen.
type rulesWatcher struct {
	path    string
	watcher *fsnotify.Watcher
}

func newRulesWatcher(path string) (*rulesWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve %s", path)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create file watcher")
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, errors.Wrapf(err, "failed to watch %s", filepath.Dir(abs))
	}

	return &rulesWatcher{path: abs, watcher: watcher}, nil
}

// Run calls onChange after each burst of changes to the file until ctx is done
func (w *rulesWatcher) Run(ctx context.Context, onChange func()) error {
	timer := time.NewTimer(watchDebounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				logger.G(ctx).WithField("event", event.Op.String()).Debug("skill rules changed")
				timer.Reset(watchDebounce)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			logger.G(ctx).WithError(err).Warn("file watcher error")
		case <-timer.C:
			onChange()
		}
	}
}

// Close stops watching
func (w *rulesWatcher) Close() error {
	return w.watcher.Close()
}
