// Package watch reruns a sync whenever protocol files under the services root
// change. Bursts of events are debounced into one run, and runs never
// overlap: they execute on the watcher's own loop.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/grpc-protos/protosync/internal/protosync/catalog"
	"github.com/grpc-protos/protosync/internal/protosync/report"
	perrors "github.com/grpc-protos/protosync/pkg/errors"
	"github.com/grpc-protos/protosync/pkg/logger"
)

// DefaultDebounce is the quiet period that ends a burst of events.
const DefaultDebounce = 300 * time.Millisecond

type Options struct {
	ProtoDir string
	Debounce time.Duration
}

// RunFunc is called once per debounced burst.
type RunFunc func(ctx context.Context) error

type Watcher struct {
	servicesRoot string
	protoDir     string
	debounce     time.Duration
	run          RunFunc
	reporter     report.Reporter
	logger       *logger.Logger
}

func New(servicesRoot string, opts Options, run RunFunc, r report.Reporter) *Watcher {
	if opts.ProtoDir == "" {
		opts.ProtoDir = "protos"
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if r == nil {
		r = report.Discard
	}
	return &Watcher{
		servicesRoot: servicesRoot,
		protoDir:     opts.ProtoDir,
		debounce:     opts.Debounce,
		run:          run,
		reporter:     r,
		logger:       logger.WithField("component", "watch"),
	}
}

// Run blocks until ctx is done. A failing run is reported and watching
// continues; only cancellation ends the loop.
func (w *Watcher) Run(ctx context.Context) error {
	info, err := os.Stat(w.servicesRoot)
	if err != nil || !info.IsDir() {
		return perrors.NewNotFoundError("services root", w.servicesRoot)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fw.Close()

	// The root itself is watched so new services are picked up.
	if err := fw.Add(w.servicesRoot); err != nil {
		return fmt.Errorf("watch %s: %w", w.servicesRoot, err)
	}
	watched := 0
	entries, err := os.ReadDir(w.servicesRoot)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if !catalog.IsServiceDir(w.servicesRoot, entry) {
			continue
		}
		if w.addService(fw, filepath.Join(w.servicesRoot, entry.Name())) {
			watched++
		}
	}
	report.Emitf(w.reporter, report.Info, "watching %d services under %s (debounce %s)", watched, w.servicesRoot, w.debounce)

	// Reset and Stop never leave a stale value in timer.C (Go 1.23+).
	timer := time.NewTimer(w.debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return fmt.Errorf("watcher closed")
			}
			if !w.handle(fw, event) {
				continue
			}
			w.logger.Debug("change", "path", event.Name, "op", event.Op.String())
			timer.Reset(w.debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return fmt.Errorf("watcher error channel closed")
			}
			report.Emitf(w.reporter, report.Warning, "watch error: %v", err)

		case <-timer.C:
			w.trigger(ctx)
		}
	}
}

func (w *Watcher) trigger(ctx context.Context) {
	w.reporter.Emit(report.Step, "change detected, syncing")
	if err := w.run(ctx); err != nil {
		if perrors.IsContextError(err) {
			return
		}
		report.Emitf(w.reporter, report.Error, "sync failed: %v", err)
	}
}

// handle updates the watch list for event and reports whether the event
// should trigger a run.
func (w *Watcher) handle(fw *fsnotify.Watcher, event fsnotify.Event) bool {
	if event.Op&fsnotify.Chmod == fsnotify.Chmod {
		return false
	}

	if event.Op&fsnotify.Create == fsnotify.Create {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if filepath.Dir(event.Name) == filepath.Clean(w.servicesRoot) {
				return w.addService(fw, event.Name)
			}
			if !w.inProtoTree(event.Name) {
				return false
			}
			if err := watchTree(fw, event.Name); err != nil {
				w.logger.Debug("could not watch new directory", "path", event.Name, "error", err)
			}
			return true
		}
	}

	return w.inProtoTree(event.Name) && isRelevant(event.Name)
}

// inProtoTree reports whether path is <root>/<service>/<protoDir> or below.
func (w *Watcher) inProtoTree(path string) bool {
	rel, err := filepath.Rel(w.servicesRoot, path)
	if err != nil {
		return false
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	return len(parts) >= 2 && parts[0] != ".." && parts[1] == w.protoDir
}

// addService watches the protos tree of serviceDir when it has one.
func (w *Watcher) addService(fw *fsnotify.Watcher, serviceDir string) bool {
	protoRoot := filepath.Join(serviceDir, w.protoDir)
	info, err := os.Stat(protoRoot)
	if err != nil || !info.IsDir() {
		// A protos directory created later is seen through the service dir.
		_ = fw.Add(serviceDir)
		return false
	}
	if err := watchTree(fw, protoRoot); err != nil {
		report.Emitf(w.reporter, report.Warning, "cannot watch %s: %v", protoRoot, err)
		return false
	}
	return true
}

// watchTree recursively adds path and its subdirectories to the watcher.
func watchTree(fw *fsnotify.Watcher, path string) error {
	if err := fw.Add(path); err != nil {
		return err
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		// Unreadable subdirectories are skipped.
		_ = watchTree(fw, filepath.Join(path, entry.Name()))
	}
	return nil
}

func isRelevant(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return false
	}
	return filepath.Ext(base) == catalog.ProtoExt
}
