package watchers

import (
	"path/filepath"
	"runtime"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/markwatch/markwatch/internal/core/interfaces"
	"github.com/markwatch/markwatch/pkg/logger"
	"go.uber.org/zap"
)

// watchPathsFold selects case-folded path comparison on platforms whose default
// filesystems are case-insensitive
var watchPathsFold = runtime.GOOS == "windows" || runtime.GOOS == "darwin"

// tryNativeWatch registers a non-recursive fsnotify watch on the parent
// directory of the watched file. Watching the directory rather than the file
// keeps delete+recreate and rename sequences observable. Any registration
// failure yields nil so the caller can fall back to polling.
func tryNativeWatch(watchedFile, watchedDir string, onChanged interfaces.ChangeCallback) *fsnotify.Watcher {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Get().Debug("Native watcher unavailable, falling back to polling",
			zap.Error(err),
		)
		return nil
	}

	if err := w.Add(watchedDir); err != nil {
		logger.Get().Debug("Failed to register native watch, falling back to polling",
			zap.String("dir", watchedDir),
			zap.Error(err),
		)
		w.Close()
		return nil
	}

	go func() {
		for {
			select {
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				if !isReloadOp(event.Op) {
					continue
				}
				if affectsWatchedFile(event.Name, watchedFile, watchPathsFold) {
					onChanged(watchedFile)
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.Get().Warn("Native watcher error",
					zap.String("path", watchedFile),
					zap.Error(err),
				)
			}
		}
	}()

	return w
}

// isReloadOp filters fsnotify operations down to the ones that can change what
// a reader of the watched file would see: creation, removal, content writes,
// and renames. Chmod and other metadata-only operations are ignored.
func isReloadOp(op fsnotify.Op) bool {
	return op.Has(fsnotify.Create) ||
		op.Has(fsnotify.Remove) ||
		op.Has(fsnotify.Write) ||
		op.Has(fsnotify.Rename)
}

// affectsWatchedFile reports whether an event path refers to the watched file:
// either an exact path match, or the same parent directory and file name.
func affectsWatchedFile(eventPath, watchedFile string, fold bool) bool {
	if pathsEqual(eventPath, watchedFile, fold) {
		return true
	}
	return pathsEqual(filepath.Dir(eventPath), filepath.Dir(watchedFile), fold) &&
		pathsEqual(filepath.Base(eventPath), filepath.Base(watchedFile), fold)
}

// pathsEqual compares two paths, using Unicode case folding when the platform
// filesystem is case-insensitive. Folding rather than ASCII lowercasing keeps
// the comparison correct for non-ASCII file names.
func pathsEqual(left, right string, fold bool) bool {
	if fold {
		return strings.EqualFold(left, right)
	}
	return left == right
}
