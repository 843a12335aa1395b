// Package watchers implements the single-file watch subsystem: an fsnotify
// watch on the file's parent directory with a signature-polling fallback,
// owned by a one-session-at-a-time manager.
package watchers

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/markwatch/markwatch/internal/core/interfaces"
	"github.com/markwatch/markwatch/internal/resolver"
	"github.com/markwatch/markwatch/pkg/errors"
	"github.com/markwatch/markwatch/pkg/logger"
	"github.com/markwatch/markwatch/pkg/utils"
	"go.uber.org/zap"
)

// DefaultPollInterval is the fallback polling cadence used when no interval is
// configured
const DefaultPollInterval = time.Second

// Manager owns at most one active watch session. Start supersedes any prior
// session; Stop is idempotent and blocks until background work has exited.
type Manager struct {
	mu           sync.Mutex
	session      *watchSession
	pollInterval time.Duration
	logger       *zap.Logger

	// nativeWatch is swapped out in tests to force the polling fallback
	nativeWatch func(watchedFile, watchedDir string, onChanged interfaces.ChangeCallback) *fsnotify.Watcher
}

// watchSession holds the live state of one active watch. The native handle is
// set iff the native strategy succeeded; the poll channels are set iff it
// failed and the fallback loop is running.
type watchSession struct {
	id          string
	watchedFile string
	watchedDir  string
	native      *fsnotify.Watcher
	pollStop    chan struct{}
	pollDone    chan struct{}
}

var _ interfaces.WatchService = (*Manager)(nil)

// NewManager creates a watch manager. A non-positive pollInterval selects
// DefaultPollInterval.
func NewManager(pollInterval time.Duration) *Manager {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	return &Manager{
		pollInterval: pollInterval,
		logger:       logger.Get(),
		nativeWatch:  tryNativeWatch,
	}
}

// Start resolves the path input, tears down any previous session, and
// establishes a new one. Native registration failure is not an error: the
// manager silently falls back to polling. Resolution failure and a missing
// parent directory abort the call without touching session state.
func (m *Manager) Start(pathInput string, onChanged interfaces.ChangeCallback) error {
	watchedFile, err := resolver.Resolve(pathInput)
	if err != nil {
		return err
	}

	watchedDir := filepath.Dir(watchedFile)
	if watchedDir == watchedFile {
		return errors.NewWatchError(watchedFile, "cannot watch a file without a parent directory")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.releaseLocked()

	s := &watchSession{
		id:          utils.SessionID(),
		watchedFile: watchedFile,
		watchedDir:  watchedDir,
		native:      m.nativeWatch(watchedFile, watchedDir, onChanged),
	}

	strategy := "native"
	if s.native == nil {
		s.pollStop, s.pollDone = startPolling(watchedFile, m.pollInterval, onChanged)
		strategy = "poll"
	}

	m.session = s
	m.logger.Info("Watch session started",
		zap.String("session_id", s.id),
		zap.String("path", watchedFile),
		zap.String("strategy", strategy),
	)

	return nil
}

// Stop tears down the active session. Calling Stop with no session is a no-op.
// When a poll loop is running, Stop blocks until it has observed the stop
// signal and exited, so no callback fires after Stop returns (beyond at most
// one invocation already in flight).
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.releaseLocked()
}

// Close implements io.Closer so owners can guarantee teardown with a deferred
// call; it behaves exactly like Stop.
func (m *Manager) Close() error {
	m.Stop()
	return nil
}

// Watching reports whether a session is currently active
func (m *Manager) Watching() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session != nil
}

// WatchedPath returns the canonical path of the watched file, or empty when
// idle
func (m *Manager) WatchedPath() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return ""
	}
	return m.session.watchedFile
}

// releaseLocked takes and releases the session state. Callers must hold m.mu.
func (m *Manager) releaseLocked() {
	s := m.session
	m.session = nil
	if s == nil {
		return
	}

	if s.pollStop != nil {
		close(s.pollStop)
	}
	if s.pollDone != nil {
		<-s.pollDone
	}
	if s.native != nil {
		// Close unregisters the OS watch and ends the event goroutine
		if err := s.native.Close(); err != nil {
			m.logger.Warn("Failed to close native watcher",
				zap.String("session_id", s.id),
				zap.Error(err),
			)
		}
	}

	m.logger.Info("Watch session stopped",
		zap.String("session_id", s.id),
		zap.String("path", s.watchedFile),
	)
}
