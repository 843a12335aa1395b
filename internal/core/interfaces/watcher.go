package interfaces

// ChangeCallback is invoked with the watched file's canonical path each time a
// change is detected. It may be called from a watcher-owned goroutine.
type ChangeCallback func(changedPath string)

// WatchService defines the contract for watching a single file for changes
type WatchService interface {
	// Start begins watching the given path, replacing any previous session.
	// The callback fires zero or more times until Stop is called.
	Start(pathInput string, onChanged ChangeCallback) error

	// Stop tears down the active session, if any. It blocks until background
	// work has exited and is safe to call repeatedly.
	Stop()

	// Watching reports whether a session is currently active
	Watching() bool
}
