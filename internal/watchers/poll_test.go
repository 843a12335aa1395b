package watchers

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPollInterval = 15 * time.Millisecond

func waitForCount(t *testing.T, counter *atomic.Int64, want int64) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if counter.Load() >= want {
			return
		}
		time.Sleep(testPollInterval)
	}
	t.Fatalf("callback count %d never reached %d", counter.Load(), want)
}

func TestReadSignatureChangesAfterWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "poll.md")
	require.NoError(t, os.WriteFile(path, []byte("initial"), 0644))

	before, ok := readSignature(path)
	require.True(t, ok)

	require.NoError(t, os.WriteFile(path, []byte("updated content"), 0644))

	after, ok := readSignature(path)
	require.True(t, ok)
	assert.NotEqual(t, before, after)
}

func TestReadSignatureAbsentForMissingFile(t *testing.T) {
	_, ok := readSignature(filepath.Join(t.TempDir(), "missing.md"))
	assert.False(t, ok)
}

func TestPollingDetectsContentChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "poll.md")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	var count atomic.Int64
	var lastPath atomic.Value
	stop, done := startPolling(path, testPollInterval, func(changedPath string) {
		lastPath.Store(changedPath)
		count.Add(1)
	})
	defer func() {
		close(stop)
		<-done
	}()

	// Different length guarantees a different signature regardless of mtime
	// granularity
	require.NoError(t, os.WriteFile(path, []byte("yy"), 0644))

	waitForCount(t, &count, 1)
	assert.Equal(t, path, lastPath.Load())
}

func TestPollingTreatsAbsenceTransitionsAsChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "poll.md")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	var count atomic.Int64
	stop, done := startPolling(path, testPollInterval, func(string) {
		count.Add(1)
	})
	defer func() {
		close(stop)
		<-done
	}()

	require.NoError(t, os.Remove(path))
	waitForCount(t, &count, 1)

	require.NoError(t, os.WriteFile(path, []byte("back again"), 0644))
	waitForCount(t, &count, 2)
}

func TestPollingStopsOnSignal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "poll.md")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	var count atomic.Int64
	stop, done := startPolling(path, testPollInterval, func(string) {
		count.Add(1)
	})

	close(stop)
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("poll loop did not exit after stop signal")
	}

	// No further callbacks after the loop has exited
	settled := count.Load()
	require.NoError(t, os.WriteFile(path, []byte("changed after stop"), 0644))
	time.Sleep(5 * testPollInterval)
	assert.Equal(t, settled, count.Load())
}
