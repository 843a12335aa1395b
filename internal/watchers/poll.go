package watchers

import (
	"os"
	"time"

	"github.com/markwatch/markwatch/internal/core/interfaces"
)

// fileSignature is a cheap change proxy: content is assumed changed when size
// or modification time differs between reads
type fileSignature struct {
	size         int64
	modTimeNanos int64
}

// readSignature snapshots the watched file's signature. The second return is
// false when metadata is unreadable, which the poll loop treats as an absent
// signature rather than an error.
func readSignature(path string) (fileSignature, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return fileSignature{}, false
	}
	return fileSignature{
		size:         info.Size(),
		modTimeNanos: info.ModTime().UnixNano(),
	}, true
}

// startPolling launches the fallback polling loop on its own goroutine. The
// loop wakes every interval, re-reads the signature, and invokes the callback
// when it differs from the last observation. A presence/absence transition in
// either direction counts as a change. Closing the returned stop channel ends
// the loop; the done channel closes once the goroutine has exited.
func startPolling(watchedFile string, interval time.Duration, onChanged interfaces.ChangeCallback) (chan struct{}, chan struct{}) {
	stop := make(chan struct{})
	done := make(chan struct{})

	go func() {
		defer close(done)

		lastSig, lastPresent := readSignature(watchedFile)
		timer := time.NewTimer(interval)
		defer timer.Stop()

		for {
			select {
			case <-stop:
				return
			case <-timer.C:
				sig, present := readSignature(watchedFile)
				if present != lastPresent || (present && sig != lastSig) {
					lastSig, lastPresent = sig, present
					onChanged(watchedFile)
				}
				timer.Reset(interval)
			}
		}
	}()

	return stop, done
}
