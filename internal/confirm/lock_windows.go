//go:build windows

package confirm

import (
	"fmt"
	"os"
	"time"
)

// lockRetryInterval paces acquisition attempts on Windows, where advisory
// flocks are unavailable and an exclusive create-file serves as the mutex.
const lockRetryInterval = 10 * time.Millisecond

// lockAcquireTimeout bounds how long a writer waits before giving up, so a
// leaked lock file cannot hang callers forever.
const lockAcquireTimeout = 5 * time.Second

// withLock runs fn while holding the ledger mutex, implemented as an
// exclusively created lock file removed on release.
func (s *FileStore) withLock(fn func() error) error {
	deadline := time.Now().Add(lockAcquireTimeout)
	for {
		f, err := os.OpenFile(s.lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if err == nil {
			_ = f.Close()
			defer func() { _ = os.Remove(s.lockPath) }()
			return fn()
		}
		if !os.IsExist(err) {
			return fmt.Errorf("creating ledger lock: %w", err)
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("ledger lock %s held too long", s.lockPath)
		}
		time.Sleep(lockRetryInterval)
	}
}
