//go:build !windows

package confirm

import (
	"fmt"
	"os"
	"syscall"
)

// withLock runs fn while holding an exclusive advisory flock on the ledger
// lock file. Blocks until the lock is acquired; lock release is implicit on
// close even if the process dies mid-write.
func (s *FileStore) withLock(fn func() error) error {
	f, err := os.OpenFile(s.lockPath, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return fmt.Errorf("opening ledger lock: %w", err)
	}
	defer f.Close() //nolint:errcheck // close also releases the flock

	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX); err != nil {
		return fmt.Errorf("locking ledger: %w", err)
	}
	defer func() { _ = syscall.Flock(int(f.Fd()), syscall.LOCK_UN) }()

	return fn()
}
