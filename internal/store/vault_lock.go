package store

import (
	"fmt"

	"github.com/gofrs/flock"
)

// lockSuffix names the advisory lock file kept next to the vault file.
const lockSuffix = ".lock"

// vaultLock serializes load/save across processes sharing a vault path.
// It is advisory: it only excludes other cooperating processes.
type vaultLock struct {
	fl *flock.Flock
}

func newVaultLock(vaultPath string) *vaultLock {
	return &vaultLock{fl: flock.New(vaultPath + lockSuffix)}
}

// acquire takes a shared (readers) or exclusive (writer) lock and returns the
// matching release func. A nil *vaultLock is a no-op lock.
func (l *vaultLock) acquire(exclusive bool) (func() error, error) {
	if l == nil {
		return func() error { return nil }, nil
	}

	lockFn := l.fl.RLock
	if exclusive {
		lockFn = l.fl.Lock
	}
	if err := lockFn(); err != nil {
		return nil, fmt.Errorf("%w: acquire %s: %w", ErrLocked, l.fl.Path(), err)
	}

	return func() error {
		if err := l.fl.Unlock(); err != nil {
			return fmt.Errorf("%w: release %s: %w", ErrLocked, l.fl.Path(), err)
		}
		return nil
	}, nil
}
