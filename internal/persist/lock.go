package persist

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// lockSuffix is appended to the book path to name its lock file.
const lockSuffix = ".lock"

// FileLock is a cross-process exclusive lock guarding writes to a book file.
// The lock lives next to the book at <path>.lock.
type FileLock struct {
	path   string
	flock  *flock.Flock
	locked bool
}

// NewFileLock creates a lock for the book file at bookPath.
func NewFileLock(bookPath string) *FileLock {
	lockPath := bookPath + lockSuffix
	return &FileLock{
		path:  lockPath,
		flock: flock.New(lockPath),
	}
}

// Lock blocks until the exclusive lock is acquired.
func (l *FileLock) Lock() error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return fmt.Errorf("failed to create lock directory: %w", err)
	}
	if err := l.flock.Lock(); err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	l.locked = true
	return nil
}

// TryLock attempts the lock without blocking.
// Returns false if another process holds it.
func (l *FileLock) TryLock() (bool, error) {
	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return false, fmt.Errorf("failed to create lock directory: %w", err)
	}
	acquired, err := l.flock.TryLock()
	if err != nil {
		return false, fmt.Errorf("failed to acquire lock: %w", err)
	}
	l.locked = acquired
	return acquired, nil
}

// Unlock releases the lock. Safe to call when not held.
func (l *FileLock) Unlock() error {
	if !l.locked {
		return nil
	}
	l.locked = false
	if err := l.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to release lock: %w", err)
	}
	return nil
}

// Path returns the lock file path.
func (l *FileLock) Path() string {
	return l.path
}

// IsLocked reports whether this process holds the lock.
func (l *FileLock) IsLocked() bool {
	return l.locked
}

// withLock runs fn while holding the lock for bookPath.
// Lock failures are reported as ERR_203_LOCK_FAILED.
func withLock(bookPath string, fn func() error) (err error) {
	lock := NewFileLock(bookPath)
	if lerr := lock.Lock(); lerr != nil {
		return lockError(bookPath, lerr)
	}
	defer func() {
		if uerr := lock.Unlock(); uerr != nil && err == nil {
			err = lockError(bookPath, uerr)
		}
	}()
	return fn()
}

// LockHeld reports whether another holder has the lock for bookPath.
// It does not create the lock file.
func LockHeld(bookPath string) (bool, error) {
	lock := NewFileLock(bookPath)
	if _, err := os.Stat(lock.Path()); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}

	acquired, err := lock.TryLock()
	if err != nil {
		return false, err
	}
	_ = lock.Unlock()
	return !acquired, nil
}
