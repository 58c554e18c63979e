package batch

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"tvconvert/internal/services"
)

// Lock is the advisory lock guarding an output root for the duration of a run.
type Lock struct {
	path string
	lock *flock.Flock
}

// AcquireLock takes the run lock at path without blocking. A lock held by
// another process returns an error marked services.ErrConfiguration.
func AcquireLock(path string) (*Lock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "lock", "mkdir", "Failed to create lock directory", err)
	}
	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "lock", "acquire", "Failed to acquire run lock "+path, err)
	}
	if !ok {
		return nil, services.Wrap(services.ErrConfiguration, "lock", "acquire",
			fmt.Sprintf("Another tvconvert run holds %s", path), nil)
	}
	return &Lock{path: path, lock: fl}, nil
}

// Path returns the lock file location.
func (l *Lock) Path() string {
	return l.path
}

// Release drops the lock. It is safe to call on a nil Lock.
func (l *Lock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	return l.lock.Unlock()
}
