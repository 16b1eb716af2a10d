package binary

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// defaultLockPath derives a lock file for root outside of root itself,
// so pruning the storage root never deletes a held lock.
func defaultLockPath(root, name string) string {
	abs, err := filepath.Abs(root)
	if err != nil {
		abs = root
	}

	sum := sha256.Sum256([]byte(abs))
	return filepath.Join(os.TempDir(), fmt.Sprintf("%s-%x.lock", name, sum[:6]))
}

// acquire blocks until the install lock at path is held or ctx is done.
func acquire(ctx context.Context, path string, log logger) (*flock.Flock, error) {
	lock := flock.New(path)

	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire install lock %s: %w", path, err)
	}
	if locked {
		return lock, nil
	}

	log.detail(fmt.Sprintf("waiting for install lock %s", path))
	locked, err = lock.TryLockContext(ctx, 250*time.Millisecond)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire install lock %s: %w", path, err)
	}
	if !locked {
		return nil, fmt.Errorf("failed to acquire install lock %s", path)
	}

	return lock, nil
}
