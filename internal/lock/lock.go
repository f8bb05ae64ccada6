// Package lock provides a cross-process file lock used to keep two installs
// from writing into the same cache directory at once.
package lock

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// StaleThreshold is the age after which a lock file is assumed abandoned.
const StaleThreshold = 10 * time.Minute

// ErrLocked is returned while another process holds the lock.
var ErrLocked = errors.New("lock is held by another operation")

// Lock is a held lock file.
type Lock struct {
	id   string
	path string
	file *os.File
}

// Acquire creates <dir>/<name>.lock exclusively. A lock older than
// StaleThreshold is removed and acquisition is retried once.
func Acquire(ctx context.Context, dir, name string) (*Lock, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if name == "" || strings.ContainsAny(name, `/\`) {
		return nil, fmt.Errorf("invalid lock name %q", name)
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}

	lockPath := filepath.Join(dir, name+".lock")

	file, err := create(lockPath)
	if err != nil {
		if !os.IsExist(err) {
			return nil, fmt.Errorf("create lock file: %w", err)
		}
		if !isStale(lockPath) {
			return nil, ErrLocked
		}
		_ = os.Remove(lockPath)
		if file, err = create(lockPath); err != nil {
			return nil, ErrLocked
		}
	}

	id := uuid.NewString()
	data := fmt.Sprintf("pid=%d\ntimestamp=%s\nid=%s\n", os.Getpid(), time.Now().UTC().Format(time.RFC3339), id)
	if _, err := file.WriteString(data); err != nil {
		_ = file.Close()
		_ = os.Remove(lockPath)
		return nil, fmt.Errorf("write lock data: %w", err)
	}
	if err := file.Sync(); err != nil {
		_ = file.Close()
		_ = os.Remove(lockPath)
		return nil, fmt.Errorf("sync lock file: %w", err)
	}

	return &Lock{id: id, path: lockPath, file: file}, nil
}

func create(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_RDWR, 0600)
}

// ID returns the unique identifier written into the lock file.
func (l *Lock) ID() string {
	return l.id
}

// Path returns the lock file path.
func (l *Lock) Path() string {
	return l.path
}

// Release removes the lock file. Calling it more than once is safe.
func (l *Lock) Release() error {
	if l.file != nil {
		_ = l.file.Close()
		l.file = nil
	}
	if l.path == "" {
		return nil
	}

	path := l.path
	l.path = ""
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove lock file: %w", err)
	}
	return nil
}

func isStale(lockPath string) bool {
	info, err := os.Stat(lockPath)
	if err != nil {
		return false
	}
	return time.Since(info.ModTime()) > StaleThreshold
}
