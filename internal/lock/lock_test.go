package lock

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestAcquire(t *testing.T) {
	t.Run("creates named lock file", func(t *testing.T) {
		dir := t.TempDir()

		l, err := Acquire(context.Background(), dir, "install")
		if err != nil {
			t.Fatalf("Acquire failed: %v", err)
		}
		defer l.Release()

		want := filepath.Join(dir, "install.lock")
		if l.Path() != want {
			t.Errorf("expected lock path %s, got %s", want, l.Path())
		}
		if _, err := os.Stat(want); err != nil {
			t.Errorf("lock file not created: %v", err)
		}
	})

	t.Run("prevents concurrent holders", func(t *testing.T) {
		dir := t.TempDir()

		first, err := Acquire(context.Background(), dir, "install")
		if err != nil {
			t.Fatalf("first Acquire failed: %v", err)
		}
		defer first.Release()

		_, err = Acquire(context.Background(), dir, "install")
		if !errors.Is(err, ErrLocked) {
			t.Errorf("expected ErrLocked, got %v", err)
		}
	})

	t.Run("different names do not conflict", func(t *testing.T) {
		dir := t.TempDir()

		a, err := Acquire(context.Background(), dir, "install")
		if err != nil {
			t.Fatalf("Acquire install failed: %v", err)
		}
		defer a.Release()

		b, err := Acquire(context.Background(), dir, "registry")
		if err != nil {
			t.Fatalf("Acquire registry failed: %v", err)
		}
		defer b.Release()
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if _, err := Acquire(ctx, t.TempDir(), "install"); !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})

	t.Run("rejects path separators in name", func(t *testing.T) {
		if _, err := Acquire(context.Background(), t.TempDir(), "../install"); err == nil {
			t.Error("expected error for invalid lock name")
		}
	})

	t.Run("creates directory if needed", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "cache")

		l, err := Acquire(context.Background(), dir, "install")
		if err != nil {
			t.Fatalf("Acquire failed: %v", err)
		}
		defer l.Release()

		if _, err := os.Stat(dir); err != nil {
			t.Errorf("directory not created: %v", err)
		}
	})

	t.Run("writes lock metadata", func(t *testing.T) {
		l, err := Acquire(context.Background(), t.TempDir(), "install")
		if err != nil {
			t.Fatalf("Acquire failed: %v", err)
		}
		defer l.Release()

		data, err := os.ReadFile(l.Path())
		if err != nil {
			t.Fatalf("failed to read lock file: %v", err)
		}
		content := string(data)
		if !strings.Contains(content, "pid=") || !strings.Contains(content, "timestamp=") {
			t.Errorf("lock file missing metadata: %q", content)
		}
		if !strings.Contains(content, "id="+l.ID()) {
			t.Errorf("lock file missing id %s: %q", l.ID(), content)
		}
		if _, err := uuid.Parse(l.ID()); err != nil {
			t.Errorf("lock id is not a UUID: %v", err)
		}
	})
}

func TestRelease(t *testing.T) {
	t.Run("allows new lock after release", func(t *testing.T) {
		dir := t.TempDir()

		first, err := Acquire(context.Background(), dir, "install")
		if err != nil {
			t.Fatalf("first Acquire failed: %v", err)
		}
		if err := first.Release(); err != nil {
			t.Fatalf("Release failed: %v", err)
		}
		if _, err := os.Stat(filepath.Join(dir, "install.lock")); !os.IsNotExist(err) {
			t.Error("lock file should be removed after release")
		}

		second, err := Acquire(context.Background(), dir, "install")
		if err != nil {
			t.Fatalf("second Acquire should succeed: %v", err)
		}
		defer second.Release()
	})

	t.Run("is idempotent", func(t *testing.T) {
		l, err := Acquire(context.Background(), t.TempDir(), "install")
		if err != nil {
			t.Fatalf("Acquire failed: %v", err)
		}
		if err := l.Release(); err != nil {
			t.Fatalf("first Release failed: %v", err)
		}
		if err := l.Release(); err != nil {
			t.Fatalf("second Release should not error: %v", err)
		}
	})
}

func TestStaleLock(t *testing.T) {
	t.Run("replaces stale lock", func(t *testing.T) {
		dir := t.TempDir()
		lockPath := filepath.Join(dir, "install.lock")
		if err := os.WriteFile(lockPath, []byte("pid=99999\n"), 0600); err != nil {
			t.Fatalf("failed to create stale lock: %v", err)
		}
		staleTime := time.Now().Add(-StaleThreshold - time.Minute)
		if err := os.Chtimes(lockPath, staleTime, staleTime); err != nil {
			t.Fatalf("failed to set stale time: %v", err)
		}

		l, err := Acquire(context.Background(), dir, "install")
		if err != nil {
			t.Fatalf("Acquire should succeed with stale lock: %v", err)
		}
		defer l.Release()
	})

	t.Run("keeps fresh lock", func(t *testing.T) {
		dir := t.TempDir()
		lockPath := filepath.Join(dir, "install.lock")
		if err := os.WriteFile(lockPath, []byte("pid=99999\n"), 0600); err != nil {
			t.Fatalf("failed to create lock: %v", err)
		}

		if _, err := Acquire(context.Background(), dir, "install"); !errors.Is(err, ErrLocked) {
			t.Errorf("expected ErrLocked, got %v", err)
		}
	})
}
