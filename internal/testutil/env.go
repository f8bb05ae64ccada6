// Package testutil isolates tests from the user's real installer state.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// Env is an isolated set of directories for one test.
type Env struct {
	Root      string
	ConfigDir string
	CacheDir  string
	GamesDir  string
}

// SetupTestEnv points every directory the installer reads from the
// environment at a fresh temporary tree and clears credentials, so tests
// never touch the user's cache or send a real token. t.TempDir and t.Setenv
// undo everything when the test ends.
func SetupTestEnv(t *testing.T) *Env {
	t.Helper()

	root := t.TempDir()
	env := &Env{
		Root:      root,
		ConfigDir: filepath.Join(root, "config"),
		CacheDir:  filepath.Join(root, "cache"),
		GamesDir:  filepath.Join(root, "games"),
	}

	t.Setenv("HOME", root)
	t.Setenv("XDG_CONFIG_HOME", env.ConfigDir)
	t.Setenv("XDG_CACHE_HOME", env.CacheDir)
	t.Setenv("LOCALAPPDATA", env.CacheDir)
	t.Setenv("APPDATA", env.ConfigDir)

	for _, name := range []string{
		"UE4SS_INSTALLER_CONFIG",
		"UE4SS_INSTALLER_CACHE_DIR",
		"UE4SS_INSTALLER_TOKEN",
		"UE4SS_INSTALLER_OWNER",
		"UE4SS_INSTALLER_REPO",
		"UE4SS_INSTALLER_API_URL",
		"UE4SS_INSTALLER_TAG",
		"UE4SS_INSTALLER_LOG_LEVEL",
		"UE4SS_INSTALLER_LOG_FORMAT",
		"GITHUB_TOKEN",
	} {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}

	for _, dir := range []string{env.ConfigDir, env.CacheDir, env.GamesDir} {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			t.Fatalf("failed to create test directory %s: %v", dir, err)
		}
	}

	return env
}

// WriteFile creates path below root with content, creating parents.
func WriteFile(t *testing.T, root, rel, content string) string {
	t.Helper()

	p := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatalf("failed to create %s: %v", filepath.Dir(p), err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", p, err)
	}
	return p
}
