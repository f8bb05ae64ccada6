package installer

import (
	"os"
	"path/filepath"
	"strings"
)

// Status is the install state of a game directory.
type Status int

const (
	// StatusInstalled means a UE4SS layout was found.
	StatusInstalled Status = iota

	// StatusNotInstalled means the game directory exists without UE4SS.
	StatusNotInstalled

	// StatusMissing means the game directory does not exist.
	StatusMissing
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusInstalled:
		return "installed"
	case StatusNotInstalled:
		return "not installed"
	case StatusMissing:
		return "missing"
	default:
		return "unknown"
	}
}

// Symbol returns a one-character marker for terminal output.
func (s Status) Symbol() string {
	switch s {
	case StatusInstalled:
		return "✓"
	case StatusNotInstalled:
		return "✗"
	default:
		return "?"
	}
}

// Probe reports the install state of gameDir.
func Probe(gameDir string) Status {
	info, err := os.Stat(gameDir)
	if err != nil || !info.IsDir() {
		return StatusMissing
	}
	if IsInstalled(gameDir) {
		return StatusInstalled
	}
	return StatusNotInstalled
}

// IsInstalled reports whether any immediate child D of gameDir has a UE4SS
// layout in D/Binaries/Win64: dwmapi.dll with UE4SS.dll (directly or in
// ue4ss/), or the older xinput1_3.dll with UE4SS-settings.ini. File names are
// matched case-insensitively and symlinks are followed.
func IsInstalled(gameDir string) bool {
	children, err := os.ReadDir(gameDir)
	if err != nil {
		return false
	}

	for _, child := range children {
		info, err := os.Stat(filepath.Join(gameDir, child.Name()))
		if err != nil || !info.IsDir() {
			continue
		}
		win64 := filepath.Join(gameDir, child.Name(), "Binaries", "Win64")
		if hasLayout(win64) {
			return true
		}
	}
	return false
}

func hasLayout(win64 string) bool {
	files := regularFiles(win64)
	if len(files) == 0 {
		return false
	}

	if files["dwmapi.dll"] {
		if files["ue4ss.dll"] || regularFiles(filepath.Join(win64, "ue4ss"))["ue4ss.dll"] {
			return true
		}
	}
	return files["xinput1_3.dll"] && files["ue4ss-settings.ini"]
}

// regularFiles returns the lower-cased names of the regular files in dir.
// Symlinks count when their target is a regular file.
func regularFiles(dir string) map[string]bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	files := make(map[string]bool, len(entries))
	for _, e := range entries {
		info, err := os.Stat(filepath.Join(dir, e.Name()))
		if err == nil && info.Mode().IsRegular() {
			files[strings.ToLower(e.Name())] = true
		}
	}
	return files
}
