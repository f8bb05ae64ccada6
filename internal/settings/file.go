package settings

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// FileName is the name of the UE4SS settings file.
const FileName = "UE4SS-settings.ini"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadFile parses the settings file at path. A leading UTF-8 byte order mark
// is ignored.
func ReadFile(path string) (File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read settings file: %w", err)
	}
	return Parse(bytes.NewReader(bytes.TrimPrefix(raw, utf8BOM)))
}

// WriteFile serializes f to path by writing a temporary file in the same
// directory and renaming it into place.
func WriteFile(path string, f File) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, ".settings-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	// Removing a renamed temp file is a harmless no-op
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if _, err := f.WriteTo(tmp); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Locate returns the settings files of a game installation, looking in
// <gameDir>/*/Binaries/Win64 and its ue4ss subdirectory.
func Locate(gameDir string) ([]string, error) {
	patterns := []string{
		filepath.Join(gameDir, "*", "Binaries", "Win64", FileName),
		filepath.Join(gameDir, "*", "Binaries", "Win64", "ue4ss", FileName),
	}

	var found []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("glob %s: %w", pattern, err)
		}
		for _, m := range matches {
			if info, err := os.Stat(m); err == nil && info.Mode().IsRegular() {
				found = append(found, m)
			}
		}
	}

	sort.Strings(found)
	return found, nil
}
