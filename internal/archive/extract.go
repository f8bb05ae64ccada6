package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Extractor handles zip archive extraction
type Extractor struct {
	logger *slog.Logger
}

// NewExtractor creates a new extractor
func NewExtractor(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Extractor{logger: logger}
}

// ListEntries returns the entry names of a zip archive in archive order.
func (e *Extractor) ListEntries(archivePath string) ([]string, error) {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, &ExtractionError{Archive: archivePath, Err: err}
	}
	defer reader.Close()

	names := make([]string, 0, len(reader.File))
	for _, f := range reader.File {
		names = append(names, f.Name)
	}
	return names, nil
}

// ExtractZip extracts every entry of a zip archive into destDir. Existing
// files are overwritten; entries later in the archive win over earlier ones.
func (e *Extractor) ExtractZip(archivePath, destDir string) error {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return &ExtractionError{Archive: archivePath, Err: err}
	}
	defer reader.Close()

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return &ExtractionError{Archive: archivePath, Err: fmt.Errorf("create dest dir: %w", err)}
	}

	cleanDest := filepath.Clean(destDir)
	for _, f := range reader.File {
		if err := extractEntry(f, cleanDest); err != nil {
			return &ExtractionError{Archive: archivePath, Err: err}
		}
	}

	e.logger.Info("extracted archive", "archive", archivePath, "dest", destDir, "entries", len(reader.File))
	return nil
}

// extractEntry writes a single zip entry below destDir
func extractEntry(f *zip.File, destDir string) error {
	target := filepath.Join(destDir, filepath.FromSlash(f.Name))

	// Security check: prevent path traversal
	if !withinDir(destDir, target) {
		return fmt.Errorf("illegal file path: %s", f.Name)
	}

	if f.FileInfo().IsDir() {
		if err := os.MkdirAll(target, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", target, err)
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("create parent dir for %s: %w", target, err)
	}

	src, err := f.Open()
	if err != nil {
		return fmt.Errorf("open entry %s: %w", f.Name, err)
	}
	defer src.Close()

	mode := f.Mode().Perm()
	if mode == 0 {
		mode = 0644
	}

	outFile, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("create file %s: %w", target, err)
	}

	if _, err := io.Copy(outFile, src); err != nil {
		outFile.Close()
		return fmt.Errorf("write file %s: %w", target, err)
	}

	return outFile.Close()
}

// withinDir reports whether target is dir or lies below it. It holds for
// filesystem roots such as "/" and `C:\`.
func withinDir(dir, target string) bool {
	rel, err := filepath.Rel(dir, target)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(os.PathSeparator)) && !filepath.IsAbs(rel)
}
