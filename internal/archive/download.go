package archive

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

const (
	// DefaultTimeout is the default HTTP request timeout
	DefaultTimeout = 10 * time.Minute
	// DefaultUserAgent is the User-Agent header sent with requests
	DefaultUserAgent = "ue4ss-installer/1.0"
	// maxRedirects matches the redirect chain of GitHub release downloads with headroom
	maxRedirects = 10
)

// Downloader streams remote files to disk.
type Downloader struct {
	client    *http.Client
	userAgent string
	retries   int
	logger    *slog.Logger
}

// NewDownloader creates a new downloader. It performs a single attempt per
// download; use WithRetries to allow more.
func NewDownloader(logger *slog.Logger) *Downloader {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Downloader{
		client: &http.Client{
			Timeout: DefaultTimeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("too many redirects")
				}
				return nil
			},
		},
		userAgent: DefaultUserAgent,
		logger:    logger,
	}
}

// WithRetries returns the downloader after setting the number of extra
// attempts made after a failed one.
func (d *Downloader) WithRetries(n int) *Downloader {
	if n < 0 {
		n = 0
	}
	d.retries = n
	return d
}

// DownloadToFile downloads url to destPath. Any failure is returned as a
// *TransferError and leaves destPath untouched.
func (d *Downloader) DownloadToFile(ctx context.Context, url, destPath string) error {
	var lastErr error

	for attempt := 0; attempt <= d.retries; attempt++ {
		if ctx.Err() != nil {
			return &TransferError{URL: url, Err: ctx.Err()}
		}

		if attempt > 0 {
			// Exponential backoff: 1s, 2s, 4s
			backoff := time.Duration(1<<uint(attempt-1)) * time.Second
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return &TransferError{URL: url, Err: ctx.Err()}
			}
		}

		written, err := d.downloadOnce(ctx, url, destPath)
		if err == nil {
			d.logger.Info("downloaded file", "url", url, "path", destPath, "bytes", written)
			return nil
		}

		lastErr = err
		d.logger.Warn("download attempt failed", "url", url, "attempt", attempt+1, "err", err)

		if ctx.Err() != nil {
			return &TransferError{URL: url, Err: ctx.Err()}
		}
	}

	return &TransferError{URL: url, Err: lastErr}
}

// downloadOnce performs a single download attempt
func (d *Downloader) downloadOnce(ctx context.Context, url, destPath string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", d.userAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	d.logger.Debug("download started", "url", url, "size", resp.ContentLength)

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return 0, fmt.Errorf("create dest dir: %w", err)
	}

	tmpPath := destPath + ".tmp"
	tmpFile, err := os.Create(tmpPath)
	if err != nil {
		return 0, fmt.Errorf("create temp file: %w", err)
	}

	cleanupNeeded := true
	defer func() {
		tmpFile.Close()
		if cleanupNeeded {
			os.Remove(tmpPath)
		}
	}()

	written, err := io.Copy(tmpFile, resp.Body)
	if err != nil {
		return 0, fmt.Errorf("copy response body: %w", err)
	}
	if resp.ContentLength >= 0 && written != resp.ContentLength {
		return 0, fmt.Errorf("short body: got %d of %d bytes", written, resp.ContentLength)
	}
	if err := tmpFile.Sync(); err != nil {
		return 0, fmt.Errorf("sync temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return 0, fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return 0, fmt.Errorf("rename temp file: %w", err)
	}

	cleanupNeeded = false
	return written, nil
}

// FileExists reports whether path is an existing, non-empty regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir() && info.Size() > 0
}
