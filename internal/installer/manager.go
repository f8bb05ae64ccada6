package installer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/ZebulonRouseFrantzich/ue4ss-installer/internal/archive"
	"github.com/ZebulonRouseFrantzich/ue4ss-installer/internal/lock"
	"github.com/ZebulonRouseFrantzich/ue4ss-installer/internal/registry"
	"github.com/ZebulonRouseFrantzich/ue4ss-installer/internal/release"
)

const (
	// ArchiveName is the cache file an install downloads to.
	ArchiveName = "ue4ss.zip"
	lockName    = "install"
)

// Catalog is the part of the release cache an install needs.
type Catalog interface {
	CacheCatalog(ctx context.Context, owner, repo string) error
	ResolveTag(requested string) (string, error)
	SelectInstallableAsset(tag string) (string, error)
}

// Config configures a Manager. Catalog and CacheDir are required.
type Config struct {
	CacheDir string
	Owner    string
	Repo     string
	Catalog  Catalog

	// Optional collaborators; defaults are created when nil.
	Downloader *archive.Downloader
	Extractor  *archive.Extractor
	Registry   *registry.Registry
	Logger     *slog.Logger
}

// Manager runs installs.
type Manager struct {
	cacheDir   string
	owner      string
	repo       string
	catalog    Catalog
	downloader *archive.Downloader
	extractor  *archive.Extractor
	registry   *registry.Registry
	logger     *slog.Logger
}

// NewManager validates cfg and fills in defaults.
func NewManager(cfg Config) (*Manager, error) {
	if cfg.CacheDir == "" {
		return nil, fmt.Errorf("CacheDir is required")
	}
	if cfg.Catalog == nil {
		return nil, fmt.Errorf("Catalog is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	m := &Manager{
		cacheDir:   cfg.CacheDir,
		owner:      cfg.Owner,
		repo:       cfg.Repo,
		catalog:    cfg.Catalog,
		downloader: cfg.Downloader,
		extractor:  cfg.Extractor,
		registry:   cfg.Registry,
		logger:     logger,
	}
	if m.owner == "" {
		m.owner = release.DefaultOwner
	}
	if m.repo == "" {
		m.repo = release.DefaultRepo
	}
	if m.downloader == nil {
		m.downloader = archive.NewDownloader(logger)
	}
	if m.extractor == nil {
		m.extractor = archive.NewExtractor(logger)
	}
	if m.registry == nil {
		m.registry = registry.New(cfg.CacheDir)
	}
	return m, nil
}

// ArchivePath returns where installs stage the downloaded archive.
func (m *Manager) ArchivePath() string {
	return filepath.Join(m.cacheDir, ArchiveName)
}

// Result describes a completed install.
type Result struct {
	TargetDir string
	// Tag is the resolved tag. It is empty when a cached archive was used,
	// since the archive's version is unknown.
	Tag       string
	AssetURL  string
	FromCache bool
	Entries   int
	Duration  time.Duration
	Record    *registry.Record
}

// Install installs tag into targetDir. An empty tag means the default tag;
// semver constraints are resolved against the catalog.
func (m *Manager) Install(ctx context.Context, targetDir, tag string) (*Result, error) {
	start := time.Now()

	if targetDir == "" {
		return nil, fmt.Errorf("target directory is required")
	}
	targetDir, err := filepath.Abs(targetDir)
	if err != nil {
		return nil, fmt.Errorf("resolve target directory: %w", err)
	}

	l, err := lock.Acquire(ctx, m.cacheDir, lockName)
	if err != nil {
		if errors.Is(err, lock.ErrLocked) {
			return nil, fmt.Errorf("another install is using %s: %w", m.cacheDir, err)
		}
		return nil, fmt.Errorf("acquire install lock: %w", err)
	}
	m.logger.Debug("install lock acquired", "path", l.Path(), "id", l.ID())
	defer func() {
		if err := l.Release(); err != nil {
			m.logger.Warn("release install lock", "err", err)
		} else {
			m.logger.Debug("install lock released", "path", l.Path())
		}
	}()

	result := &Result{TargetDir: targetDir, Tag: tag}
	zipPath := m.ArchivePath()

	if archive.FileExists(zipPath) {
		result.FromCache = true
		result.Tag = ""
		m.logger.Info("using cached archive", "path", zipPath)
		if tag != "" {
			m.logger.Warn("cached archive version is unknown; requested tag not checked", "tag", tag)
		}
	} else {
		m.logger.Debug("archive not cached", "path", zipPath)
		if err := m.fetch(ctx, result, zipPath); err != nil {
			return nil, err
		}
	}

	entries, err := m.extractor.ListEntries(zipPath)
	if err != nil {
		return nil, err
	}
	result.Entries = len(entries)

	if err := m.extractor.ExtractZip(zipPath, targetDir); err != nil {
		return nil, err
	}

	if err := os.Remove(zipPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("remove cached archive: %w", err)
	}

	rec, err := m.registry.Record(registry.Record{
		Dir:       targetDir,
		Tag:       result.Tag,
		AssetURL:  result.AssetURL,
		FromCache: result.FromCache,
	})
	if err != nil {
		m.logger.Warn("record install", "dir", targetDir, "err", err)
	} else {
		result.Record = &rec
		m.logger.Debug("install recorded", "dir", targetDir, "id", rec.InstallID)
	}

	result.Duration = time.Since(start)
	m.logger.Info("installed UE4SS",
		"tag", result.Tag, "dir", targetDir, "entries", result.Entries, "duration", result.Duration)
	return result, nil
}

// fetch resolves the tag, selects its asset and downloads it to zipPath.
func (m *Manager) fetch(ctx context.Context, result *Result, zipPath string) error {
	if err := m.catalog.CacheCatalog(ctx, m.owner, m.repo); err != nil {
		return err
	}

	tag, err := m.catalog.ResolveTag(result.Tag)
	if err != nil {
		return fmt.Errorf("resolve tag: %w", err)
	}
	if tag != result.Tag {
		m.logger.Info("resolved tag", "requested", result.Tag, "tag", tag)
	}
	result.Tag = tag

	url, err := m.catalog.SelectInstallableAsset(tag)
	if err != nil {
		return err
	}
	result.AssetURL = url

	if err := os.MkdirAll(m.cacheDir, 0755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	m.logger.Info("downloading UE4SS", "tag", tag, "url", url)
	return m.downloader.DownloadToFile(ctx, url, zipPath)
}
