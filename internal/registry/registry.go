// Package registry remembers which UE4SS release was installed where.
//
// Records live in an INI file, one section per absolute install directory:
//
//	[/games/Palworld/Pal/Binaries/Win64]
//	tag          = v3.0.1
//	asset_url    = https://.../UE4SS_v3.0.1.zip
//	installed_at = 2024-05-01T10:00:00Z
//	install_id   = 0b6f...
//
// Installs from an archive already in the cache have an empty tag and
// from_cache = true.
package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/go-ini/ini"
	"github.com/google/uuid"
)

// FileName is the registry file kept in the cache directory.
const FileName = "installs.ini"

const (
	keyTag         = "tag"
	keyAssetURL    = "asset_url"
	keyInstalledAt = "installed_at"
	keyInstallID   = "install_id"
	keyFromCache   = "from_cache"
)

// Record describes one install.
type Record struct {
	Dir         string    `json:"dir" yaml:"dir"`
	Tag         string    `json:"tag" yaml:"tag"`
	AssetURL    string    `json:"asset_url" yaml:"asset_url"`
	InstalledAt time.Time `json:"installed_at" yaml:"installed_at"`
	InstallID   string    `json:"install_id" yaml:"install_id"`
	// FromCache marks installs from an archive already in the cache; Tag
	// is empty for them.
	FromCache   bool      `json:"from_cache,omitempty" yaml:"from_cache,omitempty"`
}

// Registry reads and writes the install registry file. It does not lock;
// callers serialize writers.
type Registry struct {
	path  string
	clock Clock
}

// New returns a registry stored in cacheDir.
func New(cacheDir string) *Registry {
	return &Registry{
		path:  filepath.Join(cacheDir, FileName),
		clock: RealClock{},
	}
}

// WithClock replaces the clock used to stamp new records.
func (r *Registry) WithClock(c Clock) *Registry {
	r.clock = c
	return r
}

// Path returns the registry file path.
func (r *Registry) Path() string {
	return r.path
}

// Record stores rec, replacing any earlier record for the same directory.
// Missing InstalledAt and InstallID fields are filled in; the stored record
// is returned.
func (r *Registry) Record(rec Record) (Record, error) {
	dir, err := filepath.Abs(rec.Dir)
	if err != nil {
		return Record{}, fmt.Errorf("resolve install dir: %w", err)
	}
	rec.Dir = dir
	if rec.InstalledAt.IsZero() {
		rec.InstalledAt = r.clock.Now()
	}
	rec.InstalledAt = rec.InstalledAt.UTC().Truncate(time.Second)
	if rec.InstallID == "" {
		rec.InstallID = uuid.NewString()
	}

	cfg, err := r.load()
	if err != nil {
		return Record{}, err
	}

	cfg.DeleteSection(dir)
	section, err := cfg.NewSection(dir)
	if err != nil {
		return Record{}, fmt.Errorf("create registry section: %w", err)
	}
	for _, kv := range [][2]string{
		{keyTag, rec.Tag},
		{keyAssetURL, rec.AssetURL},
		{keyInstalledAt, rec.InstalledAt.Format(time.RFC3339)},
		{keyInstallID, rec.InstallID},
	} {
		if _, err := section.NewKey(kv[0], kv[1]); err != nil {
			return Record{}, fmt.Errorf("set registry key %s: %w", kv[0], err)
		}
	}
	if rec.FromCache {
		if _, err := section.NewKey(keyFromCache, "true"); err != nil {
			return Record{}, fmt.Errorf("set registry key %s: %w", keyFromCache, err)
		}
	}

	if err := r.save(cfg); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// Lookup returns the record for dir.
func (r *Registry) Lookup(dir string) (Record, bool, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return Record{}, false, fmt.Errorf("resolve install dir: %w", err)
	}

	cfg, err := r.load()
	if err != nil {
		return Record{}, false, err
	}

	section, err := cfg.GetSection(abs)
	if err != nil {
		return Record{}, false, nil
	}
	return toRecord(section), true, nil
}

// List returns every record sorted by directory.
func (r *Registry) List() ([]Record, error) {
	cfg, err := r.load()
	if err != nil {
		return nil, err
	}

	records := []Record{}
	for _, section := range cfg.Sections() {
		if section.Name() == ini.DefaultSection {
			continue
		}
		records = append(records, toRecord(section))
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Dir < records[j].Dir
	})
	return records, nil
}

// Forget removes the record for dir and reports whether one existed.
func (r *Registry) Forget(dir string) (bool, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return false, fmt.Errorf("resolve install dir: %w", err)
	}

	cfg, err := r.load()
	if err != nil {
		return false, err
	}
	if _, err := cfg.GetSection(abs); err != nil {
		return false, nil
	}

	cfg.DeleteSection(abs)
	if err := r.save(cfg); err != nil {
		return false, err
	}
	return true, nil
}

func (r *Registry) load() (*ini.File, error) {
	cfg, err := ini.LooseLoad(r.path)
	if err != nil {
		return nil, fmt.Errorf("load registry %s: %w", r.path, err)
	}
	return cfg, nil
}

func (r *Registry) save(cfg *ini.File) error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0755); err != nil {
		return fmt.Errorf("create registry directory: %w", err)
	}

	tmpPath := r.path + ".tmp"
	if err := cfg.SaveTo(tmpPath); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write registry: %w", err)
	}
	if err := os.Rename(tmpPath, r.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename registry: %w", err)
	}
	return nil
}

func toRecord(section *ini.Section) Record {
	rec := Record{
		Dir:       section.Name(),
		Tag:       section.Key(keyTag).String(),
		AssetURL:  section.Key(keyAssetURL).String(),
		InstallID: section.Key(keyInstallID).String(),
		FromCache: section.Key(keyFromCache).MustBool(false),
	}
	if t, err := time.Parse(time.RFC3339, section.Key(keyInstalledAt).String()); err == nil {
		rec.InstalledAt = t
	}
	return rec
}
