package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ZebulonRouseFrantzich/ue4ss-installer/internal/config"
	"github.com/ZebulonRouseFrantzich/ue4ss-installer/internal/release"
)

// EnvPrefix prefixes every environment variable the installer reads.
const EnvPrefix = "UE4SS_INSTALLER"

const configFileName = "config.lua"

// Viper keys. Flags use the same names with dashes.
const (
	keyConfig    = "config"
	keyCacheDir  = "cache_dir"
	keyToken     = "token"
	keyOwner     = "owner"
	keyRepo      = "repo"
	keyAPIURL    = "api_url"
	keyTag       = "tag"
	keyGames     = "games"
	keyLogLevel  = "log_level"
	keyLogFormat = "log_format"
)

// options is the resolved configuration of one invocation.
type options struct {
	ConfigPath string
	CacheDir   string
	Token      string
	Owner      string
	Repo       string
	APIURL     string
	Tag        string
	Games      []string
}

// bindFlags layers the persistent flags over the environment and defaults.
func (a *app) bindFlags(cmd *cobra.Command) {
	v := a.v
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv(keyToken, EnvPrefix+"_TOKEN", "GITHUB_TOKEN")

	v.SetDefault(keyOwner, release.DefaultOwner)
	v.SetDefault(keyRepo, release.DefaultRepo)
	v.SetDefault(keyAPIURL, config.DefaultAPIURL)
	if dir, err := os.UserCacheDir(); err == nil {
		v.SetDefault(keyCacheDir, filepath.Join(dir, config.AppName))
	}

	flags := cmd.PersistentFlags()
	for key, name := range map[string]string{
		keyConfig:    "config",
		keyCacheDir:  "cache-dir",
		keyToken:     "token",
		keyOwner:     "owner",
		keyRepo:      "repo",
		keyAPIURL:    "api-url",
		keyLogLevel:  "log-level",
		keyLogFormat: "log-format",
	} {
		_ = v.BindPFlag(key, flags.Lookup(name))
	}
}

// defaultConfigPath returns <user config dir>/ue4ss-installer/config.lua.
func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, config.AppName, configFileName)
}

// resolve resolves defaults < config.lua < environment < flags. A config
// file named with --config or UE4SS_INSTALLER_CONFIG must exist; the
// default one is optional.
func (a *app) resolve(ctx context.Context) (*options, error) {
	path := a.v.GetString(keyConfig)
	explicit := path != ""
	if !explicit {
		path = defaultConfigPath()
	}

	if path != "" {
		_, statErr := os.Stat(path)
		if explicit || statErr == nil {
			cfg, err := config.NewParser(a.detector, a.logger).ParseFile(ctx, path)
			if err != nil {
				return nil, err
			}
			if err := a.v.MergeConfigMap(configValues(cfg)); err != nil {
				return nil, fmt.Errorf("merge config %s: %w", path, err)
			}
			a.logger.Debug("config merged", "path", path)
		} else {
			path = ""
		}
	}

	opts := &options{
		ConfigPath: path,
		CacheDir:   a.v.GetString(keyCacheDir),
		Token:      a.v.GetString(keyToken),
		Owner:      a.v.GetString(keyOwner),
		Repo:       a.v.GetString(keyRepo),
		APIURL:     a.v.GetString(keyAPIURL),
		Tag:        a.v.GetString(keyTag),
		Games:      a.v.GetStringSlice(keyGames),
	}

	check := config.Config{
		Repository: config.Repository{Owner: opts.Owner, Repo: opts.Repo, APIURL: opts.APIURL},
		Games:      opts.Games,
	}
	if err := check.Validate(); err != nil {
		return nil, err
	}
	if opts.CacheDir == "" {
		return nil, fmt.Errorf("no cache directory: set --cache-dir or %s_CACHE_DIR", EnvPrefix)
	}
	return opts, nil
}

// configValues flattens the set fields of cfg into viper keys.
func configValues(cfg *config.Config) map[string]any {
	values := map[string]any{}
	set := func(key, value string) {
		if value != "" {
			values[key] = value
		}
	}
	set(keyCacheDir, cfg.CacheDir)
	set(keyToken, cfg.Token)
	set(keyOwner, cfg.Repository.Owner)
	set(keyRepo, cfg.Repository.Repo)
	set(keyAPIURL, cfg.Repository.APIURL)
	set(keyTag, cfg.Tag)
	if len(cfg.Games) > 0 {
		values[keyGames] = cfg.Games
	}
	return values
}

// catalogCache returns the invocation's catalog cache, creating it on first
// use. Every command shares it, so the catalog is fetched at most once.
func (a *app) catalogCache(opts *options) *release.Cache {
	if a.cache == nil {
		client := release.NewClient(release.ClientConfig{
			BaseURL: opts.APIURL,
			Token:   opts.Token,
			Logger:  a.logger,
		})
		a.cache = release.NewCache(client)
	}
	return a.cache
}

// loadCatalog makes sure the catalog of the configured repository is held.
func (a *app) loadCatalog(ctx context.Context, opts *options) (*release.Cache, error) {
	cache := a.catalogCache(opts)
	if cache.IsCached() {
		a.logger.Debug("catalog already cached")
		return cache, nil
	}
	if err := cache.CacheCatalog(ctx, opts.Owner, opts.Repo); err != nil {
		return nil, err
	}
	return cache, nil
}
