package config

// Lua schema names.
const (
	luaGlobal        = "ue4ss"
	luaFieldCacheDir = "cache_dir"
	luaFieldRepo     = "repository"
	luaFieldOwner    = "owner"
	luaFieldRepoName = "repo"
	luaFieldAPIURL   = "api_url"
	luaFieldTag      = "tag"
	luaFieldToken    = "token"
	luaFieldGames    = "games"
)

// Limits applied while loading.
const (
	MaxConfigSize = 1 << 20
	MaxGameCount  = 500
)

// DefaultAPIURL is the release API used when none is configured.
const DefaultAPIURL = "https://api.github.com"

// AppName names the per-user cache and config directories.
const AppName = "ue4ss-installer"
