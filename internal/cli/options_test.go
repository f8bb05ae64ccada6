package cli

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ZebulonRouseFrantzich/ue4ss-installer/internal/config"
	"github.com/ZebulonRouseFrantzich/ue4ss-installer/internal/release"
	"github.com/ZebulonRouseFrantzich/ue4ss-installer/internal/testutil"
)

const layeredConfig = `
ue4ss = {
  cache_dir = "/cfg/cache",
  repository = { owner = "cfg-owner", repo = "cfg-repo" },
  tag = "v3.0.0",
  games = {
    platform.is_linux and "/games/Linux" or nil,
    "/games/Pal",
  },
}
`

func resolveWith(t *testing.T, args ...string) (*options, error) {
	t.Helper()

	a := newTestApp()
	cmd := newRootCmd(a)
	require.NoError(t, cmd.PersistentFlags().Parse(args))
	return a.resolve(context.Background())
}

func writeDefaultConfig(t *testing.T, env *testutil.Env, content string) string {
	t.Helper()
	return testutil.WriteFile(t, env.ConfigDir, filepath.Join(config.AppName, configFileName), content)
}

func TestResolveDefaults(t *testing.T) {
	env := testutil.SetupTestEnv(t)

	opts, err := resolveWith(t)
	require.NoError(t, err)

	require.Equal(t, "", opts.ConfigPath, "absent default config is skipped")
	require.Equal(t, release.DefaultOwner, opts.Owner)
	require.Equal(t, release.DefaultRepo, opts.Repo)
	require.Equal(t, config.DefaultAPIURL, opts.APIURL)
	require.Equal(t, filepath.Join(env.CacheDir, config.AppName), opts.CacheDir)
	require.Empty(t, opts.Token)
	require.Empty(t, opts.Tag)
	require.Empty(t, opts.Games)
}

func TestResolveLayering(t *testing.T) {
	t.Run("config_file_over_defaults", func(t *testing.T) {
		env := testutil.SetupTestEnv(t)
		path := writeDefaultConfig(t, env, layeredConfig)

		opts, err := resolveWith(t)
		require.NoError(t, err)

		require.Equal(t, path, opts.ConfigPath)
		require.Equal(t, "cfg-owner", opts.Owner)
		require.Equal(t, "cfg-repo", opts.Repo)
		require.Equal(t, "/cfg/cache", opts.CacheDir)
		require.Equal(t, "v3.0.0", opts.Tag)
		require.Equal(t, config.DefaultAPIURL, opts.APIURL)
		require.Equal(t, []string{"/games/Linux", "/games/Pal"}, opts.Games)
	})

	t.Run("env_over_config_file", func(t *testing.T) {
		env := testutil.SetupTestEnv(t)
		writeDefaultConfig(t, env, layeredConfig)
		t.Setenv("UE4SS_INSTALLER_OWNER", "env-owner")
		t.Setenv("UE4SS_INSTALLER_CACHE_DIR", "/env/cache")
		t.Setenv("UE4SS_INSTALLER_TAG", "~3.0")

		opts, err := resolveWith(t)
		require.NoError(t, err)

		require.Equal(t, "env-owner", opts.Owner)
		require.Equal(t, "cfg-repo", opts.Repo)
		require.Equal(t, "/env/cache", opts.CacheDir)
		require.Equal(t, "~3.0", opts.Tag)
	})

	t.Run("flags_over_env", func(t *testing.T) {
		env := testutil.SetupTestEnv(t)
		writeDefaultConfig(t, env, layeredConfig)
		t.Setenv("UE4SS_INSTALLER_OWNER", "env-owner")

		opts, err := resolveWith(t, "--owner", "flag-owner", "--api-url", "http://127.0.0.1:9999")
		require.NoError(t, err)

		require.Equal(t, "flag-owner", opts.Owner)
		require.Equal(t, "http://127.0.0.1:9999", opts.APIURL)
		require.Equal(t, "cfg-repo", opts.Repo)
	})

	t.Run("explicit_config_path", func(t *testing.T) {
		env := testutil.SetupTestEnv(t)
		path := testutil.WriteFile(t, env.Root, "elsewhere/ue4ss.lua", `ue4ss = { tag = "v3.0.1" }`)

		opts, err := resolveWith(t, "-c", path)
		require.NoError(t, err)
		require.Equal(t, path, opts.ConfigPath)
		require.Equal(t, "v3.0.1", opts.Tag)
	})

	t.Run("config_path_from_env", func(t *testing.T) {
		env := testutil.SetupTestEnv(t)
		path := testutil.WriteFile(t, env.Root, "env.lua", `ue4ss = { repository = { repo = "env-file-repo" } }`)
		t.Setenv("UE4SS_INSTALLER_CONFIG", path)

		opts, err := resolveWith(t)
		require.NoError(t, err)
		require.Equal(t, "env-file-repo", opts.Repo)
	})
}

func TestResolveToken(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
		want string
	}{
		{
			name: "github_token",
			env:  map[string]string{"GITHUB_TOKEN": "gh-env"},
			want: "gh-env",
		},
		{
			name: "prefixed_env_wins_over_github_token",
			env:  map[string]string{"GITHUB_TOKEN": "gh-env", "UE4SS_INSTALLER_TOKEN": "own-env"},
			want: "own-env",
		},
		{
			name: "flag_wins",
			env:  map[string]string{"GITHUB_TOKEN": "gh-env"},
			args: []string{"--token", "from-flag"},
			want: "from-flag",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.SetupTestEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			opts, err := resolveWith(t, tt.args...)
			require.NoError(t, err)
			require.Equal(t, tt.want, opts.Token)
		})
	}
}

func TestResolveErrors(t *testing.T) {
	t.Run("missing_explicit_config", func(t *testing.T) {
		env := testutil.SetupTestEnv(t)

		_, err := resolveWith(t, "--config", filepath.Join(env.Root, "nope.lua"))
		require.Error(t, err)
		require.Contains(t, err.Error(), "open config")
	})

	t.Run("broken_config", func(t *testing.T) {
		env := testutil.SetupTestEnv(t)
		writeDefaultConfig(t, env, `ue4ss = { tag = 42 }`)

		_, err := resolveWith(t)
		var parseErr *config.ParseError
		require.True(t, errors.As(err, &parseErr), "got %v", err)
	})

	t.Run("invalid_owner_flag", func(t *testing.T) {
		testutil.SetupTestEnv(t)

		_, err := resolveWith(t, "--owner", "not/valid")
		var valErr *config.ValidationError
		require.True(t, errors.As(err, &valErr), "got %v", err)
		require.Equal(t, "repository.owner", valErr.Field)
	})

	t.Run("invalid_api_url_env", func(t *testing.T) {
		testutil.SetupTestEnv(t)
		t.Setenv("UE4SS_INSTALLER_API_URL", "ftp://example.com")

		_, err := resolveWith(t)
		require.Error(t, err)
	})
}
