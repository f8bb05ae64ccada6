package testutil_test

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ZebulonRouseFrantzich/ue4ss-installer/internal/testutil"
)

func TestSetupTestEnv(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "real-token")
	t.Setenv("UE4SS_INSTALLER_CACHE_DIR", "/real/cache")

	env := testutil.SetupTestEnv(t)

	for _, name := range []string{"GITHUB_TOKEN", "UE4SS_INSTALLER_CACHE_DIR"} {
		if _, ok := os.LookupEnv(name); ok {
			t.Errorf("%s should be unset", name)
		}
	}

	for _, dir := range []string{env.ConfigDir, env.CacheDir, env.GamesDir} {
		if !strings.HasPrefix(dir, env.Root) {
			t.Errorf("%s is not below %s", dir, env.Root)
		}
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Errorf("directory %s does not exist", dir)
		}
	}

	if got := os.Getenv("XDG_CACHE_HOME"); got != env.CacheDir {
		t.Errorf("XDG_CACHE_HOME = %q, want %q", got, env.CacheDir)
	}
}

func TestSetupTestEnv_Isolation(t *testing.T) {
	first := testutil.SetupTestEnv(t)

	t.Run("subtest", func(t *testing.T) {
		second := testutil.SetupTestEnv(t)
		if first.Root == second.Root {
			t.Error("expected different temp directories for different test contexts")
		}
	})
}

func TestWriteFile(t *testing.T) {
	root := t.TempDir()
	p := testutil.WriteFile(t, root, "Pal/Binaries/Win64/dwmapi.dll", "proxy")

	if p != filepath.Join(root, "Pal", "Binaries", "Win64", "dwmapi.dll") {
		t.Errorf("unexpected path %s", p)
	}
	if data, _ := os.ReadFile(p); string(data) != "proxy" {
		t.Errorf("unexpected content %q", data)
	}
}

func TestReleaseServer(t *testing.T) {
	srv := testutil.NewReleaseServer(t, "o", "r",
		testutil.Release{Tag: "v2", CreatedAt: "2024-02-01T00:00:00Z", Assets: map[string][]byte{"UE4SS_v2.zip": []byte("zip")}},
		testutil.Release{Tag: "v1", CreatedAt: "2024-01-01T00:00:00Z"},
		testutil.Release{Tag: "v0", CreatedAt: "2023-01-01T00:00:00Z"},
	)

	var page []struct {
		TagName string `json:"tag_name"`
		Assets  []struct {
			URL string `json:"browser_download_url"`
		} `json:"assets"`
	}
	resp, err := http.Get(srv.URL + "/repos/o/r/releases?page=1&per_page=100")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		t.Fatal(err)
	}
	if len(page) != 2 || page[0].TagName != "v2" {
		t.Fatalf("unexpected first page: %+v", page)
	}

	dl, err := http.Get(page[0].Assets[0].URL)
	if err != nil {
		t.Fatal(err)
	}
	defer dl.Body.Close()
	body, _ := io.ReadAll(dl.Body)
	if string(body) != "zip" {
		t.Errorf("unexpected asset body %q", body)
	}
	if len(srv.Downloads()) != 1 || srv.PageHits() != 1 {
		t.Errorf("unexpected counters: downloads=%v pages=%d", srv.Downloads(), srv.PageHits())
	}
}
