package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/ZebulonRouseFrantzich/ue4ss-installer/internal/platform"
	"github.com/ZebulonRouseFrantzich/ue4ss-installer/internal/testutil"
)

type stubDetector struct {
	info platform.Info
}

func (d stubDetector) Detect(ctx context.Context) (*platform.Info, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	info := d.info
	return &info, nil
}

func newTestApp() *app {
	a := newApp("v1.2.3", "2024-05-01")
	a.detector = stubDetector{info: platform.Info{OS: "linux", Arch: "amd64", ArchRaw: "amd64", Distro: "steamos", DistroFamily: "arch"}}
	a.drives = func(context.Context) ([]string, error) {
		return []string{"/", "/mnt/games"}, nil
	}
	return a
}

// run executes args against a fresh command tree and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return runApp(t, newTestApp(), args...)
}

func runApp(t *testing.T, a *app, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd(a)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	if stderr.Len() > 0 {
		t.Logf("stderr:\n%s", stderr.String())
	}
	return stdout.String(), err
}

var testZip = map[string]string{
	"dwmapi.dll":               "proxy",
	"ue4ss/UE4SS.dll":          "core",
	"ue4ss/UE4SS-settings.ini": "[General]\nEnableHotReloadSystem = 0\n",
}

// newTestServer serves a small catalog for the default repository:
// a prerelease, two normal releases with assets and one without.
func newTestServer(t *testing.T) *testutil.ReleaseServer {
	t.Helper()

	payload := testutil.ZipArchive(t, testZip)
	return testutil.NewReleaseServer(t, "UE4SS-RE", "RE-UE4SS",
		testutil.Release{
			Tag:        "v3.1.0-beta",
			Prerelease: true,
			CreatedAt:  "2024-06-01T00:00:00Z",
			Assets: map[string][]byte{
				"UE4SS_v3.1.0-beta.zip":      payload,
				"zDEV-UE4SS_v3.1.0-beta.zip": payload,
			},
		},
		testutil.Release{
			Tag:       "v3.0.1",
			CreatedAt: "2024-03-01T00:00:00Z",
			Assets: map[string][]byte{
				"UE4SS_v3.0.1.zip":      payload,
				"zDEV-UE4SS_v3.0.1.zip": payload,
			},
		},
		testutil.Release{
			Tag:       "v3.0.0",
			CreatedAt: "2024-01-01T00:00:00Z",
			Assets:    map[string][]byte{"UE4SS_v3.0.0.zip": payload},
		},
		testutil.Release{
			Tag:       "v2.5.2",
			CreatedAt: "2023-01-01T00:00:00Z",
		},
	)
}
