package platform

import (
	"context"
	"errors"
	"runtime"
	"testing"
)

// MockDetector returns fixed detection results.
type MockDetector struct {
	info *Info
	err  error
}

// NewMockDetector creates a mock detector with the given results.
func NewMockDetector(info *Info, err error) Detector {
	return &MockDetector{info: info, err: err}
}

// Detect returns the configured info and error.
func (m *MockDetector) Detect(ctx context.Context) (*Info, error) {
	return m.info, m.err
}

func fakePlatform(id, family, version string, err error) platformInfoFunc {
	return func(ctx context.Context) (string, string, string, error) {
		return id, family, version, err
	}
}

func TestRealDetector_Detect(t *testing.T) {
	info, err := NewDetector().Detect(context.Background())
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if info.OS != runtime.GOOS {
		t.Errorf("OS = %v, want %v", info.OS, runtime.GOOS)
	}
	if info.ArchRaw != runtime.GOARCH {
		t.Errorf("ArchRaw = %v, want %v", info.ArchRaw, runtime.GOARCH)
	}
	if info.Arch == "" {
		t.Error("Arch should not be empty")
	}
	if runtime.GOOS != "linux" && info.Distro != "" {
		t.Errorf("Distro should be empty on %s, got %v", runtime.GOOS, info.Distro)
	}
}

func TestDetect_Linux(t *testing.T) {
	tests := []struct {
		name       string
		platformFn platformInfoFunc
		want       Info
	}{
		{
			name:       "ubuntu",
			platformFn: fakePlatform("Ubuntu", "debian", "22.04", nil),
			want: Info{OS: "linux", Arch: "amd64", ArchRaw: "x86_64",
				Distro: "ubuntu", DistroFamily: FamilyDebian, DistroVersion: "22.04"},
		},
		{
			name:       "steamos_family_from_id",
			platformFn: fakePlatform("steamos", "", "3.5", nil),
			want: Info{OS: "linux", Arch: "amd64", ArchRaw: "x86_64",
				Distro: "steamos", DistroFamily: FamilyArch, DistroVersion: "3.5"},
		},
		{
			name:       "unknown_family",
			platformFn: fakePlatform("nixos", "nixos", "24.05", nil),
			want: Info{OS: "linux", Arch: "amd64", ArchRaw: "x86_64",
				Distro: "nixos", DistroFamily: FamilyUnknown, DistroVersion: "24.05"},
		},
		{
			name:       "detection_failure_falls_back",
			platformFn: fakePlatform("", "", "", errors.New("no os-release")),
			want:       Info{OS: "linux", Arch: "amd64", ArchRaw: "x86_64"},
		},
		{
			name:       "empty_platform",
			platformFn: fakePlatform("  ", "debian", "12", nil),
			want:       Info{OS: "linux", Arch: "amd64", ArchRaw: "x86_64"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &RealDetector{goos: "linux", goarch: "x86_64", platformFn: tt.platformFn}
			got, err := d.Detect(context.Background())
			if err != nil {
				t.Fatalf("Detect() error = %v", err)
			}
			if *got != tt.want {
				t.Errorf("Detect() = %+v, want %+v", *got, tt.want)
			}
		})
	}
}

func TestDetect_NonLinuxSkipsDistro(t *testing.T) {
	called := false
	d := &RealDetector{
		goos:   "windows",
		goarch: "amd64",
		platformFn: func(ctx context.Context) (string, string, string, error) {
			called = true
			return "ubuntu", "debian", "22.04", nil
		},
	}

	info, err := d.Detect(context.Background())
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if called {
		t.Error("distribution lookup should only run on linux")
	}
	if !info.IsWindows() || info.NeedsCompatLayer() {
		t.Errorf("unexpected windows info: %+v", info)
	}
}

func TestDetect_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := &RealDetector{
		goos:   "linux",
		goarch: "amd64",
		platformFn: func(ctx context.Context) (string, string, string, error) {
			return "", "", "", ctx.Err()
		},
	}

	if _, err := d.Detect(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestInfoPredicates(t *testing.T) {
	tests := []struct {
		name        string
		info        Info
		steamDeck   bool
		compatLayer bool
	}{
		{name: "windows", info: Info{OS: "windows"}, compatLayer: false},
		{name: "steam_deck", info: Info{OS: "linux", Distro: "steamos"}, steamDeck: true, compatLayer: true},
		{name: "desktop_linux", info: Info{OS: "linux", Distro: "fedora"}, compatLayer: true},
		{name: "macos", info: Info{OS: "darwin"}, compatLayer: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.info.IsSteamDeck(); got != tt.steamDeck {
				t.Errorf("IsSteamDeck() = %v, want %v", got, tt.steamDeck)
			}
			if got := tt.info.NeedsCompatLayer(); got != tt.compatLayer {
				t.Errorf("NeedsCompatLayer() = %v, want %v", got, tt.compatLayer)
			}
		})
	}
}

func TestNormalizeArch(t *testing.T) {
	tests := map[string]string{
		"amd64":   "amd64",
		"x86_64":  "amd64",
		"AARCH64": "arm64",
		"i686":    "386",
		"riscv64": "riscv64",
	}
	for in, want := range tests {
		if got := normalizeArch(in); got != want {
			t.Errorf("normalizeArch(%q) = %q, want %q", in, got, want)
		}
	}
}
