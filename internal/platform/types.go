// Package platform reports where the installer is running and which drives
// it can search for games.
//
// UE4SS only ships Windows binaries. On Linux and macOS games run through a
// compatibility layer such as Proton, so the installer still works there but
// the proxy DLL has to be enabled through a Wine DLL override.
package platform

import "context"

// Linux distribution families.
const (
	FamilyDebian  = "debian"
	FamilyRHEL    = "rhel"
	FamilyFedora  = "fedora"
	FamilySUSE    = "suse"
	FamilyArch    = "arch"
	FamilyUnknown = "unknown"
)

// WineDLLOverride is the launch option that makes Wine load the UE4SS proxy
// DLL instead of its builtin dwmapi.
const WineDLLOverride = `WINEDLLOVERRIDES="dwmapi=n,b" %command%`

// Info describes the host.
type Info struct {
	OS      string // runtime.GOOS
	Arch    string // normalized, e.g. "amd64"
	ArchRaw string // runtime.GOARCH as reported

	// Linux only; empty when distribution detection failed.
	Distro        string
	DistroFamily  string
	DistroVersion string
}

// IsWindows reports whether games run natively.
func (i *Info) IsWindows() bool {
	return i.OS == "windows"
}

// IsLinux reports whether the host is Linux.
func (i *Info) IsLinux() bool {
	return i.OS == "linux"
}

// IsMacOS reports whether the host is macOS.
func (i *Info) IsMacOS() bool {
	return i.OS == "darwin"
}

// IsSteamDeck reports whether the host runs SteamOS.
func (i *Info) IsSteamDeck() bool {
	return i.IsLinux() && i.Distro == "steamos"
}

// NeedsCompatLayer reports whether Windows games on this host run through
// Wine or Proton.
func (i *Info) NeedsCompatLayer() bool {
	return !i.IsWindows()
}

// Detector detects the host platform.
type Detector interface {
	Detect(ctx context.Context) (*Info, error)
}
