package platform

import (
	"context"
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v4/host"
)

// platformInfoFunc matches host.PlatformInformationWithContext.
type platformInfoFunc func(ctx context.Context) (platform, family, version string, err error)

// RealDetector detects the running host.
type RealDetector struct {
	goos       string
	goarch     string
	platformFn platformInfoFunc
}

// NewDetector returns a detector for the running host.
func NewDetector() *RealDetector {
	return &RealDetector{
		goos:       runtime.GOOS,
		goarch:     runtime.GOARCH,
		platformFn: host.PlatformInformationWithContext,
	}
}

// Detect reports OS and architecture, plus the distribution on Linux.
// Distribution lookup failures leave the distro fields empty; only a
// cancelled context fails detection.
func (d *RealDetector) Detect(ctx context.Context) (*Info, error) {
	info := &Info{
		OS:      d.goos,
		Arch:    normalizeArch(d.goarch),
		ArchRaw: d.goarch,
	}

	if d.goos != "linux" {
		return info, nil
	}

	id, family, version, err := d.platformFn(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("platform detection cancelled: %w", ctx.Err())
		}
		return info, nil
	}

	if id = normalizeID(id); id != "" {
		info.Distro = id
		info.DistroFamily = mapFamily(family)
		if info.DistroFamily == FamilyUnknown {
			info.DistroFamily = mapFamily(id)
		}
		info.DistroVersion = normalizeID(version)
	}
	return info, nil
}
