package platform

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"strings"

	"github.com/shirou/gopsutil/v4/disk"
)

// partitionsFunc matches disk.PartitionsWithContext.
type partitionsFunc func(ctx context.Context, all bool) ([]disk.PartitionStat, error)

// DriveLister lists the roots a game search can start from.
type DriveLister struct {
	goos         string
	partitionsFn partitionsFunc
}

// NewDriveLister returns a lister for the running host.
func NewDriveLister() *DriveLister {
	return &DriveLister{
		goos:         runtime.GOOS,
		partitionsFn: disk.PartitionsWithContext,
	}
}

// ListDrives returns the mount points of physical partitions, sorted and
// without duplicates. On Windows these are drive roots such as `C:\`.
func (l *DriveLister) ListDrives(ctx context.Context) ([]string, error) {
	parts, err := l.partitionsFn(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("list partitions: %w", err)
	}
	return driveRoots(parts, l.goos), nil
}

// ListDrives lists drive roots of the running host.
func ListDrives(ctx context.Context) ([]string, error) {
	return NewDriveLister().ListDrives(ctx)
}

func driveRoots(parts []disk.PartitionStat, goos string) []string {
	seen := make(map[string]bool, len(parts))
	roots := []string{}

	for _, p := range parts {
		root := strings.TrimSpace(p.Mountpoint)
		if root == "" {
			continue
		}
		if goos == "windows" {
			root = strings.ToUpper(strings.TrimRight(root, `\/`)) + `\`
		}
		if seen[root] {
			continue
		}
		seen[root] = true
		roots = append(roots, root)
	}

	sort.Strings(roots)
	return roots
}
