package platform

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shirou/gopsutil/v4/disk"
)

func fakePartitions(parts []disk.PartitionStat, err error) partitionsFunc {
	return func(ctx context.Context, all bool) ([]disk.PartitionStat, error) {
		if all {
			return nil, errors.New("only physical partitions should be requested")
		}
		return parts, err
	}
}

func TestListDrives(t *testing.T) {
	tests := []struct {
		name  string
		goos  string
		parts []disk.PartitionStat
		want  []string
	}{
		{
			name: "windows_drive_letters",
			goos: "windows",
			parts: []disk.PartitionStat{
				{Device: "D:", Mountpoint: "D:"},
				{Device: "C:", Mountpoint: `C:\`},
				{Device: "c:", Mountpoint: "c:"},
			},
			want: []string{`C:\`, `D:\`},
		},
		{
			name: "linux_mount_points",
			goos: "linux",
			parts: []disk.PartitionStat{
				{Device: "/dev/nvme0n1p2", Mountpoint: "/"},
				{Device: "/dev/sda1", Mountpoint: "/run/media/deck/sdcard"},
				{Device: "/dev/nvme0n1p2", Mountpoint: "/"},
				{Device: "/dev/loop0", Mountpoint: ""},
			},
			want: []string{"/", "/run/media/deck/sdcard"},
		},
		{
			name:  "no_partitions",
			goos:  "linux",
			parts: nil,
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := &DriveLister{goos: tt.goos, partitionsFn: fakePartitions(tt.parts, nil)}
			got, err := l.ListDrives(context.Background())
			if err != nil {
				t.Fatalf("ListDrives() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ListDrives() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestListDrives_Error(t *testing.T) {
	l := &DriveLister{goos: "linux", partitionsFn: fakePartitions(nil, errors.New("boom"))}
	if _, err := l.ListDrives(context.Background()); err == nil {
		t.Error("expected error from partition listing")
	}
}
