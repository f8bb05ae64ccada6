package cli

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
)

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), formatVersion(a.version, a.buildDate))
			return nil
		},
	}
}

func formatVersion(version, buildDate string) string {
	version = strings.TrimSpace(version)
	if version == "" {
		version = "dev"
	}
	s := "ue4ss-installer " + version
	if buildDate = strings.TrimSpace(buildDate); buildDate != "" {
		s += " (built " + buildDate + ")"
	}
	return s + " " + runtime.GOOS + "/" + runtime.GOARCH
}
