// Package cli implements the ue4ss-installer command tree.
package cli

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ZebulonRouseFrantzich/ue4ss-installer/internal/platform"
	"github.com/ZebulonRouseFrantzich/ue4ss-installer/internal/release"
)

// app carries the state shared by every command of one invocation.
type app struct {
	version   string
	buildDate string

	v      *viper.Viper
	logger *slog.Logger

	detector platform.Detector
	drives   func(ctx context.Context) ([]string, error)

	// cache is created by catalogCache on first use.
	cache *release.Cache
}

func newApp(version, buildDate string) *app {
	return &app{
		version:   version,
		buildDate: buildDate,
		v:         viper.New(),
		logger:    slog.New(slog.DiscardHandler),
		detector:  platform.NewDetector(),
		drives:    platform.ListDrives,
	}
}

// NewRootCmd builds the ue4ss-installer command tree.
func NewRootCmd(version, buildDate string) *cobra.Command {
	return newRootCmd(newApp(version, buildDate))
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ue4ss-installer",
		Short: "Install UE4SS into Unreal Engine games",
		Long: "ue4ss-installer downloads UE4SS releases, unpacks them into game\n" +
			"directories and edits UE4SS-settings.ini.",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			a.logger = newLogger(a.v.GetString(keyLogLevel), a.v.GetString(keyLogFormat), cmd.ErrOrStderr())
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringP("config", "c", "", "path to config.lua")
	flags.String("cache-dir", "", "directory for the staged archive and install registry")
	flags.String("token", "", "GitHub API token")
	flags.String("owner", "", "release repository owner")
	flags.String("repo", "", "release repository name")
	flags.String("api-url", "", "release API base URL")
	flags.String("log-level", "warn", "log level (debug, info, warn, error)")
	flags.String("log-format", "text", "log format (text, json)")

	a.bindFlags(cmd)

	cmd.AddCommand(
		newTagsCmd(a),
		newAssetsCmd(a),
		newInstallCmd(a),
		newStatusCmd(a),
		newSettingsCmd(a),
		newInstallsCmd(a),
		newDrivesCmd(a),
		newInitCmd(a),
		newVersionCmd(a),
	)
	return cmd
}

// Execute runs the command tree with args and returns its error.
func Execute(ctx context.Context, version, buildDate string, args []string, stdout, stderr io.Writer) error {
	cmd := NewRootCmd(version, buildDate)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd.ExecuteContext(ctx)
}
