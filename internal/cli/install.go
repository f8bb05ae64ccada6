package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ZebulonRouseFrantzich/ue4ss-installer/internal/archive"
	"github.com/ZebulonRouseFrantzich/ue4ss-installer/internal/installer"
	"github.com/ZebulonRouseFrantzich/ue4ss-installer/internal/platform"
)

func newInstallCmd(a *app) *cobra.Command {
	var retries int

	cmd := &cobra.Command{
		Use:   "install <game-exe-dir>",
		Short: "Install UE4SS next to a game executable",
		Long: "Install UE4SS into the directory holding the game's shipping\n" +
			"executable, usually <Game>/Binaries/Win64. --tag accepts a tag name\n" +
			"or a semver constraint; the newest normal release is used otherwise.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			opts, err := a.resolve(ctx)
			if err != nil {
				return err
			}

			mgr, err := installer.NewManager(installer.Config{
				CacheDir:   opts.CacheDir,
				Owner:      opts.Owner,
				Repo:       opts.Repo,
				Catalog:    a.catalogCache(opts),
				Downloader: archive.NewDownloader(a.logger).WithRetries(retries),
				Logger:     a.logger,
			})
			if err != nil {
				return err
			}

			result, err := mgr.Install(ctx, args[0], opts.Tag)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			tag := result.Tag
			if tag == "" {
				tag = "cached archive"
			}
			fmt.Fprintf(out, "Installed UE4SS %s into %s (%d entries)\n", tag, result.TargetDir, result.Entries)
			if result.FromCache {
				fmt.Fprintln(out, "Used the archive already present in the cache.")
			}

			info, err := a.detector.Detect(ctx)
			if err != nil {
				a.logger.Debug("platform detection failed", "err", err)
				return nil
			}
			if info.NeedsCompatLayer() {
				fmt.Fprintln(out, "\nThe game runs through Wine or Proton. Add this to its launch options:")
				fmt.Fprintf(out, "  %s\n", platform.WineDLLOverride)
			}
			return nil
		},
	}

	cmd.Flags().StringP("tag", "t", "", "release tag or semver constraint to install")
	cmd.Flags().IntVar(&retries, "retries", 0, "extra download attempts after a failed one")
	_ = a.v.BindPFlag(keyTag, cmd.Flags().Lookup("tag"))
	return cmd
}
