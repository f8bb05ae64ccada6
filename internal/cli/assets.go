package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ZebulonRouseFrantzich/ue4ss-installer/internal/release"
)

func newAssetsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "assets <tag>",
		Short: "List the assets of a release tag",
		Long: "List the assets of a release tag as name<TAB>url. The asset the\n" +
			"installer would download is marked with '*'. The tag may be a\n" +
			"semver constraint such as ~3.0.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), catalogTimeout)
			defer cancel()

			opts, err := a.resolve(ctx)
			if err != nil {
				return err
			}
			cache, err := a.loadCatalog(ctx, opts)
			if err != nil {
				return err
			}

			tag, err := cache.ResolveTag(args[0])
			if err != nil {
				return err
			}
			assets, err := cache.AssetMapForTag(tag)
			if err != nil {
				return err
			}
			if assets.Len() == 0 {
				return fmt.Errorf("tag %q has no assets", tag)
			}

			installable, _ := release.SelectInstallable(assets)
			out := cmd.OutOrStdout()
			for _, name := range assets.Names() {
				url, _ := assets.URL(name)
				marker := " "
				if url == installable {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %s\t%s\n", marker, name, url)
			}
			return nil
		},
	}
}
