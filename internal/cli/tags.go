package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ZebulonRouseFrantzich/ue4ss-installer/internal/release"
)

const catalogTimeout = 2 * time.Minute

type assetView struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url" yaml:"url"`
}

type tagView struct {
	Name       string      `json:"name" yaml:"name"`
	Prerelease bool        `json:"prerelease" yaml:"prerelease"`
	Latest     bool        `json:"latest" yaml:"latest"`
	CreatedAt  string      `json:"created_at" yaml:"created_at"`
	Assets     []assetView `json:"assets" yaml:"assets"`
}

func newTagsCmd(a *app) *cobra.Command {
	var (
		prerelease bool
		normal     bool
		format     string
	)

	cmd := &cobra.Command{
		Use:   "tags",
		Short: "List release tags that have downloadable assets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}

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

			var names []string
			switch {
			case prerelease:
				names, err = cache.PrereleaseTagsWithAssets()
			case normal:
				names, err = cache.NormalTagsWithAssets()
			default:
				names, err = cache.TagsWithAssets()
			}
			if err != nil {
				return err
			}

			catalog, err := cache.Catalog()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if format == formatText {
				latest, _ := catalog.Latest()
				for _, name := range names {
					if name == latest.Name {
						fmt.Fprintf(out, "%s (latest)\n", name)
						continue
					}
					fmt.Fprintln(out, name)
				}
				return nil
			}

			views := make([]tagView, 0, len(names))
			for _, name := range names {
				t, _ := catalog.Tag(name)
				views = append(views, newTagView(t))
			}
			return writeStructured(out, format, views)
		},
	}

	cmd.Flags().BoolVar(&prerelease, "prerelease", false, "only prerelease tags")
	cmd.Flags().BoolVar(&normal, "normal", false, "only normal (non-prerelease) tags")
	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format (text, json, yaml)")
	cmd.MarkFlagsMutuallyExclusive("prerelease", "normal")
	return cmd
}

func newTagView(t release.Tag) tagView {
	view := tagView{
		Name:       t.Name,
		Prerelease: t.IsPrerelease,
		Latest:     t.IsLatest,
		CreatedAt:  t.CreatedAt,
		Assets:     make([]assetView, 0, len(t.Assets)),
	}
	for _, asset := range t.Assets {
		view.Assets = append(view.Assets, assetView{Name: asset.FileName, URL: asset.DownloadURL})
	}
	return view
}
