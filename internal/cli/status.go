package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ZebulonRouseFrantzich/ue4ss-installer/internal/installer"
	"github.com/ZebulonRouseFrantzich/ue4ss-installer/internal/registry"
)

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status [game-dir]...",
		Short: "Report whether UE4SS is installed in game directories",
		Long: "Report whether UE4SS is installed in each game directory. Without\n" +
			"arguments the games listed in config.lua are checked.",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := a.resolve(cmd.Context())
			if err != nil {
				return err
			}

			games := args
			if len(games) == 0 {
				games = opts.Games
			}
			if len(games) == 0 {
				return errors.New("no game directories given and none configured")
			}

			records, err := registry.New(opts.CacheDir).List()
			if err != nil {
				a.logger.Warn("read install registry", "err", err)
			}

			out := cmd.OutOrStdout()
			for _, game := range games {
				dir, err := filepath.Abs(game)
				if err != nil {
					return fmt.Errorf("resolve %s: %w", game, err)
				}
				status := installer.Probe(dir)
				line := fmt.Sprintf("%s %-13s %s", status.Symbol(), status, dir)
				if rec, ok := recordUnder(records, dir); ok && status == installer.StatusInstalled {
					line += fmt.Sprintf(" (%s, %s)", recordTag(rec), rec.InstalledAt.Format("2006-01-02"))
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
}

// recordUnder returns the newest record whose directory is gameDir or lies
// below it.
func recordUnder(records []registry.Record, gameDir string) (registry.Record, bool) {
	var (
		best  registry.Record
		found bool
	)
	prefix := gameDir + string(filepath.Separator)
	for _, rec := range records {
		if rec.Dir != gameDir && !strings.HasPrefix(rec.Dir, prefix) {
			continue
		}
		if !found || rec.InstalledAt.After(best.InstalledAt) {
			best, found = rec, true
		}
	}
	return best, found
}

// recordTag names the installed version, or says it is unknown for installs
// from a cached archive.
func recordTag(rec registry.Record) string {
	if rec.Tag == "" {
		return "unknown version"
	}
	return rec.Tag
}
