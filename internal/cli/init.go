package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ZebulonRouseFrantzich/ue4ss-installer/internal/config"
)

func newInitCmd(a *app) *cobra.Command {
	var (
		force bool
		games []string
		tag   string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter config.lua",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := a.v.GetString(keyConfig)
			if path == "" {
				path = defaultConfigPath()
			}
			if path == "" {
				return errors.New("no config path: pass --config")
			}

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}

			cfg := &config.Config{Tag: tag, Games: games}
			if err := cfg.Validate(); err != nil {
				return err
			}

			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return fmt.Errorf("create config directory: %w", err)
			}
			if err := os.WriteFile(path, []byte(config.NewGenerator().Generate(cfg)), 0o600); err != nil {
				return fmt.Errorf("write config: %w", err)
			}
			a.logger.Info("config written", "path", path, "games", len(games))
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config")
	cmd.Flags().StringArrayVar(&games, "game", nil, "game directory to list (repeatable)")
	cmd.Flags().StringVar(&tag, "pin", "", "tag or constraint to pin installs to")
	return cmd
}
