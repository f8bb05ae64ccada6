package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ZebulonRouseFrantzich/ue4ss-installer/internal/settings"
)

func newSettingsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Read and edit UE4SS-settings.ini",
		Long: "Read and edit UE4SS-settings.ini. <ini> is the settings file or a\n" +
			"game directory containing exactly one settings file.",
	}
	cmd.AddCommand(
		newSettingsGetCmd(a),
		newSettingsSetCmd(a),
		newSettingsShowCmd(a),
		newSettingsLocateCmd(a),
	)
	return cmd
}

func newSettingsGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <ini> <section> <key>",
		Short: "Print one setting",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := settingsPath(args[0])
			if err != nil {
				return err
			}
			f, err := settings.ReadFile(path)
			if err != nil {
				return err
			}
			entry, ok := f.Lookup(args[1], args[2])
			if !ok {
				return fmt.Errorf("%s: no key %q in section %q", path, args[2], args[1])
			}
			fmt.Fprintln(cmd.OutOrStdout(), entry.Value)
			return nil
		},
	}
}

func newSettingsSetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set <ini> <section> <key> <value>",
		Short: "Change one setting, adding it when missing",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := settingsPath(args[0])
			if err != nil {
				return err
			}
			f, err := settings.ReadFile(path)
			if err != nil {
				return err
			}

			old, existed := f.Lookup(args[1], args[2])
			f.Set(args[1], args[2], args[3])
			if err := settings.WriteFile(path, f); err != nil {
				return err
			}
			a.logger.Info("setting updated", "path", path, "section", args[1], "key", args[2])

			if existed {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s -> %s\n", args[2], old.Value, strings.TrimSpace(args[3]))
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: added %s\n", args[2], strings.TrimSpace(args[3]))
			}
			return nil
		},
	}
}

func newSettingsShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <ini>",
		Short: "Print the settings file in canonical form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := settingsPath(args[0])
			if err != nil {
				return err
			}
			f, err := settings.ReadFile(path)
			if err != nil {
				return err
			}
			a.logger.Debug("settings parsed", "path", path, "sections", len(f.Sections))
			_, err = f.WriteTo(cmd.OutOrStdout())
			return err
		},
	}
}

func newSettingsLocateCmd(_ *app) *cobra.Command {
	return &cobra.Command{
		Use:   "locate <game-dir>",
		Short: "Find the settings files of a game installation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := settings.Locate(args[0])
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				return fmt.Errorf("no %s found below %s", settings.FileName, args[0])
			}
			for _, p := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}
}

// settingsPath returns arg itself for files and the single settings file
// found below arg for directories.
func settingsPath(arg string) (string, error) {
	info, err := os.Stat(arg)
	if err != nil || !info.IsDir() {
		return arg, nil
	}

	paths, err := settings.Locate(arg)
	if err != nil {
		return "", err
	}
	switch len(paths) {
	case 0:
		return "", fmt.Errorf("no %s found below %s", settings.FileName, arg)
	case 1:
		return paths[0], nil
	default:
		return "", fmt.Errorf("%d settings files found below %s, name one of:\n  %s",
			len(paths), arg, strings.Join(paths, "\n  "))
	}
}
