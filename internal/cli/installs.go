package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/ZebulonRouseFrantzich/ue4ss-installer/internal/registry"
)

func newInstallsCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "installs",
		Short: "List recorded installs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}
			opts, err := a.resolve(cmd.Context())
			if err != nil {
				return err
			}

			records, err := registry.New(opts.CacheDir).List()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if format != formatText {
				return writeStructured(out, format, records)
			}
			if len(records) == 0 {
				fmt.Fprintln(out, "No installs recorded.")
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TAG\tINSTALLED\tDIRECTORY")
			for _, rec := range records {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", recordTag(rec), rec.InstalledAt.Format(time.RFC3339), rec.Dir)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format (text, json, yaml)")
	cmd.AddCommand(newForgetCmd(a))
	return cmd
}

func newForgetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "forget <dir>",
		Short: "Remove the install record of a directory",
		Long:  "Remove the install record of a directory. Installed files are left in place.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := a.resolve(cmd.Context())
			if err != nil {
				return err
			}

			removed, err := registry.New(opts.CacheDir).Forget(args[0])
			if err != nil {
				return err
			}
			if !removed {
				return fmt.Errorf("no install recorded for %s", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Forgot %s\n", args[0])
			return nil
		},
	}
}
