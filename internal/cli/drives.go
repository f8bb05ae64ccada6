package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newDrivesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "drives",
		Short: "List drive roots to search for games",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			drives, err := a.drives(ctx)
			if err != nil {
				return fmt.Errorf("list drives: %w", err)
			}
			for _, d := range drives {
				fmt.Fprintln(cmd.OutOrStdout(), d)
			}
			return nil
		},
	}
}
