package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcm-labs/mcm/internal/notify"
)

func newUpdateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "update [package...]",
		Short: "Run composer update, optionally for specific packages",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := opts.openRegistry(cmd)
			if err != nil {
				return err
			}

			target := "all packages"
			if len(args) > 0 {
				target = strings.Join(args, ", ")
			}
			notify.Activityf(cmd.OutOrStdout(), "updating %s", target)
			if err := r.Update(cmd.Context(), args...); err != nil {
				return err
			}
			notify.Successf(cmd.OutOrStdout(), "updated %s", target)
			return nil
		},
	}
}
