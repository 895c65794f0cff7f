package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcm-labs/mcm/internal/notify"
)

func newInstallCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "install",
		Short: "Run composer install in the base directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := opts.openRegistry(cmd)
			if err != nil {
				return err
			}
			notify.Activityf(cmd.OutOrStdout(), "installing dependencies in %s", r.BaseDir())
			if err := r.Install(cmd.Context()); err != nil {
				return err
			}
			notify.Successf(cmd.OutOrStdout(), "dependencies installed")
			return nil
		},
	}
}
