package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcm-labs/mcm/internal/notify"
	"github.com/mcm-labs/mcm/internal/registry"
)

func newRegisterCmd(opts *rootOptions) *cobra.Command {
	var (
		apply  bool
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "register <composer.json|dir>...",
		Short: "Add member manifests to the root composer.json",
		Long: `Register one or more member manifests. Each gets a path repository pointing
at its directory and a "*" requirement on its package name. Relative paths
are resolved against the base directory and stored as given.

With --apply, Composer updates the newly registered packages afterwards.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var extra []registry.Option
			if strict {
				extra = append(extra, registry.WithStrictValidation())
			}
			r, err := opts.openRegistry(cmd, extra...)
			if err != nil {
				return err
			}

			if err := r.RegisterAll(cmd.Context(), apply, args...); err != nil {
				return err
			}
			for _, p := range args {
				notify.Successf(cmd.OutOrStdout(), "registered %s", p)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&apply, "apply", false, "Run composer update for the registered packages")
	cmd.Flags().BoolVar(&strict, "strict", false, "Validate members against the manifest schema first")
	return cmd
}
