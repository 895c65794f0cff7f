package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/mcm-labs/mcm/internal/notify"
)

func newUnregisterCmd(opts *rootOptions) *cobra.Command {
	var (
		apply bool
		name  string
	)

	cmd := &cobra.Command{
		Use:   "unregister [composer.json|dir]",
		Short: "Remove a member from the root composer.json",
		Long: `Unregister a member, either by its manifest file or by package name with
--name. Its requirement and every path repository declaring that package are
removed; other repositories are left alone.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (len(args) == 0) == (name == "") {
				return errors.New("pass exactly one of a member manifest path or --name")
			}

			r, err := opts.openRegistry(cmd)
			if err != nil {
				return err
			}

			if name != "" {
				if err := r.UnregisterByName(cmd.Context(), name, apply); err != nil {
					return err
				}
				notify.Successf(cmd.OutOrStdout(), "unregistered %s", name)
				return nil
			}

			if err := r.UnregisterByFile(cmd.Context(), args[0], apply); err != nil {
				return err
			}
			notify.Successf(cmd.OutOrStdout(), "unregistered %s", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVar(&apply, "apply", false, "Run composer update for the removed package")
	cmd.Flags().StringVar(&name, "name", "", "Package name to unregister")
	return cmd
}
