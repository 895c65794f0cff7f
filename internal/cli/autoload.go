package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAutoloadCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "autoload",
		Short: "Print the path of the installed autoload bootstrap",
		Long: `Print the path of vendor/autoload.php (or the configured vendor-dir) so a
PHP entry point can require it. Fails if install has not run yet.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := opts.openRegistry(cmd)
			if err != nil {
				return err
			}
			b, err := r.Autoload()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), b.Path)
			return nil
		},
	}
}
