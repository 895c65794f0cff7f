package cli

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/mcm-labs/mcm/internal/manifest"
	"github.com/mcm-labs/mcm/internal/notify"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <composer.json>...",
		Short: "Check member manifests against the member schema",
		Long: `Validate member composer.json files before registering them. Schema
violations fail the command. Version constraints that only Composer
understands, such as dev-main, are reported as warnings.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fsys := afero.NewOsFs()
			out := cmd.OutOrStdout()

			invalid := 0
			for _, path := range args {
				result, err := manifest.ValidateFile(fsys, path)
				if err != nil {
					notify.Errorf(out, "%s: %v", path, err)
					invalid++
					continue
				}
				if !result.Valid {
					notify.Errorf(out, "%s: invalid", path)
					for _, issue := range result.Issues {
						fmt.Fprintf(out, "  - %s\n", issue)
					}
					invalid++
					continue
				}

				if m, err := manifest.Parse(fsys, path); err == nil {
					for _, issue := range manifest.CheckConstraints(m) {
						notify.Warningf(out, "%s: %s", path, issue)
					}
				}
				notify.Successf(out, "%s: valid", path)
			}

			if invalid > 0 {
				return fmt.Errorf("%d of %d manifests failed validation", invalid, len(args))
			}
			return nil
		},
	}
}
