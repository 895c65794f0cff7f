package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mcm-labs/mcm/internal/config"
	"github.com/mcm-labs/mcm/internal/installer"
	"github.com/mcm-labs/mcm/internal/notify"
	"github.com/mcm-labs/mcm/internal/registry"
)

func newDoctorCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the installer, the root composer.json and its members",
		Long: `Run diagnostic checks: the config file, the installer binary and its version,
the root composer.json, every registered member and the autoload bootstrap.
Problems are reported one per line; the command fails if any check fails.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			failed := 0

			notify.Titlef(out, "Configuration")
			checkConfigFile(out)

			s := config.Current()
			notify.Titlef(out, "Installer")
			if !checkInstaller(cmd, opts, s) {
				failed++
			}

			notify.Titlef(out, "Root manifest")
			r, err := opts.openRegistry(cmd)
			if err != nil {
				return err
			}
			failed += checkManifest(out, r)

			if failed > 0 {
				return fmt.Errorf("%d check(s) failed", failed)
			}
			notify.Successf(out, "all checks passed")
			return nil
		},
	}
}

func checkConfigFile(out io.Writer) {
	path := config.FilePath()
	if _, err := os.Stat(path); err != nil {
		notify.Infof(out, "no config file at %s, using defaults", path)
		return
	}
	notify.Successf(out, "config file %s", path)
}

func checkInstaller(cmd *cobra.Command, opts *rootOptions, s config.Settings) bool {
	out := cmd.OutOrStdout()

	inst, err := opts.newInstaller(cmd, s)
	if err != nil {
		notify.Errorf(out, "%v", err)
		return false
	}
	inst.Stream = nil

	v, err := inst.Version(cmd.Context(), ".")
	if err != nil {
		notify.Errorf(out, "%v", err)
		return false
	}

	ok, err := installer.CheckVersion(v, s.InstallerConstraint)
	if err != nil {
		notify.Errorf(out, "%v", err)
		return false
	}
	if !ok {
		notify.Errorf(out, "installer version %s does not satisfy %s", v, s.InstallerConstraint)
		return false
	}
	notify.Successf(out, "%s %s", inst.Command[0], v)
	return true
}

// checkManifest reports the aggregate manifest, its members and the autoload
// bootstrap. It returns the number of failed checks.
func checkManifest(out io.Writer, r *registry.Registry) int {
	members, err := r.Members()
	if err != nil {
		notify.Errorf(out, "%v", err)
		return 1
	}
	notify.Successf(out, "%s readable", r.ManifestPath())

	failed := 0
	registered := 0
	for _, m := range members {
		switch m.Status {
		case registry.StatusOK:
			registered++
			if m.Constraint == "" {
				notify.Warningf(out, "%s (%s) has a repository but no requirement", m.Name, m.URL)
			}
		case registry.StatusForeign:
			notify.Infof(out, "repository %d is a %q repository, skipped", m.Index, m.Type)
		default:
			notify.Errorf(out, "repository %d (%s) is %s: %v", m.Index, m.URL, m.Status, m.Err)
			failed++
		}
	}
	notify.Infof(out, "%d member(s) registered", registered)

	b, err := r.Autoload()
	var missing *registry.MissingInstallError
	switch {
	case errors.As(err, &missing):
		notify.Warningf(out, "not installed yet, run install")
	case err != nil:
		notify.Errorf(out, "%v", err)
		failed++
	default:
		notify.Successf(out, "autoload bootstrap %s", b.Path)
	}
	return failed
}
