package cli

import (
	"context"
	"io"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mcm-labs/mcm/internal/branding"
	"github.com/mcm-labs/mcm/internal/config"
	"github.com/mcm-labs/mcm/internal/installer"
	"github.com/mcm-labs/mcm/internal/notify"
	"github.com/mcm-labs/mcm/internal/registry"
)

// buildInfo is injected via ldflags.
type buildInfo struct {
	version string
	commit  string
	date    string
}

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	build   buildInfo
	verbose bool
}

// NewRootCmd builds the full command tree.
func NewRootCmd(version, commit, date string) *cobra.Command {
	opts := &rootOptions{build: buildInfo{version: version, commit: commit, date: date}}

	root := &cobra.Command{
		Use:   branding.CLIName(),
		Short: branding.Description(),
		Long: branding.DisplayName() + ` aggregates the composer.json files of an application and its plugins
into one root composer.json, then drives Composer to install the merged
dependency set into a shared vendor directory.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.Load()
		},
	}

	flags := root.PersistentFlags()
	flags.String("base-dir", "", "Directory holding the root composer.json (default \".\")")
	flags.String("installer", "", "Installer command, e.g. \"php composer.phar\" (default \"composer\")")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log debug details to stderr")
	bindSettings(flags)

	root.AddCommand(
		newRegisterCmd(opts),
		newUnregisterCmd(opts),
		newInstallCmd(opts),
		newUpdateCmd(opts),
		newAutoloadCmd(opts),
		newListCmd(opts),
		newValidateCmd(),
		newDoctorCmd(opts),
		newConfigCmd(),
		newVersionCmd(opts),
	)
	return root
}

// bindSettings lets the persistent flags override their config keys.
func bindSettings(flags *pflag.FlagSet) {
	for key, name := range map[string]string{
		config.KeyBaseDir:   "base-dir",
		config.KeyInstaller: "installer",
	} {
		_ = viper.BindPFlag(key, flags.Lookup(name))
	}
}

// Execute runs the root command with build info injected via ldflags. An
// interrupt cancels the running installer.
func Execute(version, commit, date string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := NewRootCmd(version, commit, date)
	if err := root.ExecuteContext(ctx); err != nil {
		notify.Errorf(root.ErrOrStderr(), "%s", err)
		return err
	}
	return nil
}

// logger returns the CLI logger: warnings only, or everything with --verbose.
func (o *rootOptions) logger(w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	l.SetLevel(logrus.WarnLevel)
	if o.verbose {
		l.SetLevel(logrus.DebugLevel)
	}
	return l
}

// newInstaller builds the process installer from the resolved settings,
// streaming its output to the command's stdout.
func (o *rootOptions) newInstaller(cmd *cobra.Command, s config.Settings) (*installer.Exec, error) {
	inst, err := installer.NewExec(s.Installer)
	if err != nil {
		return nil, err
	}
	inst.Stream = cmd.OutOrStdout()
	inst.Logger = o.logger(cmd.ErrOrStderr())
	return inst, nil
}

// openRegistry opens the registry for the configured base directory.
func (o *rootOptions) openRegistry(cmd *cobra.Command, extra ...registry.Option) (*registry.Registry, error) {
	s := config.Current()

	inst, err := o.newInstaller(cmd, s)
	if err != nil {
		return nil, err
	}
	defaults, err := registry.Root{
		Name:             s.Root.Name,
		Description:      s.Root.Description,
		MinimumStability: s.Root.MinimumStability,
		PreferStable:     s.Root.PreferStable,
	}.Document()
	if err != nil {
		return nil, err
	}

	opts := []registry.Option{
		registry.WithInstaller(inst),
		registry.WithDefaults(defaults),
		registry.WithLogger(o.logger(cmd.ErrOrStderr())),
	}
	return registry.New(s.BaseDir, append(opts, extra...)...)
}
