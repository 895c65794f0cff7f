package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/mcm-labs/mcm/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Setting keys.
const (
	KeyInstaller            = "installer"
	KeyInstallerConstraint  = "installer_constraint"
	KeyBaseDir              = "base_dir"
	KeyRootName             = "root.name"
	KeyRootDescription      = "root.description"
	KeyRootMinimumStability = "root.minimum_stability"
	KeyRootPreferStable     = "root.prefer_stable"
)

var defaults = map[string]any{
	KeyInstaller:            "composer",
	KeyInstallerConstraint:  "",
	KeyBaseDir:              ".",
	KeyRootName:             "mcm/base",
	KeyRootDescription:      "MCM root composer package.",
	KeyRootMinimumStability: "dev",
	KeyRootPreferStable:     true,
}

// Settings is the resolved configuration.
type Settings struct {
	Installer           string
	InstallerConstraint string
	BaseDir             string
	Root                Root
}

// Root holds the default top-level keys of the aggregate manifest.
type Root struct {
	Name             string
	Description      string
	MinimumStability string
	PreferStable     bool
}

// Dir returns the path to the config directory (~/.mcm/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.mcm/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
// Nested keys map to variables with "_" separators (root.name -> MCM_ROOT_NAME).
func Load() {
	for key, value := range defaults {
		viper.SetDefault(key, value)
	}
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Current returns the settings resolved from defaults, file, environment and
// bound flags.
func Current() Settings {
	return Settings{
		Installer:           viper.GetString(KeyInstaller),
		InstallerConstraint: viper.GetString(KeyInstallerConstraint),
		BaseDir:             viper.GetString(KeyBaseDir),
		Root: Root{
			Name:             viper.GetString(KeyRootName),
			Description:      viper.GetString(KeyRootDescription),
			MinimumStability: viper.GetString(KeyRootMinimumStability),
			PreferStable:     viper.GetBool(KeyRootPreferStable),
		},
	}
}

// Keys returns the known setting keys, sorted.
func Keys() []string {
	keys := make([]string, 0, len(defaults))
	for k := range defaults {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set writes a config key-value pair and saves the config file. Only the
// file's own keys are written back, never defaults or environment values.
func Set(key, value string) error {
	def, ok := defaults[key]
	if !ok {
		return fmt.Errorf("unknown key %q (known keys: %s)", key, strings.Join(Keys(), ", "))
	}

	var typed any = value
	if _, isBool := def.(bool); isBool {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("key %q expects a boolean, got %q", key, value)
		}
		typed = b
	}

	if err := EnsureDir(); err != nil {
		return err
	}

	configFile := FilePath()
	file := viper.New()
	file.SetConfigFile(configFile)
	file.SetConfigType(fileType)
	if err := file.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("reading config file %s: %w", configFile, err)
	}
	file.Set(key, typed)

	if err := file.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	viper.Set(key, typed)
	return nil
}
