package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

// setup points the config directory at a temp home and resets viper.
func setup(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	viper.Reset()
	t.Cleanup(viper.Reset)
	return home
}

func TestFilePath(t *testing.T) {
	home := setup(t)
	want := filepath.Join(home, ".mcm", "config.yaml")
	if got := FilePath(); got != want {
		t.Errorf("FilePath() = %q, want %q", got, want)
	}
}

func TestCurrent_Defaults(t *testing.T) {
	setup(t)
	Load()

	s := Current()
	if s.Installer != "composer" {
		t.Errorf("Installer = %q, want composer", s.Installer)
	}
	if s.BaseDir != "." {
		t.Errorf("BaseDir = %q, want .", s.BaseDir)
	}
	if s.InstallerConstraint != "" {
		t.Errorf("InstallerConstraint = %q, want empty", s.InstallerConstraint)
	}
	want := Root{Name: "mcm/base", Description: "MCM root composer package.", MinimumStability: "dev", PreferStable: true}
	if s.Root != want {
		t.Errorf("Root = %+v, want %+v", s.Root, want)
	}
}

func TestCurrent_Environment(t *testing.T) {
	setup(t)
	t.Setenv("MCM_INSTALLER", "php composer.phar")
	t.Setenv("MCM_BASE_DIR", "/srv/app")
	t.Setenv("MCM_ROOT_NAME", "acme/root")
	t.Setenv("MCM_ROOT_PREFER_STABLE", "false")
	Load()

	s := Current()
	if s.Installer != "php composer.phar" {
		t.Errorf("Installer = %q", s.Installer)
	}
	if s.BaseDir != "/srv/app" {
		t.Errorf("BaseDir = %q", s.BaseDir)
	}
	if s.Root.Name != "acme/root" {
		t.Errorf("Root.Name = %q", s.Root.Name)
	}
	if s.Root.PreferStable {
		t.Error("Root.PreferStable = true, want false")
	}
}

func TestSetAndGet(t *testing.T) {
	setup(t)
	Load()

	if err := Set(KeyInstaller, "/usr/local/bin/composer"); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if err := Set(KeyRootPreferStable, "false"); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if got := Get(KeyInstaller); got != "/usr/local/bin/composer" {
		t.Errorf("Get(installer) = %q", got)
	}

	data, err := os.ReadFile(FilePath())
	if err != nil {
		t.Fatalf("reading config file: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "installer: /usr/local/bin/composer") {
		t.Errorf("config file missing installer:\n%s", content)
	}
	if !strings.Contains(content, "prefer_stable: false") {
		t.Errorf("config file missing root.prefer_stable:\n%s", content)
	}
	if strings.Contains(content, "minimum_stability") {
		t.Errorf("config file contains defaults:\n%s", content)
	}

	// A fresh load sees the persisted values.
	viper.Reset()
	Load()
	s := Current()
	if s.Installer != "/usr/local/bin/composer" || s.Root.PreferStable {
		t.Errorf("reloaded settings = %+v", s)
	}
}

func TestSet_UnknownKey(t *testing.T) {
	setup(t)
	Load()
	err := Set("mirror_url", "https://example.com")
	if err == nil {
		t.Fatal("expected error for unknown key")
	}
	if !strings.Contains(err.Error(), "base_dir") {
		t.Errorf("error = %q, want it to list known keys", err)
	}
	if _, statErr := os.Stat(FilePath()); statErr == nil {
		t.Error("config file written for an unknown key")
	}
}

func TestSet_BadBool(t *testing.T) {
	setup(t)
	Load()
	if err := Set(KeyRootPreferStable, "sometimes"); err == nil {
		t.Fatal("expected error for a non-boolean value")
	}
}

func TestKeys(t *testing.T) {
	keys := Keys()
	if len(keys) != 7 {
		t.Fatalf("Keys() = %v, want 7 keys", keys)
	}
	if keys[0] != "base_dir" {
		t.Errorf("Keys()[0] = %q, want base_dir", keys[0])
	}
}
