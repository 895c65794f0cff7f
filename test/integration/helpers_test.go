//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cli/safeexec"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir string // COMPOSER_HOME and HOME
	BaseDir string // holds the root composer.json
}

// setupTestEnv creates isolated temp directories and points Composer at them.
// The test is skipped when no composer binary is on PATH.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	if _, err := safeexec.LookPath("composer"); err != nil {
		t.Skip("composer not found on PATH")
	}

	env := &testEnv{
		HomeDir: t.TempDir(),
		BaseDir: t.TempDir(),
	}
	t.Setenv("HOME", env.HomeDir)
	t.Setenv("COMPOSER_HOME", filepath.Join(env.HomeDir, ".composer"))
	t.Setenv("COMPOSER_NO_INTERACTION", "1")
	return env
}

// writeMember creates a member package under the base directory with a PSR-4
// class so autoloading can be checked.
func writeMember(t *testing.T, baseDir, rel, name, class string) {
	t.Helper()
	ns := strings.ReplaceAll(strings.ReplaceAll(name, "/", "\\"), "-", "")
	writeFile(t, filepath.Join(baseDir, rel, "composer.json"), `{
    "name": "`+name+`",
    "version": "1.0.0",
    "autoload": {"psr-4": {"`+strings.ReplaceAll(ns, `\`, `\\`)+`\\": "src/"}}
}
`)
	writeFile(t, filepath.Join(baseDir, rel, "src", class+".php"), "<?php\nnamespace "+ns+";\nclass "+class+" {}\n")
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}
