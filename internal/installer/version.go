package installer

import (
	"context"
	"fmt"
	"regexp"

	"github.com/Masterminds/semver/v3"
)

var versionPattern = regexp.MustCompile(`\bv?(\d+\.\d+\.\d+(?:-[0-9A-Za-z.-]+)?)\b`)

// Version runs `<command> --version` in dir and returns the first semantic
// version found in its output.
func (e *Exec) Version(ctx context.Context, dir string) (*semver.Version, error) {
	out, err := e.run(ctx, dir, "--version")
	if err != nil {
		return nil, fmt.Errorf("querying installer version: %w", err)
	}
	return ParseVersion(out.Combined)
}

// ParseVersion extracts the first semantic version from installer output,
// e.g. "Composer version 2.7.1 2024-02-09 15:26:28".
func ParseVersion(output string) (*semver.Version, error) {
	m := versionPattern.FindStringSubmatch(output)
	if m == nil {
		return nil, fmt.Errorf("no version found in installer output %q", output)
	}
	v, err := semver.NewVersion(m[1])
	if err != nil {
		return nil, fmt.Errorf("parsing installer version %q: %w", m[1], err)
	}
	return v, nil
}

// CheckVersion reports whether v satisfies constraint. An empty constraint
// accepts any version.
func CheckVersion(v *semver.Version, constraint string) (bool, error) {
	if constraint == "" {
		return true, nil
	}
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false, fmt.Errorf("parsing version constraint %q: %w", constraint, err)
	}
	return c.Check(v), nil
}
