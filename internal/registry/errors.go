package registry

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mcm-labs/mcm/internal/manifest"
)

// ErrAlreadyRegistered is wrapped in a *ValidationError when a member's
// package name is already pulled in through another path reference.
var ErrAlreadyRegistered = errors.New("package is already registered")

// ErrEmptyName is wrapped in a *ValidationError when a member manifest has no
// package name.
var ErrEmptyName = errors.New("package name cannot be empty")

// ValidationError reports a member manifest that cannot be registered or
// unregistered. The aggregate manifest is never modified when one is returned.
type ValidationError struct {
	Op     string // "register" or "unregister"
	Path   string // member manifest path
	Issues []manifest.ValidationIssue
	Err    error
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	switch {
	case errors.Is(e.Err, ErrEmptyName):
		fmt.Fprintf(&b, "%v in %s", e.Err, e.Path)
	case e.Err != nil:
		fmt.Fprintf(&b, "%s: %v", e.Path, e.Err)
	default:
		fmt.Fprintf(&b, "%s: invalid member manifest", e.Path)
	}
	for _, issue := range e.Issues {
		b.WriteString("\n  - ")
		b.WriteString(issue.String())
	}
	return b.String()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// MissingInstallError is returned by Autoload when the installer has not
// produced the bootstrap file yet.
type MissingInstallError struct {
	Path string
}

func (e *MissingInstallError) Error() string {
	return fmt.Sprintf("autoload file %s not found: run install first", e.Path)
}
