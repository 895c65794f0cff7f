package installer

import (
	"context"
	"errors"
	"fmt"

	"al.essio.dev/pkg/shellescape"
)

// Installer runs one installer verb in dir.
type Installer interface {
	// Run executes verb in dir with the given package names passed through
	// unmodified. An empty package list means "everything".
	Run(ctx context.Context, dir string, verb Verb, packages ...string) (*Output, error)
}

// Verb is an installer sub-command.
type Verb string

// Supported verbs.
const (
	VerbInstall Verb = "install"
	VerbUpdate  Verb = "update"
)

// ErrUnknownVerb is returned for any verb other than install and update.
var ErrUnknownVerb = errors.New("unknown installer verb")

// Validate reports whether v is a supported verb.
func (v Verb) Validate() error {
	switch v {
	case VerbInstall, VerbUpdate:
		return nil
	default:
		return fmt.Errorf("%w %q: supported verbs are %q and %q", ErrUnknownVerb, string(v), VerbInstall, VerbUpdate)
	}
}

// Output captures the result of an installer run.
type Output struct {
	Args     []string // full argv, command first
	Dir      string
	ExitCode int
	Combined string // interleaved stdout and stderr
}

// ProcessError is returned when the installer exits with a non-zero code.
// Manifest edits made before the run are not rolled back.
type ProcessError struct {
	Args     []string
	Dir      string
	ExitCode int
	Output   string
}

func (e *ProcessError) Error() string {
	msg := fmt.Sprintf("%s stopped with a non-zero exit code (%d), output:", shellescape.QuoteCommand(e.Args), e.ExitCode)
	if e.Output == "" {
		return msg + " (none)"
	}
	return msg + "\n" + e.Output
}
