package installer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/cli/safeexec"
	"github.com/kballard/go-shellquote"
	"github.com/sirupsen/logrus"
)

// DefaultCommand is the installer used when none is configured.
const DefaultCommand = "composer"

// Exec runs the installer as a child process.
type Exec struct {
	// Command is the installer argv prefix, e.g. ["composer"] or
	// ["php", "composer.phar"].
	Command []string
	// Stream, when set, receives the combined output while the process runs.
	Stream io.Writer
	// Logger defaults to a discarding logger.
	Logger logrus.FieldLogger
}

// NewExec builds an Exec from a shell-style command string such as
// "php -d memory_limit=-1 composer.phar". An empty string selects
// DefaultCommand.
func NewExec(command string) (*Exec, error) {
	argv, err := ParseCommand(command)
	if err != nil {
		return nil, err
	}
	return &Exec{Command: argv}, nil
}

// ParseCommand splits a shell-style command string into argv.
func ParseCommand(command string) ([]string, error) {
	if strings.TrimSpace(command) == "" {
		return []string{DefaultCommand}, nil
	}
	argv, err := shellquote.Split(command)
	if err != nil {
		return nil, fmt.Errorf("parsing installer command %q: %w", command, err)
	}
	if len(argv) == 0 {
		return []string{DefaultCommand}, nil
	}
	return argv, nil
}

// Run executes `<command> <verb> [packages...]` with dir as working
// directory. A non-zero exit yields a *ProcessError together with the output.
func (e *Exec) Run(ctx context.Context, dir string, verb Verb, packages ...string) (*Output, error) {
	if err := verb.Validate(); err != nil {
		return nil, err
	}
	args := append([]string{string(verb)}, packages...)
	return e.run(ctx, dir, args...)
}

func (e *Exec) run(ctx context.Context, dir string, args ...string) (*Output, error) {
	command := e.Command
	if len(command) == 0 {
		command = []string{DefaultCommand}
	}

	bin, err := safeexec.LookPath(command[0])
	if err != nil {
		return nil, fmt.Errorf("installer %q not found: %w", command[0], err)
	}

	argv := make([]string, 0, len(command)+len(args))
	argv = append(argv, command...)
	argv = append(argv, args...)

	log := e.logger().WithFields(logrus.Fields{
		"dir":  dir,
		"args": argv,
	})
	log.Debug("running installer")

	cmd := exec.CommandContext(ctx, bin, argv[1:]...)
	cmd.Dir = dir

	var buf bytes.Buffer
	var w io.Writer = &buf
	if e.Stream != nil {
		w = io.MultiWriter(e.Stream, &buf)
	}
	cmd.Stdout = w
	cmd.Stderr = w

	err = cmd.Run()

	output := &Output{
		Args:     argv,
		Dir:      dir,
		Combined: buf.String(),
	}

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return output, fmt.Errorf("running %s: %w", argv[0], ctxErr)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			output.ExitCode = exitErr.ExitCode()
			log.WithField("exit_code", output.ExitCode).Debug("installer failed")
			return output, &ProcessError{
				Args:     argv,
				Dir:      dir,
				ExitCode: output.ExitCode,
				Output:   output.Combined,
			}
		}
		return output, fmt.Errorf("running %s: %w", argv[0], err)
	}

	log.Debug("installer finished")
	return output, nil
}

func (e *Exec) logger() logrus.FieldLogger {
	if e.Logger != nil {
		return e.Logger
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
