package install

import (
	"context"
	"io"
	"os"
	"os/exec"

	"github.com/pkg/errors"
)

// ErrInstallFailed wraps every failure of the install step.
var ErrInstallFailed = errors.New("install failed")

// Installer runs a package manager command in a working directory.
type Installer interface {
	Install(ctx context.Context, name string, args []string, dir string) error
}

// ExecInstaller runs the command as a child process attached to the given
// streams (the caller's own stdio when left nil).
type ExecInstaller struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Install starts the command and waits for it to exit.
func (e ExecInstaller) Install(ctx context.Context, name string, args []string, dir string) error {
	if _, err := exec.LookPath(name); err != nil {
		return errors.Wrapf(ErrInstallFailed, "%s not found in PATH", name)
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
	if e.Stdin != nil {
		cmd.Stdin = e.Stdin
	}
	if e.Stdout != nil {
		cmd.Stdout = e.Stdout
	}
	if e.Stderr != nil {
		cmd.Stderr = e.Stderr
	}

	err := cmd.Run()
	if err != nil && ctx.Err() != nil {
		return errors.Wrapf(ErrInstallFailed, "%s install interrupted: %v", name, ctx.Err())
	}
	return handleExitError(err, name)
}

// handleExitError converts an exec error into a descriptive one.
func handleExitError(err error, name string) error {
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return errors.Wrapf(ErrInstallFailed, "%s install exited with code %d", name, exitErr.ExitCode())
	}
	return errors.Wrapf(ErrInstallFailed, "%s install: %v", name, err)
}
