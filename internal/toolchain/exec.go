package toolchain

import (
	"context"
	"log/slog"
	"os"
	"os/exec"

	"github.com/pkg/errors"
)

// Executes external commands.
//
// Build stages depend on this interface rather than on os/exec so tests can
// substitute a fake that records invocations instead of spawning processes.
type Runner interface {
	Run(ctx context.Context, cmd Command) error
}

// Runs commands as host processes.
//
// The child inherits the parent environment, including the MSVC developer
// prompt variables verified by [CheckEnv], and writes directly to the
// process's stdout and stderr so compiler output stays visible.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, cmd Command) error {
	slog.Debug("exec", "cmd", cmd.String())

	c := exec.CommandContext(ctx, cmd.Path, cmd.Args...)
	c.Dir = cmd.Dir
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr

	if err := c.Run(); err != nil {
		return errors.Wrapf(err, "run %s", cmd.Path)
	}
	return nil
}
