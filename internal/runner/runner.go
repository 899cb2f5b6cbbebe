// Package runner launches external tools (git, dependency managers, editors)
// attached to the user's terminal.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/NikitaCOEUR/ppm/internal/logger"
	"github.com/NikitaCOEUR/ppm/internal/perrors"
)

// Runner starts external commands
type Runner interface {
	// Run executes name with args in dir and waits for it to exit. A non-zero
	// exit or a failure to start is returned as *perrors.SubprocessError.
	Run(ctx context.Context, dir, name string, args ...string) error
	// LookPath resolves name on PATH
	LookPath(name string) (string, error)
}

// Exec runs commands as child processes sharing the given streams
type Exec struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	log *logger.Logger
}

// New creates an Exec runner that inherits the process's terminal
func New(log *logger.Logger) *Exec {
	if log == nil {
		log = logger.Discard()
	}
	return &Exec{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		log:    log,
	}
}

// LookPath implements Runner
func (e *Exec) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// Run implements Runner
func (e *Exec) Run(ctx context.Context, dir, name string, args ...string) error {
	commandLine := strings.Join(append([]string{name}, args...), " ")

	path, err := exec.LookPath(name)
	if err != nil {
		return perrors.NewSubprocessError(name, -1, fmt.Sprintf("%s: command not found", name), err)
	}

	e.log.Debug().Str("cmd", name).Strs("args", args).Str("dir", dir).Msg("Running command")

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Dir = dir
	cmd.Stdin = e.Stdin
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code := exitErr.ExitCode()
			e.log.Debug().Str("cmd", commandLine).Int("exit_code", code).Msg("Command failed")
			return perrors.NewSubprocessError(name, code, fmt.Sprintf("%s exited with status %d", commandLine, code), err)
		}
		return perrors.NewSubprocessError(name, -1, fmt.Sprintf("failed to run %s", commandLine), err)
	}
	return nil
}
