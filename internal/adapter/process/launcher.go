// Package process implements the spawner port with os/exec.
package process

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"

	"github.com/Strob0t/runnable/internal/domain"
	"github.com/Strob0t/runnable/internal/port/spawner"
)

// Launcher starts executables as independent children.
// The child inherits stdout and stderr and is never waited for.
type Launcher struct {
	// lookPath and command are swappable for testing.
	lookPath func(file string) (string, error)
	command  func(name string, args ...string) *exec.Cmd
}

// Compile-time interface check.
var _ spawner.Spawner = (*Launcher)(nil)

// NewLauncher creates a Launcher that resolves names on PATH.
func NewLauncher() *Launcher {
	return &Launcher{lookPath: exec.LookPath, command: exec.Command}
}

// Start resolves name and starts it with args. It returns as soon as the
// process exists. A name that cannot be resolved yields an error wrapping
// domain.ErrNotFound.
func (l *Launcher) Start(name string, args ...string) (int, error) {
	path, err := l.lookPath(name)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
			return 0, fmt.Errorf("%s: %w", name, domain.ErrNotFound)
		}
		return 0, fmt.Errorf("resolve %s: %w", name, err)
	}

	cmd := l.command(path, args...) //nolint:gosec // G204: app list comes from operator config
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("start %s: %w", name, err)
	}

	pid := cmd.Process.Pid
	_ = cmd.Process.Release()
	return pid, nil
}
