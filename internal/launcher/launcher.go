// Package launcher spawns button-mapped programs as detached processes.
//
// Launches are fire-and-forget: the driver does not wait for exit status,
// capture output, or track the child afterward. The child gets its own
// process group so panel-driver signals never reach it.
package launcher

import (
	"fmt"
	"log/slog"
	"os/exec"
	"syscall"
)

// Spawner starts a command as a detached process.
type Spawner interface {
	Spawn(tokens []string) error
}

// Launcher is the default Spawner.
type Launcher struct {
	logger *slog.Logger
}

// New creates a launcher.
func New(logger *slog.Logger) *Launcher {
	return &Launcher{logger: logger}
}

// Spawn starts tokens[0] with the remaining tokens as arguments and
// releases the child immediately. The returned error covers start failures
// only (missing executable, permissions); the child's fate is its own.
func (l *Launcher) Spawn(tokens []string) error {
	if len(tokens) == 0 {
		return fmt.Errorf("empty command")
	}

	cmd := exec.Command(tokens[0], tokens[1:]...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Stdout = nil
	cmd.Stderr = nil

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting %s: %w", tokens[0], err)
	}

	l.logger.Debug("Process started", "command", tokens[0], "pid", cmd.Process.Pid)

	// Reap the child in the background so it never becomes a zombie; the
	// exit status itself is discarded.
	go func() {
		_ = cmd.Wait()
	}()

	return nil
}
