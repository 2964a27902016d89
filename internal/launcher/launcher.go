// Package launcher starts external programs detached from the window manager.
package launcher

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// DefaultShell runs commands when no shell is configured.
const DefaultShell = "/bin/sh"

// ErrEmptyCommand is returned by Spawn for a blank command line.
var ErrEmptyCommand = errors.New("empty command")

// Launcher runs command lines through a shell in their own session. The
// shell backgrounds the command and exits, so the program is inherited by
// init rather than the manager.
type Launcher struct {
	Shell   string
	Display string

	start func(*exec.Cmd) error
}

// New returns a Launcher. An empty display leaves $DISPLAY as inherited.
func New(shell, display string) *Launcher {
	if shell == "" {
		shell = DefaultShell
	}
	return &Launcher{Shell: shell, Display: display, start: startAndReap}
}

// Command builds the process Spawn would start.
func (l *Launcher) Command(command string) *exec.Cmd {
	cmd := exec.Command(l.Shell, "-c", background(command))
	cmd.Env = environ(os.Environ(), l.Display)
	detach(cmd)
	return cmd
}

// Spawn starts command and returns without waiting for it.
func (l *Launcher) Spawn(command string) error {
	if strings.TrimSpace(command) == "" {
		return ErrEmptyCommand
	}
	if err := l.start(l.Command(command)); err != nil {
		return fmt.Errorf("spawn %q: %w", command, err)
	}
	return nil
}

// background wraps command in a group run as an asynchronous list. The
// newline keeps a trailing comment from swallowing the closing brace.
func background(command string) string {
	return "{ " + command + "\n} &"
}

// startAndReap starts the short-lived shell and collects its exit status.
func startAndReap(cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return err
	}
	go cmd.Wait()
	return nil
}

// environ returns env with DISPLAY replaced by display when it is set.
func environ(env []string, display string) []string {
	if display == "" {
		return env
	}
	out := make([]string, 0, len(env)+1)
	for _, kv := range env {
		if !strings.HasPrefix(kv, "DISPLAY=") {
			out = append(out, kv)
		}
	}
	return append(out, "DISPLAY="+display)
}
