// Package command runs short-lived subprocesses and returns their output as
// trimmed lines.
package command

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

// ErrEmptyCommand is returned when no argv is given.
var ErrEmptyCommand = errors.New("empty command")

// Runner executes external commands.
type Runner interface {
	// Lines runs argv and returns its trimmed output lines, or nil when the
	// command cannot be started or exits non-zero. Failures are logged.
	Lines(ctx context.Context, argv ...string) []string
	// Run runs argv and returns its trimmed output lines and any error.
	Run(ctx context.Context, argv ...string) ([]string, error)
}

// Exec runs commands with os/exec.
type Exec struct {
	log *slog.Logger
}

// Verify Exec implements Runner at compile time.
var _ Runner = (*Exec)(nil)

// New returns a Runner that logs through log.
func New(log *slog.Logger) *Exec {
	if log == nil {
		log = slog.Default()
	}
	return &Exec{log: log}
}

func (e *Exec) Lines(ctx context.Context, argv ...string) []string {
	lines, err := e.Run(ctx, argv...)
	if err != nil {
		e.log.Warn("command failed", "argv", argv, "err", err, "output", strings.Join(lines, "\n"))
		return nil
	}
	return lines
}

func (e *Exec) Run(ctx context.Context, argv ...string) ([]string, error) {
	if len(argv) == 0 {
		return nil, ErrEmptyCommand
	}
	e.log.Debug("run", "argv", argv)

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	out, err := cmd.CombinedOutput()
	lines := SplitLines(string(out))
	if err != nil {
		return lines, fmt.Errorf("%s: %w", argv[0], err)
	}
	return lines, nil
}

// SplitLines trims s and splits it into trimmed lines. Blank output gives nil.
func SplitLines(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	parts := strings.Split(s, "\n")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
