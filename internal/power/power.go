// Package power reboots or powers off the machine through logind, falling
// back to configured commands.
package power

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sylvandb/radio/internal/command"
	"github.com/sylvandb/radio/internal/config"
)

// Interface is what the power screens call.
type Interface interface {
	Reboot(ctx context.Context) error
	PowerOff(ctx context.Context) error
	// Run executes a custom command.
	Run(ctx context.Context, argv []string) error
}

// caller invokes a logind manager method.
type caller interface {
	Call(ctx context.Context, method string) error
}

// errUnavailable is returned by the logind stub.
var errUnavailable = errors.New("logind unavailable")

// Manager performs power actions.
type Manager struct {
	method   string
	reboot   []string
	poweroff []string
	run      command.Runner
	logind   caller
	log      *slog.Logger
}

// Verify Manager implements Interface at compile time.
var _ Interface = (*Manager)(nil)

// New returns a Manager for cfg. Commands run through run.
func New(cfg config.PowerConfig, run command.Runner, log *slog.Logger) *Manager {
	if log == nil {
		log = slog.Default()
	}
	m := &Manager{
		method:   cfg.Method,
		reboot:   cfg.RebootCommand,
		poweroff: cfg.PoweroffCommand,
		run:      run,
		log:      log,
	}
	if cfg.Method == config.PowerLogind {
		m.logind = newLogind(log)
	}
	return m
}

func (m *Manager) Reboot(ctx context.Context) error {
	return m.do(ctx, "Reboot", m.reboot)
}

func (m *Manager) PowerOff(ctx context.Context) error {
	return m.do(ctx, "PowerOff", m.poweroff)
}

func (m *Manager) do(ctx context.Context, method string, argv []string) error {
	if m.logind != nil {
		err := m.logind.Call(ctx, method)
		if err == nil {
			return nil
		}
		m.log.Warn("logind call failed, using command", "method", method, "err", err)
	}
	return m.Run(ctx, argv)
}

func (m *Manager) Run(ctx context.Context, argv []string) error {
	if len(argv) == 0 {
		return command.ErrEmptyCommand
	}
	m.log.Info("power command", "argv", argv)
	if _, err := m.run.Run(ctx, argv...); err != nil {
		return fmt.Errorf("power command: %w", err)
	}
	return nil
}
