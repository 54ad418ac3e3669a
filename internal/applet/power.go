package applet

import (
	"context"
	"log/slog"
	"strings"

	"github.com/sylvandb/radio/internal/errmsg"
	"github.com/sylvandb/radio/internal/keymap"
	"github.com/sylvandb/radio/internal/loop"
	"github.com/sylvandb/radio/internal/render"
)

// Action is the work behind a power screen.
type Action func(ctx context.Context) error

const (
	statusFailed = "Failed"
	statusDone   = "Done"
)

// Power shows a message and runs its action once. A final action (reboot,
// power off) that succeeds never returns to the menu: input is ignored
// until the process is stopped.
type Power struct {
	message string
	action  Action
	final   bool
	log     *slog.Logger

	l      *loop.Loop
	status string
	locked bool
}

// NewPower returns a power screen. message may span two lines with "\n".
func NewPower(message string, action Action, final bool, log *slog.Logger) *Power {
	if log == nil {
		log = slog.Default()
	}
	return &Power{message: message, action: action, final: final, log: log}
}

func (a *Power) Run(ctx context.Context, l *loop.Loop) error {
	a.l = l
	a.status = ""
	a.locked = false

	l.Invalidate()
	l.Render(a)

	err := a.action(ctx)
	switch {
	case err != nil:
		a.log.Error(errmsg.FormatWith(errmsg.OpPowerAction, a.message, err))
		a.status = statusFailed
	case a.final:
		a.log.Info("power action started, waiting for shutdown", "message", a.message)
		a.locked = true
	default:
		a.status = statusDone
	}

	return l.Run(ctx, a)
}

func (a *Power) Frame() []string {
	lines := strings.SplitN(a.message, "\n", 2)
	if a.status != "" {
		lines = []string{lines[0], a.status}
	}
	return render.Lines(lines, a.l.Rows(), a.l.Cols())
}

func (a *Power) Handle(ctx context.Context, act keymap.Action) error {
	if a.locked {
		return nil
	}
	if act == keymap.ActionLeft {
		return a.l.Finish(ctx)
	}
	return nil
}

// Verify Power is a loop handler at compile time.
var _ loop.Handler = (*Power)(nil)
