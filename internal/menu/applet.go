package menu

import (
	"context"

	"github.com/sylvandb/radio/internal/loop"
	"github.com/sylvandb/radio/internal/render"
)

// Runner is a full-screen mode. Run takes over the loop until the mode
// exits.
type Runner interface {
	Run(ctx context.Context, l *loop.Loop) error
}

// Applet is the menu entry that starts a Runner.
type Applet struct {
	base
	label  string
	runner Runner
}

// NewApplet returns an entry starting r.
func NewApplet(label string, r Runner) *Applet {
	return &Applet{label: label, runner: r}
}

// Runner returns the mode started by the entry.
func (a *Applet) Runner() Runner { return a.runner }

func (a *Applet) Label() string { return a.label }

func (a *Applet) Render(width int) string { return render.Fit(a.label, width) }

func (a *Applet) Enter(context.Context) {}

func (a *Applet) Marker() rune { return MarkApplet }

func (a *Applet) Kind() Kind { return KindApplet }
