package applet

import (
	"context"
	"log/slog"
	"strings"

	"github.com/sylvandb/radio/internal/keymap"
	"github.com/sylvandb/radio/internal/lcd"
	"github.com/sylvandb/radio/internal/loop"
	"github.com/sylvandb/radio/internal/render"
	"github.com/sylvandb/radio/internal/state"
)

var channelNames = [3]string{"Red", "Green", "Blue"}

const indicatorHelp = "up-On, dn-Off"

// Indicator sets the three LED channels one at a time.
type Indicator struct {
	store state.Interface
	log   *slog.Logger

	l        *loop.Loop
	leds     [3]bool
	selected int
}

// NewIndicator returns the LED screen starting from initial. store may be
// nil when persistence is disabled.
func NewIndicator(initial state.Indicator, store state.Interface, log *slog.Logger) *Indicator {
	if log == nil {
		log = slog.Default()
	}
	return &Indicator{
		store: store,
		log:   log,
		leds:  [3]bool{initial.Red, initial.Green, initial.Blue},
	}
}

// Apply mirrors the channels to dev.
func (a *Indicator) Apply(dev lcd.Device) error {
	return dev.SetColor(a.leds[0], a.leds[1], a.leds[2])
}

// Channels returns the current channel states.
func (a *Indicator) Channels() state.Indicator {
	return state.Indicator{Red: a.leds[0], Green: a.leds[1], Blue: a.leds[2]}
}

func (a *Indicator) Run(ctx context.Context, l *loop.Loop) error {
	a.l = l
	if err := l.Device().Clear(); err != nil {
		a.log.Warn("clear display", "err", err)
	}
	l.Invalidate()
	return l.Run(ctx, a)
}

func (a *Indicator) Frame() []string {
	names := make([]string, len(channelNames))
	for i := range channelNames {
		names[i] = channelNames[(a.selected+i)%len(channelNames)]
	}
	return render.Lines([]string{strings.Join(names, "-"), indicatorHelp}, a.l.Rows(), a.l.Cols())
}

func (a *Indicator) Handle(ctx context.Context, act keymap.Action) error {
	switch act {
	case keymap.ActionLeft:
		return a.l.Finish(ctx)
	case keymap.ActionRight:
		a.selected = (a.selected + 1) % len(a.leds)
		return nil
	case keymap.ActionSelect:
		return a.set(!a.leds[a.selected])
	case keymap.ActionUp:
		return a.set(true)
	case keymap.ActionDown:
		return a.set(false)
	}
	return nil
}

func (a *Indicator) set(on bool) error {
	a.leds[a.selected] = on
	if err := a.Apply(a.l.Device()); err != nil {
		return err
	}
	if a.store != nil {
		return a.store.SaveIndicator(a.Channels())
	}
	return nil
}

// Verify Indicator is a loop handler at compile time.
var _ loop.Handler = (*Indicator)(nil)
