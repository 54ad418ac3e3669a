// Package loop runs the cooperative poll/tick loop shared by the menu and
// the applets.
package loop

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sylvandb/radio/internal/keymap"
	"github.com/sylvandb/radio/internal/lcd"
	"github.com/sylvandb/radio/internal/render"
)

// ErrFinish is returned by a Handler to end its Run.
var ErrFinish = errors.New("finish")

const releasePoll = 10 * time.Millisecond

// Handler is a screen driven by the loop.
type Handler interface {
	// Frame returns the lines to display.
	Frame() []string
	// Handle reacts to one action. Returning ErrFinish ends the Run.
	Handle(ctx context.Context, a keymap.Action) error
}

// Ticker is implemented by handlers with periodic work of their own. Tick
// runs before the loop's own tick work, only while the backlight is on.
type Ticker interface {
	Tick(ctx context.Context, tick int64)
}

// Options configures a Loop.
type Options struct {
	Rows           int
	Cols           int
	TicksPerSecond int
	PollsPerTick   int
	// RefreshTicks is the interval between periodic redraws.
	RefreshTicks int
	// IdleTicks is how long without input before the backlight goes off.
	IdleTicks int64
	// Now and Sleep replace the wall clock in tests.
	Now   func() time.Time
	Sleep func(ctx context.Context, d time.Duration) error
}

func (o Options) withDefaults() Options {
	if o.Rows <= 0 {
		o.Rows = 2
	}
	if o.Cols <= 0 {
		o.Cols = 16
	}
	if o.TicksPerSecond <= 0 {
		o.TicksPerSecond = 10
	}
	if o.PollsPerTick <= 0 {
		o.PollsPerTick = 3
	}
	if o.RefreshTicks <= 0 {
		o.RefreshTicks = o.TicksPerSecond
	}
	if o.IdleTicks <= 0 {
		o.IdleTicks = int64(300 * o.TicksPerSecond)
	}
	if o.Sleep == nil {
		o.Sleep = sleep
	}
	return o
}

// Loop owns the device, the frame renderer and the backlight. Nested Runs
// (an applet started from the menu) share the backlight and idle timer.
type Loop struct {
	dev      lcd.Device
	renderer *render.Renderer
	clock    *Clock
	log      *slog.Logger
	opts     Options
	poll     time.Duration

	backlight   bool
	lastInput   int64
	lastRefresh int64
	depth       int
}

// New creates a loop on dev. The backlight is switched on.
func New(dev lcd.Device, opts Options, log *slog.Logger) *Loop {
	if log == nil {
		log = slog.Default()
	}
	opts = opts.withDefaults()
	l := &Loop{
		dev:      dev,
		renderer: render.NewRenderer(dev),
		clock:    NewClock(opts.TicksPerSecond, opts.Now),
		log:      log,
		opts:     opts,
		poll:     time.Second / time.Duration(opts.TicksPerSecond*opts.PollsPerTick),
	}
	l.setBacklight(true)
	return l
}

// Rows returns the display height.
func (l *Loop) Rows() int { return l.opts.Rows }

// Cols returns the display width.
func (l *Loop) Cols() int { return l.opts.Cols }

// Device returns the display.
func (l *Loop) Device() lcd.Device { return l.dev }

// Clock returns the tick clock.
func (l *Loop) Clock() *Clock { return l.clock }

// Backlight reports whether the backlight is on.
func (l *Loop) Backlight() bool { return l.backlight }

// Logger returns the loop's logger.
func (l *Loop) Logger() *slog.Logger { return l.log }

// Run drives h until it returns ErrFinish (nil is returned) or ctx is done
// (ctx.Err() is returned). Buttons held when Run starts do not fire.
func (l *Loop) Run(ctx context.Context, h Handler) error {
	if l.depth == 0 {
		l.clock.Reset()
		l.lastInput = 0
		l.lastRefresh = 0
	}
	l.depth++
	defer func() { l.depth-- }()

	var d keymap.Dispatcher
	if s, err := l.dev.Buttons(); err == nil {
		d.Reset(s)
	} else {
		l.log.Warn("read buttons", "err", err)
		d.Reset(keymap.State{})
	}

	last := l.clock.Ticks()
	l.Render(h)

	for {
		if err := l.opts.Sleep(ctx, l.poll); err != nil {
			return err
		}

		t := l.clock.Ticks()
		if t != last {
			last = t
			if l.backlight {
				if tk, ok := h.(Ticker); ok {
					tk.Tick(ctx, t)
				}
				l.tick(t, h)
			}
		}

		s, err := l.dev.Buttons()
		if err != nil {
			l.log.Warn("read buttons", "err", err)
			continue
		}
		actions, changed := d.Poll(s)
		if !changed {
			continue
		}

		l.lastInput = l.clock.Ticks()
		if !l.backlight {
			l.setBacklight(true)
		}

		for _, a := range actions {
			if err := h.Handle(ctx, a); err != nil {
				if errors.Is(err, ErrFinish) {
					return nil
				}
				if ctx.Err() != nil {
					return ctx.Err()
				}
				l.log.Warn("handle action", "action", a, "err", err)
			}
		}
		l.Render(h)
	}
}

// tick is the periodic work: a redraw every RefreshTicks and the idle check.
func (l *Loop) tick(t int64, h Handler) {
	if t-l.lastRefresh >= int64(l.opts.RefreshTicks) {
		l.lastRefresh = t
		l.Render(h)
	}
	if t-l.lastInput > l.opts.IdleTicks {
		l.log.Debug("idle, backlight off", "tick", t)
		l.setBacklight(false)
	}
}

func (l *Loop) setBacklight(on bool) {
	if err := l.dev.SetBacklight(on); err != nil {
		l.log.Warn("set backlight", "on", on, "err", err)
	}
	l.backlight = on
}

// Render shows h's frame unless it is already on the display.
func (l *Loop) Render(h Handler) {
	l.Show(h.Frame())
}

// Show displays frame unless it is already on the display.
func (l *Loop) Show(frame []string) {
	if err := l.renderer.Show(frame); err != nil {
		l.log.Warn("write display", "err", err)
	}
}

// Invalidate forces the next Render to write.
func (l *Loop) Invalidate() {
	l.renderer.Invalidate()
}

// AwaitRelease polls until no button is pressed. A read error counts as
// released.
func (l *Loop) AwaitRelease(ctx context.Context) error {
	for {
		s, err := l.dev.Buttons()
		if err != nil {
			l.log.Warn("read buttons", "err", err)
			return nil
		}
		if !s.Any() {
			return nil
		}
		if err := l.opts.Sleep(ctx, releasePoll); err != nil {
			return err
		}
	}
}

// Finish waits for the buttons to be released and returns ErrFinish, the
// usual way for an applet to exit on left.
func (l *Loop) Finish(ctx context.Context) error {
	if err := l.AwaitRelease(ctx); err != nil {
		return err
	}
	return ErrFinish
}

// Off turns the backlight off regardless of idle state.
func (l *Loop) Off() {
	l.setBacklight(false)
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
