// Package applet implements the full-screen modes started from the menu:
// playlist playback, the RGB indicator and power actions.
package applet

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sylvandb/radio/internal/errmsg"
	"github.com/sylvandb/radio/internal/keymap"
	"github.com/sylvandb/radio/internal/loop"
	"github.com/sylvandb/radio/internal/player"
	"github.com/sylvandb/radio/internal/render"
)

// TimeLayout formats the time shown on status screens.
const TimeLayout = "01.02 15:04:05"

// PlaybackOptions tunes the playback screen.
type PlaybackOptions struct {
	// DefaultVolume is set when a playlist starts.
	DefaultVolume int
	// Presets are the ascending volume steps for up/down.
	Presets []int
	// UpdateTicks is the interval between player queries.
	UpdateTicks int
	// ScrollTicks is the pause between marquee steps.
	ScrollTicks int
	// DwellTicks is the hold at either end of a scrolled line.
	DwellTicks int
}

func (o PlaybackOptions) withDefaults() PlaybackOptions {
	if len(o.Presets) == 0 {
		o.Presets = player.DefaultPresets
	}
	if o.UpdateTicks <= 0 {
		o.UpdateTicks = 20
	}
	if o.ScrollTicks <= 0 {
		o.ScrollTicks = 3
	}
	if o.DwellTicks <= 0 {
		o.DwellTicks = 10
	}
	return o
}

// Playback plays one playlist and shows what is on.
type Playback struct {
	name   string
	player player.Interface
	opts   PlaybackOptions
	log    *slog.Logger

	l          *loop.Loop
	lines      []string
	marquee    *marquee
	state      player.State
	volume     int
	lastUpdate int64
}

// NewPlayback returns the screen for playlist name.
func NewPlayback(name string, p player.Interface, opts PlaybackOptions, log *slog.Logger) *Playback {
	if log == nil {
		log = slog.Default()
	}
	return &Playback{name: name, player: p, opts: opts.withDefaults(), log: log}
}

// Run restarts the player on the playlist and drives the screen until left.
func (a *Playback) Run(ctx context.Context, l *loop.Loop) error {
	a.l = l
	a.lines = make([]string, l.Rows())
	a.marquee = newMarquee(l.Rows(), l.Cols(), a.opts.ScrollTicks, a.opts.DwellTicks)
	a.volume = a.opts.DefaultVolume
	a.state = player.Stopped

	if err := player.Start(ctx, a.player, a.name, a.opts.DefaultVolume); err != nil {
		a.log.Warn(errmsg.FormatWith(errmsg.OpPlayerStart, a.name, err))
	} else {
		a.state = player.Playing
	}

	a.update(ctx)
	a.lastUpdate = l.Clock().Ticks()
	l.Invalidate()
	return l.Run(ctx, a)
}

// update queries the player and rebuilds the two lines.
func (a *Playback) update(ctx context.Context) {
	next, err := a.query(ctx)
	if err != nil {
		a.log.Debug(errmsg.Format(errmsg.OpPlayerUpdate, err))
		next = []string{"Update failed", a.l.Clock().Now().Format(TimeLayout)}
	}
	for r := range a.lines {
		line := ""
		if r < len(next) {
			line = next[r]
		}
		if line != a.lines[r] {
			a.lines[r] = line
			a.marquee.reset(r)
		}
	}
}

func (a *Playback) query(ctx context.Context) ([]string, error) {
	v, err := a.player.Volume(ctx)
	if err != nil {
		return nil, err
	}
	a.volume = v
	track, err := a.player.Current(ctx)
	if err != nil {
		return nil, err
	}

	name, _, _ := strings.Cut(track.Name, ",")
	name = strings.TrimSpace(render.ASCII(name))
	if name == "" {
		name = "{" + render.ASCII(a.name) + "}"
	}
	title := strings.TrimSpace(render.ASCII(track.Title))
	if title == "" {
		title = fmt.Sprintf("{volume: %d%%}", v)
	}
	return []string{name, title}, nil
}

// Tick scrolls the lines and refreshes them from the player.
func (a *Playback) Tick(ctx context.Context, t int64) {
	if t-a.lastUpdate >= int64(a.opts.UpdateTicks) {
		a.lastUpdate = t
		a.update(ctx)
	}
	a.marquee.advance(t, a.lines)
	a.l.Render(a)
}

func (a *Playback) Frame() []string {
	frame := make([]string, len(a.lines))
	for r, line := range a.lines {
		frame[r] = a.marquee.view(r, line)
	}
	return frame
}

func (a *Playback) Handle(ctx context.Context, act keymap.Action) error {
	switch act {
	case keymap.ActionLeft:
		return a.l.Finish(ctx)
	case keymap.ActionUp:
		return a.stepVolume(ctx, 1)
	case keymap.ActionDown:
		return a.stepVolume(ctx, -1)
	case keymap.ActionSelect:
		state, err := player.Toggle(ctx, a.player, a.state)
		a.state = state
		return err
	case keymap.ActionRight:
	}
	return nil
}

func (a *Playback) stepVolume(ctx context.Context, delta int) error {
	v := player.StepVolume(a.opts.Presets, a.volume, delta)
	if err := a.player.SetVolume(ctx, v); err != nil {
		return err
	}
	a.volume = v
	a.update(ctx)
	return nil
}

// State returns the tracked playback state.
func (a *Playback) State() player.State { return a.state }

// Volume returns the last known volume.
func (a *Playback) Volume() int { return a.volume }

// Verify Playback is a loop handler with its own tick at compile time.
var (
	_ loop.Handler = (*Playback)(nil)
	_ loop.Ticker  = (*Playback)(nil)
)
