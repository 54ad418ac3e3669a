// internal/app/app.go

// Package app is the menu application: the navigation state machine over
// the tree, position persistence and the shutdown screen.
package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sylvandb/radio/internal/applet"
	"github.com/sylvandb/radio/internal/cursor"
	"github.com/sylvandb/radio/internal/errmsg"
	"github.com/sylvandb/radio/internal/loop"
	"github.com/sylvandb/radio/internal/menu"
	"github.com/sylvandb/radio/internal/player"
	"github.com/sylvandb/radio/internal/render"
	"github.com/sylvandb/radio/internal/state"
)

const cleanupTimeout = 5 * time.Second

// App navigates the menu tree on the display.
type App struct {
	root   *menu.Folder
	folder *menu.Folder
	cur    cursor.Cursor
	l      *loop.Loop
	player player.Interface
	store  state.Interface
	log    *slog.Logger
}

// Verify App is a loop handler at compile time.
var _ loop.Handler = (*App)(nil)

// New returns an App showing root. store may be nil.
func New(root *menu.Folder, l *loop.Loop, p player.Interface, store state.Interface, log *slog.Logger) *App {
	if log == nil {
		log = slog.Default()
	}
	return &App{
		root:   root,
		folder: root,
		l:      l,
		player: p,
		store:  store,
		log:    log,
	}
}

// Run empties the player queue, restores the saved position and navigates
// until ctx is cancelled. Cancellation is the normal way out and returns
// nil after the shutdown screen.
func (a *App) Run(ctx context.Context) error {
	if err := a.player.Clear(ctx); err != nil {
		a.log.Warn(errmsg.Format(errmsg.OpPlayerClear, err))
	}
	a.restoreNavigation(ctx)

	err := a.l.Run(ctx, a)
	a.shutdown(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// shutdown leaves the display blank but for the exit time, switches the
// backlight off and empties the player queue.
func (a *App) shutdown(ctx context.Context) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cleanupTimeout)
	defer cancel()

	dev := a.l.Device()
	if err := dev.Clear(); err != nil {
		a.log.Warn("clear display", "err", err)
	}
	a.l.Invalidate()
	a.l.Show(render.Lines([]string{"Exited", a.l.Clock().Now().Format(applet.TimeLayout)}, a.l.Rows(), a.l.Cols()))
	a.l.Off()
	if err := a.player.Clear(ctx); err != nil {
		a.log.Warn(errmsg.Format(errmsg.OpPlayerClear, err))
	}
	a.log.Info("exited")
}
