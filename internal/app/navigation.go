// internal/app/navigation.go
package app

import (
	"context"
	"errors"

	"github.com/sylvandb/radio/internal/keymap"
	"github.com/sylvandb/radio/internal/loop"
	"github.com/sylvandb/radio/internal/menu"
	"github.com/sylvandb/radio/internal/render"
)

// Frame draws the window of the active folder.
func (a *App) Frame() []string {
	return render.Menu(a.folder.Items(), a.cur.Pos(), a.cur.Offset(), a.l.Rows(), a.l.Cols())
}

// Handle applies one action to the navigation state.
func (a *App) Handle(ctx context.Context, act keymap.Action) error {
	n := a.folder.Len()
	switch act {
	case keymap.ActionUp:
		a.cur.Up(n, a.l.Rows(), a.folder.Wrap())
	case keymap.ActionDown:
		a.cur.Down(n, a.l.Rows(), a.folder.Wrap())
	case keymap.ActionLeft:
		a.leave()
	case keymap.ActionRight, keymap.ActionSelect:
		if err := a.enter(ctx); err != nil {
			return err
		}
	}
	a.saveNavigation()
	return nil
}

// enter acts on the selected item: applets take over the display, folders
// become active and plain entries refresh their label.
func (a *App) enter(ctx context.Context) error {
	item := a.folder.Item(a.cur.Pos())
	if item == nil {
		return nil
	}
	a.log.Debug("enter", "kind", item.Kind(), "label", item.Label())

	switch item.Kind() {
	case menu.KindApplet:
		applet, ok := item.(*menu.Applet)
		if !ok {
			return nil
		}
		err := applet.Runner().Run(ctx, a.l)
		a.l.Invalidate()
		if err != nil && !errors.Is(err, loop.ErrFinish) {
			return err
		}
	case menu.KindFolder:
		folder, ok := item.(*menu.Folder)
		if !ok {
			return nil
		}
		a.folder = folder
		a.cur.Reset()
		folder.Enter(ctx)
	case menu.KindNode, menu.KindClock:
		item.Enter(ctx)
	}
	return nil
}

// leave returns to the parent folder with the folder we came from selected.
func (a *App) leave() {
	parent := a.folder.Parent()
	if parent == nil {
		return
	}
	index := max(parent.IndexOf(a.folder), 0)
	a.folder = parent
	a.cur.Focus(index, parent.Len(), a.l.Rows())
}

// Folder returns the active folder.
func (a *App) Folder() *menu.Folder { return a.folder }

// Selected returns the selected index and the first visible index.
func (a *App) Selected() (selected, top int) {
	return a.cur.Pos(), a.cur.Offset()
}
