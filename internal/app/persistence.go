// internal/app/persistence.go
package app

import (
	"context"

	"github.com/sylvandb/radio/internal/errmsg"
	"github.com/sylvandb/radio/internal/menu"
	"github.com/sylvandb/radio/internal/state"
)

// saveNavigation persists the current position.
func (a *App) saveNavigation() {
	if a.store == nil {
		return
	}
	nav := state.NavigationState{Path: menu.Path(a.folder)}
	if item := a.folder.Item(a.cur.Pos()); item != nil {
		nav.Selected = item.Label()
	}
	a.store.SaveNavigation(nav)
}

// restoreNavigation moves to the saved position. Folders on the way are
// entered so loaded folders fill in; whatever part of the path still exists
// is used.
func (a *App) restoreNavigation(ctx context.Context) {
	if a.store == nil {
		return
	}
	nav, err := a.store.GetNavigation()
	if err != nil {
		a.log.Warn(errmsg.FormatWith(errmsg.OpStateLoad, "navigation", err))
		return
	}
	if nav == nil {
		return
	}

	folder, complete := menu.Walk(a.root, nav.Path, func(f *menu.Folder) { f.Enter(ctx) })
	a.folder = folder
	a.cur.Reset()
	if complete {
		if i := folder.Find(nav.Selected); i >= 0 {
			a.cur.Focus(i, folder.Len(), a.l.Rows())
		}
	}
	a.log.Debug("restored navigation", "path", nav.Path, "selected", nav.Selected)
}
