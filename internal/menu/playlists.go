package menu

import (
	"context"
	"slices"

	"github.com/sylvandb/radio/internal/player"
)

// NewPlaylists returns a wrapping folder listing the player's playlists in
// sorted order, rebuilt on every entry. entry builds the node for one
// playlist name.
func NewPlaylists(label string, p player.Interface, entry func(name string) Node) *Folder {
	return NewLoaded(label, true, func(ctx context.Context) ([]Node, error) {
		names, err := p.Playlists(ctx)
		if err != nil {
			return nil, err
		}
		slices.Sort(names)
		items := make([]Node, 0, len(names))
		for _, name := range names {
			items = append(items, entry(name))
		}
		return items, nil
	})
}
