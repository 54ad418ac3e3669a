// internal/player/interface.go
package player

import "context"

// Track is what the player reports as playing: the stream name and the
// current title. Either may be empty.
type Track struct {
	Name  string
	Title string
}

// Interface defines the player contract for dependency injection and testing.
type Interface interface {
	// Clear empties the queue.
	Clear(ctx context.Context) error
	// Volume returns the mixer volume in percent.
	Volume(ctx context.Context) (int, error)
	SetVolume(ctx context.Context, percent int) error
	// Playlists lists the stored playlist names, unsorted.
	Playlists(ctx context.Context) ([]string, error)
	// Load appends the named playlist to the queue.
	Load(ctx context.Context, name string) error
	Play(ctx context.Context) error
	Pause(ctx context.Context) error
	Current(ctx context.Context) (Track, error)
}

// Verify backends implement Interface at compile time.
var (
	_ Interface = (*Mpc)(nil)
	_ Interface = (*MPD)(nil)
)
