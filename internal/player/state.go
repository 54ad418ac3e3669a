// internal/player/state.go
package player

import "context"

// State is the playback state as tracked by the menu. The daemon is not
// queried for it.
//
//	Stopped --Start--> Playing --Toggle--> Paused --Toggle--> Playing
type State int

const (
	Stopped State = iota
	Playing
	Paused
)

// String returns the state name for debugging.
func (s State) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// Start resets the daemon to play the named playlist at volume: clear the
// queue, set the volume, load the playlist and play it.
func Start(ctx context.Context, p Interface, playlist string, volume int) error {
	if err := p.Clear(ctx); err != nil {
		return err
	}
	if err := p.SetVolume(ctx, volume); err != nil {
		return err
	}
	if err := p.Load(ctx, playlist); err != nil {
		return err
	}
	return p.Play(ctx)
}

// Toggle pauses a playing player and plays a paused or stopped one, returning
// the new state. On error the state is unchanged.
func Toggle(ctx context.Context, p Interface, s State) (State, error) {
	if s == Playing {
		if err := p.Pause(ctx); err != nil {
			return s, err
		}
		return Paused, nil
	}
	if err := p.Play(ctx); err != nil {
		return s, err
	}
	return Playing, nil
}
