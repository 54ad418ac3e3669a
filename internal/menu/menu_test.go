package menu

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sylvandb/radio/internal/loop"
	"github.com/sylvandb/radio/internal/player"
	"github.com/sylvandb/radio/internal/render"
)

type noopRunner struct{}

func (noopRunner) Run(context.Context, *loop.Loop) error { return nil }

func TestStatic(t *testing.T) {
	n := NewStatic("Settings")

	assert.Equal(t, "Settings", n.Label())
	assert.Equal(t, "Settings  ", n.Render(10))
	assert.Equal(t, "Sett", n.Render(4))
	assert.Equal(t, rune(MarkNode), n.Marker())
	assert.Equal(t, KindNode, n.Kind())
	assert.Nil(t, n.Parent())

	// Enter on a fixed label changes nothing.
	n.Enter(context.Background())
	assert.Equal(t, "Settings", n.Label())
}

func TestComputed_RunsAtConstructionAndEnter(t *testing.T) {
	calls := 0
	n := NewComputed(context.Background(), func(context.Context) (string, error) {
		calls++
		return "10.0.0." + string(rune('0'+calls)), nil
	})

	assert.Equal(t, 1, calls)
	assert.Equal(t, "10.0.0.1", n.Label())

	n.Enter(context.Background())
	assert.Equal(t, 2, calls)
	assert.Equal(t, "10.0.0.2", n.Label())
}

func TestComputed_ErrorLabel(t *testing.T) {
	n := NewComputed(context.Background(), func(context.Context) (string, error) {
		return "", errors.New("no route to host")
	})

	assert.Equal(t, "callerr: no route to host", n.Label())
}

func TestFolder_SetItemsReparents(t *testing.T) {
	a, b := NewStatic("a"), NewStatic("b")
	f := NewFolder("root", false, a)
	require.Same(t, f, a.Parent())

	g := NewFolder("other", true)
	g.SetItems([]Node{a, b})

	assert.Same(t, g, a.Parent())
	assert.Same(t, g, b.Parent())
	assert.Equal(t, 2, g.Len())
	assert.Equal(t, 1, g.IndexOf(b))
	assert.Equal(t, 0, g.Find("a"))
	assert.Equal(t, -1, g.Find("zzz"))
	assert.Nil(t, g.Item(5))
	assert.True(t, g.Wrap())
	assert.Equal(t, rune(MarkFolder), g.Marker())
	assert.Equal(t, KindFolder, g.Kind())
}

func TestFolder_InsertionOrder(t *testing.T) {
	f := NewFolder("root", false, NewStatic("zeta"), NewStatic("alpha"), NewStatic("mid"))

	var labels []string
	for _, n := range f.Items() {
		labels = append(labels, n.Label())
	}
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, labels)
}

func TestFolder_LoadedOnEnter(t *testing.T) {
	round := 0
	f := NewLoaded("dyn", false, func(context.Context) ([]Node, error) {
		round++
		items := make([]Node, round)
		for i := range items {
			items[i] = NewStatic("item")
		}
		return items, nil
	})
	assert.Equal(t, 0, f.Len())

	f.Enter(context.Background())
	assert.Equal(t, 1, f.Len())
	f.Enter(context.Background())
	assert.Equal(t, 2, f.Len())
	assert.Same(t, f, f.Item(1).Parent())
}

func TestFolder_LoaderError(t *testing.T) {
	f := NewLoaded("dyn", false, func(context.Context) ([]Node, error) {
		return nil, errors.New("mpd down")
	})

	f.Enter(context.Background())
	require.Equal(t, 1, f.Len())
	assert.Equal(t, "callerr: mpd down", f.Item(0).Label())
}

func TestPlaylists_SortedApplets(t *testing.T) {
	p := player.NewMock()
	p.SetPlaylists("rock", "Ambient", "jazz")

	f := NewPlaylists("Playlists", p, func(name string) Node {
		return NewApplet(name, noopRunner{})
	})
	assert.True(t, f.Wrap())

	f.Enter(context.Background())
	var labels []string
	for _, n := range f.Items() {
		labels = append(labels, n.Label())
		assert.Equal(t, KindApplet, n.Kind())
	}
	assert.Equal(t, []string{"Ambient", "jazz", "rock"}, labels)

	p.SetPlaylists("news")
	f.Enter(context.Background())
	assert.Equal(t, 1, f.Len())
}

func TestApplet(t *testing.T) {
	a := NewApplet("RGB LED", noopRunner{})

	assert.Equal(t, rune(MarkApplet), a.Marker())
	assert.Equal(t, KindApplet, a.Kind())
	assert.NotNil(t, a.Runner())
	assert.Equal(t, "RGB LED", a.Label())
}

func TestClock_ChoosesWidestFittingLayout(t *testing.T) {
	now := func() time.Time { return time.Date(2024, 3, 9, 7, 5, 2, 0, time.UTC) }
	layouts := []string{"2006-01-02 15:04 MST", "01.02 15:04:05", "01.02 15:04", "15:04:05", "150405"}
	c := NewClock(layouts, now)

	tests := []struct {
		width int
		want  string
	}{
		{30, "2024-03-09 07:05 UTC"},
		{20, "2024-03-09 07:05 UTC"},
		{15, "03.09 07:05:02"},
		{14, "03.09 07:05:02"},
		{13, "03.09 07:05"},
		{8, "07:05:02"},
		{6, "070502"},
		{3, "070"},
	}
	for _, tt := range tests {
		got := c.Render(tt.width)
		assert.Equal(t, render.Fit(tt.want, tt.width), got, "width %d", tt.width)
	}
	assert.Equal(t, KindClock, c.Kind())
	assert.Equal(t, rune(MarkNode), c.Marker())
}

func TestClock_CachesLayoutPerWidth(t *testing.T) {
	zone := time.FixedZone("UTC", 0)
	current := time.Date(2024, 3, 9, 7, 5, 2, 0, zone)
	c := NewClock([]string{"15:04 MST", "15:04"}, func() time.Time { return current })

	assert.Equal(t, "15:04 MST", c.Layout(9))

	// A longer zone name no longer fits, but the cached layout stays for the
	// same width.
	current = current.In(time.FixedZone("ACDT", 10*3600))
	assert.Equal(t, "15:04 MST", c.Layout(9))
	assert.Equal(t, "15:04", c.Layout(8))
	assert.Equal(t, "15:04", c.Layout(9))
}

func TestPathAndWalk(t *testing.T) {
	power := NewFolder("Power", false, NewStatic("Restart"))
	settings := NewFolder("Settings", false, NewStatic("IP"), power)
	root := NewFolder("radio", false, NewFolder("Playlists", true), settings)

	assert.Empty(t, Path(root))
	assert.Equal(t, []string{"Settings", "Power"}, Path(power))

	var entered []string
	f, ok := Walk(root, []string{"Settings", "Power"}, func(f *Folder) { entered = append(entered, f.Label()) })
	assert.True(t, ok)
	assert.Same(t, power, f)
	assert.Equal(t, []string{"Settings", "Power"}, entered)

	f, ok = Walk(root, []string{"Settings", "IP"}, nil)
	assert.False(t, ok)
	assert.Same(t, settings, f)

	f, ok = Walk(root, []string{"Gone"}, nil)
	assert.False(t, ok)
	assert.Same(t, root, f)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "folder", KindFolder.String())
	assert.Equal(t, "unknown", Kind(42).String())
}
