package player

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sylvandb/radio/internal/command"
)

func TestParseVolume(t *testing.T) {
	tests := []struct {
		line    string
		want    int
		wantErr bool
	}{
		{"volume: 70%", 70, false},
		{"volume:100%", 100, false},
		{"volume:  5%", 5, false},
		{"volume: n/a", 0, true},
		{"garbage", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := ParseVolume(tt.line)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrNoVolume)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMpc_Volume(t *testing.T) {
	run := command.NewMock()
	run.Respond([]string{"volume: 85%"}, "mpc", "volume")
	m := NewMpc(run, nil)

	v, err := m.Volume(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 85, v)
}

func TestMpc_VolumeEmptyOutput(t *testing.T) {
	m := NewMpc(command.NewMock(), nil)

	_, err := m.Volume(context.Background())
	assert.ErrorIs(t, err, ErrNoVolume)
}

func TestMpc_CommandPrefix(t *testing.T) {
	run := command.NewMock()
	m := NewMpc(run, []string{"mpc", "-h", "radio.local"})
	ctx := context.Background()

	require.NoError(t, m.Clear(ctx))
	require.NoError(t, m.SetVolume(ctx, 140))
	require.NoError(t, m.Load(ctx, "Jazz FM"))
	require.NoError(t, m.Play(ctx))
	require.NoError(t, m.Pause(ctx))

	assert.Equal(t, []string{
		"mpc -h radio.local clear",
		"mpc -h radio.local volume 100",
		"mpc -h radio.local load Jazz FM",
		"mpc -h radio.local play",
		"mpc -h radio.local pause",
	}, run.Calls())
}

func TestMpc_Playlists(t *testing.T) {
	run := command.NewMock()
	run.Respond([]string{"rock", "", "jazz"}, "mpc", "lsplaylists")
	m := NewMpc(run, nil)

	names, err := m.Playlists(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"rock", "jazz"}, names)
}

func TestMpc_PlaylistsError(t *testing.T) {
	run := command.NewMock()
	run.Fail(errors.New("exit status 1"), "mpc", "lsplaylists")
	m := NewMpc(run, nil)

	_, err := m.Playlists(context.Background())
	assert.Error(t, err)
}

func TestMpc_Current(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  Track
	}{
		{"both", []string{"name:Radio Swiss Jazz, Basel", "title:Miles Davis - So What"}, Track{"Radio Swiss Jazz, Basel", "Miles Davis - So What"}},
		{"no name", []string{"name:", "title:Song"}, Track{"", "Song"}},
		{"nothing playing", nil, Track{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run := command.NewMock()
			run.Respond(tt.lines, "mpc", "-f", currentFormat, "current")
			m := NewMpc(run, nil)

			got, err := m.Current(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
