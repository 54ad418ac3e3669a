package command

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"whitespace only", " \n\t\n", nil},
		{"single line", "volume: 70%\n", []string{"volume: 70%"}},
		{"trims each line", "  Radio One, London \n Song Title  \n", []string{"Radio One, London", "Song Title"}},
		{"keeps inner blank line", "name\n\ntitle", []string{"name", "", "title"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitLines(tt.in))
		})
	}
}

func TestExec_Lines(t *testing.T) {
	r := New(quietLogger())

	lines := r.Lines(context.Background(), "sh", "-c", "printf ' a \\nb\\n'")
	assert.Equal(t, []string{"a", "b"}, lines)
}

func TestExec_LinesFailureIsNil(t *testing.T) {
	r := New(quietLogger())

	assert.Nil(t, r.Lines(context.Background(), "sh", "-c", "echo oops; exit 3"))
	assert.Nil(t, r.Lines(context.Background(), "/nonexistent/radio-test-binary"))
}

func TestExec_RunReturnsOutputWithError(t *testing.T) {
	r := New(quietLogger())

	lines, err := r.Run(context.Background(), "sh", "-c", "echo oops; exit 3")
	require.Error(t, err)
	assert.Equal(t, []string{"oops"}, lines)
}

func TestExec_RunEmpty(t *testing.T) {
	r := New(nil)

	_, err := r.Run(context.Background())
	assert.ErrorIs(t, err, ErrEmptyCommand)
}

func TestExec_RunCanceled(t *testing.T) {
	r := New(quietLogger())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Run(ctx, "sleep", "5")
	assert.Error(t, err)
}

func TestMock(t *testing.T) {
	m := NewMock()
	m.Respond([]string{"jazz", "rock"}, "mpc", "lsplaylists")
	m.Fail(errors.New("boom"), "mpc", "play")

	ctx := context.Background()
	assert.Equal(t, []string{"jazz", "rock"}, m.Lines(ctx, "mpc", "lsplaylists"))
	assert.Nil(t, m.Lines(ctx, "mpc", "play"))
	_, err := m.Run(ctx, "mpc", "play")
	assert.EqualError(t, err, "boom")
	assert.Equal(t, []string{"mpc lsplaylists", "mpc play", "mpc play"}, m.Calls())

	m.Reset()
	assert.Empty(t, m.Calls())
}
