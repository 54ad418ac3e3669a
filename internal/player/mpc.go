package player

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sylvandb/radio/internal/command"
)

// ErrNoVolume is returned when the mixer volume cannot be read.
var ErrNoVolume = errors.New("volume unavailable")

// currentFormat prefixes each field so an empty stream name survives the
// line trimming of the runner.
const currentFormat = "name:[%name%]\ntitle:[%title%]"

// Mpc drives the daemon through the mpc command line client.
type Mpc struct {
	run  command.Runner
	argv []string
}

// NewMpc returns a backend running argv (for example ["mpc", "-h", "host"])
// followed by each subcommand.
func NewMpc(run command.Runner, argv []string) *Mpc {
	if len(argv) == 0 {
		argv = []string{"mpc"}
	}
	return &Mpc{run: run, argv: argv}
}

func (m *Mpc) exec(ctx context.Context, args ...string) ([]string, error) {
	argv := append(append([]string(nil), m.argv...), args...)
	return m.run.Run(ctx, argv...)
}

func (m *Mpc) Clear(ctx context.Context) error {
	_, err := m.exec(ctx, "clear")
	return err
}

func (m *Mpc) Volume(ctx context.Context) (int, error) {
	lines, err := m.exec(ctx, "volume")
	if err != nil {
		return 0, err
	}
	if len(lines) == 0 {
		return 0, ErrNoVolume
	}
	return ParseVolume(lines[0])
}

// ParseVolume reads mpc's "volume: 70%" line.
func ParseVolume(line string) (int, error) {
	_, value, ok := strings.Cut(line, ":")
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrNoVolume, line)
	}
	value = strings.TrimSuffix(strings.TrimSpace(value), "%")
	v, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNoVolume, line)
	}
	return v, nil
}

func (m *Mpc) SetVolume(ctx context.Context, percent int) error {
	_, err := m.exec(ctx, "volume", strconv.Itoa(ClampVolume(percent)))
	return err
}

func (m *Mpc) Playlists(ctx context.Context) ([]string, error) {
	lines, err := m.exec(ctx, "lsplaylists")
	if err != nil {
		return nil, err
	}
	names := lines[:0]
	for _, l := range lines {
		if l != "" {
			names = append(names, l)
		}
	}
	return names, nil
}

func (m *Mpc) Load(ctx context.Context, name string) error {
	_, err := m.exec(ctx, "load", name)
	return err
}

func (m *Mpc) Play(ctx context.Context) error {
	_, err := m.exec(ctx, "play")
	return err
}

func (m *Mpc) Pause(ctx context.Context) error {
	_, err := m.exec(ctx, "pause")
	return err
}

func (m *Mpc) Current(ctx context.Context) (Track, error) {
	lines, err := m.exec(ctx, "-f", currentFormat, "current")
	if err != nil {
		return Track{}, err
	}
	var t Track
	for _, l := range lines {
		if v, ok := strings.CutPrefix(l, "name:"); ok {
			t.Name = strings.TrimSpace(v)
		} else if v, ok := strings.CutPrefix(l, "title:"); ok {
			t.Title = strings.TrimSpace(v)
		}
	}
	return t, nil
}
