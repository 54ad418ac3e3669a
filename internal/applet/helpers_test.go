package applet

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/sylvandb/radio/internal/keymap"
	"github.com/sylvandb/radio/internal/lcd"
	"github.com/sylvandb/radio/internal/loop"
)

// fakeTime advances only when the loop sleeps.
type fakeTime struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeTime() *fakeTime {
	return &fakeTime{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (f *fakeTime) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

func (f *fakeTime) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	f.t = f.t.Add(d)
	f.mu.Unlock()
	return nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestLoop(dev lcd.Device) *loop.Loop {
	ft := newFakeTime()
	return loop.New(dev, loop.Options{
		Rows:           2,
		Cols:           16,
		TicksPerSecond: 10,
		PollsPerTick:   3,
		IdleTicks:      3000,
		Now:            ft.Now,
		Sleep:          ft.Sleep,
	}, quietLogger())
}

func press(b keymap.Button) keymap.State {
	return keymap.State{}.With(b, true)
}

// taps builds a script pressing each button once with releases between,
// starting from a released snapshot for the loop's initial read.
func taps(buttons ...keymap.Button) []keymap.State {
	script := []keymap.State{{}}
	for _, b := range buttons {
		script = append(script, press(b), keymap.State{})
	}
	return script
}
