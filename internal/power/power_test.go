package power

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sylvandb/radio/internal/command"
	"github.com/sylvandb/radio/internal/config"
)

type fakeLogind struct {
	calls []string
	err   error
}

func (f *fakeLogind) Call(_ context.Context, method string) error {
	f.calls = append(f.calls, method)
	return f.err
}

func newTestManager(method string, run command.Runner) *Manager {
	cfg := (&config.Config{Power: config.PowerConfig{Method: method}}).GetPowerConfig()
	return New(cfg, run, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestManager_LogindPreferred(t *testing.T) {
	run := command.NewMock()
	m := newTestManager(config.PowerLogind, run)
	fake := &fakeLogind{}
	m.logind = fake

	require.NoError(t, m.Reboot(context.Background()))
	require.NoError(t, m.PowerOff(context.Background()))

	assert.Equal(t, []string{"Reboot", "PowerOff"}, fake.calls)
	assert.Empty(t, run.Calls())
}

func TestManager_LogindFailureFallsBack(t *testing.T) {
	run := command.NewMock()
	m := newTestManager(config.PowerLogind, run)
	m.logind = &fakeLogind{err: errors.New("access denied")}

	require.NoError(t, m.Reboot(context.Background()))
	assert.Equal(t, []string{"sudo reboot"}, run.Calls())
}

func TestManager_CommandMethod(t *testing.T) {
	run := command.NewMock()
	m := newTestManager(config.PowerCommand, run)

	assert.Nil(t, m.logind)
	require.NoError(t, m.PowerOff(context.Background()))
	assert.Equal(t, []string{"sudo poweroff"}, run.Calls())
}

func TestManager_CommandError(t *testing.T) {
	run := command.NewMock()
	run.Fail(errors.New("exit status 1"), "sudo", "poweroff")
	m := newTestManager(config.PowerCommand, run)

	assert.Error(t, m.PowerOff(context.Background()))
}

func TestManager_RunCustom(t *testing.T) {
	run := command.NewMock()
	m := newTestManager(config.PowerCommand, run)

	require.NoError(t, m.Run(context.Background(), []string{"sudo", "systemctl", "restart", "mpd"}))
	assert.Equal(t, []string{"sudo systemctl restart mpd"}, run.Calls())

	assert.ErrorIs(t, m.Run(context.Background(), nil), command.ErrEmptyCommand)
}
