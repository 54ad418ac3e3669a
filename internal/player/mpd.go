package player

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/fhs/gompd/v2/mpd"
)

const (
	defaultMPDAddress = "localhost:6600"
	mpdTimeout        = 3 * time.Second
)

// MPD talks the MPD protocol directly. Each call dials a short-lived client.
type MPD struct {
	network  string
	address  string
	password string
	timeout  time.Duration
	log      *slog.Logger
}

// NewMPD returns a backend for the daemon at address. A unix socket that
// cannot be reached falls back to TCP on localhost.
func NewMPD(network, address, password string, log *slog.Logger) *MPD {
	if log == nil {
		log = slog.Default()
	}
	if network == "" {
		network = "tcp"
	}
	if address == "" {
		address = defaultMPDAddress
	}
	return &MPD{
		network:  network,
		address:  address,
		password: password,
		timeout:  mpdTimeout,
		log:      log,
	}
}

func (m *MPD) dial() (*mpd.Client, error) {
	c, err := mpd.DialAuthenticated(m.network, m.address, m.password)
	if err == nil {
		return c, nil
	}
	if m.network != "unix" {
		return nil, err
	}
	m.log.Debug("mpd socket unusable, trying tcp", "socket", m.address, "err", err)
	c, tcpErr := mpd.DialAuthenticated("tcp", defaultMPDAddress, m.password)
	if tcpErr != nil {
		return nil, errors.Join(err, tcpErr)
	}
	return c, nil
}

// do dials a fresh client and runs fn on it, bounded by ctx and the call
// timeout. The client belongs to the goroutine, so a call that times out is
// abandoned without closing the connection under it.
func (m *MPD) do(ctx context.Context, op string, fn func(*mpd.Client) error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("mpd %s: %w", op, err)
	}
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		c, err := m.dial()
		if err != nil {
			done <- fmt.Errorf("connect: %w", err)
			return
		}
		defer c.Close()
		done <- fn(c)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("mpd %s: %w", op, err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("mpd %s: %w", op, ctx.Err())
	}
}

func (m *MPD) Clear(ctx context.Context) error {
	return m.do(ctx, "clear", func(c *mpd.Client) error { return c.Clear() })
}

func (m *MPD) Volume(ctx context.Context) (int, error) {
	var v int
	err := m.do(ctx, "status", func(c *mpd.Client) error {
		status, err := c.Status()
		if err != nil {
			return err
		}
		raw, ok := status["volume"]
		if !ok {
			return ErrNoVolume
		}
		v, err = strconv.Atoi(raw)
		if err != nil || v < 0 {
			return fmt.Errorf("%w: %q", ErrNoVolume, raw)
		}
		return nil
	})
	return v, err
}

func (m *MPD) SetVolume(ctx context.Context, percent int) error {
	return m.do(ctx, "setvol", func(c *mpd.Client) error { return c.SetVolume(ClampVolume(percent)) })
}

func (m *MPD) Playlists(ctx context.Context) ([]string, error) {
	var names []string
	err := m.do(ctx, "listplaylists", func(c *mpd.Client) error {
		lists, err := c.ListPlaylists()
		if err != nil {
			return err
		}
		for _, attrs := range lists {
			if name := attrs["playlist"]; name != "" {
				names = append(names, name)
			}
		}
		return nil
	})
	return names, err
}

func (m *MPD) Load(ctx context.Context, name string) error {
	return m.do(ctx, "load", func(c *mpd.Client) error { return c.PlaylistLoad(name, -1, -1) })
}

func (m *MPD) Play(ctx context.Context) error {
	return m.do(ctx, "play", func(c *mpd.Client) error { return c.Play(-1) })
}

func (m *MPD) Pause(ctx context.Context) error {
	return m.do(ctx, "pause", func(c *mpd.Client) error { return c.Pause(true) })
}

func (m *MPD) Current(ctx context.Context) (Track, error) {
	var t Track
	err := m.do(ctx, "currentsong", func(c *mpd.Client) error {
		song, err := c.CurrentSong()
		if err != nil {
			return err
		}
		t = Track{Name: song["Name"], Title: song["Title"]}
		return nil
	})
	return t, err
}
