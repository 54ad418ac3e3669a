// internal/app/tree.go
package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/sylvandb/radio/internal/applet"
	"github.com/sylvandb/radio/internal/config"
	"github.com/sylvandb/radio/internal/errmsg"
	"github.com/sylvandb/radio/internal/menu"
	"github.com/sylvandb/radio/internal/player"
	"github.com/sylvandb/radio/internal/power"
	"github.com/sylvandb/radio/internal/state"
	"github.com/sylvandb/radio/internal/sysinfo"
)

// Menu labels.
const (
	LabelRoot      = "radio"
	LabelPlaylists = "Playlists"
	LabelSettings  = "Settings"
	LabelIndicator = "RGB LED"
	LabelShutdown  = "Shutdown"
	LabelRestart   = "Restart"
)

const (
	shutdownMessage = "Shutting down..."
	restartMessage  = "Restarting..."
)

// Deps are the services the menu tree is built from.
type Deps struct {
	Config *config.Config
	Player player.Interface
	Power  power.Interface
	Info   *sysinfo.Info
	Store  state.Interface // nil when persistence is disabled
	Now    func() time.Time
	Log    *slog.Logger
}

// Tree is the assembled menu.
type Tree struct {
	Root      *menu.Folder
	Indicator *applet.Indicator
}

// BuildTree assembles the menu: the playlists folder and the settings
// folder with status rows, the clock, the LED screen, the power actions and
// any configured recovery commands.
func BuildTree(ctx context.Context, d Deps) *Tree {
	log := d.Log
	if log == nil {
		log = slog.Default()
	}
	now := d.Now
	if now == nil {
		now = time.Now
	}
	cfg := d.Config
	if cfg == nil {
		cfg = &config.Config{}
	}

	playerCfg := cfg.GetPlayerConfig()
	opts := applet.PlaybackOptions{
		DefaultVolume: *playerCfg.DefaultVolume,
		Presets:       playerCfg.Volumes,
		UpdateTicks:   playerCfg.UpdateTicks,
		ScrollTicks:   playerCfg.ScrollTicks,
		DwellTicks:    playerCfg.DwellTicks,
	}
	playlists := menu.NewPlaylists(LabelPlaylists, d.Player, func(name string) menu.Node {
		return menu.NewApplet(name, applet.NewPlayback(name, d.Player, opts, log))
	})

	indicator := applet.NewIndicator(loadIndicator(d.Store, log), d.Store, log)
	status := cfg.GetStatusConfig()

	settings := []menu.Node{
		menu.NewComputed(ctx, d.Info.IPAddress),
		menu.NewClock(cfg.GetClockFormats(), now),
		menu.NewComputed(ctx, d.Info.DiskFree(status.DiskPath)),
		menu.NewComputed(ctx, d.Info.Uptime),
		menu.NewApplet(LabelIndicator, indicator),
		menu.NewApplet(LabelShutdown, applet.NewPower(shutdownMessage, d.Power.PowerOff, true, log)),
		menu.NewApplet(LabelRestart, applet.NewPower(restartMessage, d.Power.Reboot, true, log)),
	}
	for _, c := range cfg.GetPowerConfig().Commands {
		argv := c.Command
		action := func(ctx context.Context) error { return d.Power.Run(ctx, argv) }
		settings = append(settings, menu.NewApplet(c.Label, applet.NewPower(c.Message, action, false, log)))
	}

	root := menu.NewFolder(LabelRoot, false,
		playlists,
		menu.NewFolder(LabelSettings, false, settings...),
	)
	return &Tree{Root: root, Indicator: indicator}
}

func loadIndicator(store state.Interface, log *slog.Logger) state.Indicator {
	if store == nil {
		return state.Indicator{}
	}
	saved, err := store.GetIndicator()
	if err != nil {
		log.Warn(errmsg.FormatWith(errmsg.OpStateLoad, "indicator", err))
		return state.Indicator{}
	}
	if saved == nil {
		return state.Indicator{}
	}
	return *saved
}
