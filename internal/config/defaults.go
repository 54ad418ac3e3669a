package config

import (
	"slices"
	"time"
)

// Display drivers.
const (
	DriverPlate    = "plate"
	DriverBackpack = "backpack"
	DriverSim      = "sim"
)

// Player backends.
const (
	BackendMpc = "mpc"
	BackendMPD = "mpd"
)

// Power methods.
const (
	PowerLogind  = "logind"
	PowerCommand = "command"
)

// DefaultVolumes are the preset volume steps.
var DefaultVolumes = []int{0, 10, 40, 60, 70, 80, 85, 90, 95, 100}

// DefaultClockFormats go from full date with zone to digits only.
var DefaultClockFormats = []string{
	"2006-01-02 15:04 MST",
	"01.02 15:04:05",
	"01.02 15:04",
	"15:04:05",
	"150405",
}

// GetDisplayConfig returns the display configuration with defaults applied.
func (c *Config) GetDisplayConfig() DisplayConfig {
	cfg := c.Display

	switch cfg.Driver {
	case DriverPlate, DriverBackpack, DriverSim:
	default:
		cfg.Driver = DriverPlate
	}
	if cfg.Rows <= 0 {
		cfg.Rows = 2
	}
	if cfg.Cols <= 0 {
		cfg.Cols = 16
	}
	if cfg.I2CBus == "" {
		cfg.I2CBus = "1"
	}
	if cfg.I2CAddr <= 0 || cfg.I2CAddr > 0x7f {
		cfg.I2CAddr = 0x20
	}
	if cfg.Baud <= 0 {
		cfg.Baud = 9600
	}
	if cfg.SerialPort == "" {
		cfg.SerialPort = "/dev/ttyACM0"
	}

	return cfg
}

// GetLoopConfig returns the loop configuration with defaults applied.
func (c *Config) GetLoopConfig() LoopConfig {
	cfg := c.Loop

	if cfg.TicksPerSecond <= 0 || cfg.TicksPerSecond > 100 {
		cfg.TicksPerSecond = 10
	}
	if cfg.PollsPerTick <= 0 {
		cfg.PollsPerTick = 3
	}
	if cfg.RefreshTicks <= 0 {
		cfg.RefreshTicks = cfg.TicksPerSecond
	}
	if cfg.IdleSeconds <= 0 {
		cfg.IdleSeconds = 300
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 5 * time.Second
	}

	return cfg
}

// IdleTicks returns the backlight timeout in ticks.
func (l LoopConfig) IdleTicks() int64 {
	return int64(l.IdleSeconds) * int64(l.TicksPerSecond)
}

// GetClockFormats returns the clock layouts, widest first.
func (c *Config) GetClockFormats() []string {
	if len(c.Clock.Formats) == 0 {
		return slices.Clone(DefaultClockFormats)
	}
	return slices.Clone(c.Clock.Formats)
}

// GetPlayerConfig returns the player configuration with defaults applied.
func (c *Config) GetPlayerConfig() PlayerConfig {
	cfg := c.Player

	switch cfg.Backend {
	case BackendMpc, BackendMPD:
	default:
		cfg.Backend = BackendMpc
	}
	if len(cfg.Command) == 0 {
		cfg.Command = []string{"mpc"}
	}
	if cfg.Network == "" {
		cfg.Network = "tcp"
	}
	if cfg.Address == "" {
		cfg.Address = "localhost:6600"
	}
	if cfg.DefaultVolume == nil || *cfg.DefaultVolume < 0 || *cfg.DefaultVolume > 100 {
		v := 70
		cfg.DefaultVolume = &v
	}
	if len(cfg.Volumes) == 0 || !slices.IsSorted(cfg.Volumes) {
		cfg.Volumes = slices.Clone(DefaultVolumes)
	}
	if cfg.UpdateTicks <= 0 {
		cfg.UpdateTicks = 20
	}
	if cfg.ScrollTicks <= 0 {
		cfg.ScrollTicks = 3
	}
	if cfg.DwellTicks <= 0 {
		cfg.DwellTicks = 10
	}

	return cfg
}

// GetPowerConfig returns the power configuration with defaults applied.
// Custom commands without a label or argv are dropped.
func (c *Config) GetPowerConfig() PowerConfig {
	cfg := c.Power

	switch cfg.Method {
	case PowerLogind, PowerCommand:
	default:
		cfg.Method = PowerLogind
	}
	if len(cfg.RebootCommand) == 0 {
		cfg.RebootCommand = []string{"sudo", "reboot"}
	}
	if len(cfg.PoweroffCommand) == 0 {
		cfg.PoweroffCommand = []string{"sudo", "poweroff"}
	}

	var commands []CustomCommand
	for _, cmd := range cfg.Commands {
		if cmd.Label == "" || len(cmd.Command) == 0 {
			continue
		}
		if cmd.Message == "" {
			cmd.Message = cmd.Label + "..."
		}
		commands = append(commands, cmd)
	}
	cfg.Commands = commands

	return cfg
}

// GetStatusConfig returns the status configuration with defaults applied.
func (c *Config) GetStatusConfig() StatusConfig {
	cfg := c.Status

	if len(cfg.IPCommand) == 0 {
		cfg.IPCommand = []string{"hostname", "-I"}
	}
	if cfg.DiskPath == "" {
		cfg.DiskPath = "/"
	}

	return cfg
}

// GetLockConfig returns the lock configuration with defaults applied.
func (c *Config) GetLockConfig() LockConfig {
	cfg := c.Lock

	if cfg.Dir == "" {
		cfg.Dir = "/dev/shm"
	}
	if cfg.Name == "" {
		cfg.Name = appName
	}

	return cfg
}

// StateEnabled reports whether persistence is enabled (the default).
func (c *Config) StateEnabled() bool {
	return c.State.Enabled == nil || *c.State.Enabled
}
