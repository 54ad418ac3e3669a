package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const appName = "radio"

type Config struct {
	Display DisplayConfig `koanf:"display"`
	Loop    LoopConfig    `koanf:"loop"`
	Clock   ClockConfig   `koanf:"clock"`
	Player  PlayerConfig  `koanf:"player"`
	Power   PowerConfig   `koanf:"power"`
	Status  StatusConfig  `koanf:"status"`
	Lock    LockConfig    `koanf:"lock"`
	State   StateConfig   `koanf:"state"`
	Log     LogConfig     `koanf:"log"`
}

// DisplayConfig selects and configures the display/button device.
type DisplayConfig struct {
	Driver        string            `koanf:"driver"`          // "plate", "backpack" or "sim"
	Rows          int               `koanf:"rows"`            // default: 2
	Cols          int               `koanf:"cols"`            // default: 16
	I2CBus        string            `koanf:"i2c_bus"`         // plate: bus name, default "1"
	I2CAddr       int               `koanf:"i2c_addr"`        // plate: MCP23017 address, default 0x20
	BacklightPin  *int              `koanf:"backlight_pin"`   // plate: dedicated backlight pin, unset = RGB pins
	SwapGreenBlue bool              `koanf:"swap_green_blue"` // plate: boards with green and blue swapped
	SerialPort    string            `koanf:"serial_port"`     // backpack: e.g. "/dev/ttyACM0"
	Baud          int               `koanf:"baud"`            // backpack: default 9600
	Keys          map[string]string `koanf:"keys"`            // backpack: key code -> button name
}

// LoopConfig holds the event loop cadence.
type LoopConfig struct {
	TicksPerSecond int           `koanf:"ticks_per_second"` // default: 10
	PollsPerTick   int           `koanf:"polls_per_tick"`   // default: 3
	RefreshTicks   int           `koanf:"refresh_ticks"`    // default: one second of ticks
	IdleSeconds    int           `koanf:"idle_seconds"`     // backlight timeout, default: 300
	RetryDelay     time.Duration `koanf:"retry_delay"`      // --retry backoff, default: 5s
}

// ClockConfig holds the clock node's layouts, widest first.
type ClockConfig struct {
	Formats []string `koanf:"formats"`
}

// PlayerConfig selects the music player backend.
type PlayerConfig struct {
	Backend       string   `koanf:"backend"`        // "mpc" (default) or "mpd"
	Command       []string `koanf:"command"`        // mpc: argv prefix, default ["mpc"]
	Network       string   `koanf:"network"`        // mpd: "unix" or "tcp"
	Address       string   `koanf:"address"`        // mpd: socket path or host:port
	Password      string   `koanf:"password"`       // mpd: optional password
	DefaultVolume *int     `koanf:"default_volume"` // volume set when a playlist starts, default: 70
	Volumes       []int    `koanf:"volumes"`        // preset volume steps, ascending
	UpdateTicks   int      `koanf:"update_ticks"`   // ticks between track queries, default: 20
	ScrollTicks   int      `koanf:"scroll_ticks"`   // ticks skipped between scroll steps, default: 3
	DwellTicks    int      `koanf:"dwell_ticks"`    // pause at each end of a scroll, default: 10
}

// PowerConfig holds the power actions.
type PowerConfig struct {
	Method          string          `koanf:"method"` // "logind" (default) or "command"
	RebootCommand   []string        `koanf:"reboot_command"`
	PoweroffCommand []string        `koanf:"poweroff_command"`
	Commands        []CustomCommand `koanf:"commands"`
}

// CustomCommand is an extra menu entry running a recovery command.
type CustomCommand struct {
	Label   string   `koanf:"label"`
	Message string   `koanf:"message"`
	Command []string `koanf:"command"`
}

// StatusConfig configures the status rows of the settings folder.
type StatusConfig struct {
	IPCommand []string `koanf:"ip_command"` // default: ["hostname", "-I"]
	DiskPath  string   `koanf:"disk_path"`  // default: "/"
}

// LockConfig configures the single-instance lock.
type LockConfig struct {
	Dir  string `koanf:"dir"`  // default: /dev/shm
	Name string `koanf:"name"` // default: radio
}

// StateConfig configures persistence.
type StateConfig struct {
	Enabled *bool  `koanf:"enabled"` // default: true
	Path    string `koanf:"path"`    // default: $XDG_DATA_HOME/radio/radio.db
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `koanf:"level"` // "debug", "info", "warn", "error"
	File  string `koanf:"file"`  // empty logs to stderr
}

// Load reads the config files in order of priority (last wins). Extra paths,
// such as the one given on the command line, come last and must exist.
func Load(extra ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	for _, path := range extra {
		if path == "" {
			continue
		}
		if err := k.Load(file.Provider(expandPath(path)), toml.Parser()); err != nil {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.Display.Driver = strings.ToLower(strings.TrimSpace(cfg.Display.Driver))
	cfg.Player.Backend = strings.ToLower(strings.TrimSpace(cfg.Player.Backend))
	cfg.Lock.Dir = expandPath(cfg.Lock.Dir)
	cfg.State.Path = expandPath(cfg.State.Path)
	cfg.Log.File = expandPath(cfg.Log.File)
	cfg.Status.DiskPath = expandPath(cfg.Status.DiskPath)

	return cfg, nil
}

func getConfigPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/radio/config.toml
		filepath.Join(xdg.ConfigHome, appName, "config.toml"),
		// 2. ./config.toml (pwd)
		"config.toml",
	}
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
