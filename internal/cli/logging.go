package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"github.com/sylvandb/radio/internal/config"
)

// simLogFile is used by the simulator when no log file is configured, so
// log lines stay off the terminal it draws on.
const simLogFile = "radio/radio.log"

// parseLevel maps a config level name to a slog level. Unknown names are
// info.
func parseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// newLogger builds the text logger for cfg. The returned closer closes the
// log file, if any.
func newLogger(cfg config.LogConfig, driver string, debug bool, stderr io.Writer) (*slog.Logger, io.Closer, error) {
	level := parseLevel(cfg.Level)
	if debug {
		level = slog.LevelDebug
	}

	path := cfg.File
	if path == "" && driver == config.DriverSim {
		p, err := xdg.StateFile(simLogFile)
		if err != nil {
			return nil, nil, fmt.Errorf("log file: %w", err)
		}
		path = p
	}

	var (
		w      = stderr
		closer io.Closer
	)
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w, closer = f, f
	}

	log := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	return log, closer, nil
}
