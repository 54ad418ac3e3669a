package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/sylvandb/radio/internal/app"
	"github.com/sylvandb/radio/internal/command"
	"github.com/sylvandb/radio/internal/config"
	"github.com/sylvandb/radio/internal/errmsg"
	"github.com/sylvandb/radio/internal/lcd"
	"github.com/sylvandb/radio/internal/loop"
	"github.com/sylvandb/radio/internal/onlyone"
	"github.com/sylvandb/radio/internal/player"
	"github.com/sylvandb/radio/internal/power"
	"github.com/sylvandb/radio/internal/state"
	"github.com/sylvandb/radio/internal/stderr"
	"github.com/sylvandb/radio/internal/sysinfo"
)

type runOptions struct {
	configPath string
	retry      bool
	driver     string
	debug      bool
}

func (o *runOptions) addFlags(fs *flag.FlagSet) {
	fs.StringVar(&o.configPath, "config", "", "extra config file, read last")
	fs.BoolVar(&o.retry, "retry", false, "retry the lock and display until they succeed")
	fs.StringVar(&o.driver, "driver", "", "display driver: plate, backpack or sim")
	fs.BoolVar(&o.debug, "debug", false, "log at debug level")
}

// loadConfig reads the config and applies the command line overrides.
func (o *runOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if o.driver != "" {
		driver := strings.ToLower(o.driver)
		switch driver {
		case config.DriverPlate, config.DriverBackpack, config.DriverSim:
		default:
			return nil, fmt.Errorf("unknown display driver %q", o.driver)
		}
		cfg.Display.Driver = driver
	}
	return cfg, nil
}

func run(ctx context.Context, o *runOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := o.loadConfig()
	if err != nil {
		return err
	}
	display := cfg.GetDisplayConfig()

	log, logCloser, err := newLogger(cfg.Log, display.Driver, o.debug, os.Stderr)
	if err != nil {
		return err
	}
	if logCloser != nil {
		defer logCloser.Close()
	}
	slog.SetDefault(log)

	if display.Driver == config.DriverSim {
		capture, err := stderr.Start(log)
		if err != nil {
			log.Warn("capture stderr", "err", err)
		} else {
			defer capture.Stop()
		}
	}

	// The first signal ends the run; the handler is then dropped so a
	// second one kills the process.
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
	defer stop()
	go func() {
		<-ctx.Done()
		stop()
	}()

	loopCfg := cfg.GetLoopConfig()
	lockCfg := cfg.GetLockConfig()
	locker := onlyone.New(lockCfg.Dir)
	defer func() {
		if err := locker.ReleaseAll(); err != nil {
			log.Warn("release locks", "err", err)
		}
	}()

	err = retry(ctx, o.retry, loopCfg.RetryDelay, log, "lock", func() error {
		return locker.Acquire(lockCfg.Name)
	})
	if err != nil {
		return startupError(ctx, fmt.Errorf("lock %s: %w", locker.Path(lockCfg.Name), err))
	}

	var dev lcd.Device
	err = retry(ctx, o.retry, loopCfg.RetryDelay, log, "display", func() error {
		var err error
		dev, err = lcd.Open(display, locker, log)
		return err
	})
	if err != nil {
		return startupError(ctx, err)
	}
	defer func() {
		if err := dev.Close(); err != nil {
			log.Warn("close display", "err", err)
		}
	}()

	store := openState(cfg, log)
	if store != nil {
		defer func() {
			if err := store.Close(); err != nil {
				log.Warn("close state", "err", err)
			}
		}()
	}

	runner := command.New(log)
	p := newPlayer(cfg.GetPlayerConfig(), runner, log)

	l := loop.New(dev, loop.Options{
		Rows:           display.Rows,
		Cols:           display.Cols,
		TicksPerSecond: loopCfg.TicksPerSecond,
		PollsPerTick:   loopCfg.PollsPerTick,
		RefreshTicks:   loopCfg.RefreshTicks,
		IdleTicks:      loopCfg.IdleTicks(),
	}, log)

	tree := app.BuildTree(ctx, app.Deps{
		Config: cfg,
		Player: p,
		Power:  power.New(cfg.GetPowerConfig(), runner, log),
		Info:   sysinfo.New(runner, cfg.GetStatusConfig().IPCommand),
		Store:  store,
		Log:    log,
	})
	if err := tree.Indicator.Apply(dev); err != nil {
		log.Warn(errmsg.Format(errmsg.OpIndicatorRestore, err))
	}

	log.Info("started", "driver", display.Driver, "version", version)
	return app.New(tree.Root, l, p, store, log).Run(ctx)
}

// startupError maps a startup failure after a signal to a clean exit.
func startupError(ctx context.Context, err error) error {
	if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
		return nil
	}
	return err
}

// retry runs fn until it succeeds when enabled, waiting delay between
// attempts. Without retry the first error is returned.
func retry(ctx context.Context, enabled bool, delay time.Duration, log *slog.Logger, what string, fn func() error) error {
	for {
		err := fn()
		if err == nil || !enabled {
			return err
		}
		log.Warn("startup failed, retrying", "what", what, "err", err, "delay", delay)

		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
	}
}

// openState opens the state database, or returns nil when persistence is
// disabled or unavailable.
func openState(cfg *config.Config, log *slog.Logger) state.Interface {
	if !cfg.StateEnabled() {
		return nil
	}
	m, err := state.Open(cfg.State.Path)
	if err != nil {
		log.Warn(errmsg.Format(errmsg.OpStateOpen, err), "persistence", false)
		return nil
	}
	return m
}

func newPlayer(cfg config.PlayerConfig, runner command.Runner, log *slog.Logger) player.Interface {
	if cfg.Backend == config.BackendMPD {
		return player.NewMPD(cfg.Network, cfg.Address, cfg.Password, log)
	}
	return player.NewMpc(runner, cfg.Command)
}
