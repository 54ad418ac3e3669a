package lcd

import (
	"fmt"
	"log/slog"

	"github.com/sylvandb/radio/internal/config"
	"github.com/sylvandb/radio/internal/onlyone"
)

// Open returns the device cfg.Driver names. The plate holds its device lock
// in locker.
func Open(cfg config.DisplayConfig, locker *onlyone.Locker, log *slog.Logger) (Device, error) {
	if log == nil {
		log = slog.Default()
	}
	var (
		dev Device
		err error
	)
	switch cfg.Driver {
	case config.DriverPlate:
		dev, err = OpenPlate(cfg.I2CBus, uint16(cfg.I2CAddr), locker, PlateOptions{
			Rows:          cfg.Rows,
			Cols:          cfg.Cols,
			BacklightPin:  cfg.BacklightPin,
			SwapGreenBlue: cfg.SwapGreenBlue,
		}, log)
	case config.DriverBackpack:
		dev, err = OpenBackpack(BackpackOptions{
			Port: cfg.SerialPort,
			Baud: cfg.Baud,
			Rows: cfg.Rows,
			Cols: cfg.Cols,
			Keys: cfg.Keys,
		}, log)
	case config.DriverSim:
		dev, err = OpenSim(SimOptions{Rows: cfg.Rows, Cols: cfg.Cols}, log)
	default:
		return nil, fmt.Errorf("unknown display driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s display: %w", cfg.Driver, err)
	}
	return dev, nil
}
