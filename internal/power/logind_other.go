//go:build !linux

package power

import (
	"context"
	"log/slog"
)

// stubLogind is used on platforms without logind.
type stubLogind struct{}

func newLogind(_ *slog.Logger) caller {
	return stubLogind{}
}

func (stubLogind) Call(context.Context, string) error {
	return errUnavailable
}
