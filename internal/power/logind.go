//go:build linux

package power

import (
	"context"
	"log/slog"

	"github.com/godbus/dbus/v5"
)

const (
	logindDest    = "org.freedesktop.login1"
	logindPath    = "/org/freedesktop/login1"
	logindManager = "org.freedesktop.login1.Manager"
)

// dbusLogind calls the login manager on the system bus. The connection is
// made on first use so a missing bus only matters when power is used.
type dbusLogind struct {
	log *slog.Logger
}

func newLogind(log *slog.Logger) caller {
	return &dbusLogind{log: log}
}

// Call invokes method with interactive=false.
func (d *dbusLogind) Call(ctx context.Context, method string) error {
	conn, err := dbus.SystemBus()
	if err != nil {
		return err
	}
	obj := conn.Object(logindDest, dbus.ObjectPath(logindPath))
	call := obj.CallWithContext(ctx, logindManager+"."+method, 0, false)
	return call.Err
}
