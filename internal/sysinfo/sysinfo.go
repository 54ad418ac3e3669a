// Package sysinfo produces the status rows of the settings menu.
package sysinfo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/sys/unix"

	"github.com/sylvandb/radio/internal/command"
)

// NoIP is shown when the host has no address.
const NoIP = "NoIP"

const uptimeFile = "/proc/uptime"

// ErrBadUptime is returned when the uptime file cannot be parsed.
var ErrBadUptime = errors.New("bad uptime")

// Info reads host status.
type Info struct {
	run       command.Runner
	ipCommand []string
	readFile  func(name string) ([]byte, error)
	statfs    func(path string) (free uint64, err error)
	now       func() time.Time
}

// New returns an Info running ipCommand (default "hostname -I") for the
// address.
func New(run command.Runner, ipCommand []string) *Info {
	if len(ipCommand) == 0 {
		ipCommand = []string{"hostname", "-I"}
	}
	return &Info{
		run:       run,
		ipCommand: ipCommand,
		readFile:  os.ReadFile,
		statfs:    statfsFree,
		now:       time.Now,
	}
}

// IPAddress returns the first address the host reports, or NoIP.
func (i *Info) IPAddress(ctx context.Context) (string, error) {
	lines := i.run.Lines(ctx, i.ipCommand...)
	if len(lines) == 0 {
		return NoIP, nil
	}
	fields := strings.Fields(lines[0])
	if len(fields) == 0 {
		return NoIP, nil
	}
	return fields[0], nil
}

// DiskFree returns a producer reporting the space available under path.
func (i *Info) DiskFree(path string) func(ctx context.Context) (string, error) {
	return func(context.Context) (string, error) {
		free, err := i.statfs(path)
		if err != nil {
			return "", fmt.Errorf("statfs %s: %w", path, err)
		}
		return "Disk " + humanize.IBytes(free) + " free", nil
	}
}

func statfsFree(path string) (uint64, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return 0, err
	}
	return st.Bavail * uint64(st.Bsize), nil //nolint:gosec // block size is positive
}

// Uptime reports how long the host has been up.
func (i *Info) Uptime(context.Context) (string, error) {
	data, err := i.readFile(uptimeFile)
	if err != nil {
		return "", err
	}
	fields := strings.Fields(string(data))
	if len(fields) == 0 {
		return "", ErrBadUptime
	}
	secs, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadUptime, err)
	}
	now := i.now()
	boot := now.Add(-time.Duration(secs * float64(time.Second)))
	return "Up " + strings.TrimSpace(humanize.RelTime(boot, now, "", "")), nil
}
